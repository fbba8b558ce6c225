package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/jsky9292/youtubedata-analytics/internal/app"
	"github.com/jsky9292/youtubedata-analytics/internal/config"
	"github.com/jsky9292/youtubedata-analytics/internal/constants"
	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/internal/util"
)

type output struct {
	Channel    *domain.Channel          `json:"channel"`
	Analysis   *domain.AnalysisResult   `json:"analysis"`
	Comparison *domain.ComparisonResult `json:"comparison,omitempty"`
	BlogPost   any                      `json:"blog_post,omitempty"`
}

func main() {
	var (
		channelFlag     = flag.String("channel", "", "channel ID, @handle, URL or name (required)")
		competitorsFlag = flag.String("competitors", "", "comma-separated competitor channels")
		maxVideosFlag   = flag.Int("max-videos", 50, "number of recent videos to analyze")
		blogFlag        = flag.Bool("blog", false, "generate a blog draft from the analysis")
		blogTopicFlag   = flag.String("blog-topic", "", "blog topic override")
		platformFlag    = flag.String("platform", "naver", "blog platform (naver, tistory, wordpress)")
		outFlag         = flag.String("o", "", "write the JSON report to this file instead of stdout")
	)
	flag.Parse()

	if *channelFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: analyzer -channel <id|@handle|url> [-competitors a,b,c]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	buildCtx, buildCancel := context.WithTimeout(ctx, 30*time.Second)
	container, err := app.Build(buildCtx, cfg, logger)
	buildCancel()
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		os.Exit(1)
	}
	defer container.Close()

	if err := run(ctx, container, *channelFlag, *competitorsFlag, *maxVideosFlag, *blogFlag, *blogTopicFlag, *platformFlag, *outFlag); err != nil {
		logger.Error("Analysis failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, c *app.Container, channelInput, competitorsInput string, maxVideos int, blog bool, blogTopic, platform, outPath string) error {
	channel, analysis, err := analyzeChannel(ctx, c, channelInput, maxVideos)
	if err != nil {
		return err
	}

	result := &output{
		Channel:  channel,
		Analysis: analysis,
	}

	competitors := splitCompetitors(competitorsInput)
	if len(competitors) > constants.AnalysisLimits.MaxCompetitors {
		c.Logger.Warn("Too many competitors requested, truncating",
			zap.Int("requested", len(competitors)),
			zap.Int("limit", constants.AnalysisLimits.MaxCompetitors))
		competitors = competitors[:constants.AnalysisLimits.MaxCompetitors]
	}

	if len(competitors) > 0 {
		comparison, err := runComparison(ctx, c, analysis, competitors, maxVideos)
		if err != nil {
			return err
		}
		result.Comparison = comparison
	}

	if blog {
		if c.Blog == nil {
			c.Logger.Warn("Blog generation requested but AI is not configured")
		} else {
			post, err := c.Blog.GenerateFromAnalysis(ctx, analysis, blogTopic, platform)
			if err != nil {
				c.Logger.Warn("Blog generation failed", zap.Error(err))
			} else {
				result.BlogPost = post
			}
		}
	}

	return writeOutput(result, outPath)
}

func analyzeChannel(ctx context.Context, c *app.Container, input string, maxVideos int) (*domain.Channel, *domain.AnalysisResult, error) {
	channelID, err := c.YouTube.ResolveChannelID(ctx, input)
	if err != nil {
		// The page scraper can still resolve handles the search API misses.
		if strings.HasPrefix(strings.TrimSpace(input), "@") {
			scraped, scrapeErr := c.Resolver.ResolveHandle(ctx, input)
			if scrapeErr != nil {
				return nil, nil, fmt.Errorf("resolve channel %q: %w", input, err)
			}
			channelID = scraped
		} else {
			return nil, nil, fmt.Errorf("resolve channel %q: %w", input, err)
		}
	}

	channel, err := c.YouTube.GetChannelInfo(ctx, channelID)
	if err != nil {
		return nil, nil, err
	}

	analysisKey := fmt.Sprintf("analysis:%s:%d", channelID, maxVideos)
	if cached, ok := c.Cache.GetAnalysis(ctx, analysisKey); ok {
		c.Logger.Info("Using cached analysis", zap.String("channel_id", channelID))
		return channel, cached, nil
	}

	videos, err := c.YouTube.GetChannelVideos(ctx, channelID, maxVideos)
	if err != nil {
		return nil, nil, err
	}

	analysis, err := c.Analyzer.Analyze(*channel, videos)
	if err != nil {
		return nil, nil, err
	}
	c.Cache.SetAnalysis(ctx, analysisKey, analysis, constants.CacheTTL.AnalysisReport)

	if c.Database != nil {
		if err := c.Database.UpsertChannel(ctx, channel); err != nil {
			c.Logger.Warn("Failed to persist channel", zap.Error(err))
		} else if _, err := c.Database.SaveAnalysisReport(ctx, channelID, analysis); err != nil {
			c.Logger.Warn("Failed to persist analysis report", zap.Error(err))
		}
	}

	return channel, analysis, nil
}

func runComparison(ctx context.Context, c *app.Container, mainAnalysis *domain.AnalysisResult, competitors []string, maxVideos int) (*domain.ComparisonResult, error) {
	type competitorResult struct {
		input    string
		analysis *domain.AnalysisResult
		err      error
	}

	results := make([]*competitorResult, len(competitors))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(3)
	for idx, input := range competitors {
		idx, input := idx, input
		p.Go(func() {
			_, analysis, err := analyzeChannel(ctx, c, input, maxVideos)
			mu.Lock()
			results[idx] = &competitorResult{input: input, analysis: analysis, err: err}
			mu.Unlock()
		})
	}
	p.Wait()

	analyses := make([]*domain.AnalysisResult, 0, len(results))
	competitorIDs := make([]string, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			c.Logger.Warn("Competitor analysis failed",
				zap.String("competitor", r.input),
				zap.Error(r.err))
			continue
		}
		analyses = append(analyses, r.analysis)
		competitorIDs = append(competitorIDs, r.analysis.ChannelSummary.ChannelID)
	}
	if len(analyses) == 0 {
		return nil, fmt.Errorf("경쟁 채널 분석에 모두 실패했습니다")
	}

	comparison, err := c.Comparator.Compare(mainAnalysis, analyses)
	if err != nil {
		return nil, err
	}

	if c.Database != nil {
		if _, err := c.Database.SaveComparisonReport(ctx, mainAnalysis.ChannelSummary.ChannelID, competitorIDs, comparison); err != nil {
			c.Logger.Warn("Failed to persist comparison report", zap.Error(err))
		}
	}

	return comparison, nil
}

func splitCompetitors(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	competitors := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			competitors = append(competitors, trimmed)
		}
	}
	return competitors
}

func writeOutput(result *output, outPath string) error {
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	if outPath == "" {
		fmt.Println(string(payload))
		return nil
	}
	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}
