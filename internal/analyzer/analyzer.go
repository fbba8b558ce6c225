package analyzer

import (
	"errors"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/internal/util"
)

// ErrNoVideos is returned when Analyze is called with nothing to analyze.
var ErrNoVideos = errors.New("분석할 영상이 없습니다")

// Analyzer runs the channel analysis pipeline. The configuration is fixed at
// construction, so one instance is safe for concurrent runs. Input slices are
// never mutated; every stage works on copies.
type Analyzer struct {
	cfg         Config
	titleScorer *TitleScorer
	logger      *zap.Logger
	nowFn       func() time.Time
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithNowFunc overrides the clock, used by tests to pin upload ages.
func WithNowFunc(fn func() time.Time) Option {
	return func(a *Analyzer) {
		a.nowFn = fn
	}
}

func New(cfg Config, logger *zap.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		cfg:         cfg,
		titleScorer: NewTitleScorer(),
		logger:      logger,
		nowFn:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full pipeline over one channel's videos. The clock is
// sampled once, so every derived age inside a run agrees.
func (a *Analyzer) Analyze(channel domain.Channel, videos []domain.Video) (*domain.AnalysisResult, error) {
	if len(videos) == 0 {
		return nil, ErrNoVideos
	}

	now := a.nowFn()
	a.logger.Info("Starting channel analysis",
		zap.String("channel", channel.ChannelName),
		zap.Int("videos", len(videos)),
	)

	enriched := deriveVelocity(videos, now)
	stats := metricsStats(enriched)
	classified := a.classify(enriched, stats)

	trends := a.analyzeTrends(classified)
	success := a.analyzeSuccessful(classified)
	failure := a.analyzeUnsuccessful(classified)
	content := contentPatterns(classified)
	upload := a.analyzeUploadPatterns(classified)
	growth := a.analyzeGrowthTrends(classified)
	insights := a.generateInsights(classified, stats)
	recommendations := a.generateRecommendations(success, failure, upload, trends, insights)

	classification := make(map[domain.Tier][]domain.Video, len(domain.AllTiers))
	for _, tier := range domain.AllTiers {
		classification[tier] = filterByTiers(classified, tier)
	}

	result := &domain.AnalysisResult{
		ChannelSummary:      a.channelSummary(channel, classified, stats),
		VideoClassification: classification,
		ClassificationStats: classificationStats(classified),
		SuccessAnalysis:     success,
		FailureAnalysis:     failure,
		ContentPatterns:     content,
		UploadPatterns:      upload,
		GrowthTrends:        growth,
		TrendAnalysis:       trends,
		AlgorithmInsights:   insights,
		DetailedMetrics:     a.detailedMetrics(classified),
		Recommendations:     recommendations,
		MetricsStats:        stats,
		AnalyzedAt:          now,
	}

	a.logger.Info("Channel analysis complete",
		zap.String("channel", channel.ChannelName),
		zap.Int("viral", len(classification[domain.TierViral])),
		zap.Int("hit", len(classification[domain.TierHit])),
		zap.Int("underperform", len(classification[domain.TierUnderperform])),
	)

	return result, nil
}

func (a *Analyzer) channelSummary(channel domain.Channel, videos []domain.Video, stats map[string]domain.Stats) domain.ChannelSummary {
	var totalViews, totalLikes, totalComments int64
	velocitySum := 0.0
	for _, v := range videos {
		totalViews += v.ViewCount
		totalLikes += v.LikeCount
		totalComments += v.CommentCount
		velocitySum += v.ViewVelocity
	}
	count := int64(len(videos))

	avgEngagement := stats["engagement_rate"].Mean
	avgLikeRatio := stats["like_ratio"].Mean

	return domain.ChannelSummary{
		ChannelName:               channel.ChannelName,
		ChannelID:                 channel.ChannelID,
		SubscriberCount:           channel.SubscriberCount,
		TotalVideosAnalyzed:       len(videos),
		TotalViews:                totalViews,
		TotalLikes:                totalLikes,
		TotalComments:             totalComments,
		AvgViewsPerVideo:          int64(math.Round(float64(totalViews) / float64(count))),
		AvgLikesPerVideo:          int64(math.Round(float64(totalLikes) / float64(count))),
		AvgCommentsPerVideo:       int64(math.Round(float64(totalComments) / float64(count))),
		AvgViewVelocity:           util.Round1(velocitySum / float64(count)),
		AvgEngagementRate:         util.Round3(avgEngagement),
		AvgLikeRatio:              util.Round3(avgLikeRatio),
		EngagementBenchmarkStatus: benchmarkStatus(avgEngagement, a.cfg.Benchmarks.EngagementRate),
		LikeRatioBenchmarkStatus:  benchmarkStatus(avgLikeRatio, a.cfg.Benchmarks.LikeRatio),
	}
}

func classificationStats(classified []domain.Video) map[domain.Tier]*domain.TierStats {
	stats := make(map[domain.Tier]*domain.TierStats, len(domain.AllTiers))
	for _, tier := range domain.AllTiers {
		stats[tier] = &domain.TierStats{Videos: []domain.Video{}}
	}

	for _, v := range classified {
		ts, ok := stats[v.Classification]
		if !ok {
			continue
		}
		ts.Count++
		ts.Videos = append(ts.Videos, v)
	}

	for _, ts := range stats {
		if ts.Count == 0 {
			continue
		}
		var views float64
		var velocity, engagement, score float64
		for _, v := range ts.Videos {
			views += float64(v.ViewCount)
			velocity += v.ViewVelocity
			engagement += v.EngagementRate
			score += v.AlgorithmScore
		}
		n := float64(ts.Count)
		ts.AvgViews = int64(math.Round(views / n))
		ts.AvgVelocity = util.Round1(velocity / n)
		ts.AvgEngagement = util.Round3(engagement / n)
		ts.AvgScore = util.Round1(score / n)
	}

	return stats
}

func (a *Analyzer) detailedMetrics(videos []domain.Video) domain.DetailedMetrics {
	return domain.DetailedMetrics{
		ViewVelocityDistribution:     velocityDistribution(videos),
		EngagementDistribution:       engagementDistribution(videos),
		PerformanceScoreDistribution: scoreDistribution(videos),
		TitleCTRDistribution:         ctrDistribution(videos),
		MonthlyPerformance:           monthlyPerformance(videos),
	}
}

func velocityDistribution(videos []domain.Video) map[string]int {
	dist := map[string]int{"0-100": 0, "100-500": 0, "500-1000": 0, "1000-5000": 0, "5000+": 0}
	for _, v := range videos {
		switch {
		case v.ViewVelocity < 100:
			dist["0-100"]++
		case v.ViewVelocity < 500:
			dist["100-500"]++
		case v.ViewVelocity < 1000:
			dist["500-1000"]++
		case v.ViewVelocity < 5000:
			dist["1000-5000"]++
		default:
			dist["5000+"]++
		}
	}
	return dist
}

func engagementDistribution(videos []domain.Video) map[string]int {
	dist := map[string]int{"0-1%": 0, "1-3%": 0, "3-5%": 0, "5-8%": 0, "8%+": 0}
	for _, v := range videos {
		switch {
		case v.EngagementRate < 1:
			dist["0-1%"]++
		case v.EngagementRate < 3:
			dist["1-3%"]++
		case v.EngagementRate < 5:
			dist["3-5%"]++
		case v.EngagementRate < 8:
			dist["5-8%"]++
		default:
			dist["8%+"]++
		}
	}
	return dist
}

func scoreDistribution(videos []domain.Video) map[string]int {
	dist := map[string]int{
		"0-30 (저조)":     0,
		"30-50 (평균 이하)": 0,
		"50-65 (평균)":    0,
		"65-80 (우수)":    0,
		"80+ (최상위)":     0,
	}
	for _, v := range videos {
		switch {
		case v.AlgorithmScore < 30:
			dist["0-30 (저조)"]++
		case v.AlgorithmScore < 50:
			dist["30-50 (평균 이하)"]++
		case v.AlgorithmScore < 65:
			dist["50-65 (평균)"]++
		case v.AlgorithmScore < 80:
			dist["65-80 (우수)"]++
		default:
			dist["80+ (최상위)"]++
		}
	}
	return dist
}

func ctrDistribution(videos []domain.Video) map[string]int {
	dist := map[string]int{
		"0-40 (낮음)":  0,
		"40-55 (보통)": 0,
		"55-70 (양호)": 0,
		"70-85 (우수)": 0,
		"85+ (최적)":   0,
	}
	for _, v := range videos {
		score := titleScoreOf(v)
		switch {
		case score < 40:
			dist["0-40 (낮음)"]++
		case score < 55:
			dist["40-55 (보통)"]++
		case score < 70:
			dist["55-70 (양호)"]++
		case score < 85:
			dist["70-85 (우수)"]++
		default:
			dist["85+ (최적)"]++
		}
	}
	return dist
}

// monthlyPerformance aggregates per publish month, keeping the latest six.
func monthlyPerformance(videos []domain.Video) map[string]domain.MonthlyStats {
	type bucket struct {
		views      int64
		velocities []float64
		engagement []float64
		count      int
	}
	monthly := make(map[string]*bucket)

	for _, v := range videos {
		t, ok := util.ParseTimestamp(v.PublishedAt)
		if !ok {
			continue
		}
		key := t.Format("2006-01")
		b := monthly[key]
		if b == nil {
			b = &bucket{}
			monthly[key] = b
		}
		b.views += v.ViewCount
		b.velocities = append(b.velocities, v.ViewVelocity)
		b.count++
		if v.ViewCount > 0 {
			eng := float64(v.LikeCount+v.CommentCount) / float64(v.ViewCount) * 100
			b.engagement = append(b.engagement, eng)
		}
	}

	keys := make([]string, 0, len(monthly))
	for k := range monthly {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 6 {
		keys = keys[len(keys)-6:]
	}

	result := make(map[string]domain.MonthlyStats, len(keys))
	for _, k := range keys {
		b := monthly[k]
		result[k] = domain.MonthlyStats{
			AvgViews:      int64(math.Round(float64(b.views) / float64(b.count))),
			AvgVelocity:   util.Round1(mean(b.velocities)),
			VideoCount:    b.count,
			AvgEngagement: util.Round3(mean(b.engagement)),
		}
	}
	return result
}
