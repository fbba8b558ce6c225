package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jsky9292/youtubedata-analytics/internal/constants"
	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/internal/service/cache"
)

// BlogService turns analysis results into long-form Korean blog drafts.
type BlogService struct {
	models *ModelManager
	cache  *cache.CacheService
	logger *zap.Logger
}

// BlogPost is the structured draft returned by the model.
type BlogPost struct {
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords"`
	Hashtags        []string `json:"hashtags"`
	ThumbnailPrompt string   `json:"thumbnail_prompt"`

	Platform    string    `json:"platform,omitempty"`
	Provider    string    `json:"provider,omitempty"`
	Model       string    `json:"model,omitempty"`
	GeneratedAt time.Time `json:"generated_at,omitempty"`
}

func NewBlogService(models *ModelManager, cacheService *cache.CacheService, logger *zap.Logger) *BlogService {
	return &BlogService{
		models: models,
		cache:  cacheService,
		logger: logger,
	}
}

var platformGuides = map[string]string{
	"naver":     "네이버 블로그: 친근한 구어체, 소제목마다 이모지, 문단은 3~4문장 이내",
	"tistory":   "티스토리: 정보 전달 중심, 목차 구조, 데이터와 수치 강조",
	"wordpress": "워드프레스: SEO 중심, 명확한 H2/H3 계층, 영어 키워드 병기",
}

func platformGuide(platform string) string {
	if guide, ok := platformGuides[platform]; ok {
		return guide
	}
	return platformGuides["naver"]
}

// GenerateFromAnalysis drafts a post about the channel's performance report.
func (bs *BlogService) GenerateFromAnalysis(ctx context.Context, result *domain.AnalysisResult, topic, platform string) (*BlogPost, error) {
	summary := result.ChannelSummary

	cacheKey := fmt.Sprintf("blog:analysis:%s:%s:%s", summary.ChannelID, topic, platform)
	var cached BlogPost
	if err := bs.cache.Get(ctx, cacheKey, &cached); err == nil && cached.Title != "" {
		bs.logger.Debug("Blog cache hit", zap.String("key", cacheKey))
		return &cached, nil
	}

	if topic == "" {
		topic = fmt.Sprintf("%s 채널 성과 분석", summary.ChannelName)
	}

	prompt := bs.buildAnalysisPrompt(result, topic, platform)

	var post BlogPost
	metadata, err := bs.models.GenerateJSON(ctx, prompt, PresetCreative, &post, nil)
	if err != nil {
		return nil, err
	}
	if post.Title == "" {
		post.Title = topic
	}
	post.Platform = platform
	post.Provider = metadata.Provider
	post.Model = metadata.Model
	post.GeneratedAt = time.Now()

	if err := bs.cache.Set(ctx, cacheKey, post, constants.CacheTTL.AIReport); err != nil {
		bs.logger.Warn("Failed to cache blog post", zap.Error(err))
	}

	bs.logger.Info("Blog post generated",
		zap.String("channel", summary.ChannelName),
		zap.String("provider", metadata.Provider),
		zap.Bool("fallback", metadata.UsedFallback))

	return &post, nil
}

// GenerateFromVideo drafts a post built around one video's content and stats.
func (bs *BlogService) GenerateFromVideo(ctx context.Context, video *domain.Video, platform string) (*BlogPost, error) {
	cacheKey := fmt.Sprintf("blog:video:%s:%s", video.VideoID, platform)
	var cached BlogPost
	if err := bs.cache.Get(ctx, cacheKey, &cached); err == nil && cached.Title != "" {
		return &cached, nil
	}

	prompt := bs.buildVideoPrompt(video, platform)

	var post BlogPost
	metadata, err := bs.models.GenerateJSON(ctx, prompt, PresetCreative, &post, nil)
	if err != nil {
		return nil, err
	}
	if post.Title == "" {
		post.Title = video.Title
	}
	post.Platform = platform
	post.Provider = metadata.Provider
	post.Model = metadata.Model
	post.GeneratedAt = time.Now()

	if err := bs.cache.Set(ctx, cacheKey, post, constants.CacheTTL.AIReport); err != nil {
		bs.logger.Warn("Failed to cache blog post", zap.Error(err))
	}
	return &post, nil
}

func (bs *BlogService) buildAnalysisPrompt(result *domain.AnalysisResult, topic, platform string) string {
	summary := result.ChannelSummary

	var sb strings.Builder
	sb.WriteString("당신은 유튜브 데이터 분석 전문 블로거입니다. 아래 채널 분석 데이터를 바탕으로 블로그 포스트를 작성해주세요.\n\n")
	fmt.Fprintf(&sb, "주제: %s\n", topic)
	fmt.Fprintf(&sb, "플랫폼 가이드: %s\n\n", platformGuide(platform))

	sb.WriteString("## 채널 데이터\n")
	fmt.Fprintf(&sb, "- 채널명: %s\n", summary.ChannelName)
	fmt.Fprintf(&sb, "- 구독자: %d명\n", summary.SubscriberCount)
	fmt.Fprintf(&sb, "- 분석 영상 수: %d개\n", summary.TotalVideosAnalyzed)
	fmt.Fprintf(&sb, "- 평균 조회수: %d회\n", summary.AvgViewsPerVideo)
	fmt.Fprintf(&sb, "- 평균 참여율: %.2f%% (%s)\n", summary.AvgEngagementRate, summary.EngagementBenchmarkStatus)
	fmt.Fprintf(&sb, "- 채널 건강도: %s\n", result.AlgorithmInsights.OverallHealth)

	if len(result.SuccessAnalysis.Patterns) > 0 {
		sb.WriteString("\n## 성공 패턴\n")
		for _, p := range result.SuccessAnalysis.Patterns {
			fmt.Fprintf(&sb, "- %s\n", p)
		}
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("\n## 핵심 개선 제안\n")
		limit := 3
		if len(result.Recommendations) < limit {
			limit = len(result.Recommendations)
		}
		for _, rec := range result.Recommendations[:limit] {
			fmt.Fprintf(&sb, "- %s\n", rec.Category)
		}
	}

	sb.WriteString(`
## 출력 형식 (JSON만, 다른 텍스트 금지)
{
  "title": "클릭을 부르는 제목 (30~50자)",
  "content": "HTML 본문 (h2/h3 소제목, p 문단, 데이터 인용 포함, 2000자 이상)",
  "meta_description": "검색용 요약 (100자 이내)",
  "keywords": ["키워드1", "키워드2"],
  "hashtags": ["#해시태그1", "#해시태그2"],
  "thumbnail_prompt": "썸네일 이미지 생성용 영어 프롬프트 (100자 이내)"
}`)

	return sb.String()
}

func (bs *BlogService) buildVideoPrompt(video *domain.Video, platform string) string {
	var sb strings.Builder
	sb.WriteString("당신은 유튜브 콘텐츠 전문 블로거입니다. 아래 영상을 소개하는 블로그 포스트를 작성해주세요.\n\n")
	fmt.Fprintf(&sb, "플랫폼 가이드: %s\n\n", platformGuide(platform))

	sb.WriteString("## 영상 데이터\n")
	fmt.Fprintf(&sb, "- 제목: %s\n", video.Title)
	fmt.Fprintf(&sb, "- 조회수: %d회\n", video.ViewCount)
	fmt.Fprintf(&sb, "- 좋아요: %d개\n", video.LikeCount)
	fmt.Fprintf(&sb, "- 댓글: %d개\n", video.CommentCount)
	if video.Description != "" {
		fmt.Fprintf(&sb, "- 설명: %s\n", video.Description)
	}
	if len(video.Tags) > 0 {
		fmt.Fprintf(&sb, "- 태그: %s\n", strings.Join(video.Tags, ", "))
	}

	sb.WriteString(`
## 출력 형식 (JSON만, 다른 텍스트 금지)
{
  "title": "클릭을 부르는 제목 (30~50자)",
  "content": "HTML 본문 (h2/h3 소제목, p 문단, 1500자 이상)",
  "meta_description": "검색용 요약 (100자 이내)",
  "keywords": ["키워드1", "키워드2"],
  "hashtags": ["#해시태그1", "#해시태그2"],
  "thumbnail_prompt": "썸네일 이미지 생성용 영어 프롬프트 (100자 이내)"
}`)

	return sb.String()
}
