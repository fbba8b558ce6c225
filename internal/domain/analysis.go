package domain

import "time"

// Stats is a pure value type describing one metric across one video set.
// It is recomputed wherever needed and never cached across different subsets.
type Stats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Stdev  float64 `json:"stdev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Total  float64 `json:"total"`
}

// ChannelSummary is the aggregate view of an analyzed channel population.
// It is owned by the analysis run and regenerated per run.
type ChannelSummary struct {
	ChannelName               string  `json:"channel_name"`
	ChannelID                 string  `json:"channel_id,omitempty"`
	SubscriberCount           int64   `json:"subscriber_count"`
	TotalVideosAnalyzed       int     `json:"total_videos_analyzed"`
	TotalViews                int64   `json:"total_views"`
	TotalLikes                int64   `json:"total_likes"`
	TotalComments             int64   `json:"total_comments"`
	AvgViewsPerVideo          int64   `json:"avg_views_per_video"`
	AvgLikesPerVideo          int64   `json:"avg_likes_per_video"`
	AvgCommentsPerVideo       int64   `json:"avg_comments_per_video"`
	AvgViewVelocity           float64 `json:"avg_view_velocity"`
	AvgEngagementRate         float64 `json:"avg_engagement_rate"`
	AvgLikeRatio              float64 `json:"avg_like_ratio"`
	EngagementBenchmarkStatus string  `json:"engagement_benchmark_status"`
	LikeRatioBenchmarkStatus  string  `json:"like_ratio_benchmark_status"`
}

// TierStats aggregates the videos that landed in one tier.
type TierStats struct {
	Count         int     `json:"count"`
	AvgViews      int64   `json:"avg_views"`
	AvgVelocity   float64 `json:"avg_velocity"`
	AvgEngagement float64 `json:"avg_engagement"`
	AvgScore      float64 `json:"avg_score"`
	Videos        []Video `json:"videos"`
}

// TrendMetric is the recent-vs-older comparison for one tracked metric.
// ChangePercent carries percentage deltas; Change carries absolute-point
// deltas for the metrics that trend on points (title length, CTR score,
// success rate).
type TrendMetric struct {
	RecentAvg       float64 `json:"recent_avg"`
	OlderAvg        float64 `json:"older_avg"`
	ChangePercent   float64 `json:"change_percent,omitempty"`
	Change          float64 `json:"change,omitempty"`
	Trend           string  `json:"trend"`
	Interpretation  string  `json:"interpretation,omitempty"`
	BenchmarkStatus string  `json:"benchmark_status,omitempty"`
	OptimalRange    string  `json:"optimal_range,omitempty"`
}

// Trend direction labels. Point-threshold metrics share the same labels.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// TrendAnalysis compares the recent half of a channel's uploads against the
// older half. Message is set instead of the metrics when the population is
// too small.
type TrendAnalysis struct {
	Message       string       `json:"message,omitempty"`
	ViewVelocity  *TrendMetric `json:"view_velocity,omitempty"`
	Views         *TrendMetric `json:"views,omitempty"`
	Engagement    *TrendMetric `json:"engagement,omitempty"`
	LikeRatio     *TrendMetric `json:"like_ratio,omitempty"`
	TitleLength   *TrendMetric `json:"title_length,omitempty"`
	TitleCTRScore *TrendMetric `json:"title_ctr_score,omitempty"`
	Comments      *TrendMetric `json:"comments,omitempty"`
	SuccessRate   *TrendMetric `json:"success_rate,omitempty"`
}

// WordCount pairs a word (or tag, or weekday) with how often it appeared.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// HourCount pairs an upload hour with how often it appeared.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// TitlePatternFlags counts structural features across a set of titles.
type TitlePatternFlags struct {
	HasNumbers  int `json:"has_numbers"`
	HasQuestion int `json:"has_question"`
	HasEmoji    int `json:"has_emoji"`
	HasBrackets int `json:"has_brackets"`
}

// TitlePatterns summarizes titles of one video subset.
type TitlePatterns struct {
	AvgLength     int               `json:"avg_length"`
	MinLength     int               `json:"min_length"`
	MaxLength     int               `json:"max_length"`
	TopWords      []WordCount       `json:"top_words"`
	Patterns      TitlePatternFlags `json:"patterns"`
	TotalAnalyzed int               `json:"total_analyzed"`
}

// DurationPatterns buckets a subset's video lengths.
type DurationPatterns struct {
	AvgDurationSeconds int            `json:"avg_duration_seconds"`
	Distribution       map[string]int `json:"distribution"`
}

// TagAnalysis summarizes tag usage of one video subset.
type TagAnalysis struct {
	TopTags         []WordCount `json:"top_tags"`
	AvgTagsPerVideo int         `json:"avg_tags_per_video"`
	VideosWithTags  int         `json:"videos_with_tags"`
	TotalUniqueTags int         `json:"total_unique_tags"`
}

// UploadTimeAnalysis reports the most common publish weekdays and hours.
type UploadTimeAnalysis struct {
	BestWeekdays []WordCount `json:"best_weekdays"`
	BestHours    []HourCount `json:"best_hours"`
}

// CommonFactor is one human-readable shared trait of successful videos.
type CommonFactor struct {
	Factor  string `json:"factor"`
	Value   string `json:"value"`
	Insight string `json:"insight"`
}

// RankedVideo is the digest of one top or bottom performer, with the
// per-video success or failure reasons attached.
type RankedVideo struct {
	VideoID        string          `json:"video_id"`
	Title          string          `json:"title"`
	ThumbnailURL   string          `json:"thumbnail_url,omitempty"`
	ViewCount      int64           `json:"view_count"`
	LikeCount      int64           `json:"like_count"`
	CommentCount   int64           `json:"comment_count"`
	ViewVelocity   float64         `json:"view_velocity"`
	EngagementRate float64         `json:"engagement_rate"`
	LikeRatio      float64         `json:"like_ratio"`
	Classification Tier            `json:"classification"`
	AlgorithmScore float64         `json:"algorithm_score"`
	ScoreBreakdown *ScoreBreakdown `json:"score_breakdown,omitempty"`
	TitleAnalysis  *TitleAnalysis  `json:"title_analysis,omitempty"`
	Reasons        []string        `json:"reasons"`
}

// MetricComparison contrasts one metric between the successful and the
// underperforming subsets of a channel.
type MetricComparison struct {
	SuccessAvg float64 `json:"success_avg"`
	FailureAvg float64 `json:"failure_avg"`
	Difference float64 `json:"difference"`
	Ratio      float64 `json:"ratio,omitempty"`
	Insight    string  `json:"insight,omitempty"`
}

// SuccessFailureComparison is the success-vs-failure comparison table.
type SuccessFailureComparison struct {
	TitleLength    *MetricComparison `json:"title_length,omitempty"`
	ViewVelocity   *MetricComparison `json:"view_velocity,omitempty"`
	EngagementRate *MetricComparison `json:"engagement_rate,omitempty"`
	LikeRatio      *MetricComparison `json:"like_ratio,omitempty"`
	TitleCTRScore  *MetricComparison `json:"title_ctr_score,omitempty"`
	TagCount       *MetricComparison `json:"tag_count,omitempty"`
}

// SuccessAnalysis is the deep dive on the viral+hit subset. Message is set
// instead when the subset is empty.
type SuccessAnalysis struct {
	Message            string              `json:"message,omitempty"`
	TotalCount         int                 `json:"total_count"`
	AvgViews           int64               `json:"avg_views"`
	AvgVelocity        float64             `json:"avg_velocity"`
	AvgEngagement      float64             `json:"avg_engagement"`
	AvgLikeRatio       float64             `json:"avg_like_ratio"`
	AvgScore           float64             `json:"avg_score"`
	TitlePatterns      *TitlePatterns      `json:"title_patterns,omitempty"`
	DurationAnalysis   *DurationPatterns   `json:"duration_analysis,omitempty"`
	TagAnalysis        *TagAnalysis        `json:"tag_analysis,omitempty"`
	UploadTimeAnalysis *UploadTimeAnalysis `json:"upload_time_analysis,omitempty"`
	CommonFactors      []CommonFactor      `json:"common_factors,omitempty"`
	TopVideos          []RankedVideo       `json:"top_videos"`
	Patterns           []string            `json:"success_patterns"`
}

// FailureAnalysis is the deep dive on the underperform subset.
type FailureAnalysis struct {
	Message               string                    `json:"message,omitempty"`
	TotalCount            int                       `json:"total_count"`
	AvgViews              int64                     `json:"avg_views"`
	AvgVelocity           float64                   `json:"avg_velocity"`
	AvgEngagement         float64                   `json:"avg_engagement"`
	AvgScore              float64                   `json:"avg_score"`
	TitlePatterns         *TitlePatterns            `json:"title_patterns,omitempty"`
	DurationAnalysis      *DurationPatterns         `json:"duration_analysis,omitempty"`
	TagAnalysis           *TagAnalysis              `json:"tag_analysis,omitempty"`
	ComparisonWithSuccess *SuccessFailureComparison `json:"comparison_with_success,omitempty"`
	BottomVideos          []RankedVideo             `json:"bottom_videos"`
	Patterns              []string                  `json:"failure_patterns"`
}

// ContentPatterns summarizes title keyword usage across the whole channel.
type ContentPatterns struct {
	TopKeywords      []WordCount `json:"top_keywords"`
	ContentDiversity float64     `json:"content_diversity"`
}

// UploadPatterns describes upload cadence. Message is set instead when fewer
// than two dated videos exist.
type UploadPatterns struct {
	Message               string         `json:"message,omitempty"`
	AvgUploadIntervalDays float64        `json:"avg_upload_interval_days"`
	UploadFrequency       string         `json:"upload_frequency,omitempty"`
	WeekdayDistribution   map[string]int `json:"weekday_distribution,omitempty"`
	MonthlyDistribution   map[string]int `json:"monthly_distribution,omitempty"`
	TotalVideosAnalyzed   int            `json:"total_videos_analyzed"`
}

// GrowthTrends compares the newest uploads against the oldest. Message is set
// instead when the population is too small.
type GrowthTrends struct {
	Message               string  `json:"message,omitempty"`
	RecentAvgViews        int64   `json:"recent_avg_views"`
	OlderAvgViews         int64   `json:"older_avg_views"`
	GrowthRatePercent     float64 `json:"growth_rate_percent"`
	RecentAvgVelocity     float64 `json:"recent_avg_velocity"`
	OlderAvgVelocity      float64 `json:"older_avg_velocity"`
	VelocityGrowthPercent float64 `json:"velocity_growth_percent"`
	Trend                 string  `json:"trend,omitempty"`
	VelocityTrend         string  `json:"velocity_trend,omitempty"`
	VideosCompared        int     `json:"videos_compared"`
}

// Signal is one positive or negative algorithm signal.
type Signal struct {
	Signal  string `json:"signal"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ImprovementPriority is one ranked improvement area with concrete actions.
type ImprovementPriority struct {
	Priority int      `json:"priority"`
	Area     string   `json:"area"`
	Current  string   `json:"current"`
	Target   string   `json:"target"`
	Actions  []string `json:"actions"`
}

// BenchmarkComparison contrasts a channel average with the external
// benchmark table for that metric.
type BenchmarkComparison struct {
	Current   float64            `json:"current"`
	Benchmark map[string]float64 `json:"benchmark"`
	Status    string             `json:"status"`
}

// AlgorithmInsights is the overall channel health readout.
type AlgorithmInsights struct {
	OverallHealth         string                         `json:"overall_health"`
	AlgorithmSignals      []Signal                       `json:"algorithm_signals"`
	ImprovementPriorities []ImprovementPriority          `json:"improvement_priorities"`
	BenchmarkComparison   map[string]BenchmarkComparison `json:"benchmark_comparison"`
}

// MonthlyStats is one month's aggregate performance.
type MonthlyStats struct {
	AvgViews      int64   `json:"avg_views"`
	AvgVelocity   float64 `json:"avg_velocity"`
	VideoCount    int     `json:"video_count"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// DetailedMetrics holds the metric distributions and monthly performance.
type DetailedMetrics struct {
	ViewVelocityDistribution     map[string]int          `json:"view_velocity_distribution"`
	EngagementDistribution       map[string]int          `json:"engagement_distribution"`
	PerformanceScoreDistribution map[string]int          `json:"performance_score_distribution"`
	TitleCTRDistribution         map[string]int          `json:"title_ctr_distribution"`
	MonthlyPerformance           map[string]MonthlyStats `json:"monthly_performance"`
}

// Recommendation priorities, highest urgency first.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
)

// Recommendation is one prioritized improvement record.
type Recommendation struct {
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	Current     string   `json:"current,omitempty"`
	Target      string   `json:"target,omitempty"`
	Suggestions []string `json:"suggestions"`
}

// AnalysisResult is the full output bundle of one channel analysis run.
// It is treated as an immutable snapshot once produced.
type AnalysisResult struct {
	ChannelSummary      ChannelSummary      `json:"channel_summary"`
	VideoClassification map[Tier][]Video    `json:"video_classification"`
	ClassificationStats map[Tier]*TierStats `json:"classification_stats"`
	SuccessAnalysis     SuccessAnalysis     `json:"success_analysis"`
	FailureAnalysis     FailureAnalysis     `json:"failure_analysis"`
	ContentPatterns     ContentPatterns     `json:"content_patterns"`
	UploadPatterns      UploadPatterns      `json:"upload_patterns"`
	GrowthTrends        GrowthTrends        `json:"growth_trends"`
	TrendAnalysis       TrendAnalysis       `json:"trend_analysis"`
	AlgorithmInsights   AlgorithmInsights   `json:"algorithm_insights"`
	DetailedMetrics     DetailedMetrics     `json:"detailed_metrics"`
	Recommendations     []Recommendation    `json:"recommendations"`
	MetricsStats        map[string]Stats    `json:"metrics_stats"`
	AnalyzedAt          time.Time           `json:"analyzed_at"`
}
