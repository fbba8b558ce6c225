package domain

// ChannelDigest is the flattened summary of one AnalysisResult used by the
// competitive comparator. It copies everything it needs; no back-reference to
// the source result is retained.
type ChannelDigest struct {
	ChannelName      string   `json:"channel_name"`
	ChannelID        string   `json:"channel_id,omitempty"`
	SubscriberCount  int64    `json:"subscriber_count"`
	AvgViews         int64    `json:"avg_views"`
	AvgVelocity      float64  `json:"avg_velocity"`
	AvgEngagement    float64  `json:"avg_engagement"`
	AvgLikeRatio     float64  `json:"avg_like_ratio"`
	TotalVideos      int      `json:"total_videos"`
	ViralCount       int      `json:"viral_count"`
	HitCount         int      `json:"hit_count"`
	AverageCount     int      `json:"average_count"`
	UnderperformCount int     `json:"underperform_count"`
	ViralRate        float64  `json:"viral_rate"`
	HitRate          float64  `json:"hit_rate"`
	SuccessRate      float64  `json:"success_rate"`
	TopVideoViews    int64    `json:"top_video_views"`
	SuccessPatterns  []string `json:"success_patterns,omitempty"`
}

// ChannelComparison is the per-competitor row of the metrics comparison.
type ChannelComparison struct {
	ChannelName     string  `json:"channel_name"`
	SubscriberCount int64   `json:"subscriber_count"`
	SubscriberDiff  int64   `json:"subscriber_diff"`
	SubscriberRatio float64 `json:"subscriber_ratio"`
	AvgViews        int64   `json:"avg_views"`
	ViewsDiff       int64   `json:"views_diff"`
	ViewsRatio      float64 `json:"views_ratio"`
	AvgVelocity     float64 `json:"avg_velocity"`
	VelocityDiff    float64 `json:"velocity_diff"`
	VelocityRatio   float64 `json:"velocity_ratio"`
	AvgEngagement   float64 `json:"avg_engagement"`
	EngagementDiff  float64 `json:"engagement_diff"`
	ViralRate       float64 `json:"viral_rate"`
	SuccessRate     float64 `json:"success_rate"`
	SuccessRateDiff float64 `json:"success_rate_diff"`
}

// MetricsComparisonSummary counts how many competitors the main channel beats.
type MetricsComparisonSummary struct {
	TotalCompared      int `json:"total_compared"`
	BetterInViews      int `json:"better_in_views"`
	BetterInEngagement int `json:"better_in_engagement"`
	BetterInViral      int `json:"better_in_viral"`
}

// MetricsComparison is the full metrics comparison block.
type MetricsComparison struct {
	MainChannel ChannelDigest            `json:"main_channel"`
	Comparisons []ChannelComparison      `json:"comparisons"`
	Summary     MetricsComparisonSummary `json:"summary"`
}

// Ranking is the main channel's position for one metric across all channels.
// Rank is 1-indexed; ties keep input order (main first, then competitors).
type Ranking struct {
	Name       string  `json:"name"`
	Rank       int     `json:"rank"`
	Total      int     `json:"total"`
	Value      float64 `json:"value"`
	TopValue   float64 `json:"top_value"`
	TopChannel string  `json:"top_channel"`
	IsTop      bool    `json:"is_top"`
	GapToTop   float64 `json:"gap_to_top"`
}

// Channel strategy labels from the comparator's decision table.
const (
	StrategyViral    = "viral_focused"
	StrategyFandom   = "fandom_focused"
	StrategyTraffic  = "traffic_focused"
	StrategyBalanced = "balanced"
)

// ChannelStrategy labels one channel's content strategy.
type ChannelStrategy struct {
	ChannelName string  `json:"channel_name"`
	Strategy    string  `json:"strategy"`
	ViralRate   float64 `json:"viral_rate"`
	Engagement  float64 `json:"engagement"`
}

// StrategyComparison is the content strategy comparison block.
type StrategyComparison struct {
	MainStrategy         string            `json:"main_strategy"`
	CompetitorStrategies []ChannelStrategy `json:"competitor_strategies"`
	StrategyDistribution map[string]int    `json:"strategy_distribution"`
}

// GapsToAverage holds the main channel's gaps to the competitor averages.
type GapsToAverage struct {
	SubscriberGap    float64 `json:"subscriber_gap"`
	SubscriberGapPct float64 `json:"subscriber_gap_pct"`
	ViewsGap         float64 `json:"views_gap"`
	ViewsGapPct      float64 `json:"views_gap_pct"`
	EngagementGap    float64 `json:"engagement_gap"`
	ViralRateGap     float64 `json:"viral_rate_gap"`
}

// GapsToBest names the per-metric leaders and the gaps to them.
type GapsToBest struct {
	BestSubscriberChannel string  `json:"best_subscriber_channel"`
	SubscriberGapToBest   int64   `json:"subscriber_gap_to_best"`
	BestViewsChannel      string  `json:"best_views_channel"`
	ViewsGapToBest        int64   `json:"views_gap_to_best"`
	BestEngagementChannel string  `json:"best_engagement_channel"`
	EngagementGapToBest   float64 `json:"engagement_gap_to_best"`
	BestViralChannel      string  `json:"best_viral_channel"`
	ViralGapToBest        float64 `json:"viral_gap_to_best"`
}

// PerformanceGaps is the gap analysis block.
type PerformanceGaps struct {
	VsAverage             GapsToAverage `json:"vs_average"`
	VsBest                GapsToBest    `json:"vs_best"`
	CompetitiveAdvantages []string      `json:"competitive_advantages"`
}

// StrengthsWeaknesses lists per-metric strengths and weaknesses against the
// per-metric leader.
type StrengthsWeaknesses struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	StrengthCount int      `json:"strength_count"`
	WeaknessCount int      `json:"weakness_count"`
}

// Market position labels by overall score band.
const (
	PositionDominant   = "dominant"
	PositionLeader     = "leader"
	PositionChallenger = "challenger"
	PositionFollower   = "follower"
)

// MarketPosition is the derived market position block.
type MarketPosition struct {
	Position        string             `json:"position"`
	PositionLabel   string             `json:"position_label"`
	OverallScore    float64            `json:"overall_score"`
	Scores          map[string]float64 `json:"scores"`
	SubscriberVsAvg float64            `json:"subscriber_vs_avg"`
	ViewsVsAvg      float64            `json:"views_vs_avg"`
	VelocityVsAvg   float64            `json:"velocity_vs_avg"`
	EngagementVsAvg float64            `json:"engagement_vs_avg"`
	Interpretation  string             `json:"interpretation"`
}

// CompetitiveInsight is one comparative observation.
type CompetitiveInsight struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// ComparisonResult is the full output of a competitor comparison.
type ComparisonResult struct {
	MainChannel               ChannelDigest       `json:"main_channel"`
	Competitors               []ChannelDigest     `json:"competitors"`
	MetricsComparison         MetricsComparison   `json:"metrics_comparison"`
	RankingAnalysis           map[string]Ranking  `json:"ranking_analysis"`
	ContentStrategyComparison StrategyComparison  `json:"content_strategy_comparison"`
	PerformanceGapAnalysis    PerformanceGaps     `json:"performance_gap_analysis"`
	StrengthsWeaknesses       StrengthsWeaknesses `json:"strengths_weaknesses"`
	MarketPosition            MarketPosition      `json:"market_position"`
	CompetitiveInsights       []CompetitiveInsight `json:"competitive_insights"`
	Recommendations           []Recommendation    `json:"recommendations"`
}
