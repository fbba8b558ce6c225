package domain

// Tier is a video's relative performance bucket within its own channel's
// population, not an absolute standard.
type Tier string

const (
	TierViral        Tier = "viral"
	TierHit          Tier = "hit"
	TierAverage      Tier = "average"
	TierUnderperform Tier = "underperform"
)

// AllTiers lists every tier in ranking order, best first.
var AllTiers = []Tier{TierViral, TierHit, TierAverage, TierUnderperform}

// Video is one observed video. The raw counter fields come from the data API;
// the derived fields are filled in by the analysis pipeline and start at their
// zero values. A fresh analysis run recomputes every derived field.
type Video struct {
	VideoID      string   `json:"video_id"`
	ChannelID    string   `json:"channel_id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	PublishedAt  string   `json:"published_at,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	ViewCount    int64    `json:"view_count"`
	LikeCount    int64    `json:"like_count"`
	CommentCount int64    `json:"comment_count"`
	Tags         []string `json:"tags,omitempty"`
	CategoryID   string   `json:"category_id,omitempty"`

	// Derived by the pipeline.
	ViewVelocity    float64         `json:"view_velocity"`
	DaysSinceUpload int             `json:"days_since_upload"`
	EngagementRate  float64         `json:"engagement_rate"`
	LikeRatio       float64         `json:"like_ratio"`
	CommentRate     float64         `json:"comment_rate"`
	AlgorithmScore  float64         `json:"algorithm_score"`
	ZScore          float64         `json:"z_score"`
	Classification  Tier            `json:"classification,omitempty"`
	AlgorithmStatus string          `json:"algorithm_status,omitempty"`
	ScoreBreakdown  *ScoreBreakdown `json:"score_breakdown,omitempty"`
	TitleAnalysis   *TitleAnalysis  `json:"title_analysis,omitempty"`
}

// ScoreBreakdown holds the six weighted sub-scores behind an algorithm score,
// plus the raw metric values they were derived from.
type ScoreBreakdown struct {
	ViewVelocity       float64 `json:"view_velocity"`
	EngagementRate     float64 `json:"engagement_rate"`
	LikeRatio          float64 `json:"like_ratio"`
	CommentRate        float64 `json:"comment_rate"`
	TitleCTRScore      float64 `json:"title_ctr_score"`
	DurationEfficiency float64 `json:"duration_efficiency"`
	Total              float64 `json:"total"`

	ViewVelocityRaw   float64 `json:"view_velocity_raw"`
	EngagementRateRaw float64 `json:"engagement_rate_raw"`
	LikeRatioRaw      float64 `json:"like_ratio_raw"`
	CommentRateRaw    float64 `json:"comment_rate_raw"`
	ViewsPerMinute    float64 `json:"views_per_minute"`
}

// TitleAnalysis is the output of the title CTR scorer.
type TitleAnalysis struct {
	Score   float64  `json:"score"`
	Factors []string `json:"factors"`
	Length  int      `json:"length"`
}
