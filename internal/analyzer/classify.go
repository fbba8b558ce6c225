package analyzer

import (
	"sort"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/internal/util"
)

// Tier status labels shown next to each classified video.
const (
	statusViral        = "알고리즘 추천 가능성 높음"
	statusHit          = "좋은 성과"
	statusAverage      = "평균 성과"
	statusUnderperform = "개선 필요"
)

// classify scores every video and buckets it relative to the channel's own
// population. Below the minimum sample size the relative statistics are
// meaningless, so every video lands in the average tier with a neutral score
// and the input order is preserved. Otherwise the result is sorted by score,
// best first, with equal scores keeping input order.
func (a *Analyzer) classify(videos []domain.Video, stats map[string]domain.Stats) []domain.Video {
	out := make([]domain.Video, len(videos))
	copy(out, videos)

	if len(out) < a.cfg.Thresholds.MinClassification {
		for i := range out {
			out[i].Classification = domain.TierAverage
			out[i].AlgorithmScore = 50
			out[i].ScoreBreakdown = nil
		}
		return out
	}

	vpmMean, vpmStdev := viewsPerMinuteStats(out)

	scores := make([]float64, len(out))
	for i := range out {
		v := &out[i]
		titleAnalysis := a.titleScorer.Score(v.Title)
		breakdown := a.scoreVideo(*v, titleAnalysis, stats, vpmMean, vpmStdev)

		v.ScoreBreakdown = &breakdown
		v.TitleAnalysis = &titleAnalysis
		v.AlgorithmScore = breakdown.Total
		v.EngagementRate = breakdown.EngagementRateRaw
		v.LikeRatio = breakdown.LikeRatioRaw
		v.CommentRate = breakdown.CommentRateRaw
		scores[i] = breakdown.Total
	}

	meanScore := mean(scores)
	stdevScore := stdev(scores)
	velocityMean := stats["view_velocity"].Mean

	for i := range out {
		v := &out[i]

		z := 0.0
		if stdevScore > 0 {
			z = (v.AlgorithmScore - meanScore) / stdevScore
		}
		v.ZScore = util.RoundTo(z, 2)

		switch {
		case z > 1.5 || (velocityMean > 0 && v.ViewVelocity > velocityMean*3):
			v.Classification = domain.TierViral
			v.AlgorithmStatus = statusViral
		case z > 0.5 || (velocityMean > 0 && v.ViewVelocity > velocityMean*1.5):
			v.Classification = domain.TierHit
			v.AlgorithmStatus = statusHit
		case z >= -0.5:
			v.Classification = domain.TierAverage
			v.AlgorithmStatus = statusAverage
		default:
			v.Classification = domain.TierUnderperform
			v.AlgorithmStatus = statusUnderperform
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AlgorithmScore > out[j].AlgorithmScore
	})

	return out
}
