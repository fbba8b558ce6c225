package analyzer

import (
	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/internal/util"
)

// scoreVideo computes the six sub-scores and the weighted total for one video.
// The velocity and duration sub-scores are relative to the channel population;
// the rate sub-scores come from the external benchmark buckets. A video with
// zero views scores 0 on every rate, not the neutral 50.
func (a *Analyzer) scoreVideo(v domain.Video, titleAnalysis domain.TitleAnalysis, stats map[string]domain.Stats, vpmMean, vpmStdev float64) domain.ScoreBreakdown {
	var b domain.ScoreBreakdown

	views := float64(v.ViewCount)
	likes := float64(v.LikeCount)
	comments := float64(v.CommentCount)

	vvStats := stats["view_velocity"]
	if vvStats.Stdev > 0 {
		z := (v.ViewVelocity - vvStats.Mean) / vvStats.Stdev
		b.ViewVelocity = util.Clamp(50+z*20, 0, 100)
	} else {
		b.ViewVelocity = 50
	}
	b.ViewVelocityRaw = v.ViewVelocity

	if views > 0 {
		engagement := (likes + comments) / views * 100
		b.EngagementRateRaw = util.Round3(engagement)
		b.EngagementRate = bucketScore(engagement, a.cfg.Benchmarks.EngagementRate)

		likeRatio := likes / views * 100
		b.LikeRatioRaw = util.Round3(likeRatio)
		b.LikeRatio = bucketScore(likeRatio, a.cfg.Benchmarks.LikeRatio)

		commentRate := comments / views * 100
		b.CommentRateRaw = util.Round3(commentRate)
		b.CommentRate = bucketScore(commentRate, a.cfg.Benchmarks.CommentRate)
	}

	b.TitleCTRScore = titleAnalysis.Score

	seconds := durationToSeconds(v.Duration)
	if seconds > 0 && views > 0 {
		vpm := views / (float64(seconds) / 60)
		if vpmStdev > 0 {
			z := (vpm - vpmMean) / vpmStdev
			b.DurationEfficiency = util.Clamp(50+z*15, 0, 100)
		} else {
			b.DurationEfficiency = 50
		}
		b.ViewsPerMinute = util.Round1(vpm)
	} else {
		b.DurationEfficiency = 50
	}

	w := a.cfg.Weights
	total := b.ViewVelocity*w.ViewVelocity +
		b.EngagementRate*w.EngagementRate +
		b.LikeRatio*w.LikeRatio +
		b.CommentRate*w.CommentRate +
		b.TitleCTRScore*w.TitleCTRScore +
		b.DurationEfficiency*w.DurationEfficiency
	b.Total = util.Round1(total)

	return b
}
