package analyzer

import (
	"math"
	"sort"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/internal/util"
)

const (
	msgTrendInsufficient  = "트렌드 분석을 위한 영상이 부족합니다 (최소 10개 필요)"
	msgGrowthInsufficient = "추세 분석을 위한 영상이 부족합니다"
)

// sortedByPublished returns a copy sorted newest first. Publish timestamps
// are RFC 3339 strings, so lexicographic order is chronological order.
func sortedByPublished(videos []domain.Video) []domain.Video {
	out := make([]domain.Video, len(videos))
	copy(out, videos)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt > out[j].PublishedAt
	})
	return out
}

func pctTrend(changePercent float64) string {
	switch {
	case changePercent > 10:
		return domain.TrendUp
	case changePercent < -10:
		return domain.TrendDown
	default:
		return domain.TrendFlat
	}
}

func pointTrend(change, threshold float64) string {
	switch {
	case change > threshold:
		return domain.TrendUp
	case change < -threshold:
		return domain.TrendDown
	default:
		return domain.TrendFlat
	}
}

// analyzeTrends compares the recent half of uploads against the older half.
// With an odd count the extra video goes to the recent half, so the freshest
// data carries at least equal weight.
func (a *Analyzer) analyzeTrends(videos []domain.Video) domain.TrendAnalysis {
	if len(videos) < a.cfg.Thresholds.MinTrend {
		return domain.TrendAnalysis{Message: msgTrendInsufficient}
	}

	sorted := sortedByPublished(videos)
	mid := (len(sorted) + 1) / 2
	recent := sorted[:mid]
	older := sorted[mid:]

	trends := domain.TrendAnalysis{}

	velocities := func(vs []domain.Video) []float64 {
		out := make([]float64, len(vs))
		for i, v := range vs {
			out[i] = v.ViewVelocity
		}
		return out
	}
	recentVV := mean(velocities(recent))
	olderVV := mean(velocities(older))
	vvChange := util.SafePercent(recentVV, olderVV)
	trends.ViewVelocity = &domain.TrendMetric{
		RecentAvg:      util.Round1(recentVV),
		OlderAvg:       util.Round1(olderVV),
		ChangePercent:  util.Round1(vvChange),
		Trend:          pctTrend(vvChange),
		Interpretation: interpretVelocityTrend(vvChange),
	}

	viewAvg := func(vs []domain.Video) float64 {
		sum := 0.0
		for _, v := range vs {
			sum += float64(v.ViewCount)
		}
		return sum / float64(len(vs))
	}
	recentViews := viewAvg(recent)
	olderViews := viewAvg(older)
	viewsChange := util.SafePercent(recentViews, olderViews)
	trends.Views = &domain.TrendMetric{
		RecentAvg:     math.Round(recentViews),
		OlderAvg:      math.Round(olderViews),
		ChangePercent: util.Round1(viewsChange),
		Trend:         pctTrend(viewsChange),
	}

	engagementAvg := func(vs []domain.Video) float64 {
		var rates []float64
		for _, v := range vs {
			if v.ViewCount > 0 {
				rates = append(rates, float64(v.LikeCount+v.CommentCount)/float64(v.ViewCount)*100)
			}
		}
		return mean(rates)
	}
	recentEng := engagementAvg(recent)
	olderEng := engagementAvg(older)
	engChange := util.SafePercent(recentEng, olderEng)
	trends.Engagement = &domain.TrendMetric{
		RecentAvg:       util.Round3(recentEng),
		OlderAvg:        util.Round3(olderEng),
		ChangePercent:   util.Round1(engChange),
		Trend:           pctTrend(engChange),
		BenchmarkStatus: benchmarkStatus(recentEng, a.cfg.Benchmarks.EngagementRate),
	}

	likeRatioAvg := func(vs []domain.Video) float64 {
		var ratios []float64
		for _, v := range vs {
			if v.ViewCount > 0 {
				ratios = append(ratios, float64(v.LikeCount)/float64(v.ViewCount)*100)
			}
		}
		return mean(ratios)
	}
	recentLike := likeRatioAvg(recent)
	olderLike := likeRatioAvg(older)
	likeChange := util.SafePercent(recentLike, olderLike)
	trends.LikeRatio = &domain.TrendMetric{
		RecentAvg:       util.Round3(recentLike),
		OlderAvg:        util.Round3(olderLike),
		ChangePercent:   util.Round1(likeChange),
		Trend:           pctTrend(likeChange),
		BenchmarkStatus: benchmarkStatus(recentLike, a.cfg.Benchmarks.LikeRatio),
	}

	titleLenAvg := func(vs []domain.Video) float64 {
		lengths := make([]float64, len(vs))
		for i, v := range vs {
			lengths[i] = float64(util.RuneLen(v.Title))
		}
		return mean(lengths)
	}
	recentTitleLen := titleLenAvg(recent)
	olderTitleLen := titleLenAvg(older)
	titleChange := recentTitleLen - olderTitleLen
	trends.TitleLength = &domain.TrendMetric{
		RecentAvg:    util.Round1(recentTitleLen),
		OlderAvg:     util.Round1(olderTitleLen),
		Change:       util.Round1(titleChange),
		Trend:        pointTrend(titleChange, 3),
		OptimalRange: "30-50자 권장",
	}

	ctrAvg := func(vs []domain.Video) float64 {
		scores := make([]float64, len(vs))
		for i, v := range vs {
			scores[i] = a.titleScorer.Score(v.Title).Score
		}
		return mean(scores)
	}
	recentCTR := ctrAvg(recent)
	olderCTR := ctrAvg(older)
	ctrChange := recentCTR - olderCTR
	trends.TitleCTRScore = &domain.TrendMetric{
		RecentAvg: util.Round1(recentCTR),
		OlderAvg:  util.Round1(olderCTR),
		Change:    util.Round1(ctrChange),
		Trend:     pointTrend(ctrChange, 5),
	}

	commentAvg := func(vs []domain.Video) float64 {
		sum := 0.0
		for _, v := range vs {
			sum += float64(v.CommentCount)
		}
		return sum / float64(len(vs))
	}
	recentComments := commentAvg(recent)
	olderComments := commentAvg(older)
	commentChange := util.SafePercent(recentComments, olderComments)
	trends.Comments = &domain.TrendMetric{
		RecentAvg:     util.Round1(recentComments),
		OlderAvg:      util.Round1(olderComments),
		ChangePercent: util.Round1(commentChange),
		Trend:         pctTrend(commentChange),
	}

	successRate := func(vs []domain.Video) float64 {
		count := 0
		for _, v := range vs {
			if v.Classification == domain.TierViral || v.Classification == domain.TierHit {
				count++
			}
		}
		return float64(count) / float64(len(vs)) * 100
	}
	recentSuccess := successRate(recent)
	olderSuccess := successRate(older)
	trends.SuccessRate = &domain.TrendMetric{
		RecentAvg: util.Round1(recentSuccess),
		OlderAvg:  util.Round1(olderSuccess),
		Change:    util.Round1(recentSuccess - olderSuccess),
		Trend:     pointTrend(recentSuccess-olderSuccess, 5),
	}

	return trends
}

func interpretVelocityTrend(changePercent float64) string {
	switch {
	case changePercent > 30:
		return "급성장 중! 알고리즘 추천 가능성 높아지고 있음"
	case changePercent > 10:
		return "성장세 - 현재 전략 유지 권장"
	case changePercent > -10:
		return "안정적 유지 중"
	case changePercent > -30:
		return "하락세 - 콘텐츠/썸네일 점검 필요"
	default:
		return "급하락 - 즉각적인 전략 수정 필요"
	}
}

// analyzeGrowthTrends compares the newest uploads against the oldest ones,
// up to ten videos per side.
func (a *Analyzer) analyzeGrowthTrends(videos []domain.Video) domain.GrowthTrends {
	if len(videos) < a.cfg.Thresholds.MinGrowth {
		return domain.GrowthTrends{Message: msgGrowthInsufficient}
	}

	sorted := sortedByPublished(videos)
	recentCount := util.Min(10, len(sorted)/2)
	recent := sorted[:recentCount]
	older := sorted[len(sorted)-recentCount:]

	avgViews := func(vs []domain.Video) float64 {
		sum := 0.0
		for _, v := range vs {
			sum += float64(v.ViewCount)
		}
		return sum / float64(len(vs))
	}
	avgVelocity := func(vs []domain.Video) float64 {
		sum := 0.0
		for _, v := range vs {
			sum += v.ViewVelocity
		}
		return sum / float64(len(vs))
	}

	recentAvg := avgViews(recent)
	olderAvg := avgViews(older)
	growthRate := util.SafePercent(recentAvg, olderAvg)

	recentVV := avgVelocity(recent)
	olderVV := avgVelocity(older)
	vvGrowth := util.SafePercent(recentVV, olderVV)

	trend := "유지"
	if growthRate > 10 {
		trend = "성장세"
	} else if growthRate <= -10 {
		trend = "하락세"
	}

	velocityTrend := "유지"
	if vvGrowth > 10 {
		velocityTrend = "가속화"
	} else if vvGrowth <= -10 {
		velocityTrend = "둔화"
	}

	return domain.GrowthTrends{
		RecentAvgViews:        int64(math.Round(recentAvg)),
		OlderAvgViews:         int64(math.Round(olderAvg)),
		GrowthRatePercent:     util.Round1(growthRate),
		RecentAvgVelocity:     util.Round1(recentVV),
		OlderAvgVelocity:      util.Round1(olderVV),
		VelocityGrowthPercent: util.Round1(vvGrowth),
		Trend:                 trend,
		VelocityTrend:         velocityTrend,
		VideosCompared:        recentCount * 2,
	}
}
