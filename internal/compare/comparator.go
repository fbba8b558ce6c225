package compare

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/internal/util"
)

// ErrNoCompetitors is returned when Compare is called without competitors.
var ErrNoCompetitors = errors.New("비교할 경쟁사가 없습니다")

// Comparator ranks one channel against its competitors using their analysis
// results. It only reads the results; digests copy everything they need.
type Comparator struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Comparator {
	return &Comparator{logger: logger}
}

// Compare builds the full competitive report for the main channel.
func (c *Comparator) Compare(main *domain.AnalysisResult, competitors []*domain.AnalysisResult) (*domain.ComparisonResult, error) {
	if len(competitors) == 0 {
		return nil, ErrNoCompetitors
	}

	mainDigest := digest(main)
	compDigests := make([]domain.ChannelDigest, len(competitors))
	for i, comp := range competitors {
		compDigests[i] = digest(comp)
	}

	c.logger.Info("Comparing channels",
		zap.String("main", mainDigest.ChannelName),
		zap.Int("competitors", len(compDigests)),
	)

	return &domain.ComparisonResult{
		MainChannel:               mainDigest,
		Competitors:               compDigests,
		MetricsComparison:         compareMetrics(mainDigest, compDigests),
		RankingAnalysis:           analyzeRankings(mainDigest, compDigests),
		ContentStrategyComparison: compareStrategies(mainDigest, compDigests),
		PerformanceGapAnalysis:    analyzeGaps(mainDigest, compDigests),
		StrengthsWeaknesses:       analyzeStrengthsWeaknesses(mainDigest, compDigests),
		MarketPosition:            analyzeMarketPosition(mainDigest, compDigests),
		CompetitiveInsights:       generateInsights(mainDigest, compDigests),
		Recommendations:           generateRecommendations(mainDigest, compDigests),
	}, nil
}

// digest flattens one analysis result into the comparison row shape.
func digest(analysis *domain.AnalysisResult) domain.ChannelDigest {
	summary := analysis.ChannelSummary

	tierCount := func(tier domain.Tier) int {
		if ts := analysis.ClassificationStats[tier]; ts != nil {
			return ts.Count
		}
		return 0
	}
	viral := tierCount(domain.TierViral)
	hit := tierCount(domain.TierHit)
	average := tierCount(domain.TierAverage)
	under := tierCount(domain.TierUnderperform)
	total := viral + hit + average + under

	rate := func(count int) float64 {
		if total == 0 {
			return 0
		}
		return util.Round1(float64(count) / float64(total) * 100)
	}

	var topViews int64
	for _, tier := range []domain.Tier{domain.TierViral, domain.TierHit} {
		if ts := analysis.ClassificationStats[tier]; ts != nil {
			for _, v := range ts.Videos {
				if v.ViewCount > topViews {
					topViews = v.ViewCount
				}
			}
		}
	}

	patterns := analysis.SuccessAnalysis.Patterns
	if len(patterns) > 3 {
		patterns = patterns[:3]
	}

	return domain.ChannelDigest{
		ChannelName:       summary.ChannelName,
		ChannelID:         summary.ChannelID,
		SubscriberCount:   summary.SubscriberCount,
		AvgViews:          summary.AvgViewsPerVideo,
		AvgVelocity:       summary.AvgViewVelocity,
		AvgEngagement:     summary.AvgEngagementRate,
		AvgLikeRatio:      summary.AvgLikeRatio,
		TotalVideos:       total,
		ViralCount:        viral,
		HitCount:          hit,
		AverageCount:      average,
		UnderperformCount: under,
		ViralRate:         rate(viral),
		HitRate:           rate(hit),
		SuccessRate:       rate(viral + hit),
		TopVideoViews:     topViews,
		SuccessPatterns:   patterns,
	}
}

func compareMetrics(main domain.ChannelDigest, competitors []domain.ChannelDigest) domain.MetricsComparison {
	ratio := func(a, b float64) float64 {
		if b <= 0 {
			return 0
		}
		return util.Round1(a / b * 100)
	}

	comparisons := make([]domain.ChannelComparison, len(competitors))
	summary := domain.MetricsComparisonSummary{TotalCompared: len(competitors)}

	for i, comp := range competitors {
		row := domain.ChannelComparison{
			ChannelName:     comp.ChannelName,
			SubscriberCount: comp.SubscriberCount,
			SubscriberDiff:  main.SubscriberCount - comp.SubscriberCount,
			SubscriberRatio: ratio(float64(main.SubscriberCount), float64(comp.SubscriberCount)),
			AvgViews:        comp.AvgViews,
			ViewsDiff:       main.AvgViews - comp.AvgViews,
			ViewsRatio:      ratio(float64(main.AvgViews), float64(comp.AvgViews)),
			AvgVelocity:     comp.AvgVelocity,
			VelocityDiff:    util.Round1(main.AvgVelocity - comp.AvgVelocity),
			VelocityRatio:   ratio(main.AvgVelocity, comp.AvgVelocity),
			AvgEngagement:   comp.AvgEngagement,
			EngagementDiff:  util.Round3(main.AvgEngagement - comp.AvgEngagement),
			ViralRate:       comp.ViralRate,
			SuccessRate:     comp.SuccessRate,
			SuccessRateDiff: util.Round1(main.SuccessRate - comp.SuccessRate),
		}
		comparisons[i] = row

		if row.ViewsDiff > 0 {
			summary.BetterInViews++
		}
		if row.EngagementDiff > 0 {
			summary.BetterInEngagement++
		}
		if main.ViralRate > comp.ViralRate {
			summary.BetterInViral++
		}
	}

	return domain.MetricsComparison{
		MainChannel: main,
		Comparisons: comparisons,
		Summary:     summary,
	}
}

// rankedMetric names one comparable metric and how to read it off a digest.
type rankedMetric struct {
	key   string
	name  string
	value func(domain.ChannelDigest) float64
}

func comparisonMetrics() []rankedMetric {
	return []rankedMetric{
		{"subscriber_count", "구독자 수", func(d domain.ChannelDigest) float64 { return float64(d.SubscriberCount) }},
		{"avg_views", "평균 조회수", func(d domain.ChannelDigest) float64 { return float64(d.AvgViews) }},
		{"avg_engagement", "참여율", func(d domain.ChannelDigest) float64 { return d.AvgEngagement }},
		{"avg_velocity", "조회 속도", func(d domain.ChannelDigest) float64 { return d.AvgVelocity }},
		{"viral_rate", "바이럴 비율", func(d domain.ChannelDigest) float64 { return d.ViralRate }},
		{"success_rate", "성공률", func(d domain.ChannelDigest) float64 { return d.SuccessRate }},
	}
}

// analyzeRankings positions the main channel per metric. The sort is stable
// with the main channel listed first, so on a tie the main channel wins the
// higher rank.
func analyzeRankings(main domain.ChannelDigest, competitors []domain.ChannelDigest) map[string]domain.Ranking {
	all := append([]domain.ChannelDigest{main}, competitors...)
	rankings := make(map[string]domain.Ranking)

	for _, metric := range comparisonMetrics() {
		sorted := make([]domain.ChannelDigest, len(all))
		copy(sorted, all)
		sort.SliceStable(sorted, func(i, j int) bool {
			return metric.value(sorted[i]) > metric.value(sorted[j])
		})

		rank := 1
		for i, d := range sorted {
			if d.ChannelName == main.ChannelName {
				rank = i + 1
				break
			}
		}
		top := sorted[0]

		gapToTop := 0.0
		if rank > 1 {
			gapToTop = util.RoundTo(metric.value(top)-metric.value(main), 2)
		}

		rankings[metric.key] = domain.Ranking{
			Name:       metric.name,
			Rank:       rank,
			Total:      len(all),
			Value:      metric.value(main),
			TopValue:   metric.value(top),
			TopChannel: top.ChannelName,
			IsTop:      rank == 1,
			GapToTop:   gapToTop,
		}
	}

	return rankings
}

// classifyStrategy labels a channel's content strategy from its digest.
func classifyStrategy(d domain.ChannelDigest) string {
	switch {
	case d.ViralRate >= 20:
		return domain.StrategyViral
	case d.AvgEngagement >= 8:
		return domain.StrategyFandom
	case d.AvgVelocity > 1000:
		return domain.StrategyTraffic
	default:
		return domain.StrategyBalanced
	}
}

func compareStrategies(main domain.ChannelDigest, competitors []domain.ChannelDigest) domain.StrategyComparison {
	strategies := make([]domain.ChannelStrategy, len(competitors))
	distribution := map[string]int{
		domain.StrategyViral:    0,
		domain.StrategyFandom:   0,
		domain.StrategyTraffic:  0,
		domain.StrategyBalanced: 0,
	}

	for i, comp := range competitors {
		strategy := classifyStrategy(comp)
		strategies[i] = domain.ChannelStrategy{
			ChannelName: comp.ChannelName,
			Strategy:    strategy,
			ViralRate:   comp.ViralRate,
			Engagement:  comp.AvgEngagement,
		}
		distribution[strategy]++
	}

	return domain.StrategyComparison{
		MainStrategy:         classifyStrategy(main),
		CompetitorStrategies: strategies,
		StrategyDistribution: distribution,
	}
}

func avgField(competitors []domain.ChannelDigest, f func(domain.ChannelDigest) float64) float64 {
	if len(competitors) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range competitors {
		sum += f(c)
	}
	return sum / float64(len(competitors))
}

func maxBy(competitors []domain.ChannelDigest, f func(domain.ChannelDigest) float64) domain.ChannelDigest {
	best := competitors[0]
	for _, c := range competitors[1:] {
		if f(c) > f(best) {
			best = c
		}
	}
	return best
}

func analyzeGaps(main domain.ChannelDigest, competitors []domain.ChannelDigest) domain.PerformanceGaps {
	avgSubs := avgField(competitors, func(d domain.ChannelDigest) float64 { return float64(d.SubscriberCount) })
	avgViews := avgField(competitors, func(d domain.ChannelDigest) float64 { return float64(d.AvgViews) })
	avgEngagement := avgField(competitors, func(d domain.ChannelDigest) float64 { return d.AvgEngagement })
	avgViralRate := avgField(competitors, func(d domain.ChannelDigest) float64 { return d.ViralRate })

	bestSubs := maxBy(competitors, func(d domain.ChannelDigest) float64 { return float64(d.SubscriberCount) })
	bestViews := maxBy(competitors, func(d domain.ChannelDigest) float64 { return float64(d.AvgViews) })
	bestEngagement := maxBy(competitors, func(d domain.ChannelDigest) float64 { return d.AvgEngagement })
	bestViral := maxBy(competitors, func(d domain.ChannelDigest) float64 { return d.ViralRate })

	return domain.PerformanceGaps{
		VsAverage: domain.GapsToAverage{
			SubscriberGap:    float64(main.SubscriberCount) - avgSubs,
			SubscriberGapPct: util.Round1(util.SafePercent(float64(main.SubscriberCount), avgSubs)),
			ViewsGap:         float64(main.AvgViews) - avgViews,
			ViewsGapPct:      util.Round1(util.SafePercent(float64(main.AvgViews), avgViews)),
			EngagementGap:    util.RoundTo(main.AvgEngagement-avgEngagement, 2),
			ViralRateGap:     util.Round1(main.ViralRate - avgViralRate),
		},
		VsBest: domain.GapsToBest{
			BestSubscriberChannel: bestSubs.ChannelName,
			SubscriberGapToBest:   main.SubscriberCount - bestSubs.SubscriberCount,
			BestViewsChannel:      bestViews.ChannelName,
			ViewsGapToBest:        main.AvgViews - bestViews.AvgViews,
			BestEngagementChannel: bestEngagement.ChannelName,
			EngagementGapToBest:   util.RoundTo(main.AvgEngagement-bestEngagement.AvgEngagement, 2),
			BestViralChannel:      bestViral.ChannelName,
			ViralGapToBest:        util.Round1(main.ViralRate - bestViral.ViralRate),
		},
		CompetitiveAdvantages: identifyAdvantages(main, competitors),
	}
}

func identifyAdvantages(main domain.ChannelDigest, competitors []domain.ChannelDigest) []string {
	advantages := []string{}

	for _, comp := range competitors {
		if float64(main.AvgViews) > float64(comp.AvgViews)*1.2 && comp.AvgViews > 0 {
			pct := math.Round((float64(main.AvgViews)/float64(comp.AvgViews) - 1) * 100)
			advantages = append(advantages, fmt.Sprintf("%s 대비 조회수 우위 (+%.0f%%)", comp.ChannelName, pct))
		}
		if main.AvgEngagement > comp.AvgEngagement*1.2 {
			advantages = append(advantages, fmt.Sprintf("%s 대비 참여율 우위", comp.ChannelName))
		}
		if main.ViralRate > comp.ViralRate+5 {
			advantages = append(advantages, fmt.Sprintf("%s 대비 바이럴 성공률 우위", comp.ChannelName))
		}
	}

	if len(advantages) > 5 {
		advantages = advantages[:5]
	}
	return advantages
}

// formatGap renders a metric gap in a compact human unit.
func formatGap(gap float64, key string) string {
	switch key {
	case "avg_engagement", "viral_rate", "success_rate":
		return fmt.Sprintf("%.1f%%p", math.Abs(gap))
	}
	abs := math.Abs(gap)
	switch {
	case abs >= 1000000:
		return fmt.Sprintf("%.1fM", gap/1000000)
	case abs >= 1000:
		return fmt.Sprintf("%.1fK", gap/1000)
	default:
		return fmt.Sprintf("%d", int(gap))
	}
}

// analyzeStrengthsWeaknesses grades every metric by the gap to the per-metric
// leader. Within 10% of first place still counts as a strength; beyond 30%
// counts as a severe weakness.
func analyzeStrengthsWeaknesses(main domain.ChannelDigest, competitors []domain.ChannelDigest) domain.StrengthsWeaknesses {
	all := append([]domain.ChannelDigest{main}, competitors...)
	total := len(all)

	strengths := []string{}
	weaknesses := []string{}
	severeCount := 0

	for _, metric := range comparisonMetrics() {
		sorted := make([]domain.ChannelDigest, len(all))
		copy(sorted, all)
		sort.SliceStable(sorted, func(i, j int) bool {
			return metric.value(sorted[i]) > metric.value(sorted[j])
		})

		rank := 1
		for i, d := range sorted {
			if d.ChannelName == main.ChannelName {
				rank = i + 1
				break
			}
		}

		myValue := metric.value(main)
		topValue := metric.value(sorted[0])

		gapRatio := 0.0
		if topValue > 0 && myValue > 0 {
			gapRatio = (topValue - myValue) / topValue * 100
		}
		gapAbs := topValue - myValue

		switch {
		case rank == 1:
			strengths = append(strengths, fmt.Sprintf("🥇 %s 1위 (전체 %d개 채널 중)", metric.name, total))
		case gapRatio <= 10:
			strengths = append(strengths, fmt.Sprintf("🥈 %s %d위 - 1위와 근소한 차이 (%s)", metric.name, rank, formatGap(gapAbs, metric.key)))
		case gapRatio <= 30:
			weaknesses = append(weaknesses, fmt.Sprintf("📈 %s %d위 - 개선 여지 있음 (1위 대비 -%.0f%%, %s 차이)", metric.name, rank, gapRatio, formatGap(gapAbs, metric.key)))
		default:
			weaknesses = append(weaknesses, fmt.Sprintf("⚠️ %s %d위 - 개선 필요! (1위 대비 -%.0f%%, %s 뒤처짐)", metric.name, rank, gapRatio, formatGap(gapAbs, metric.key)))
			severeCount++
		}
	}

	return domain.StrengthsWeaknesses{
		Strengths:     strengths,
		Weaknesses:    weaknesses,
		StrengthCount: len(strengths),
		WeaknessCount: severeCount,
	}
}

var positionLabels = map[string]string{
	domain.PositionDominant:   "압도적 선두",
	domain.PositionLeader:     "시장 선도자",
	domain.PositionChallenger: "도전자",
	domain.PositionFollower:   "추격자",
}

var positionInterpretations = map[string]string{
	domain.PositionDominant:   "경쟁사 대비 압도적인 우위에 있습니다. 현재 전략을 유지하며 시장 지배력을 강화하세요.",
	domain.PositionLeader:     "시장 선도 위치에 있습니다. 경쟁사의 추격에 대비하고 차별화 포인트를 강화하세요.",
	domain.PositionChallenger: "경쟁력 있는 도전자 위치입니다. 특정 영역에서 차별화하여 선두권 진입을 노리세요.",
	domain.PositionFollower:   "시장 추격자 위치입니다. 경쟁사 대비 개선이 필요한 영역에 집중 투자하세요.",
}

func analyzeMarketPosition(main domain.ChannelDigest, competitors []domain.ChannelDigest) domain.MarketPosition {
	avgSubs := avgField(competitors, func(d domain.ChannelDigest) float64 { return float64(d.SubscriberCount) })
	avgViews := avgField(competitors, func(d domain.ChannelDigest) float64 { return float64(d.AvgViews) })
	avgVelocity := avgField(competitors, func(d domain.ChannelDigest) float64 { return d.AvgVelocity })
	avgEngagement := avgField(competitors, func(d domain.ChannelDigest) float64 { return d.AvgEngagement })

	relScore := func(mine, avg float64) float64 {
		if avg <= 0 {
			return 50
		}
		return math.Min(100, mine/avg*50)
	}

	scores := map[string]float64{
		"subscriber_score": util.Round1(relScore(float64(main.SubscriberCount), avgSubs)),
		"views_score":      util.Round1(relScore(float64(main.AvgViews), avgViews)),
		"engagement_score": util.Round1(relScore(main.AvgEngagement, avgEngagement)),
		"viral_score":      util.Round1(math.Min(100, main.ViralRate*5)),
	}

	overall := (scores["subscriber_score"] + scores["views_score"] + scores["engagement_score"] + scores["viral_score"]) / 4

	position := domain.PositionFollower
	switch {
	case overall >= 80:
		position = domain.PositionDominant
	case overall >= 60:
		position = domain.PositionLeader
	case overall >= 40:
		position = domain.PositionChallenger
	}

	vsAvg := func(mine, avg float64) float64 {
		if avg <= 0 {
			return 0
		}
		return util.Round1(mine / avg * 100)
	}

	return domain.MarketPosition{
		Position:        position,
		PositionLabel:   positionLabels[position],
		OverallScore:    util.Round1(overall),
		Scores:          scores,
		SubscriberVsAvg: vsAvg(float64(main.SubscriberCount), avgSubs),
		ViewsVsAvg:      vsAvg(float64(main.AvgViews), avgViews),
		VelocityVsAvg:   vsAvg(main.AvgVelocity, avgVelocity),
		EngagementVsAvg: vsAvg(main.AvgEngagement, avgEngagement),
		Interpretation:  positionInterpretations[position],
	}
}

func generateInsights(main domain.ChannelDigest, competitors []domain.ChannelDigest) []domain.CompetitiveInsight {
	insights := []domain.CompetitiveInsight{}

	avgViews := avgField(competitors, func(d domain.ChannelDigest) float64 { return float64(d.AvgViews) })
	if avgViews > 0 {
		mainViews := float64(main.AvgViews)
		if mainViews > avgViews*1.5 {
			insights = append(insights, domain.CompetitiveInsight{
				Type:   "positive",
				Title:  "조회수 경쟁력 우수",
				Detail: fmt.Sprintf("경쟁사 평균 대비 %.0f%% 높은 조회수를 기록하고 있습니다.", math.Round(mainViews/avgViews*100-100)),
			})
		} else if mainViews < avgViews*0.7 {
			insights = append(insights, domain.CompetitiveInsight{
				Type:   "negative",
				Title:  "조회수 개선 필요",
				Detail: fmt.Sprintf("경쟁사 평균 대비 %.0f%% 낮은 조회수입니다. 썸네일/제목 최적화가 필요합니다.", math.Round(100-mainViews/avgViews*100)),
			})
		}
	}

	avgViral := avgField(competitors, func(d domain.ChannelDigest) float64 { return d.ViralRate })
	if main.ViralRate > avgViral+10 {
		insights = append(insights, domain.CompetitiveInsight{
			Type:   "positive",
			Title:  "바이럴 콘텐츠 강점",
			Detail: fmt.Sprintf("바이럴 비율 %.1f%%로 경쟁사 평균(%.1f%%) 대비 높습니다.", main.ViralRate, avgViral),
		})
	} else if main.ViralRate < avgViral-5 {
		insights = append(insights, domain.CompetitiveInsight{
			Type:   "negative",
			Title:  "바이럴 콘텐츠 부족",
			Detail: "바이럴 비율이 경쟁사 평균보다 낮습니다. 트렌드 콘텐츠 비중을 높이세요.",
		})
	}

	avgEngagement := avgField(competitors, func(d domain.ChannelDigest) float64 { return d.AvgEngagement })
	if main.AvgEngagement > avgEngagement*1.3 {
		insights = append(insights, domain.CompetitiveInsight{
			Type:   "positive",
			Title:  "높은 팬 충성도",
			Detail: fmt.Sprintf("참여율 %.2f%%로 충성 팬층이 두텁습니다.", main.AvgEngagement),
		})
	}

	avgSuccess := avgField(competitors, func(d domain.ChannelDigest) float64 { return d.SuccessRate })
	if main.SuccessRate > avgSuccess+15 {
		insights = append(insights, domain.CompetitiveInsight{
			Type:   "positive",
			Title:  "콘텐츠 성공률 높음",
			Detail: fmt.Sprintf("히트 이상 콘텐츠 비율 %.1f%%로 콘텐츠 기획력이 우수합니다.", main.SuccessRate),
		})
	} else if main.SuccessRate < avgSuccess-10 {
		insights = append(insights, domain.CompetitiveInsight{
			Type:   "negative",
			Title:  "콘텐츠 성공률 개선 필요",
			Detail: fmt.Sprintf("히트 이상 콘텐츠 비율이 %.1f%%로 낮습니다. 콘텐츠 기획 전략 재검토가 필요합니다.", main.SuccessRate),
		})
	}

	return insights
}
