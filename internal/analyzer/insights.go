package analyzer

import (
	"fmt"
	"sort"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/internal/util"
)

// generateInsights derives the channel health readout: overall grade,
// positive and negative algorithm signals, and the ranked improvement areas.
func (a *Analyzer) generateInsights(videos []domain.Video, stats map[string]domain.Stats) domain.AlgorithmInsights {
	insights := domain.AlgorithmInsights{
		AlgorithmSignals:      []domain.Signal{},
		ImprovementPriorities: []domain.ImprovementPriority{},
	}

	scores := make([]float64, len(videos))
	for i, v := range videos {
		scores[i] = v.AlgorithmScore
	}
	avgScore := mean(scores)
	switch {
	case avgScore >= 70:
		insights.OverallHealth = "우수 - 알고리즘 친화적 채널"
	case avgScore >= 50:
		insights.OverallHealth = "보통 - 개선 여지 있음"
	default:
		insights.OverallHealth = "개선 필요 - 핵심 지표 점검 필요"
	}

	engBench := a.cfg.Benchmarks.EngagementRate
	engAvg := stats["engagement_rate"].Mean
	if engAvg >= engBench.Good {
		insights.AlgorithmSignals = append(insights.AlgorithmSignals, domain.Signal{
			Signal:  "참여율",
			Status:  "positive",
			Message: fmt.Sprintf("참여율 %.2f%%로 우수 (기준: %g%% 이상)", engAvg, engBench.Good),
		})
	} else if engAvg < engBench.Average {
		insights.AlgorithmSignals = append(insights.AlgorithmSignals, domain.Signal{
			Signal:  "참여율",
			Status:  "negative",
			Message: fmt.Sprintf("참여율 %.2f%%로 낮음 (권장: %g%% 이상)", engAvg, engBench.Average),
		})
	}

	likeBench := a.cfg.Benchmarks.LikeRatio
	likeAvg := stats["like_ratio"].Mean
	if likeAvg >= likeBench.Good {
		insights.AlgorithmSignals = append(insights.AlgorithmSignals, domain.Signal{
			Signal:  "만족도(좋아요 비율)",
			Status:  "positive",
			Message: fmt.Sprintf("좋아요 비율 %.2f%%로 높은 만족도 (기준: %g%% 이상)", likeAvg, likeBench.Good),
		})
	} else if likeAvg < likeBench.Average {
		insights.AlgorithmSignals = append(insights.AlgorithmSignals, domain.Signal{
			Signal:  "만족도(좋아요 비율)",
			Status:  "negative",
			Message: fmt.Sprintf("좋아요 비율 %.2f%%로 낮음 - 콘텐츠 품질 점검 필요", likeAvg),
		})
	}

	var priorities []domain.ImprovementPriority
	if engAvg < engBench.Average {
		priorities = append(priorities, domain.ImprovementPriority{
			Priority: 1,
			Area:     "참여율 향상",
			Current:  fmt.Sprintf("%.2f%%", engAvg),
			Target:   fmt.Sprintf("%g%%", engBench.Good),
			Actions:  []string{"영상 끝 CTA 강화", "댓글 질문으로 참여 유도", "커뮤니티 탭 활용"},
		})
	}
	if likeAvg < likeBench.Average {
		priorities = append(priorities, domain.ImprovementPriority{
			Priority: 2,
			Area:     "좋아요 비율 향상",
			Current:  fmt.Sprintf("%.2f%%", likeAvg),
			Target:   fmt.Sprintf("%g%%", likeBench.Good),
			Actions:  []string{"콘텐츠 품질 향상", "시청자 기대 충족", "영상 중간 좋아요 요청"},
		})
	}

	ctrScores := make([]float64, len(videos))
	for i, v := range videos {
		ctrScores[i] = titleScoreOf(v)
	}
	if avgCTR := mean(ctrScores); avgCTR < 60 {
		priorities = append(priorities, domain.ImprovementPriority{
			Priority: 3,
			Area:     "제목 최적화",
			Current:  fmt.Sprintf("%.0f점", avgCTR),
			Target:   "70점 이상",
			Actions:  []string{"호기심 유발 키워드 사용", "숫자 활용", "30-50자 제목 길이 유지"},
		})
	}

	sort.SliceStable(priorities, func(i, j int) bool {
		return priorities[i].Priority < priorities[j].Priority
	})
	insights.ImprovementPriorities = priorities

	insights.BenchmarkComparison = map[string]domain.BenchmarkComparison{
		"engagement_rate": {
			Current:   util.RoundTo(engAvg, 2),
			Benchmark: engBench.Map(),
			Status:    benchmarkStatus(engAvg, engBench),
		},
		"like_ratio": {
			Current:   util.RoundTo(likeAvg, 2),
			Benchmark: likeBench.Map(),
			Status:    benchmarkStatus(likeAvg, likeBench),
		},
	}

	return insights
}
