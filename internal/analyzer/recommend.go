package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
)

// generateRecommendations assembles the prioritized improvement list from the
// upstream analysis blocks. Every suggestion quotes the numbers it came from.
func (a *Analyzer) generateRecommendations(
	success domain.SuccessAnalysis,
	failure domain.FailureAnalysis,
	upload domain.UploadPatterns,
	trends domain.TrendAnalysis,
	insights domain.AlgorithmInsights,
) []domain.Recommendation {
	recommendations := []domain.Recommendation{}

	for i, p := range insights.ImprovementPriorities {
		if i == 3 {
			break
		}
		priority := domain.PriorityHigh
		if p.Priority == 1 {
			priority = domain.PriorityCritical
		}
		recommendations = append(recommendations, domain.Recommendation{
			Category:    fmt.Sprintf("🎯 우선순위 %d: %s", p.Priority, p.Area),
			Priority:    priority,
			Current:     p.Current,
			Target:      p.Target,
			Suggestions: p.Actions,
		})
	}

	if trends.Message == "" {
		if trendRecs := trendRecommendations(trends); len(trendRecs) > 0 {
			recommendations = append(recommendations, domain.Recommendation{
				Category:    "📈 트렌드 분석 기반 개선사항",
				Priority:    domain.PriorityHigh,
				Suggestions: trendRecs,
			})
		}
	}

	if len(success.Patterns) > 0 {
		patterns := success.Patterns
		if len(patterns) > 5 {
			patterns = patterns[:5]
		}
		recommendations = append(recommendations, domain.Recommendation{
			Category:    "✅ 성공 패턴 유지/강화",
			Priority:    domain.PriorityMedium,
			Suggestions: patterns,
		})
	}

	if len(failure.Patterns) > 0 && failure.Message == "" {
		patterns := failure.Patterns
		if len(patterns) > 4 {
			patterns = patterns[:4]
		}
		recommendations = append(recommendations, domain.Recommendation{
			Category:    "⚠️ 개선 필요 영역",
			Priority:    domain.PriorityHigh,
			Suggestions: patterns,
		})
	}

	if failure.ComparisonWithSuccess != nil {
		if compRecs := comparisonRecommendations(failure.ComparisonWithSuccess); len(compRecs) > 0 {
			recommendations = append(recommendations, domain.Recommendation{
				Category:    "🎯 성공영상 벤치마크 기반",
				Priority:    domain.PriorityHigh,
				Suggestions: compRecs,
			})
		}
	}

	if titleRecs := titleRecommendations(success); len(titleRecs) > 0 {
		recommendations = append(recommendations, domain.Recommendation{
			Category:    "📝 제목 최적화 (CTR 향상)",
			Priority:    domain.PriorityMedium,
			Suggestions: titleRecs,
		})
	}

	if upload.Message == "" {
		if uploadRecs := uploadRecommendations(upload); len(uploadRecs) > 0 {
			recommendations = append(recommendations, domain.Recommendation{
				Category:    "🗓️ 업로드 전략",
				Priority:    domain.PriorityMedium,
				Suggestions: uploadRecs,
			})
		}
	}

	return recommendations
}

func trendRecommendations(trends domain.TrendAnalysis) []string {
	recs := []string{}

	if vv := trends.ViewVelocity; vv != nil {
		if vv.Trend == domain.TrendUp {
			recs = append(recs, fmt.Sprintf("✓ 조회 속도 %+.1f%% 성장 - %s", vv.ChangePercent, vv.Interpretation))
		} else if vv.Trend == domain.TrendDown {
			recs = append(recs, fmt.Sprintf("✗ 조회 속도 %.1f%% 하락 - %s", vv.ChangePercent, vv.Interpretation))
		}
	}

	if eng := trends.Engagement; eng != nil {
		if eng.Trend == domain.TrendUp {
			recs = append(recs, fmt.Sprintf("✓ 참여율 %.2f%% (%s)", eng.RecentAvg, eng.BenchmarkStatus))
		} else if eng.Trend == domain.TrendDown {
			recs = append(recs, fmt.Sprintf("✗ 참여율 하락 %.1f%% - CTA 강화 필요", eng.ChangePercent))
		}
	}

	if ctr := trends.TitleCTRScore; ctr != nil && ctr.Trend == domain.TrendDown {
		recs = append(recs, fmt.Sprintf("✗ 제목 CTR 점수 하락 (%.0f → %.0f)", ctr.OlderAvg, ctr.RecentAvg))
	}

	if tl := trends.TitleLength; tl != nil {
		recs = append(recs, fmt.Sprintf("제목 길이: %.0f자 → %.0f자 (%s)", tl.OlderAvg, tl.RecentAvg, tl.OptimalRange))
	}

	if sr := trends.SuccessRate; sr != nil {
		if sr.Trend == domain.TrendUp {
			recs = append(recs, fmt.Sprintf("✓ 성공 영상 비율 개선 (%.0f%% → %.0f%%)", sr.OlderAvg, sr.RecentAvg))
		} else if sr.Trend == domain.TrendDown {
			recs = append(recs, "✗ 성공 영상 비율 하락 - 콘텐츠 방향성 점검 필요")
		}
	}

	return recs
}

func comparisonRecommendations(comp *domain.SuccessFailureComparison) []string {
	recs := []string{}

	if vv := comp.ViewVelocity; vv != nil && vv.Ratio > 2 {
		recs = append(recs, fmt.Sprintf("초기 24시간 노출 전략 강화 필요 (성공영상 대비 %.0f%% 수준)", 100/vv.Ratio))
	}
	if tl := comp.TitleLength; tl != nil && tl.Difference > 5 {
		recs = append(recs, fmt.Sprintf("제목 길이를 %.0f자 수준으로 조정", tl.SuccessAvg))
	}
	if eng := comp.EngagementRate; eng != nil && eng.Difference > 1 {
		recs = append(recs, fmt.Sprintf("참여율 목표: %.2f%% (현재 저조영상: %.2f%%)", eng.SuccessAvg, eng.FailureAvg))
	}
	if ctr := comp.TitleCTRScore; ctr != nil && ctr.Difference > 10 {
		recs = append(recs, fmt.Sprintf("제목 CTR 점수 향상 필요 (성공: %.0f점 vs 실패: %.0f점)", ctr.SuccessAvg, ctr.FailureAvg))
	}

	return recs
}

func titleRecommendations(success domain.SuccessAnalysis) []string {
	recs := []string{}

	if tp := success.TitlePatterns; tp != nil {
		if tp.AvgLength > 0 {
			recs = append(recs, fmt.Sprintf("권장 제목 길이: %d~%d자", tp.AvgLength-5, tp.AvgLength+5))
		}
		total := tp.TotalAnalyzed
		if total == 0 {
			total = 1
		}
		if float64(tp.Patterns.HasNumbers)/float64(total) > 0.3 {
			recs = append(recs, "숫자 활용 권장 - 구체성 강화 (예: 'TOP 5', '3가지 방법')")
		}
	}

	recs = append(recs, "호기심 유발 키워드 사용: '비밀', '진실', '몰랐던', '실제로'")
	recs = append(recs, "가치 제안 키워드 추가: '꿀팁', '핵심', '완벽 가이드'")

	return recs
}

func uploadRecommendations(upload domain.UploadPatterns) []string {
	recs := []string{}

	if upload.AvgUploadIntervalDays > 7 {
		recs = append(recs, fmt.Sprintf("업로드 간격 단축 권장 (현재 %.1f일 → 주 1~2회)", upload.AvgUploadIntervalDays))
	} else if upload.AvgUploadIntervalDays < 2 {
		recs = append(recs, fmt.Sprintf("현재 업로드 빈도 (%.1f일) 유지 - 꾸준함이 핵심", upload.AvgUploadIntervalDays))
	}

	if len(upload.WeekdayDistribution) > 0 {
		type dayCount struct {
			day   string
			count int
		}
		days := make([]dayCount, 0, len(upload.WeekdayDistribution))
		for d, c := range upload.WeekdayDistribution {
			days = append(days, dayCount{d, c})
		}
		sort.Slice(days, func(i, j int) bool {
			if days[i].count != days[j].count {
				return days[i].count > days[j].count
			}
			return days[i].day < days[j].day
		})
		if len(days) > 2 {
			days = days[:2]
		}

		names := map[string]string{
			"Monday": "월", "Tuesday": "화", "Wednesday": "수",
			"Thursday": "목", "Friday": "금", "Saturday": "토", "Sunday": "일",
		}
		labels := make([]string, len(days))
		for i, d := range days {
			if kr, ok := names[d.day]; ok {
				labels[i] = kr
			} else {
				labels[i] = d.day
			}
		}
		recs = append(recs, fmt.Sprintf("주요 업로드 요일: %s요일 - 일관성 유지", strings.Join(labels, ", ")))
	}

	return recs
}
