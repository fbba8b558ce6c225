package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
)

func thousands(v float64) string {
	return fmt.Sprintf("%.1fK", v/1000)
}

func gapLabel(gap int64) string {
	if gap >= 1000 {
		return thousands(float64(gap))
	}
	return fmt.Sprintf("%d", gap)
}

func nonZero(v int64) float64 {
	if v < 1 {
		return 1
	}
	return float64(v)
}

// generateRecommendations builds the competitive action list. Every item
// quotes the actual gap to the relevant per-metric leader.
func generateRecommendations(main domain.ChannelDigest, competitors []domain.ChannelDigest) []domain.Recommendation {
	recommendations := []domain.Recommendation{}
	if len(competitors) == 0 {
		return recommendations
	}

	bestSubs := maxBy(competitors, func(d domain.ChannelDigest) float64 { return float64(d.SubscriberCount) })
	bestViews := maxBy(competitors, func(d domain.ChannelDigest) float64 { return float64(d.AvgViews) })
	bestEngagement := maxBy(competitors, func(d domain.ChannelDigest) float64 { return d.AvgEngagement })
	bestViral := maxBy(competitors, func(d domain.ChannelDigest) float64 { return d.ViralRate })
	bestVelocity := maxBy(competitors, func(d domain.ChannelDigest) float64 { return d.AvgVelocity })

	avgLikeRatio := avgField(competitors, func(d domain.ChannelDigest) float64 { return d.AvgLikeRatio })

	subsGap := bestSubs.SubscriberCount - main.SubscriberCount
	if subsGap > 0 {
		growthRate := nonZero(main.SubscriberCount) / nonZero(bestSubs.SubscriberCount) * 100
		priority := domain.PriorityHigh
		if growthRate < 50 {
			priority = domain.PriorityCritical
		}
		recommendations = append(recommendations, domain.Recommendation{
			Category: fmt.Sprintf("📈 구독자 성장 전략 (현재 %s → 목표 %s)",
				thousands(float64(main.SubscriberCount)), thousands(float64(bestSubs.SubscriberCount))),
			Priority: priority,
			Suggestions: []string{
				fmt.Sprintf("1위 [%s]와 %s명 차이 → 주간 콘텐츠 +1개 증가 필요", bestSubs.ChannelName, gapLabel(subsGap)),
				fmt.Sprintf("[%s] 구독자 유입 경로 분석: 쇼츠/커뮤니티/콜라보 중 주력 채널 파악", bestSubs.ChannelName),
				fmt.Sprintf("현재 구독자 대비 조회수 비율 %.1f%% → 목표 15%% 이상으로 개선",
					float64(main.AvgViews)/nonZero(main.SubscriberCount)*100),
				"구독 전환율 높은 콘텐츠 유형 파악 후 해당 포맷 비중 확대",
			},
		})
	}

	viewsGap := bestViews.AvgViews - main.AvgViews
	if viewsGap > 0 {
		viewsRatio := float64(main.AvgViews) / nonZero(bestViews.AvgViews) * 100
		priority := domain.PriorityHigh
		if viewsRatio < 50 {
			priority = domain.PriorityCritical
		}
		recommendations = append(recommendations, domain.Recommendation{
			Category: fmt.Sprintf("👀 조회수 개선 전략 (현재 %s → 목표 %s)",
				thousands(float64(main.AvgViews)), thousands(float64(bestViews.AvgViews))),
			Priority: priority,
			Suggestions: []string{
				fmt.Sprintf("1위 [%s] 평균 조회수 %s, 당신은 %s → %s 격차 해소 필요",
					bestViews.ChannelName, thousands(float64(bestViews.AvgViews)),
					thousands(float64(main.AvgViews)), gapLabel(viewsGap)),
				fmt.Sprintf("[%s] 최근 인기 영상 TOP 5 제목/썸네일 패턴 분석 후 적용", bestViews.ChannelName),
				fmt.Sprintf("CTR(클릭률) 목표: 현재 추정 %.1f%% → %.1f%%로 상향",
					float64(main.AvgViews)/nonZero(main.SubscriberCount)*100,
					float64(bestViews.AvgViews)/nonZero(bestViews.SubscriberCount)*100),
				fmt.Sprintf("업로드 시간 최적화: [%s] 업로드 패턴 분석 및 동일 시간대 테스트", bestViews.ChannelName),
			},
		})
	}

	if engGap := bestEngagement.AvgEngagement - main.AvgEngagement; engGap > 0.5 {
		priority := domain.PriorityMedium
		if engGap > 2 {
			priority = domain.PriorityHigh
		}
		recommendations = append(recommendations, domain.Recommendation{
			Category: fmt.Sprintf("💬 참여율 개선 전략 (현재 %.2f%% → 목표 %.2f%%)",
				main.AvgEngagement, bestEngagement.AvgEngagement),
			Priority: priority,
			Suggestions: []string{
				fmt.Sprintf("1위 [%s] 참여율 %.2f%% vs 당신 %.2f%% → %.2f%%p 개선 필요",
					bestEngagement.ChannelName, bestEngagement.AvgEngagement, main.AvgEngagement, engGap),
				fmt.Sprintf("[%s] 영상 내 CTA(Call-to-Action) 배치 방식 분석", bestEngagement.ChannelName),
				"댓글 유도 질문 삽입: 영상 중간/끝에 시청자 의견 묻는 질문 추가",
				fmt.Sprintf("좋아요 비율 목표: 현재 %.2f%% → 경쟁사 평균 %.2f%% 달성", main.AvgLikeRatio, avgLikeRatio),
			},
		})
	}

	if viralGap := bestViral.ViralRate - main.ViralRate; viralGap > 5 {
		recommendations = append(recommendations, domain.Recommendation{
			Category: fmt.Sprintf("🔥 바이럴 콘텐츠 전략 (현재 %.1f%% → 목표 %.1f%%)", main.ViralRate, bestViral.ViralRate),
			Priority: domain.PriorityHigh,
			Suggestions: []string{
				fmt.Sprintf("1위 [%s] 바이럴률 %.1f%% (바이럴 %d개/%d개)",
					bestViral.ChannelName, bestViral.ViralRate, bestViral.ViralCount, bestViral.TotalVideos),
				fmt.Sprintf("당신의 바이럴률 %.1f%% (바이럴 %d개/%d개) → %.1f%%p 격차",
					main.ViralRate, main.ViralCount, main.TotalVideos, viralGap),
				fmt.Sprintf("[%s] 바이럴 영상 공통점 분석: 제목 키워드, 썸네일 스타일, 영상 길이", bestViral.ChannelName),
				fmt.Sprintf("목표: 다음 10개 영상 중 최소 %d개 바이럴 달성", int(bestViral.ViralRate/10)),
			},
		})
	}

	if velocityGap := bestVelocity.AvgVelocity - main.AvgVelocity; velocityGap > 100 {
		recommendations = append(recommendations, domain.Recommendation{
			Category: fmt.Sprintf("⚡ 초기 조회 속도 전략 (현재 %.0f/일 → 목표 %.0f/일)", main.AvgVelocity, bestVelocity.AvgVelocity),
			Priority: domain.PriorityHigh,
			Suggestions: []string{
				fmt.Sprintf("1위 [%s] 일일 조회 속도 %.0f회 vs 당신 %.0f회",
					bestVelocity.ChannelName, bestVelocity.AvgVelocity, main.AvgVelocity),
				"업로드 후 24시간 내 푸시 알림 최적화 (알림 설정 유도 CTA 추가)",
				"SNS 동시 홍보: 업로드 즉시 트위터/인스타/커뮤니티 동시 공유",
				"프리미어 공개 활용: 실시간 채팅으로 초기 참여 유도",
			},
		})
	}

	if items := benchmarkItems(main, competitors); len(items) > 0 {
		recommendations = append(recommendations, domain.Recommendation{
			Category:    "🎯 경쟁사별 벤치마킹 포인트",
			Priority:    domain.PriorityMedium,
			Suggestions: items,
		})
	}

	myAdvantages := []string{}
	if main.AvgEngagement >= bestEngagement.AvgEngagement {
		myAdvantages = append(myAdvantages, fmt.Sprintf("참여율 1위 (%.2f%%) → 멤버십/후원 기능 적극 활용", main.AvgEngagement))
	}
	if main.ViralRate >= bestViral.ViralRate {
		myAdvantages = append(myAdvantages, fmt.Sprintf("바이럴률 1위 (%.1f%%) → 바이럴 포맷 시리즈화하여 지속 생산", main.ViralRate))
	}
	if main.AvgViews >= bestViews.AvgViews {
		myAdvantages = append(myAdvantages, fmt.Sprintf("조회수 1위 (%s) → 스폰서십/PPL 단가 협상력 강화", thousands(float64(main.AvgViews))))
	}
	if main.AvgVelocity >= bestVelocity.AvgVelocity {
		myAdvantages = append(myAdvantages, fmt.Sprintf("조회속도 1위 (%.0f/일) → 충성 구독자층 두터움, 유료 콘텐츠 전환 고려", main.AvgVelocity))
	}
	if len(myAdvantages) > 0 {
		recommendations = append(recommendations, domain.Recommendation{
			Category:    "💪 내 강점 극대화 전략",
			Priority:    domain.PriorityMedium,
			Suggestions: myAdvantages,
		})
	}

	recommendations = append(recommendations, domain.Recommendation{
		Category:    "📋 종합 액션 플랜",
		Priority:    domain.PriorityCritical,
		Suggestions: actionPlan(main, subsGap, viewsGap, bestSubs.ChannelName, bestViews.ChannelName),
	})

	return recommendations
}

func benchmarkItems(main domain.ChannelDigest, competitors []domain.ChannelDigest) []string {
	items := []string{}
	for _, comp := range competitors {
		advantages := []string{}
		if float64(comp.AvgViews) > float64(main.AvgViews)*1.2 {
			advantages = append(advantages, fmt.Sprintf("조회수 %s", thousands(float64(comp.AvgViews))))
		}
		if comp.AvgEngagement > main.AvgEngagement*1.2 {
			advantages = append(advantages, fmt.Sprintf("참여율 %.2f%%", comp.AvgEngagement))
		}
		if comp.ViralRate > main.ViralRate+5 {
			advantages = append(advantages, fmt.Sprintf("바이럴률 %.1f%%", comp.ViralRate))
		}
		if len(advantages) > 0 {
			items = append(items, fmt.Sprintf("[%s] 강점: %s → 해당 채널 최근 영상 10개 분석 필수",
				comp.ChannelName, strings.Join(advantages, ", ")))
		}
	}
	if len(items) > 4 {
		items = items[:4]
	}
	return items
}

func actionPlan(main domain.ChannelDigest, subsGap, viewsGap int64, subsLeader, viewsLeader string) []string {
	plan := []string{}

	type gapEntry struct {
		name   string
		gap    int64
		leader string
	}
	gaps := []gapEntry{
		{"구독자", subsGap, subsLeader},
		{"조회수", viewsGap, viewsLeader},
	}
	for i := range gaps {
		if gaps[i].gap < 0 {
			gaps[i].gap = 0
		}
	}
	sort.SliceStable(gaps, func(i, j int) bool { return gaps[i].gap > gaps[j].gap })

	if gaps[0].gap > 0 {
		plan = append(plan, fmt.Sprintf("최우선 과제: %s 개선 - [%s] 채널 집중 분석", gaps[0].name, gaps[0].leader))
	}

	weeklyTarget := main.TotalVideos / 4
	if weeklyTarget < 2 {
		weeklyTarget = 2
	}
	plan = append(plan, fmt.Sprintf("주간 목표: 영상 %d개 이상 업로드 유지", weeklyTarget))

	monthlySubs := int64(1000)
	if subsGap > 0 {
		monthlySubs = subsGap / 12
	}
	monthlyViews := int64(1)
	if viewsGap > 0 {
		monthlyViews = viewsGap / 12 / 1000
	}
	plan = append(plan, fmt.Sprintf("월간 KPI: 구독자 +%d명, 평균 조회수 +%dK", monthlySubs, monthlyViews))

	return plan
}
