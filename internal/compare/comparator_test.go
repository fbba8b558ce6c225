package compare

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
)

// fixture builds a minimal analysis result carrying just what the comparator
// digests: the channel summary, the tier counts and the success patterns.
func fixture(name string, subs, avgViews int64, velocity, engagement float64, viral, hit, average, under int) *domain.AnalysisResult {
	tierStats := func(count int) *domain.TierStats {
		return &domain.TierStats{Count: count, Videos: []domain.Video{}}
	}
	return &domain.AnalysisResult{
		ChannelSummary: domain.ChannelSummary{
			ChannelName:       name,
			ChannelID:         "UC" + name,
			SubscriberCount:   subs,
			AvgViewsPerVideo:  avgViews,
			AvgViewVelocity:   velocity,
			AvgEngagementRate: engagement,
			AvgLikeRatio:      engagement * 0.8,
		},
		ClassificationStats: map[domain.Tier]*domain.TierStats{
			domain.TierViral:        tierStats(viral),
			domain.TierHit:          tierStats(hit),
			domain.TierAverage:      tierStats(average),
			domain.TierUnderperform: tierStats(under),
		},
	}
}

func TestCompareRequiresCompetitors(t *testing.T) {
	c := New(zap.NewNop())
	_, err := c.Compare(fixture("메인", 1000, 5000, 100, 5, 1, 1, 1, 1), nil)
	if !errors.Is(err, ErrNoCompetitors) {
		t.Fatalf("expected ErrNoCompetitors, got %v", err)
	}
}

func TestCompareDigestRates(t *testing.T) {
	c := New(zap.NewNop())

	main := fixture("메인", 10000, 5000, 100, 5, 2, 3, 4, 1)
	main.ClassificationStats[domain.TierViral].Videos = []domain.Video{{ViewCount: 9000}}
	main.ClassificationStats[domain.TierHit].Videos = []domain.Video{{ViewCount: 7000}}
	main.SuccessAnalysis.Patterns = []string{"p1", "p2", "p3", "p4"}

	result, err := c.Compare(main, []*domain.AnalysisResult{fixture("경쟁", 5000, 2000, 50, 3, 1, 1, 1, 1)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	d := result.MainChannel
	if d.TotalVideos != 10 {
		t.Fatalf("expected 10 total videos, got %d", d.TotalVideos)
	}
	if d.ViralRate != 20 || d.HitRate != 30 || d.SuccessRate != 50 {
		t.Fatalf("unexpected rates: viral=%v hit=%v success=%v", d.ViralRate, d.HitRate, d.SuccessRate)
	}
	if d.TopVideoViews != 9000 {
		t.Fatalf("expected top video views 9000, got %d", d.TopVideoViews)
	}
	if len(d.SuccessPatterns) != 3 {
		t.Fatalf("expected patterns capped at 3, got %d", len(d.SuccessPatterns))
	}
}

func TestRankingsMainWinsTies(t *testing.T) {
	c := New(zap.NewNop())

	main := fixture("메인", 1000, 5000, 100, 5, 1, 1, 1, 1)
	comp := fixture("경쟁", 1000, 5000, 100, 5, 1, 1, 1, 1)

	result, err := c.Compare(main, []*domain.AnalysisResult{comp})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for key, ranking := range result.RankingAnalysis {
		if ranking.Rank != 1 {
			t.Fatalf("expected main to win the %s tie, got rank %d", key, ranking.Rank)
		}
		if !ranking.IsTop || ranking.GapToTop != 0 {
			t.Fatalf("expected top position with zero gap for %s, got %+v", key, ranking)
		}
	}
}

func TestRankingsGapToLeader(t *testing.T) {
	c := New(zap.NewNop())

	main := fixture("메인", 1000, 5000, 100, 5, 1, 1, 1, 1)
	comp := fixture("경쟁", 2000, 5000, 100, 5, 1, 1, 1, 1)

	result, err := c.Compare(main, []*domain.AnalysisResult{comp})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	subs := result.RankingAnalysis["subscriber_count"]
	if subs.Rank != 2 || subs.IsTop {
		t.Fatalf("expected rank 2, got %+v", subs)
	}
	if subs.GapToTop != 1000 {
		t.Fatalf("expected gap 1000, got %v", subs.GapToTop)
	}
	if subs.TopChannel != "경쟁" {
		t.Fatalf("expected 경쟁 as leader, got %q", subs.TopChannel)
	}
	if subs.Total != 2 {
		t.Fatalf("expected 2 ranked channels, got %d", subs.Total)
	}
}

func TestClassifyStrategy(t *testing.T) {
	cases := []struct {
		digest domain.ChannelDigest
		want   string
	}{
		{domain.ChannelDigest{ViralRate: 25, AvgEngagement: 9, AvgVelocity: 2000}, domain.StrategyViral},
		{domain.ChannelDigest{ViralRate: 10, AvgEngagement: 9, AvgVelocity: 2000}, domain.StrategyFandom},
		{domain.ChannelDigest{ViralRate: 10, AvgEngagement: 3, AvgVelocity: 2000}, domain.StrategyTraffic},
		{domain.ChannelDigest{ViralRate: 10, AvgEngagement: 3, AvgVelocity: 500}, domain.StrategyBalanced},
	}
	for i, c := range cases {
		if got := classifyStrategy(c.digest); got != c.want {
			t.Fatalf("case %d: expected %s, got %s", i, c.want, got)
		}
	}
}

func TestMarketPositionChallenger(t *testing.T) {
	c := New(zap.NewNop())

	// Main matches the competitor average exactly and holds a 10% viral
	// rate, so all four sub-scores land on 50.
	main := fixture("메인", 1000, 5000, 100, 5, 1, 0, 8, 1)
	comp := fixture("경쟁", 1000, 5000, 100, 5, 1, 0, 8, 1)

	result, err := c.Compare(main, []*domain.AnalysisResult{comp})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	mp := result.MarketPosition
	if mp.OverallScore != 50 {
		t.Fatalf("expected overall score 50, got %v", mp.OverallScore)
	}
	if mp.Position != domain.PositionChallenger {
		t.Fatalf("expected challenger position, got %s", mp.Position)
	}
	if mp.PositionLabel != "도전자" {
		t.Fatalf("expected 도전자 label, got %q", mp.PositionLabel)
	}
	if mp.Interpretation == "" {
		t.Fatalf("expected an interpretation")
	}
}

func TestMarketPositionDominant(t *testing.T) {
	c := New(zap.NewNop())

	// Main doubles the competitor on every metric with a 20% viral rate.
	main := fixture("메인", 2000, 10000, 200, 10, 2, 0, 7, 1)
	comp := fixture("경쟁", 1000, 5000, 100, 5, 0, 0, 9, 1)

	result, err := c.Compare(main, []*domain.AnalysisResult{comp})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	mp := result.MarketPosition
	if mp.OverallScore != 100 {
		t.Fatalf("expected overall score 100, got %v", mp.OverallScore)
	}
	if mp.Position != domain.PositionDominant {
		t.Fatalf("expected dominant position, got %s", mp.Position)
	}
	if mp.PositionLabel != "압도적 선두" {
		t.Fatalf("expected 압도적 선두 label, got %q", mp.PositionLabel)
	}
}

func TestMetricsComparisonSummary(t *testing.T) {
	c := New(zap.NewNop())

	main := fixture("메인", 1000, 5000, 100, 5, 1, 1, 7, 1)
	weaker := fixture("약한경쟁", 500, 2000, 50, 3, 0, 1, 8, 1)
	stronger := fixture("강한경쟁", 5000, 20000, 500, 8, 3, 3, 3, 1)

	result, err := c.Compare(main, []*domain.AnalysisResult{weaker, stronger})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	summary := result.MetricsComparison.Summary
	if summary.TotalCompared != 2 {
		t.Fatalf("expected 2 compared, got %d", summary.TotalCompared)
	}
	if summary.BetterInViews != 1 {
		t.Fatalf("expected better in views against one competitor, got %d", summary.BetterInViews)
	}
	if summary.BetterInEngagement != 1 {
		t.Fatalf("expected better in engagement against one competitor, got %d", summary.BetterInEngagement)
	}
}

func TestRecommendationsEndWithActionPlan(t *testing.T) {
	c := New(zap.NewNop())

	// Main trails a much larger competitor on everything.
	main := fixture("메인", 10000, 5000, 100, 3, 0, 1, 8, 1)
	comp := fixture("경쟁", 100000, 50000, 2000, 8, 3, 3, 3, 1)

	result, err := c.Compare(main, []*domain.AnalysisResult{comp})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	recs := result.Recommendations
	if len(recs) == 0 {
		t.Fatalf("expected recommendations")
	}

	last := recs[len(recs)-1]
	if last.Category != "📋 종합 액션 플랜" {
		t.Fatalf("expected the action plan last, got %q", last.Category)
	}
	if last.Priority != domain.PriorityCritical {
		t.Fatalf("expected critical priority for the action plan, got %s", last.Priority)
	}

	// A 10% subscriber ratio is far below the 50% critical line.
	if !strings.HasPrefix(recs[0].Category, "📈 구독자 성장 전략") {
		t.Fatalf("expected subscriber growth first, got %q", recs[0].Category)
	}
	if recs[0].Priority != domain.PriorityCritical {
		t.Fatalf("expected critical subscriber priority, got %s", recs[0].Priority)
	}
}

func TestInsightsFlagViewAdvantage(t *testing.T) {
	c := New(zap.NewNop())

	main := fixture("메인", 10000, 20000, 500, 5, 1, 1, 7, 1)
	comp := fixture("경쟁", 10000, 5000, 100, 5, 1, 1, 7, 1)

	result, err := c.Compare(main, []*domain.AnalysisResult{comp})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	found := false
	for _, insight := range result.CompetitiveInsights {
		if insight.Title == "조회수 경쟁력 우수" {
			if insight.Type != "positive" {
				t.Fatalf("expected positive insight, got %s", insight.Type)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a views advantage insight, got %v", result.CompetitiveInsights)
	}
}
