package analyzer

import (
	"testing"
	"time"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
)

func TestDurationToSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"PT1H2M3S", 3723},
		{"PT4M5S", 245},
		{"PT30S", 30},
		{"PT2H", 7200},
		{"1:02:03", 3723},
		{"4:05", 245},
		{"", 0},
		{"garbage", 0},
		{"1:xx", 0},
	}
	for _, c := range cases {
		if got := durationToSeconds(c.in); got != c.want {
			t.Fatalf("durationToSeconds(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestDeriveVelocity(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	videos := []domain.Video{
		{VideoID: "a", ViewCount: 1000, PublishedAt: "2026-02-19T00:00:00Z"},
		{VideoID: "b", ViewCount: 500, PublishedAt: ""},
		{VideoID: "c", ViewCount: 300, PublishedAt: now.Add(-2 * time.Hour).Format(time.RFC3339)},
	}

	out := deriveVelocity(videos, now)

	if out[0].DaysSinceUpload != 10 {
		t.Fatalf("expected 10 days since upload, got %d", out[0].DaysSinceUpload)
	}
	if out[0].ViewVelocity != 100 {
		t.Fatalf("expected velocity 100, got %v", out[0].ViewVelocity)
	}

	// Missing publish date counts as one day old.
	if out[1].DaysSinceUpload != 1 || out[1].ViewVelocity != 500 {
		t.Fatalf("expected fallback to 1 day, got days=%d velocity=%v", out[1].DaysSinceUpload, out[1].ViewVelocity)
	}

	// A fresh upload also floors at one day.
	if out[2].DaysSinceUpload != 1 || out[2].ViewVelocity != 300 {
		t.Fatalf("expected floor of 1 day, got days=%d velocity=%v", out[2].DaysSinceUpload, out[2].ViewVelocity)
	}

	if videos[0].ViewVelocity != 0 {
		t.Fatalf("deriveVelocity mutated its input")
	}
}

func TestMetricsStatsSkipsZeroViewRates(t *testing.T) {
	videos := []domain.Video{
		{ViewCount: 1000, LikeCount: 50, CommentCount: 10, ViewVelocity: 100},
		{ViewCount: 0, LikeCount: 0, CommentCount: 0, ViewVelocity: 0},
		{ViewCount: 2000, LikeCount: 100, CommentCount: 20, ViewVelocity: 200},
	}

	stats := metricsStats(videos)

	vc := stats["view_count"]
	if vc.Total != 3000 {
		t.Fatalf("expected total views 3000, got %v", vc.Total)
	}

	// Both non-zero videos have 6% engagement; the zero-view one must not
	// drag the mean down.
	eng := stats["engagement_rate"]
	if !almostEqual(eng.Mean, 6) {
		t.Fatalf("expected engagement mean 6, got %v", eng.Mean)
	}
	lr := stats["like_ratio"]
	if !almostEqual(lr.Mean, 5) {
		t.Fatalf("expected like ratio mean 5, got %v", lr.Mean)
	}
}

func TestMetricsStatsRequiresTwoVideos(t *testing.T) {
	stats := metricsStats([]domain.Video{{ViewCount: 100}})
	if len(stats) != 0 {
		t.Fatalf("expected empty stats for a single video, got %v", stats)
	}
}
