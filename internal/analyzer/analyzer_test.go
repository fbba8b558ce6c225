package analyzer

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
)

var testNow = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func newTestAnalyzer() *Analyzer {
	return New(DefaultConfig(), zap.NewNop(), WithNowFunc(func() time.Time { return testNow }))
}

// makeVideo builds a video with a fixed 5% like and 1% comment rate so the
// engagement sub-scores are identical across the fixture set.
func makeVideo(id string, daysAgo int, views int64) domain.Video {
	return domain.Video{
		VideoID:      id,
		Title:        "채널 운영 기록 영상 스물네번째 업로드 하이라이트 모음집 편집본",
		PublishedAt:  testNow.AddDate(0, 0, -daysAgo).Format(time.RFC3339),
		Duration:     "PT10M",
		ViewCount:    views,
		LikeCount:    views / 20,
		CommentCount: views / 100,
	}
}

func TestAnalyzeRejectsEmptyInput(t *testing.T) {
	a := newTestAnalyzer()
	_, err := a.Analyze(domain.Channel{ChannelName: "테스트"}, nil)
	if !errors.Is(err, ErrNoVideos) {
		t.Fatalf("expected ErrNoVideos, got %v", err)
	}
}

func TestAnalyzeBelowClassificationThreshold(t *testing.T) {
	a := newTestAnalyzer()
	videos := []domain.Video{
		makeVideo("v1", 10, 1000),
		makeVideo("v2", 20, 2000),
	}

	result, err := a.Analyze(domain.Channel{ChannelName: "소형 채널"}, videos)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Too few videos for relative statistics: everything lands in the
	// average tier with a neutral score.
	for _, v := range result.VideoClassification[domain.TierAverage] {
		if v.AlgorithmScore != 50 {
			t.Fatalf("expected neutral score 50, got %v for %s", v.AlgorithmScore, v.VideoID)
		}
	}
	if got := result.ClassificationStats[domain.TierAverage].Count; got != 2 {
		t.Fatalf("expected both videos in the average tier, got %d", got)
	}
	if result.TrendAnalysis.Message == "" {
		t.Fatalf("expected insufficient-data trend message")
	}
	if result.GrowthTrends.Message == "" {
		t.Fatalf("expected insufficient-data growth message")
	}
}

func TestAnalyzeClassifiesOutlierAsViral(t *testing.T) {
	a := newTestAnalyzer()

	videos := []domain.Video{makeVideo("outlier", 10, 500000)}
	for i := 1; i <= 11; i++ {
		videos = append(videos, makeVideo(fmt.Sprintf("v%d", i), 10+10*i, 1000))
	}

	result, err := a.Analyze(domain.Channel{ChannelName: "테스트 채널", SubscriberCount: 10000}, videos)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	viral := result.VideoClassification[domain.TierViral]
	if len(viral) != 1 || viral[0].VideoID != "outlier" {
		t.Fatalf("expected only the outlier in the viral tier, got %v", viral)
	}
	if got := len(result.VideoClassification[domain.TierAverage]); got != 11 {
		t.Fatalf("expected 11 average videos, got %d", got)
	}
}

func TestAnalyzeSortsByScoreDescending(t *testing.T) {
	a := newTestAnalyzer()

	videos := []domain.Video{makeVideo("outlier", 10, 500000)}
	for i := 1; i <= 11; i++ {
		videos = append(videos, makeVideo(fmt.Sprintf("v%d", i), 10+10*i, 1000))
	}

	result, err := a.Analyze(domain.Channel{ChannelName: "테스트 채널"}, videos)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var all []domain.Video
	for _, tier := range domain.AllTiers {
		all = append(all, result.VideoClassification[tier]...)
	}
	if len(all) != 12 {
		t.Fatalf("expected 12 classified videos, got %d", len(all))
	}

	if result.VideoClassification[domain.TierViral][0].VideoID != "outlier" {
		t.Fatalf("expected the outlier to carry the top score")
	}
	for _, v := range all {
		if v.ScoreBreakdown == nil || v.TitleAnalysis == nil {
			t.Fatalf("expected breakdown and title analysis on %s", v.VideoID)
		}
	}
}

func TestAnalyzeChannelSummary(t *testing.T) {
	a := newTestAnalyzer()

	videos := []domain.Video{makeVideo("outlier", 10, 500000)}
	for i := 1; i <= 11; i++ {
		videos = append(videos, makeVideo(fmt.Sprintf("v%d", i), 10+10*i, 1000))
	}

	result, err := a.Analyze(domain.Channel{
		ChannelName:     "테스트 채널",
		ChannelID:       "UCtest",
		SubscriberCount: 10000,
	}, videos)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	s := result.ChannelSummary
	if s.ChannelID != "UCtest" || s.SubscriberCount != 10000 {
		t.Fatalf("expected channel identity passthrough, got %+v", s)
	}
	if s.TotalViews != 511000 {
		t.Fatalf("expected total views 511000, got %d", s.TotalViews)
	}
	if s.AvgViewsPerVideo != 42583 {
		t.Fatalf("expected avg views 42583, got %d", s.AvgViewsPerVideo)
	}
	if s.TotalVideosAnalyzed != 12 {
		t.Fatalf("expected 12 analyzed videos, got %d", s.TotalVideosAnalyzed)
	}
	// The fixture holds a 6% engagement rate on every video.
	if s.AvgEngagementRate != 6 {
		t.Fatalf("expected avg engagement 6, got %v", s.AvgEngagementRate)
	}
}

func TestAnalyzeTrendsDetectGrowth(t *testing.T) {
	a := newTestAnalyzer()

	videos := []domain.Video{makeVideo("outlier", 10, 500000)}
	for i := 1; i <= 11; i++ {
		videos = append(videos, makeVideo(fmt.Sprintf("v%d", i), 10+10*i, 1000))
	}

	result, err := a.Analyze(domain.Channel{ChannelName: "테스트 채널"}, videos)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	trends := result.TrendAnalysis
	if trends.Message != "" {
		t.Fatalf("expected populated trends, got message %q", trends.Message)
	}
	if trends.Views == nil || trends.Views.Trend != domain.TrendUp {
		t.Fatalf("expected rising views trend, got %+v", trends.Views)
	}
	if trends.ViewVelocity == nil || trends.ViewVelocity.Trend != domain.TrendUp {
		t.Fatalf("expected rising velocity trend, got %+v", trends.ViewVelocity)
	}

	growth := result.GrowthTrends
	if growth.Trend != "성장세" {
		t.Fatalf("expected growth trend 성장세, got %q", growth.Trend)
	}
	if growth.VideosCompared != 12 {
		t.Fatalf("expected 12 videos compared, got %d", growth.VideosCompared)
	}
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	a := newTestAnalyzer()

	videos := []domain.Video{
		makeVideo("v1", 10, 1000),
		makeVideo("v2", 20, 2000),
		makeVideo("v3", 30, 3000),
	}

	if _, err := a.Analyze(domain.Channel{ChannelName: "테스트"}, videos); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, v := range videos {
		if v.ViewVelocity != 0 || v.Classification != "" || v.ScoreBreakdown != nil {
			t.Fatalf("input slice was mutated: %+v", v)
		}
	}
}
