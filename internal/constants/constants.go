package constants

import "time"

var CacheTTL = struct {
	ChannelInfo     time.Duration
	ChannelSearch   time.Duration
	VideoList       time.Duration
	AnalysisReport  time.Duration
	ComparisonReport time.Duration
	AIReport        time.Duration
}{
	ChannelInfo:      20 * time.Minute,
	ChannelSearch:    10 * time.Minute,
	VideoList:        15 * time.Minute,
	AnalysisReport:   60 * time.Minute,
	ComparisonReport: 60 * time.Minute,
	AIReport:         6 * time.Hour,
}

var RedisConfig = struct {
	ReadyTimeout time.Duration
}{
	ReadyTimeout: 5 * time.Second,
}

var RetryConfig = struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      time.Duration
}{
	MaxAttempts: 3,
	BaseDelay:   500 * time.Millisecond,
	Jitter:      250 * time.Millisecond,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        30 * time.Second,
	RateLimitTimeout:    1 * time.Hour, // 429 전용 타임아웃
	HealthCheckInterval: 10 * time.Minute,
	HealthCheckTimeout:  10 * time.Second,
}

// YouTube Data API v3 unit costs per endpoint. The daily budget tracks
// these so a long competitor run cannot silently burn the whole quota.
var QuotaCost = struct {
	ChannelsList      int
	PlaylistItemsList int
	VideosList        int
	SearchList        int
	DailyBudget       int
	SafetyMargin      int
}{
	ChannelsList:      1,
	PlaylistItemsList: 1,
	VideosList:        1,
	SearchList:        100,
	DailyBudget:       10000,
	SafetyMargin:      2000, // 마지막 2000 유닛은 예약
}

var APIConfig = struct {
	YouTubeTimeout   time.Duration
	MaxRetryAttempts int
	MaxPageSize      int
}{
	YouTubeTimeout:   15 * time.Second,
	MaxRetryAttempts: 3,
	MaxPageSize:      50, // API 페이지당 최대 항목 수
}

var AnalysisLimits = struct {
	MaxVideos         int
	MaxCompetitors    int
	TopVideosInReport int
}{
	MaxVideos:         200,
	MaxCompetitors:    5,
	TopVideosInReport: 10,
}

var StringLimits = struct {
	ReportTitle  int
	VideoTitle   int
	PromptInput  int
}{
	ReportTitle: 256,
	VideoTitle:  100,
	PromptInput: 8000,
}
