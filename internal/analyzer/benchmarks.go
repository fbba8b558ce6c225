package analyzer

// ScoreWeights are the weights applied to the six sub-scores when computing a
// video's algorithm score. They must sum to 1.0.
type ScoreWeights struct {
	ViewVelocity       float64
	EngagementRate     float64
	LikeRatio          float64
	CommentRate        float64
	TitleCTRScore      float64
	DurationEfficiency float64
}

// Benchmark is one metric's reference thresholds, best to worst.
type Benchmark struct {
	Excellent float64
	Good      float64
	Average   float64
	Poor      float64
}

// Map flattens a benchmark into the JSON shape reports carry.
func (b Benchmark) Map() map[string]float64 {
	return map[string]float64{
		"excellent": b.Excellent,
		"good":      b.Good,
		"average":   b.Average,
		"poor":      b.Poor,
	}
}

// BenchmarkTable holds the external reference thresholds per metric.
type BenchmarkTable struct {
	CTR            Benchmark
	Retention      Benchmark
	LikeRatio      Benchmark
	EngagementRate Benchmark
	CommentRate    Benchmark
}

// Sub-scores assigned per benchmark bucket.
const (
	bucketExcellent = 95.0
	bucketGood      = 75.0
	bucketAverage   = 55.0
	bucketPoor      = 35.0
	bucketBottom    = 20.0
)

// bucketScore maps a raw rate onto its bucket sub-score.
func bucketScore(value float64, bench Benchmark) float64 {
	switch {
	case value >= bench.Excellent:
		return bucketExcellent
	case value >= bench.Good:
		return bucketGood
	case value >= bench.Average:
		return bucketAverage
	case value >= bench.Poor:
		return bucketPoor
	default:
		return bucketBottom
	}
}

// benchmarkStatus labels a channel average against the reference thresholds.
func benchmarkStatus(value float64, bench Benchmark) string {
	switch {
	case value >= bench.Excellent:
		return "최상위 (상위 10%)"
	case value >= bench.Good:
		return "우수 (상위 30%)"
	case value >= bench.Average:
		return "평균"
	case value >= bench.Poor:
		return "개선 필요"
	default:
		return "심각한 개선 필요"
	}
}

// Thresholds are the minimum sample sizes per analysis stage. Below a
// threshold the stage reports insufficient data instead of guessing.
type Thresholds struct {
	MinClassification int
	MinTrend          int
	MinGrowth         int
	MinUploadInterval int
}

// Config is the full scoring configuration. It is injected at construction
// and never mutated afterwards, so one Analyzer is safe for concurrent use.
type Config struct {
	Weights    ScoreWeights
	Benchmarks BenchmarkTable
	Thresholds Thresholds
}

// DefaultConfig returns the 2025-2026 reference weights and thresholds.
func DefaultConfig() Config {
	return Config{
		Weights: ScoreWeights{
			ViewVelocity:       0.25,
			EngagementRate:     0.20,
			LikeRatio:          0.15,
			CommentRate:        0.10,
			TitleCTRScore:      0.15,
			DurationEfficiency: 0.15,
		},
		Benchmarks: BenchmarkTable{
			CTR:            Benchmark{Excellent: 7.0, Good: 5.0, Average: 4.0, Poor: 2.0},
			Retention:      Benchmark{Excellent: 70, Good: 50, Average: 40, Poor: 30},
			LikeRatio:      Benchmark{Excellent: 5.0, Good: 3.0, Average: 2.0, Poor: 1.0},
			EngagementRate: Benchmark{Excellent: 8.0, Good: 5.0, Average: 3.0, Poor: 1.5},
			CommentRate:    Benchmark{Excellent: 0.5, Good: 0.3, Average: 0.1, Poor: 0.05},
		},
		Thresholds: Thresholds{
			MinClassification: 3,
			MinTrend:          10,
			MinGrowth:         5,
			MinUploadInterval: 2,
		},
	}
}
