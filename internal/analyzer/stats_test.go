package analyzer

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMeanHandlesEmptyInput(t *testing.T) {
	if got := mean(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
	if got := mean([]float64{1, 2, 3, 4, 5}); !almostEqual(got, 3) {
		t.Fatalf("expected mean 3, got %v", got)
	}
}

func TestMedianEvenAndOddCounts(t *testing.T) {
	if got := median([]float64{5, 1, 3}); !almostEqual(got, 3) {
		t.Fatalf("expected median 3 for odd count, got %v", got)
	}
	if got := median([]float64{4, 1, 3, 2}); !almostEqual(got, 2.5) {
		t.Fatalf("expected median 2.5 for even count, got %v", got)
	}
	if got := median(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	median(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Fatalf("median mutated its input: %v", values)
	}
}

func TestStdevIsSampleStdev(t *testing.T) {
	// Sample variance of 1..5 is 2.5.
	got := stdev([]float64{1, 2, 3, 4, 5})
	want := math.Sqrt(2.5)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestStdevRequiresTwoSamples(t *testing.T) {
	if got := stdev([]float64{42}); got != 0 {
		t.Fatalf("expected 0 for a single sample, got %v", got)
	}
	if got := stdev(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
}

func TestDescribe(t *testing.T) {
	s := describe([]float64{4, 1, 3, 2})
	if !almostEqual(s.Mean, 2.5) {
		t.Fatalf("expected mean 2.5, got %v", s.Mean)
	}
	if !almostEqual(s.Median, 2.5) {
		t.Fatalf("expected median 2.5, got %v", s.Median)
	}
	if !almostEqual(s.Min, 1) || !almostEqual(s.Max, 4) {
		t.Fatalf("expected min 1 max 4, got min %v max %v", s.Min, s.Max)
	}
	if !almostEqual(s.Total, 10) {
		t.Fatalf("expected total 10, got %v", s.Total)
	}

	empty := describe(nil)
	if empty.Mean != 0 || empty.Total != 0 {
		t.Fatalf("expected zero stats for empty input, got %+v", empty)
	}
}
