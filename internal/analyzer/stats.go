package analyzer

import (
	"math"
	"sort"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// stdev is the sample standard deviation. Returns 0 for fewer than two
// samples, which downstream code treats as "no spread".
func stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// describe computes the full summary for one metric across one video set.
func describe(values []float64) domain.Stats {
	if len(values) == 0 {
		return domain.Stats{}
	}
	minV, maxV := values[0], values[0]
	total := 0.0
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		total += v
	}
	return domain.Stats{
		Mean:   mean(values),
		Median: median(values),
		Stdev:  stdev(values),
		Min:    minV,
		Max:    maxV,
		Total:  total,
	}
}
