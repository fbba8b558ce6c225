package util

import "math"

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Clamp limits v to the [lo, hi] range.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

// Round1 rounds to one decimal place, the default precision for scores and
// velocities in reports.
func Round1(v float64) float64 {
	return RoundTo(v, 1)
}

// Round3 rounds to three decimal places, used for percentage rates.
func Round3(v float64) float64 {
	return RoundTo(v, 3)
}

// SafePercent returns (a-b)/b*100, or 0 when b is zero.
func SafePercent(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}

