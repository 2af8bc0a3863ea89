package calculator

import (
	"errors"
	"math"
)

// TrailingMean computes the mean of the last n values, or of all values when
// fewer than n are available.
func TrailingMean(values []float64, n int) (float64, error) {
	if n <= 0 {
		return 0, errors.New("n must be positive")
	}
	if len(values) == 0 {
		return 0, errors.New("no values provided")
	}
	start := len(values) - n
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for i := start; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(len(values)-start), nil
}

// PercentChanges returns the day-over-day percentage change series of the
// given closes: out[i] corresponds to the change from closes[i] to
// closes[i+1]. Changes against a zero or NaN base are omitted.
func PercentChanges(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev, cur := closes[i-1], closes[i]
		if prev == 0 || math.IsNaN(prev) || math.IsNaN(cur) {
			continue
		}
		out = append(out, (cur/prev-1)*100)
	}
	return out
}

// DollarVolumes returns close*volume per bar, a liquidity proxy.
func DollarVolumes(closes, volumes []float64) []float64 {
	n := len(closes)
	if len(volumes) < n {
		n = len(volumes)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v := volumes[i]
		if math.IsNaN(v) {
			v = 0
		}
		out[i] = closes[i] * v
	}
	return out
}
