package engine

import (
	"math"
	"sort"
)

// PercentileDesc computes a "top p%" threshold: the value at rank
// ceil(p/100 × N) − 1 of the input sorted descending, clamped to index 0.
// Rank 1 in this convention is the maximum value, which is the opposite of
// the textbook ascending percentile. An empty input yields 0.
func PercentileDesc(values []float64, percentile float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	index := int(math.Ceil(percentile/100*float64(len(sorted)))) - 1
	if index < 0 {
		index = 0
	}
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}
