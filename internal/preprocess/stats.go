package preprocess

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// median returns the median of the non-NaN values, averaging the two middle
// values for an even count. ok is false when there is no observed value.
func median(values []float64) (float64, bool) {
	observed := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}
	n := len(observed)
	if n == 0 {
		return 0, false
	}

	sort.Float64s(observed)
	if n%2 == 1 {
		return observed[n/2], true
	}
	return (observed[n/2-1] + observed[n/2]) / 2, true
}

// mostFrequent returns the most common value and its count. Ties go to the
// smallest value.
func mostFrequent(values []string) (string, int, bool) {
	if len(values) == 0 {
		return "", 0, false
	}

	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	var best string
	bestCount := 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best, bestCount, true
}

// meanStd returns the mean and population standard deviation of values.
// A zero deviation is reported as 1 so scaling leaves the column centred.
func meanStd(values []float64) (float64, float64) {
	mean, variance := stat.PopMeanVariance(values, nil)
	std := math.Sqrt(variance)
	if std == 0 || math.IsNaN(std) {
		std = 1
	}
	return mean, std
}
