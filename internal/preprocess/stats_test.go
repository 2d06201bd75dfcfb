package preprocess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		values []float64
		want   float64
		ok     bool
	}{
		{name: "odd count", values: []float64{3, 1, 2}, want: 2, ok: true},
		{name: "even count averages the middle pair", values: []float64{4, 1, 3, 2}, want: 2.5, ok: true},
		{name: "ignores NaN", values: []float64{1, 2, nan, 4}, want: 2, ok: true},
		{name: "single value", values: []float64{7}, want: 7, ok: true},
		{name: "all NaN", values: []float64{nan, nan}, ok: false},
		{name: "empty", values: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := median(tt.values)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestMostFrequent(t *testing.T) {
	tests := []struct {
		name      string
		values    []string
		want      string
		wantCount int
		ok        bool
	}{
		{name: "clear winner", values: []string{"b", "a", "b"}, want: "b", wantCount: 2, ok: true},
		{name: "tie goes to smallest", values: []string{"z", "y", "y", "z"}, want: "y", wantCount: 2, ok: true},
		{name: "all distinct", values: []string{"q", "p", "r"}, want: "p", wantCount: 1, ok: true},
		{name: "empty", values: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count, ok := mostFrequent(tt.values)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestMeanStd(t *testing.T) {
	mean, std := meanStd([]float64{10, 20, 20, 40})
	assert.Equal(t, 22.5, mean)
	assert.InDelta(t, math.Sqrt(118.75), std, 1e-12)

	mean, std = meanStd([]float64{5, 5, 5})
	assert.Equal(t, 5.0, mean)
	assert.Equal(t, 1.0, std, "constant columns keep a unit deviation")
}
