package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"featprep/pkg/contracts/domain"
)

func TestLabelEncoder(t *testing.T) {
	enc := newLabelEncoder([]string{"x", "y", "x", "z"})

	assert.Equal(t, []string{"x", "y", "z"}, enc.Classes())
	assert.Equal(t, "x", enc.Fallback())

	code, ok := enc.Code("z")
	assert.True(t, ok)
	assert.Equal(t, 2, code)
	_, ok = enc.Code("q")
	assert.False(t, ok)

	codes, unseen := enc.Encode([]string{"y", "q", "z", "x", "Q"})
	assert.Equal(t, []float64{1, 0, 2, 0, 0}, codes)
	assert.Equal(t, 2, unseen)
}

func TestLabelEncoderSortsByByteOrder(t *testing.T) {
	enc := newLabelEncoder([]string{"b", "B", "a", "10", "9"})
	assert.Equal(t, []string{"10", "9", "B", "a", "b"}, enc.Classes())
}

func TestLabelEncoderClassesIsACopy(t *testing.T) {
	enc := newLabelEncoder([]string{"a", "b"})
	classes := enc.Classes()
	classes[0] = "changed"
	assert.Equal(t, "a", enc.Fallback())
}

func TestStandardScaler(t *testing.T) {
	s := fitStandardScaler([]string{"a", "b"}, map[string][]float64{
		"a": {1, 2, 3},
		"b": {4, 4, 4},
	})

	assert.Equal(t, []string{"a", "b"}, s.Columns())

	mean, std, ok := s.Params("b")
	assert.True(t, ok)
	assert.Equal(t, 4.0, mean)
	assert.Equal(t, 1.0, std)

	values := []float64{2, 3}
	assert.True(t, s.scale("a", values))
	assert.InDelta(t, 0, values[0], 1e-12)

	assert.False(t, s.scale("c", values))

	var empty *StandardScaler
	_, _, ok = empty.Params("a")
	assert.False(t, ok)
	assert.Nil(t, empty.Columns())
}

func TestImputationFill(t *testing.T) {
	num := Imputation{Kind: domain.KindNumeric, Numeric: 2.5}
	assert.Equal(t, "2.5", num.Fill())
	assert.Equal(t, domain.StrategyMedian, num.Strategy())

	cat := Imputation{Kind: domain.KindCategorical, Category: "x"}
	assert.Equal(t, "x", cat.Fill())
	assert.Equal(t, domain.StrategyMostFrequent, cat.Strategy())
}
