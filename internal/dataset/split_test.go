package dataset

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "featprep/internal/errors"
)

func TestSplitRowsSizes(t *testing.T) {
	tests := []struct {
		name                 string
		n                    int
		opts                 SplitOptions
		train, valid, testSz int
	}{
		{name: "defaults", n: 100, opts: SplitOptions{TestSize: 0.2, ValidationSize: 0.2, Seed: 42}, train: 64, valid: 16, testSz: 20},
		{name: "rounds up", n: 11, opts: SplitOptions{TestSize: 0.2, ValidationSize: 0.2, Seed: 1}, train: 6, valid: 2, testSz: 3},
		{name: "no validation", n: 10, opts: SplitOptions{TestSize: 0.3}, train: 7, valid: 0, testSz: 3},
		{name: "train only", n: 5, opts: SplitOptions{}, train: 5, valid: 0, testSz: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			train, valid, test, err := SplitRows(tt.n, tt.opts)
			require.NoError(t, err)
			assert.Len(t, train, tt.train)
			assert.Len(t, valid, tt.valid)
			assert.Len(t, test, tt.testSz)

			all := append(append(append([]int{}, train...), valid...), test...)
			sort.Ints(all)
			for i, r := range all {
				require.Equal(t, i, r, "every row appears exactly once")
			}
		})
	}
}

func TestSplitRowsDeterministic(t *testing.T) {
	opts := SplitOptions{TestSize: 0.25, ValidationSize: 0.25, Seed: 42}
	a1, b1, c1, err := SplitRows(40, opts)
	require.NoError(t, err)
	a2, b2, c2, err := SplitRows(40, opts)
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, c1, c2)

	opts.Seed = 7
	a3, _, _, err := SplitRows(40, opts)
	require.NoError(t, err)
	assert.NotEqual(t, a1, a3)
}

func TestSplitRowsInvalid(t *testing.T) {
	tests := []struct {
		name string
		n    int
		opts SplitOptions
	}{
		{name: "negative test size", n: 10, opts: SplitOptions{TestSize: -0.1}},
		{name: "test size of one", n: 10, opts: SplitOptions{TestSize: 1}},
		{name: "validation size of one", n: 10, opts: SplitOptions{ValidationSize: 1}},
		{name: "no training rows left", n: 2, opts: SplitOptions{TestSize: 0.5, ValidationSize: 0.5}},
		{name: "empty table", n: 0, opts: SplitOptions{TestSize: 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := SplitRows(tt.n, tt.opts)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrTypeValidation, apperrors.TypeOf(err))
		})
	}
}

func TestSplitKeepsFeaturesAndTargetAligned(t *testing.T) {
	records := make([][]string, 20)
	labels := make([]string, 20)
	for i := range records {
		records[i] = []string{fmt.Sprint(i), fmt.Sprintf("c%d", i%3)}
		labels[i] = fmt.Sprintf("L%d", i)
	}
	frame, err := NewFrame([]string{"id", "cat"}, records)
	require.NoError(t, err)
	target := &Target{Name: "y", Values: labels}

	splits, err := Split(frame, target, SplitOptions{TestSize: 0.2, ValidationSize: 0.25, Seed: 42})
	require.NoError(t, err)

	total := 0
	for _, p := range splits.Partitions() {
		total += p.Features.Len()
		require.Equal(t, p.Features.Len(), p.Target.Len(), p.Name)
		ids, _ := p.Features.Column("id")
		for i, id := range ids {
			assert.Equal(t, "L"+id, p.Target.Values[i], "%s row %d", p.Name, i)
		}
	}
	assert.Equal(t, 20, total)
	assert.Equal(t, "train", splits.Train.Name)
	assert.Equal(t, 12, splits.Train.Features.Len())
	assert.Equal(t, 4, splits.Validation.Features.Len())
	assert.Equal(t, 4, splits.Test.Features.Len())
}

func TestSplitWithoutTarget(t *testing.T) {
	frame, err := NewFrame([]string{"a"}, [][]string{{"1"}, {"2"}, {"3"}})
	require.NoError(t, err)

	splits, err := Split(frame, nil, SplitOptions{TestSize: 0.3})
	require.NoError(t, err)
	assert.Nil(t, splits.Train.Target)
	assert.Equal(t, 2, splits.Train.Features.Len())
}

func TestSplitLengthMismatch(t *testing.T) {
	frame, err := NewFrame([]string{"a"}, [][]string{{"1"}, {"2"}})
	require.NoError(t, err)

	_, err = Split(frame, &Target{Name: "y", Values: []string{"1"}}, SplitOptions{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeValidation, apperrors.TypeOf(err))
}
