package dataset

import (
	"fmt"
	"math"
	"math/rand"

	apperrors "featprep/internal/errors"
)

// SplitOptions controls the three-way shuffled split. ValidationSize is a
// fraction of the rows left after the test rows are removed.
type SplitOptions struct {
	TestSize       float64
	ValidationSize float64
	Seed           int64
}

// Partition is one named slice of a split table
type Partition struct {
	Name     string
	Rows     []int
	Features *Frame
	Target   *Target
}

// Splits holds the train, validation and test partitions
type Splits struct {
	Train      Partition
	Validation Partition
	Test       Partition
}

// Partitions returns the three partitions in train, validation, test order
func (s *Splits) Partitions() []Partition {
	return []Partition{s.Train, s.Validation, s.Test}
}

// SplitRows shuffles 0..n-1 with seed and cuts it into train, validation and
// test index lists. Test and validation counts are rounded up.
func SplitRows(n int, opts SplitOptions) (train, validation, test []int, err error) {
	if err := opts.validate(); err != nil {
		return nil, nil, nil, err
	}

	nTest := int(math.Ceil(opts.TestSize * float64(n)))
	nRest := n - nTest
	nValidation := int(math.Ceil(opts.ValidationSize * float64(nRest)))
	nTrain := nRest - nValidation

	if nTrain < 1 {
		return nil, nil, nil, apperrors.NewAppValidationError(
			fmt.Sprintf("split of %d rows leaves no training rows (test=%.2f, validation=%.2f)",
				n, opts.TestSize, opts.ValidationSize))
	}

	perm := rand.New(rand.NewSource(opts.Seed)).Perm(n)

	test = perm[:nTest]
	validation = perm[nTest : nTest+nValidation]
	train = perm[nTest+nValidation:]
	return train, validation, test, nil
}

func (o SplitOptions) validate() error {
	if o.TestSize < 0 || o.TestSize >= 1 {
		return apperrors.NewAppValidationError(fmt.Sprintf("test size must be in [0, 1), got %v", o.TestSize))
	}
	if o.ValidationSize < 0 || o.ValidationSize >= 1 {
		return apperrors.NewAppValidationError(fmt.Sprintf("validation size must be in [0, 1), got %v", o.ValidationSize))
	}
	return nil
}

// Split cuts features and target into train, validation and test partitions.
// target may be nil.
func Split(features *Frame, target *Target, opts SplitOptions) (*Splits, error) {
	if target != nil && target.Len() != features.Len() {
		return nil, apperrors.NewAppValidationError(
			fmt.Sprintf("target has %d rows but features have %d", target.Len(), features.Len()))
	}

	train, validation, test, err := SplitRows(features.Len(), opts)
	if err != nil {
		return nil, err
	}

	part := func(name string, rows []int) Partition {
		return Partition{
			Name:     name,
			Rows:     rows,
			Features: features.Select(rows),
			Target:   target.Select(rows),
		}
	}

	return &Splits{
		Train:      part("train", train),
		Validation: part("validation", validation),
		Test:       part("test", test),
	}, nil
}
