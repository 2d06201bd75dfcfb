package domain

import (
	"fmt"
	"strings"
)

// Kind is the inferred type of a feature column
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// ParseKind converts a string to a Kind
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindNumeric:
		return KindNumeric, nil
	case KindCategorical:
		return KindCategorical, nil
	default:
		return "", fmt.Errorf("unknown column kind %q", s)
	}
}

// ImputeStrategy names how missing cells of a column are filled
type ImputeStrategy string

const (
	StrategyMedian       ImputeStrategy = "median"
	StrategyMostFrequent ImputeStrategy = "most_frequent"
)

// StrategyFor returns the imputation strategy applied to columns of kind k
func StrategyFor(k Kind) ImputeStrategy {
	if k == KindNumeric {
		return StrategyMedian
	}
	return StrategyMostFrequent
}

// Mode distinguishes fitting from applying fitted state
type Mode string

const (
	ModeFit       Mode = "fit"
	ModeTransform Mode = "transform"
)

// ColumnSummary describes the fitted state of one feature column
type ColumnSummary struct {
	Name     string         `json:"name"`
	Kind     Kind           `json:"kind"`
	Strategy ImputeStrategy `json:"strategy"`
	// Fill is the imputation value rendered as text
	Fill string `json:"fill"`
	// Missing counts the cells imputed while fitting
	Missing  int      `json:"missing"`
	Classes  []string `json:"classes,omitempty"`
	Fallback string   `json:"fallback,omitempty"`
	Mean     float64  `json:"mean"`
	Std      float64  `json:"std"`
}

// Header returns the CSV header used for column summaries
func (ColumnSummary) Header() []string {
	return []string{"name", "kind", "strategy", "fill", "missing", "classes", "fallback", "mean", "std"}
}
