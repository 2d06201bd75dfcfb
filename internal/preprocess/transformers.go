package preprocess

import (
	"sort"
	"strconv"

	"featprep/pkg/contracts/domain"
)

// Imputation is the fitted fill value for one column. Numeric columns use
// Numeric (the median); categorical columns use Category (the most frequent
// value).
type Imputation struct {
	Column   string
	Kind     domain.Kind
	Numeric  float64
	Category string
	// Missing counts the cells filled while fitting
	Missing int
}

// Strategy returns the imputation strategy of the column kind
func (im Imputation) Strategy() domain.ImputeStrategy {
	return domain.StrategyFor(im.Kind)
}

// Fill returns the fill value rendered as text
func (im Imputation) Fill() string {
	if im.Kind == domain.KindNumeric {
		return strconv.FormatFloat(im.Numeric, 'g', -1, 64)
	}
	return im.Category
}

// LabelEncoder maps the sorted classes seen at fit time to codes 0..k-1.
// Values outside the fitted classes encode as the fallback class.
type LabelEncoder struct {
	classes []string
	codes   map[string]int
}

func newLabelEncoder(values []string) *LabelEncoder {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}

	classes := make([]string, 0, len(seen))
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Strings(classes)

	codes := make(map[string]int, len(classes))
	for i, c := range classes {
		codes[c] = i
	}
	return &LabelEncoder{classes: classes, codes: codes}
}

// Classes returns the fitted classes in code order
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Fallback returns the class substituted for unseen values
func (e *LabelEncoder) Fallback() string {
	return e.classes[0]
}

// Code returns the code of a fitted class
func (e *LabelEncoder) Code(value string) (int, bool) {
	c, ok := e.codes[value]
	return c, ok
}

// Encode maps values to codes and reports how many were unseen
func (e *LabelEncoder) Encode(values []string) ([]float64, int) {
	out := make([]float64, len(values))
	fallback := e.codes[e.Fallback()]
	unseen := 0
	for i, v := range values {
		c, ok := e.codes[v]
		if !ok {
			c = fallback
			unseen++
		}
		out[i] = float64(c)
	}
	return out, unseen
}

// StandardScaler holds the per-column mean and population standard deviation
// of the numeric block.
type StandardScaler struct {
	columns []string
	mean    map[string]float64
	std     map[string]float64
}

func fitStandardScaler(columns []string, data map[string][]float64) *StandardScaler {
	s := &StandardScaler{
		columns: append([]string(nil), columns...),
		mean:    make(map[string]float64, len(columns)),
		std:     make(map[string]float64, len(columns)),
	}
	for _, name := range columns {
		s.mean[name], s.std[name] = meanStd(data[name])
	}
	return s
}

// Columns returns the scaled column names
func (s *StandardScaler) Columns() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.columns...)
}

// Params returns the fitted mean and standard deviation of a column
func (s *StandardScaler) Params(column string) (mean, std float64, ok bool) {
	if s == nil {
		return 0, 0, false
	}
	mean, ok = s.mean[column]
	if !ok {
		return 0, 0, false
	}
	return mean, s.std[column], true
}

// scale standardises values in place
func (s *StandardScaler) scale(column string, values []float64) bool {
	mean, std, ok := s.Params(column)
	if !ok {
		return false
	}
	for i, v := range values {
		values[i] = (v - mean) / std
	}
	return true
}
