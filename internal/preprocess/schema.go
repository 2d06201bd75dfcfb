package preprocess

import (
	"fmt"
	"sort"
	"strings"

	"featprep/internal/dataset"
	apperrors "featprep/internal/errors"
	"featprep/pkg/contracts/domain"
)

// ColumnSpec is one column of a frozen schema
type ColumnSpec struct {
	Name string
	Kind domain.Kind
}

// Schema is the ordered column partition captured at fit time
type Schema struct {
	columns []ColumnSpec
	kinds   map[string]domain.Kind
}

func schemaOf(frame *dataset.Frame) Schema {
	kinds := frame.Kinds()
	s := Schema{kinds: kinds}
	for _, name := range frame.Columns() {
		s.columns = append(s.columns, ColumnSpec{Name: name, Kind: kinds[name]})
	}
	return s
}

// Columns returns the schema columns in fit order
func (s Schema) Columns() []ColumnSpec {
	return append([]ColumnSpec(nil), s.columns...)
}

// Names returns the column names in fit order
func (s Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of columns
func (s Schema) Len() int { return len(s.columns) }

// Kind returns the fit-time kind of the named column
func (s Schema) Kind(name string) (domain.Kind, bool) {
	k, ok := s.kinds[name]
	return k, ok
}

// Numeric returns the numeric column names in fit order
func (s Schema) Numeric() []string { return s.byKind(domain.KindNumeric) }

// Categorical returns the categorical column names in fit order
func (s Schema) Categorical() []string { return s.byKind(domain.KindCategorical) }

func (s Schema) byKind(k domain.Kind) []string {
	var names []string
	for _, c := range s.columns {
		if c.Kind == k {
			names = append(names, c.Name)
		}
	}
	return names
}

// check reports a schema mismatch when frame does not carry exactly the
// fitted column set. Column order may differ.
func (s Schema) check(frame *dataset.Frame) error {
	var missing, extra []string
	for _, c := range s.columns {
		if !frame.Has(c.Name) {
			missing = append(missing, c.Name)
		}
	}
	for _, name := range frame.Columns() {
		if _, ok := s.kinds[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	sort.Strings(missing)
	sort.Strings(extra)

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing columns %s", strings.Join(missing, ", ")))
	}
	if len(extra) > 0 {
		parts = append(parts, fmt.Sprintf("unexpected columns %s", strings.Join(extra, ", ")))
	}
	return apperrors.NewSchemaMismatchError(strings.Join(parts, "; ")).
		WithContext("missing", missing).
		WithContext("extra", extra)
}
