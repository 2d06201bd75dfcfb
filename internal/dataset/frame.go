package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "featprep/internal/errors"
	"featprep/pkg/contracts/domain"
)

// MissingMarkers are the cell values read as a missing observation
var MissingMarkers = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "None"}

var missingSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(MissingMarkers))
	for _, marker := range MissingMarkers {
		m[marker] = struct{}{}
	}
	return m
}()

// IsMissing reports whether cell holds one of the missing markers. NaN is
// missing in any letter case, matching what strconv would parse as NaN.
func IsMissing(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	if _, ok := missingSet[trimmed]; ok {
		return true
	}
	return strings.EqualFold(trimmed, "nan")
}

// ParseNumber parses a non-missing cell as a finite float64. Infinities and
// NaN are rejected so that a column holding them is not treated as numeric.
func ParseNumber(cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", cell)
	}
	return v, nil
}

// Frame is an in-memory table of named string columns. Cells are kept raw;
// typing happens on demand through Kind.
type Frame struct {
	columns []string
	index   map[string]int
	// cells is column-major: cells[col][row]
	cells [][]string
	rows  int
}

// NewFrame builds a frame from a header and row-major records. Short records
// are padded with empty cells; records longer than the header are rejected.
func NewFrame(header []string, records [][]string) (*Frame, error) {
	columns := normalizeHeader(header)

	f := &Frame{
		columns: columns,
		index:   make(map[string]int, len(columns)),
		cells:   make([][]string, len(columns)),
		rows:    len(records),
	}
	for i, name := range columns {
		if _, dup := f.index[name]; dup {
			return nil, apperrors.NewParsingError(fmt.Sprintf("duplicate column %q", name), nil)
		}
		f.index[name] = i
		f.cells[i] = make([]string, len(records))
	}

	for r, record := range records {
		if len(record) > len(columns) {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("row %d has %d cells but the header has %d columns", r+1, len(record), len(columns)), nil)
		}
		for c, cell := range record {
			f.cells[c][r] = cell
		}
	}

	return f, nil
}

// normalizeHeader trims names and labels blank ones "Unnamed: <index>"
func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		columns[i] = name
	}
	return columns
}

// Len returns the number of rows
func (f *Frame) Len() int { return f.rows }

// Width returns the number of columns
func (f *Frame) Width() int { return len(f.columns) }

// Columns returns the column names in order
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Has reports whether the frame has a column called name
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns a copy of the named column's cells
func (f *Frame) Column(name string) ([]string, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), f.cells[i]...), true
}

// Kind infers the type of the named column: numeric when every non-missing
// cell parses as a number, categorical otherwise. A column with no observed
// value is numeric.
func (f *Frame) Kind(name string) (domain.Kind, bool) {
	i, ok := f.index[name]
	if !ok {
		return "", false
	}
	return inferKind(f.cells[i]), true
}

// Kinds returns the inferred kind of every column
func (f *Frame) Kinds() map[string]domain.Kind {
	kinds := make(map[string]domain.Kind, len(f.columns))
	for i, name := range f.columns {
		kinds[name] = inferKind(f.cells[i])
	}
	return kinds
}

func inferKind(cells []string) domain.Kind {
	for _, cell := range cells {
		if IsMissing(cell) {
			continue
		}
		if _, err := ParseNumber(cell); err != nil {
			return domain.KindCategorical
		}
	}
	return domain.KindNumeric
}

// Floats parses the named column as numbers, returning NaN for missing cells
func (f *Frame) Floats(name string) ([]float64, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("column %q", name))
	}
	return parseFloats(name, f.cells[i])
}

func parseFloats(name string, cells []string) ([]float64, error) {
	out := make([]float64, len(cells))
	for r, cell := range cells {
		if IsMissing(cell) {
			out[r] = math.NaN()
			continue
		}
		v, err := ParseNumber(cell)
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("column %q row %d: %q is not a number", name, r+1, cell), err)
		}
		out[r] = v
	}
	return out, nil
}

// Select returns a new frame holding the given rows in the given order
func (f *Frame) Select(rows []int) *Frame {
	out := &Frame{
		columns: f.Columns(),
		index:   make(map[string]int, len(f.columns)),
		cells:   make([][]string, len(f.columns)),
		rows:    len(rows),
	}
	for i, name := range f.columns {
		out.index[name] = i
		col := make([]string, len(rows))
		for j, r := range rows {
			col[j] = f.cells[i][r]
		}
		out.cells[i] = col
	}
	return out
}

// Drop returns a frame without the named column along with that column's cells
func (f *Frame) Drop(name string) (*Frame, []string, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("column %q", name))
	}

	out := &Frame{
		index: make(map[string]int, len(f.columns)-1),
		rows:  f.rows,
	}
	for j, col := range f.columns {
		if j == i {
			continue
		}
		out.index[col] = len(out.columns)
		out.columns = append(out.columns, col)
		out.cells = append(out.cells, append([]string(nil), f.cells[j]...))
	}
	return out, append([]string(nil), f.cells[i]...), nil
}

// Row returns a copy of row r in column order
func (f *Frame) Row(r int) []string {
	row := make([]string, len(f.columns))
	for i := range f.columns {
		row[i] = f.cells[i][r]
	}
	return row
}

// Target is the label column split off a loaded table
type Target struct {
	Name   string
	Values []string
}

// Len returns the number of labels
func (t *Target) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Values)
}

// Floats parses the labels as numbers, returning NaN for missing cells
func (t *Target) Floats() ([]float64, error) {
	return parseFloats(t.Name, t.Values)
}

// Select returns the labels at the given rows
func (t *Target) Select(rows []int) *Target {
	if t == nil {
		return nil
	}
	values := make([]string, len(rows))
	for i, r := range rows {
		values[i] = t.Values[r]
	}
	return &Target{Name: t.Name, Values: values}
}
