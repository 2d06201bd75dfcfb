package preprocess

import (
	"gonum.org/v1/gonum/mat"
)

// Output is a processed feature table: every cell is a float64, columns keep
// the input order and rows keep the input order.
type Output struct {
	columns []string
	index   map[string]int
	rows    int
	// data is nil when the table has no rows
	data *mat.Dense
}

// newOutput assembles column-major values into a dense row-major matrix
func newOutput(columns []string, values [][]float64, rows int) *Output {
	o := &Output{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
		rows:    rows,
	}
	for i, name := range columns {
		o.index[name] = i
	}
	if rows == 0 || len(columns) == 0 {
		return o
	}

	o.data = mat.NewDense(rows, len(columns), nil)
	for j, col := range values {
		o.data.SetCol(j, col)
	}
	return o
}

// Columns returns the output column names
func (o *Output) Columns() []string {
	return append([]string(nil), o.columns...)
}

// Rows returns the number of rows
func (o *Output) Rows() int { return o.rows }

// Matrix returns a copy of the values, or nil for an empty table
func (o *Output) Matrix() *mat.Dense {
	if o.data == nil {
		return nil
	}
	return mat.DenseCopyOf(o.data)
}

// Column returns a copy of the named column
func (o *Output) Column(name string) ([]float64, bool) {
	j, ok := o.index[name]
	if !ok {
		return nil, false
	}
	if o.data == nil {
		return []float64{}, true
	}
	return mat.Col(nil, j, o.data), true
}

// Row returns a copy of row r. Like mat.Dense it panics with
// mat.ErrRowAccess when r is out of range, including on an empty table.
func (o *Output) Row(r int) []float64 {
	if o.data == nil {
		if r < 0 || r >= o.rows {
			panic(mat.ErrRowAccess)
		}
		return []float64{}
	}
	return mat.Row(nil, r, o.data)
}

// At returns the value at row r of column c
func (o *Output) At(r, c int) float64 {
	if o.data == nil {
		if r < 0 || r >= o.rows {
			panic(mat.ErrRowAccess)
		}
		panic(mat.ErrColAccess)
	}
	return o.data.At(r, c)
}
