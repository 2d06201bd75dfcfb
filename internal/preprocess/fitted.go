package preprocess

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"featprep/internal/dataset"
	apperrors "featprep/internal/errors"
	"featprep/pkg/contracts/domain"
)

// Fitted is the state learned by Fit. It is read-only once returned, so a
// single value may be shared by concurrent Transform calls.
type Fitted struct {
	schema       Schema
	imputers     map[string]Imputation
	encoders     map[string]*LabelEncoder
	scaler       *StandardScaler
	featureNames []string
}

// Fit learns imputation fill values, label encoders and the standard scaler
// from frame and returns them along with frame transformed by them.
func Fit(ctx context.Context, frame *dataset.Frame, opts ...Option) (*Fitted, *Output, error) {
	o := buildOptions(opts)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if frame == nil || frame.Width() == 0 {
		return nil, nil, apperrors.NewAppValidationError("cannot fit on a table with no feature columns")
	}
	if frame.Len() == 0 {
		return nil, nil, apperrors.NewAppValidationError("cannot fit on a table with no rows")
	}

	f := &Fitted{
		schema:   schemaOf(frame),
		imputers: make(map[string]Imputation),
		encoders: make(map[string]*LabelEncoder),
	}

	values := make([][]float64, f.schema.Len())
	numeric := make(map[string][]float64)

	for i, col := range f.schema.columns {
		cells, _ := frame.Column(col.Name)

		switch col.Kind {
		case domain.KindNumeric:
			imputed, im, err := fitNumeric(col.Name, cells)
			if err != nil {
				return nil, nil, err
			}
			f.imputers[col.Name] = im
			numeric[col.Name] = imputed
			values[i] = imputed

		case domain.KindCategorical:
			imputed, im, err := fitCategorical(col.Name, cells)
			if err != nil {
				return nil, nil, err
			}
			enc := newLabelEncoder(imputed)
			codes, _ := enc.Encode(imputed)
			f.imputers[col.Name] = im
			f.encoders[col.Name] = enc
			values[i] = codes
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f.scaler = fitStandardScaler(f.schema.Numeric(), numeric)
	for _, name := range f.schema.Numeric() {
		f.scaler.scale(name, numeric[name])
	}

	f.featureNames = f.schema.Names()
	out := newOutput(f.featureNames, values, frame.Len())

	o.observeRows(ctx, string(domain.ModeFit), frame.Len())
	o.logger.InfoContext(ctx, "Fitted preprocessor",
		slog.Int("rows", frame.Len()),
		slog.Int("numeric_columns", len(f.schema.Numeric())),
		slog.Int("categorical_columns", len(f.schema.Categorical())))

	return f, out, nil
}

func fitNumeric(name string, cells []string) ([]float64, Imputation, error) {
	parsed := make([]float64, len(cells))
	for r, cell := range cells {
		if dataset.IsMissing(cell) {
			parsed[r] = math.NaN()
			continue
		}
		v, err := dataset.ParseNumber(cell)
		if err != nil {
			return nil, Imputation{}, apperrors.NewParsingError(
				fmt.Sprintf("column %q row %d: %q is not a number", name, r+1, cell), err)
		}
		parsed[r] = v
	}

	fill, ok := median(parsed)
	if !ok {
		return nil, Imputation{}, apperrors.NewAppValidationError(
			fmt.Sprintf("column %q has no observed values to impute from", name))
	}

	im := Imputation{Column: name, Kind: domain.KindNumeric, Numeric: fill}
	for r, v := range parsed {
		if math.IsNaN(v) {
			parsed[r] = fill
			im.Missing++
		}
	}
	return parsed, im, nil
}

func fitCategorical(name string, cells []string) ([]string, Imputation, error) {
	observed := make([]string, 0, len(cells))
	for _, cell := range cells {
		if !dataset.IsMissing(cell) {
			observed = append(observed, cell)
		}
	}

	fill, _, ok := mostFrequent(observed)
	if !ok {
		return nil, Imputation{}, apperrors.NewAppValidationError(
			fmt.Sprintf("column %q has no observed values to impute from", name))
	}

	im := Imputation{Column: name, Kind: domain.KindCategorical, Category: fill}
	imputed := make([]string, len(cells))
	for r, cell := range cells {
		if dataset.IsMissing(cell) {
			imputed[r] = fill
			im.Missing++
			continue
		}
		imputed[r] = cell
	}
	return imputed, im, nil
}

// Transform applies the fitted state to frame. The frame must carry exactly
// the fitted columns, in any order; output columns follow the frame's order.
// Categorical values not seen at fit time encode as the column's fallback
// class. Transform never modifies f.
func (f *Fitted) Transform(ctx context.Context, frame *dataset.Frame, opts ...Option) (*Output, error) {
	o := buildOptions(opts)

	if f == nil || f.schema.Len() == 0 {
		return nil, apperrors.NewNotFittedError("preprocessor")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, apperrors.NewAppValidationError("cannot transform a nil table")
	}
	if err := f.schema.check(frame); err != nil {
		return nil, err
	}

	columns := frame.Columns()
	values := make([][]float64, len(columns))
	unseen := make(map[string]int)

	for i, name := range columns {
		kind, _ := f.schema.Kind(name)
		im, ok := f.imputers[name]
		if !ok {
			return nil, apperrors.NewNotFittedError(fmt.Sprintf("imputer for column %q", name))
		}
		cells, _ := frame.Column(name)

		switch kind {
		case domain.KindNumeric:
			col, err := applyNumeric(name, cells, im)
			if err != nil {
				return nil, err
			}
			if !f.scaler.scale(name, col) {
				return nil, apperrors.NewNotFittedError(fmt.Sprintf("scaler for column %q", name))
			}
			values[i] = col

		case domain.KindCategorical:
			enc, ok := f.encoders[name]
			if !ok {
				return nil, apperrors.NewNotFittedError(fmt.Sprintf("encoder for column %q", name))
			}
			codes, n := enc.Encode(applyCategorical(cells, im))
			if n > 0 {
				unseen[name] = n
			}
			values[i] = codes
		}
	}

	out := newOutput(columns, values, frame.Len())

	for _, name := range columns {
		if n, ok := unseen[name]; ok {
			o.observeUnseen(ctx, name, n)
			o.logger.WarnContext(ctx, "Unseen categories replaced by fallback class",
				slog.String("column", name),
				slog.Int("count", n),
				slog.String("fallback", f.encoders[name].Fallback()))
		}
	}
	o.observeRows(ctx, string(domain.ModeTransform), frame.Len())
	o.logger.DebugContext(ctx, "Transformed table", slog.Int("rows", frame.Len()))

	return out, nil
}

func applyNumeric(name string, cells []string, im Imputation) ([]float64, error) {
	out := make([]float64, len(cells))
	for r, cell := range cells {
		if dataset.IsMissing(cell) {
			out[r] = im.Numeric
			continue
		}
		v, err := dataset.ParseNumber(cell)
		if err != nil {
			return nil, apperrors.NewSchemaMismatchError(
				fmt.Sprintf("column %q was numeric at fit time but row %d holds %q", name, r+1, cell)).
				WithContext("column", name)
		}
		out[r] = v
	}
	return out, nil
}

func applyCategorical(cells []string, im Imputation) []string {
	out := make([]string, len(cells))
	for r, cell := range cells {
		if dataset.IsMissing(cell) {
			out[r] = im.Category
			continue
		}
		out[r] = cell
	}
	return out
}

// Schema returns the column partition frozen at fit time
func (f *Fitted) Schema() Schema { return f.schema }

// FeatureNames returns the output column names recorded at fit time
func (f *Fitted) FeatureNames() []string {
	return append([]string(nil), f.featureNames...)
}

// Imputation returns the fitted fill value of a column
func (f *Fitted) Imputation(column string) (Imputation, bool) {
	im, ok := f.imputers[column]
	return im, ok
}

// Encoder returns the label encoder of a categorical column
func (f *Fitted) Encoder(column string) (*LabelEncoder, bool) {
	enc, ok := f.encoders[column]
	return enc, ok
}

// Scaler returns the standard scaler of the numeric block
func (f *Fitted) Scaler() *StandardScaler { return f.scaler }

// Summary describes the fitted state of each column in fit order
func (f *Fitted) Summary() []domain.ColumnSummary {
	summaries := make([]domain.ColumnSummary, 0, f.schema.Len())
	for _, col := range f.schema.columns {
		im := f.imputers[col.Name]
		s := domain.ColumnSummary{
			Name:     col.Name,
			Kind:     col.Kind,
			Strategy: im.Strategy(),
			Fill:     im.Fill(),
			Missing:  im.Missing,
		}
		if enc, ok := f.encoders[col.Name]; ok {
			s.Classes = enc.Classes()
			s.Fallback = enc.Fallback()
		}
		if mean, std, ok := f.scaler.Params(col.Name); ok {
			s.Mean, s.Std = mean, std
		}
		summaries = append(summaries, s)
	}
	return summaries
}
