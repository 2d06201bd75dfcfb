package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "featprep/internal/errors"
)

const utf8BOM = "\ufeff"

// Supported file extensions
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
)

// Loader reads tabular files into frames
type Loader struct {
	logger *slog.Logger
	// Sheet selects the xlsx worksheet; empty means the first sheet
	Sheet string
}

// NewLoader creates a loader that logs through logger
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With("component", "dataset")}
}

// IsSupported reports whether path has an extension the loader can read
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtCSV, ExtXLSX:
		return true
	}
	return false
}

// Load reads path and splits off the target column. An empty target returns
// every column as a feature and a nil Target.
func (l *Loader) Load(ctx context.Context, path, target string) (*Frame, *Target, error) {
	frame, err := l.ReadFrame(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	if target == "" {
		return frame, nil, nil
	}

	if !frame.Has(target) {
		return nil, nil, apperrors.NewAppValidationError(
			fmt.Sprintf("target column %q not found in %s", target, filepath.Base(path))).
			WithContext("columns", frame.Columns())
	}

	features, labels, err := frame.Drop(target)
	if err != nil {
		return nil, nil, err
	}

	l.logger.InfoContext(ctx, "Split target from features",
		slog.String("target", target),
		slog.Int("features", features.Width()),
		slog.Int("rows", features.Len()))

	return features, &Target{Name: target, Values: labels}, nil
}

// ReadFrame reads path into a frame, dispatching on the file extension
func (l *Loader) ReadFrame(ctx context.Context, path string) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !IsSupported(path) {
		return nil, apperrors.NewUnsupportedFormatError(path).WithContext("extension", ext)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("data file %s", path))
		}
		return nil, apperrors.NewStorageError("failed to stat data file", err).WithContext("path", path)
	}

	var (
		header  []string
		records [][]string
		err     error
	)
	switch ext {
	case ExtCSV:
		header, records, err = l.readCSV(ctx, path)
	case ExtXLSX:
		header, records, err = l.readXLSX(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	frame, err := NewFrame(header, records)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "Loaded data file",
		slog.String("path", path),
		slog.String("format", strings.TrimPrefix(ext, ".")),
		slog.Int("rows", frame.Len()),
		slog.Int("columns", frame.Width()))

	return frame, nil
}

func (l *Loader) readCSV(ctx context.Context, path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to open data file", err).WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, apperrors.NewParsingError(fmt.Sprintf("%s has no header row", path), nil)
	}
	if err != nil {
		return nil, nil, apperrors.NewParsingError("failed to read CSV header", err).WithContext("path", path)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, apperrors.NewParsingError("failed to read CSV record", err).WithContext("path", path)
		}
		if len(records)%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}
		records = append(records, record)
	}

	return header, records, nil
}

func (l *Loader) readXLSX(ctx context.Context, path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, apperrors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	sheet := l.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, apperrors.NewParsingError(fmt.Sprintf("%s has no worksheets", path), nil)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err).
			WithContext("path", path)
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	l.logger.DebugContext(ctx, "Read worksheet",
		slog.String("sheet_name", sheet),
		slog.Int("total_rows", len(rows)))

	// Skip leading blank rows to find the header
	start := 0
	for start < len(rows) && isBlank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, nil, apperrors.NewParsingError(fmt.Sprintf("sheet %q has no header row", sheet), nil)
	}

	header := rows[start]
	records := make([][]string, 0, len(rows)-start-1)
	for _, row := range rows[start+1:] {
		if isBlank(row) {
			continue
		}
		records = append(records, row)
	}

	return header, records, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
