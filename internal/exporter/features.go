package exporter

import (
	"context"
	"log/slog"

	"featprep/internal/config"
	"featprep/internal/dataset"
	apperrors "featprep/internal/errors"
	"featprep/internal/preprocess"
	"featprep/pkg/contracts/domain"
)

// checkEvery is how many rows are written between context checks
const checkEvery = 1024

// FeatureExporter writes processed splits, their labels and the fitted
// column summary
type FeatureExporter struct {
	writer *CSVWriter
	logger *slog.Logger
}

// NewFeatureExporter creates an exporter writing under paths.OutputDir
func NewFeatureExporter(paths *config.Paths, logger *slog.Logger) *FeatureExporter {
	writer := NewCSVWriter(paths, logger)
	return &FeatureExporter{
		writer: writer,
		logger: writer.logger,
	}
}

// ExportOutput writes a processed table with its column names as the header
func (e *FeatureExporter) ExportOutput(ctx context.Context, path string, out *preprocess.Output) (string, error) {
	if out == nil {
		return "", apperrors.NewAppValidationError("no processed output to export")
	}

	stream, err := e.writer.CreateStreamWriter(path, out.Columns(), false)
	if err != nil {
		return "", apperrors.NewStorageError("failed to create feature file", err).WithContext("path", path)
	}

	record := make([]string, len(out.Columns()))
	for r := 0; r < out.Rows(); r++ {
		if r%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				stream.Close()
				return "", err
			}
		}
		for c, v := range out.Row(r) {
			record[c] = formatFloat(v)
		}
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return "", apperrors.NewStorageError("failed to write feature row", err).WithContext("row", r)
		}
	}

	if err := stream.Close(); err != nil {
		return "", apperrors.NewStorageError("failed to close feature file", err).WithContext("path", stream.Path())
	}

	e.logger.InfoContext(ctx, "Exported feature table",
		slog.String("path", stream.Path()),
		slog.Int("rows", stream.Rows()),
		slog.Int("columns", len(record)))

	return stream.Path(), nil
}

// ExportTarget writes the labels of one split as a single column file
func (e *FeatureExporter) ExportTarget(ctx context.Context, path string, target *dataset.Target) (string, error) {
	if target == nil {
		return "", apperrors.NewAppValidationError("no target to export")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	records := make([][]string, len(target.Values))
	for i, v := range target.Values {
		records[i] = []string{v}
	}

	fullPath := e.writer.resolvePath(path)
	if err := e.writer.WriteSimpleCSV(fullPath, []string{target.Name}, records); err != nil {
		return "", apperrors.NewStorageError("failed to write target file", err).WithContext("path", fullPath)
	}
	return fullPath, nil
}

// ExportSummary writes one row per fitted column describing its imputation,
// encoding and scaling parameters
func (e *FeatureExporter) ExportSummary(ctx context.Context, path string, fitted *preprocess.Fitted) (string, error) {
	if fitted == nil {
		return "", apperrors.NewNotFittedError("preprocessor")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	summaries := fitted.Summary()
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, summaryRecord(s))
	}

	fullPath := e.writer.resolvePath(path)
	if err := e.writer.WriteSimpleCSV(fullPath, domain.ColumnSummary{}.Header(), records); err != nil {
		return "", apperrors.NewStorageError("failed to write feature summary", err).WithContext("path", fullPath)
	}

	e.logger.InfoContext(ctx, "Exported feature summary",
		slog.String("path", fullPath),
		slog.Int("columns", len(records)))

	return fullPath, nil
}

func summaryRecord(s domain.ColumnSummary) []string {
	mean, std := "", ""
	if s.Kind == domain.KindNumeric {
		mean, std = formatFloat(s.Mean), formatFloat(s.Std)
	}
	return []string{
		s.Name,
		string(s.Kind),
		string(s.Strategy),
		s.Fill,
		formatInt(s.Missing),
		formatList(s.Classes),
		s.Fallback,
		mean,
		std,
	}
}
