// Package exporter writes preprocessing results to CSV files.
//
// CSVWriter holds the low level writing: whole-file writes and a streaming
// writer for large tables, with an optional UTF-8 BOM for Excel.
// Relative paths land in the configured output directory.
//
// FeatureExporter builds on it to write the processed split tables, the
// label column of each split and the per-column summary of a fitted
// preprocessor:
//
//	exp := exporter.NewFeatureExporter(paths, logger)
//	if _, err := exp.ExportOutput(ctx, paths.GetSplitPath("train"), out); err != nil {
//		return err
//	}
//	_, err := exp.ExportSummary(ctx, paths.FeatureSummaryCSV, fitted)
package exporter
