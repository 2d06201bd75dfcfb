// Package shared holds helpers used across featprep packages that belong to
// no single layer.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler, a slog.Handler that keeps records for assertions
//   - CSV and XLSX fixture writers for loader and pipeline tests
//   - SampleRows, a small mixed-type table with a missing cell
//
// Example usage:
//
//	func TestLoad(t *testing.T) {
//	    path := testutil.WriteCSVFixture(t, t.TempDir(), "data.csv", testutil.SampleRows())
//	    handler := testutil.NewBufferedSlogHandler(t)
//	    loader := dataset.NewLoader(slog.New(handler))
//	    ...
//	}
package shared
