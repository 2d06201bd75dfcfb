package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SampleRows is a small mixed-type dataset with a header row. "num" has one
// missing cell, "cat" has three classes and "price" is the target.
func SampleRows() [][]string {
	return [][]string{
		{"num", "cat", "price"},
		{"10", "x", "100"},
		{"20", "y", "200"},
		{"", "z", "300"},
		{"40", "x", "400"},
	}
}

// WriteCSVFixture writes rows to dir/name as CSV and returns the path
func WriteCSVFixture(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create csv fixture: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write csv fixture: %v", err)
	}
	return path
}

// WriteXLSXFixture writes rows to the first sheet of a new workbook at
// dir/name. An empty sheet keeps excelize's default "Sheet1".
func WriteXLSXFixture(t *testing.T, dir, name, sheet string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	} else if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx fixture: %v", err)
	}
	return path
}
