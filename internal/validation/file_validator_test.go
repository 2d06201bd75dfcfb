package validation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "featprep/internal/errors"
)

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantErr   bool
	}{
		{
			name: "existing directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "directory created on demand",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nested", "out")
			},
		},
		{
			name: "path blocked by a file",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "blocker")
				require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
				return filepath.Join(file, "out")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFileValidator(nil)
			dir := tt.setupFunc(t)

			err := v.ValidateOutputDirectory(dir)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrTypeStorage, apperrors.TypeOf(err))
				return
			}
			require.NoError(t, err)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "write probe should be removed")
		})
	}
}

func TestFileValidator_ValidateFile(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()
	file := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(file, []byte("a\n1\n"), 0644))

	assert.NoError(t, v.ValidateFile(file))

	err := v.ValidateFile(filepath.Join(dir, "missing.csv"))
	assert.Equal(t, apperrors.ErrTypeNotFound, apperrors.TypeOf(err))

	err = v.ValidateFile(dir)
	assert.Equal(t, apperrors.ErrTypeValidation, apperrors.TypeOf(err))
}

func TestFileValidator_ValidateDataFile(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		create   bool
		wantType apperrors.ErrorType
	}{
		{name: "csv file", fileName: "data.csv", create: true},
		{name: "xlsx file", fileName: "data.xlsx", create: true},
		{name: "upper case extension", fileName: "DATA.CSV", create: true},
		{name: "legacy excel", fileName: "data.xls", create: true, wantType: apperrors.ErrTypeUnsupportedFormat},
		{name: "json file", fileName: "data.json", create: true, wantType: apperrors.ErrTypeUnsupportedFormat},
		{name: "no extension", fileName: "data", create: true, wantType: apperrors.ErrTypeUnsupportedFormat},
		{name: "office lock file", fileName: "~$data.xlsx", create: true, wantType: apperrors.ErrTypeValidation},
		{name: "missing file", fileName: "absent.csv", wantType: apperrors.ErrTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFileValidator(nil)
			path := filepath.Join(t.TempDir(), tt.fileName)
			if tt.create {
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
			}

			err := v.ValidateDataFile(path)
			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
		})
	}
}

func TestFileValidator_UnsupportedMatchesSentinel(t *testing.T) {
	v := NewFileValidator(nil)
	err := v.ValidateDataFile(filepath.Join(t.TempDir(), "report.parquet"))
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedFormat))
}
