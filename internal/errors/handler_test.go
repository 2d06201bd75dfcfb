package errors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(includeStack bool) (*ErrorHandler, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	return NewErrorHandler(logger, includeStack), &buf
}

func TestErrorHandler_HandleError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		h, buf := newTestHandler(false)
		assert.Equal(t, ExitOK, h.HandleError(context.Background(), nil))
		assert.Empty(t, buf.String())
	})

	t.Run("app error logs type and context", func(t *testing.T) {
		h, buf := newTestHandler(false)
		err := NewSchemaMismatchError("missing columns [b]").WithContext("missing", []string{"b"})

		code := h.HandleError(context.Background(), fmt.Errorf("transform: %w", err))
		assert.Equal(t, ExitFailure, code)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "command failed", entry["msg"])
		assert.Equal(t, string(ErrTypeSchemaMismatch), entry["error_type"])
		assert.Equal(t, "Schema Mismatch", entry["title"])
		assert.Equal(t, "error_handler", entry["component"])

		ctxGroup, ok := entry["context"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, []interface{}{"b"}, ctxGroup["missing"])
		assert.NotContains(t, entry, "stack")
	})

	t.Run("stack included when enabled", func(t *testing.T) {
		h, buf := newTestHandler(true)
		h.HandleError(context.Background(), fmt.Errorf("plain"))
		assert.Contains(t, buf.String(), `"stack"`)
	})
}

func TestErrorHandler_ErrorToProblem(t *testing.T) {
	h, _ := newTestHandler(false)

	tests := []struct {
		name     string
		err      error
		wantType ErrorType
		title    string
	}{
		{"unsupported format", NewUnsupportedFormatError("a.json"), ErrTypeUnsupportedFormat, "Unsupported File Format"},
		{"not fitted", NewNotFittedError("preprocessor"), ErrTypeNotFitted, "Preprocessor Not Fitted"},
		{"wrapped parsing", fmt.Errorf("load: %w", NewParsingError("bad row", nil)), ErrTypeParsing, "Unreadable Data"},
		{"config", NewConfigError("bad", nil), ErrTypeConfig, "Invalid Configuration"},
		{"cancelled", context.Canceled, "CANCELLED", "Interrupted"},
		{"deadline", fmt.Errorf("stage: %w", context.DeadlineExceeded), "CANCELLED", "Interrupted"},
		{"plain error", fmt.Errorf("boom"), "INTERNAL", "Internal Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := h.ErrorToProblem(tt.err)
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, tt.title, p.Title)
			assert.Equal(t, ExitFailure, p.ExitCode)
		})
	}
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	h, buf := newTestHandler(false)
	assert.Equal(t, ExitFailure, h.HandlePanic(context.Background(), "kaboom"))
	assert.Contains(t, buf.String(), "kaboom")
	assert.Contains(t, buf.String(), "panic recovered")
}
