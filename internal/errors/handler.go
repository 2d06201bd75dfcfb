package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
)

// Exit codes returned by commands
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Problem is the operator-facing description of a failed command
type Problem struct {
	Type     ErrorType
	Title    string
	Detail   string
	ExitCode int
	Context  map[string]interface{}
}

var titles = map[ErrorType]string{
	ErrTypeUnsupportedFormat: "Unsupported File Format",
	ErrTypeNotFitted:         "Preprocessor Not Fitted",
	ErrTypeSchemaMismatch:    "Schema Mismatch",
	ErrTypeParsing:           "Unreadable Data",
	ErrTypeStorage:           "Storage Failure",
	ErrTypeValidation:        "Invalid Input",
	ErrTypeNotFound:          "Not Found",
	ErrTypeConfig:            "Invalid Configuration",
}

// ErrorHandler turns command errors into a log entry and an exit code
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError logs err with its type and context and returns the exit code
func (h *ErrorHandler) HandleError(ctx context.Context, err error) int {
	if err == nil {
		return ExitOK
	}

	problem := h.ErrorToProblem(err)

	attrs := []any{
		slog.String("error", err.Error()),
		slog.String("error_type", string(problem.Type)),
		slog.String("title", problem.Title),
	}
	if len(problem.Context) > 0 {
		attrs = append(attrs, slog.Group("context", contextAttrs(problem.Context)...))
	}
	if h.includeStack {
		attrs = append(attrs, slog.String("stack", string(debug.Stack())))
	}

	h.logger.ErrorContext(ctx, "command failed", attrs...)
	return problem.ExitCode
}

// ErrorToProblem classifies err
func (h *ErrorHandler) ErrorToProblem(err error) *Problem {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Problem{
			Type:     "CANCELLED",
			Title:    "Interrupted",
			Detail:   "the run was cancelled before it finished",
			ExitCode: ExitFailure,
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		title, ok := titles[appErr.Type]
		if !ok {
			title = "Application Error"
		}
		return &Problem{
			Type:     appErr.Type,
			Title:    title,
			Detail:   appErr.Message,
			ExitCode: ExitFailure,
			Context:  appErr.Context,
		}
	}

	return &Problem{
		Type:     "INTERNAL",
		Title:    "Internal Error",
		Detail:   err.Error(),
		ExitCode: ExitFailure,
	}
}

// HandlePanic logs a recovered panic and returns the exit code
func (h *ErrorHandler) HandlePanic(ctx context.Context, recovered interface{}) int {
	h.logger.ErrorContext(ctx, "panic recovered",
		slog.String("panic", fmt.Sprint(recovered)),
		slog.String("stack", string(debug.Stack())))
	return ExitFailure
}

func contextAttrs(ctx map[string]interface{}) []any {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, ctx[k]))
	}
	return attrs
}
