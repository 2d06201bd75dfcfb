// Command featprep fits feature preprocessing on a CSV or XLSX table and
// writes the processed train, validation and test splits.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	apperrors "featprep/internal/errors"
	"featprep/internal/infrastructure"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

func execute(args []string) (code int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := apperrors.NewErrorHandler(infrastructure.GetLogger(), false)
	defer func() {
		if r := recover(); r != nil {
			code = handler.HandlePanic(ctx, r)
		}
	}()

	root := newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "featprep: %v\n", err)
		// The logger may have been reconfigured by the command
		return apperrors.NewErrorHandler(infrastructure.GetLogger(), false).HandleError(ctx, err)
	}
	return apperrors.ExitOK
}
