package preprocess

import (
	"context"
	"log/slog"
)

// Observer receives row and unseen-category counts from fit and transform
type Observer interface {
	ObserveRows(ctx context.Context, mode string, rows int)
	ObserveUnseen(ctx context.Context, column string, count int)
}

type options struct {
	logger   *slog.Logger
	observer Observer
}

// Option configures Fit, Transform and Preprocessor
type Option func(*options)

// WithLogger sets the logger used for fit and transform milestones
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver sets the metrics observer
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With("component", "preprocess")
	return o
}

func (o options) observeRows(ctx context.Context, mode string, rows int) {
	if o.observer != nil {
		o.observer.ObserveRows(ctx, mode, rows)
	}
}

func (o options) observeUnseen(ctx context.Context, column string, count int) {
	if o.observer != nil {
		o.observer.ObserveUnseen(ctx, column, count)
	}
}
