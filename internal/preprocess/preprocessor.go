package preprocess

import (
	"context"
	"sync"

	"featprep/internal/dataset"
	apperrors "featprep/internal/errors"
)

// Preprocessor keeps the state of its most recent successful fit and replays
// it on later tables. Fit and transform calls on one Preprocessor are
// serialised against each other; transforms run concurrently.
type Preprocessor struct {
	mu     sync.RWMutex
	fitted *Fitted
	opts   []Option
}

// New creates an unfitted Preprocessor
func New(opts ...Option) *Preprocessor {
	return &Preprocessor{opts: opts}
}

// Preprocess fits on frame and transforms it when fit is true, otherwise it
// transforms frame with the stored state. A transform before any successful
// fit returns a not-fitted error. A failed fit leaves the previous state.
func (p *Preprocessor) Preprocess(ctx context.Context, frame *dataset.Frame, fit bool) (*Output, error) {
	if fit {
		p.mu.Lock()
		defer p.mu.Unlock()

		fitted, out, err := Fit(ctx, frame, p.opts...)
		if err != nil {
			return nil, err
		}
		p.fitted = fitted
		return out, nil
	}

	p.mu.RLock()
	fitted := p.fitted
	p.mu.RUnlock()

	if fitted == nil {
		return nil, apperrors.NewNotFittedError("preprocessor")
	}
	return fitted.Transform(ctx, frame, p.opts...)
}

// Fitted returns the stored state and whether a fit has succeeded
func (p *Preprocessor) Fitted() (*Fitted, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fitted, p.fitted != nil
}

// FeatureNames returns the output column names recorded by the last fit
func (p *Preprocessor) FeatureNames() []string {
	fitted, ok := p.Fitted()
	if !ok {
		return nil
	}
	return fitted.FeatureNames()
}
