package fallback

import (
	"context"

	"github.com/jonwraymond/faultops/policy"
)

// Config configures the fallback behavior.
type Config[T any] struct {
	// Value is the static substitute returned for handled failures.
	// Ignored when Handler is set.
	Value T

	// Handler computes a substitute from the failure. It may itself fail,
	// in which case its error becomes the outcome.
	Handler func(ctx context.Context, err error) (T, error)

	// HandleIf decides which failures are substituted.
	// Default: every failure except cancellation.
	HandleIf func(err error) bool

	// OnFallback is called with the original failure before the
	// substitute is produced.
	OnFallback func(err error)
}

// Fallback substitutes results for handled failures.
type Fallback[T any] struct {
	config Config[T]
}

// New creates a fallback policy.
func New[T any](config Config[T]) *Fallback[T] {
	// Apply defaults
	if config.HandleIf == nil {
		config.HandleIf = func(err error) bool {
			return err != nil && !policy.Canceled(err)
		}
	}

	return &Fallback[T]{config: config}
}

// Execute runs the operation and substitutes handled failures. Successes
// and unhandled failures pass through unchanged.
func (f *Fallback[T]) Execute(ctx context.Context, op policy.Operation[T]) policy.Outcome[T] {
	value, err := op(ctx)
	if err == nil {
		return policy.Success(value)
	}

	if !f.config.HandleIf(err) {
		return policy.Failure[T](err)
	}

	if f.config.OnFallback != nil {
		f.config.OnFallback(err)
	}

	if f.config.Handler != nil {
		substitute, handlerErr := f.config.Handler(ctx, err)
		if handlerErr != nil {
			return policy.Failure[T](handlerErr)
		}
		return policy.Success(substitute)
	}
	return policy.Success(f.config.Value)
}
