package timeout

import (
	"context"
	"errors"
	"time"

	"github.com/jonwraymond/faultops/policy"
)

// Mode selects how the deadline is enforced.
type Mode int

const (
	// ModePessimistic abandons the operation past the deadline and
	// returns to the caller immediately.
	ModePessimistic Mode = iota
	// ModeOptimistic passes a deadline context into the operation and
	// waits for it to return.
	ModeOptimistic
)

// Config configures the timeout policy.
type Config struct {
	// Timeout is the maximum duration for the operation.
	// Default: 30 seconds
	Timeout time.Duration

	// Mode selects pessimistic or optimistic enforcement.
	// Default: ModePessimistic
	Mode Mode

	// OnTimeout is called when the deadline fires, with the elapsed time.
	OnTimeout func(elapsed time.Duration)
}

// Timeout bounds operation duration.
type Timeout[T any] struct {
	config Config
}

// New creates a timeout policy.
func New[T any](config Config) *Timeout[T] {
	// Apply defaults
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Timeout[T]{config: config}
}

// Execute runs the operation under the deadline. A deadline hit surfaces
// as policy.ErrTimeout; the caller's own cancellation surfaces unchanged.
func (t *Timeout[T]) Execute(ctx context.Context, op policy.Operation[T]) policy.Outcome[T] {
	if t.config.Mode == ModeOptimistic {
		return t.executeOptimistic(ctx, op)
	}
	return t.executePessimistic(ctx, op)
}

func (t *Timeout[T]) executePessimistic(ctx context.Context, op policy.Operation[T]) policy.Outcome[T] {
	opCtx, cancel := context.WithTimeout(ctx, t.config.Timeout)
	defer cancel()

	start := time.Now()

	// Buffered so the abandoned operation can finish and be collected
	// even after the caller has moved on.
	done := make(chan policy.Outcome[T], 1)
	go func() {
		value, err := op(opCtx)
		if err != nil {
			done <- policy.Failure[T](err)
			return
		}
		done <- policy.Success(value)
	}()

	select {
	case out := <-done:
		return out
	case <-opCtx.Done():
		// Both channels fire when the caller cancels; the caller's
		// cancellation wins over the deadline.
		if err := ctx.Err(); err != nil {
			return policy.Failure[T](err)
		}
		if t.config.OnTimeout != nil {
			t.config.OnTimeout(time.Since(start))
		}
		return policy.Failure[T](policy.ErrTimeout)
	}
}

func (t *Timeout[T]) executeOptimistic(ctx context.Context, op policy.Operation[T]) policy.Outcome[T] {
	opCtx, cancel := context.WithTimeout(ctx, t.config.Timeout)
	defer cancel()

	start := time.Now()

	value, err := op(opCtx)
	if err == nil {
		return policy.Success(value)
	}

	// Only our own deadline maps to a timeout; the caller's cancellation
	// or deadline propagates as is.
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		if t.config.OnTimeout != nil {
			t.config.OnTimeout(time.Since(start))
		}
		return policy.Failure[T](policy.ErrTimeout)
	}
	return policy.Failure[T](err)
}

// Config returns the timeout configuration.
func (t *Timeout[T]) Config() Config {
	return t.config
}
