package retry

import (
	"context"
	"time"

	"github.com/jonwraymond/faultops/policy"
)

// Forever configures an unbounded schedule: the policy retries until the
// operation succeeds, the failure stops being retryable, or the context is
// canceled.
const Forever = -1

// Config configures the retry behavior.
type Config struct {
	// MaxRetries is the number of re-executions after the first attempt.
	// 0 means try once and never retry; Forever means unbounded.
	MaxRetries int

	// Schedule computes the delay before each retry.
	// Default: Constant(100ms).
	Schedule Schedule

	// RetryIf decides whether a failure is retryable.
	// Default: every failure except cancellation.
	RetryIf func(err error) bool

	// OnRetry is called after a retryable failure, before the delay wait,
	// with the 1-based attempt number that just failed, its error, and the
	// computed delay.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Retry re-executes failed operations.
type Retry[T any] struct {
	config Config
}

// New creates a retry policy.
func New[T any](config Config) *Retry[T] {
	// Apply defaults. MaxRetries keeps its zero value: 0 means try once.
	if config.MaxRetries < Forever {
		config.MaxRetries = Forever
	}
	if config.Schedule == nil {
		config.Schedule = Constant(100 * time.Millisecond)
	}
	if config.RetryIf == nil {
		config.RetryIf = Retryable
	}

	return &Retry[T]{config: config}
}

// Retryable is the default classifier: every failure is retryable except
// cancellation.
func Retryable(err error) bool {
	return err != nil && !policy.Canceled(err)
}

// SkipRejected refuses to retry failures a nested circuit breaker,
// bulkhead, or rate limiter synthesized without running the operation.
// Retrying against an open circuit only burns delay time.
func SkipRejected(err error) bool {
	return Retryable(err) && !policy.Rejected(err)
}

// Execute runs the operation, retrying retryable failures per the
// schedule. It returns the first success, or the last failure once the
// schedule is exhausted or the failure is not retryable.
func (r *Retry[T]) Execute(ctx context.Context, op policy.Operation[T]) policy.Outcome[T] {
	for attempt := 1; ; attempt++ {
		value, err := op(ctx)
		if err == nil {
			return policy.Success(value)
		}

		if !r.config.RetryIf(err) {
			return policy.Failure[T](err)
		}
		if r.config.MaxRetries != Forever && attempt > r.config.MaxRetries {
			return policy.Failure[T](err)
		}

		delay := r.config.Schedule(attempt)

		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, err, delay)
		}

		if waitErr := wait(ctx, delay); waitErr != nil {
			return policy.Failure[T](waitErr)
		}
	}
}

// Config returns the retry configuration.
func (r *Retry[T]) Config() Config {
	return r.config
}

// wait sleeps for delay or until ctx is canceled, whichever comes first.
func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
