// Package retry re-executes failed operations according to a bounded or
// unbounded schedule.
//
// A Retry policy invokes the operation, and on a retryable failure waits
// out the schedule-computed delay before trying again:
//
//	r := retry.New[string](retry.Config{
//	    MaxRetries: 3,
//	    Schedule:   retry.Exponential(100*time.Millisecond, 5*time.Second),
//	})
//	out := r.Execute(ctx, op)
//
// MaxRetries counts re-executions, not attempts: MaxRetries 0 means try
// once and never retry; retry.Forever retries until success or
// cancellation. Delays are interruptible: cancelling the context during a
// wait aborts the call with a canceled outcome.
//
// Which failures are retryable is decided by the RetryIf classifier. The
// default retries every failure except cancellation. When a retry wraps a
// circuit breaker or bulkhead, use SkipRejected to stop retrying failures
// those layers synthesize without running the operation.
package retry
