package policy

import "context"

// Operation is a cancellable unit of work producing a value of type T.
// It is owned by the caller; policies invoke it (possibly several times)
// and never retain it beyond the call.
type Operation[T any] func(ctx context.Context) (T, error)

// Outcome is the result of executing an operation through a policy:
// a value on success, a classified error on failure. Immutable once
// produced.
type Outcome[T any] struct {
	value T
	err   error
}

// Success creates a successful outcome carrying value.
func Success[T any](value T) Outcome[T] {
	return Outcome[T]{value: value}
}

// Failure creates a failed outcome carrying err.
func Failure[T any](err error) Outcome[T] {
	return Outcome[T]{err: err}
}

// Ok reports whether the outcome is a success.
func (o Outcome[T]) Ok() bool {
	return o.err == nil
}

// Value returns the success value. It is the zero value for failed
// outcomes.
func (o Outcome[T]) Value() T {
	return o.value
}

// Err returns the failure error, or nil for successful outcomes.
func (o Outcome[T]) Err() error {
	return o.err
}

// Unwrap converts the outcome back into Go's conventional (value, error)
// pair. Useful when an outcome crosses a policy boundary.
func (o Outcome[T]) Unwrap() (T, error) {
	return o.value, o.err
}

// Kind classifies the outcome's error. KindNone for successes.
func (o Outcome[T]) Kind() Kind {
	return KindOf(o.err)
}

// Policy executes operations and produces outcomes. Implementations decide
// whether to invoke the operation at all, how many times, and what to do
// with its failures.
//
// Contract:
//   - Concurrency: Execute must be safe for concurrent use. Policies with
//     shared state (circuit breakers, bulkheads) serialize their own
//     transitions.
//   - Context: Execute must observe ctx at every suspension point and
//     surface cancellation as a failed outcome with KindCanceled.
//   - Errors: Execute never panics on operation failure; it returns a
//     failed outcome instead.
type Policy[T any] interface {
	Execute(ctx context.Context, op Operation[T]) Outcome[T]
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc[T any] func(ctx context.Context, op Operation[T]) Outcome[T]

// Execute calls f.
func (f PolicyFunc[T]) Execute(ctx context.Context, op Operation[T]) Outcome[T] {
	return f(ctx, op)
}

// NoOp is a passthrough policy: it runs the operation once and wraps the
// result, applying no resilience semantics. Useful as a neutral element in
// composition and in tests.
type NoOp[T any] struct{}

// Execute runs the operation exactly once.
func (NoOp[T]) Execute(ctx context.Context, op Operation[T]) Outcome[T] {
	value, err := op(ctx)
	if err != nil {
		return Failure[T](err)
	}
	return Success(value)
}
