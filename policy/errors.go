package policy

import (
	"context"
	"errors"
)

// Sentinel errors synthesized by the concrete policies. They are defined
// here so that callers and outer layers can classify failures without
// importing every policy package.
var (
	// ErrCircuitOpen is returned when a circuit breaker rejects a call
	// without invoking the operation.
	ErrCircuitOpen = errors.New("policy: circuit breaker is open")

	// ErrBulkheadFull is returned when a bulkhead has no execution or
	// queue slot left. The operation is never invoked.
	ErrBulkheadFull = errors.New("policy: bulkhead at capacity")

	// ErrTimeout is returned when a timeout policy gives up on an
	// operation past its deadline.
	ErrTimeout = errors.New("policy: operation timed out")

	// ErrRateLimited is returned when a rate limiter rejects a call
	// without invoking the operation.
	ErrRateLimited = errors.New("policy: rate limit exceeded")
)

// Kind is the coarse classification of a failure. Callers are expected to
// branch on kinds rather than on concrete policy types.
type Kind int

const (
	// KindNone means no failure occurred.
	KindNone Kind = iota
	// KindOperation means the operation itself ran and failed.
	KindOperation
	// KindCircuitOpen means a circuit breaker rejected the call.
	KindCircuitOpen
	// KindBulkheadFull means a bulkhead rejected the call.
	KindBulkheadFull
	// KindTimeout means a timeout policy abandoned the call.
	KindTimeout
	// KindRateLimited means a rate limiter rejected the call.
	KindRateLimited
	// KindCanceled means the caller's context was canceled or its
	// deadline expired.
	KindCanceled
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindOperation:
		return "operation"
	case KindCircuitOpen:
		return "circuit_open"
	case KindBulkheadFull:
		return "bulkhead_full"
	case KindTimeout:
		return "timeout"
	case KindRateLimited:
		return "rate_limited"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// KindOf classifies err. Wrapped errors are unwrapped via errors.Is, so a
// policy may add context with fmt.Errorf("...: %w", ...) without losing
// the classification.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrCircuitOpen):
		return KindCircuitOpen
	case errors.Is(err, ErrBulkheadFull):
		return KindBulkheadFull
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindOperation
	}
}

// Rejected reports whether err was synthesized by a policy without the
// operation ever being attempted.
func Rejected(err error) bool {
	switch KindOf(err) {
	case KindCircuitOpen, KindBulkheadFull, KindRateLimited:
		return true
	default:
		return false
	}
}

// Canceled reports whether err represents caller cancellation.
func Canceled(err error) bool {
	return KindOf(err) == KindCanceled
}
