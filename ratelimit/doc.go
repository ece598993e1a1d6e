// Package ratelimit controls the rate of operations with a token bucket.
//
// A Limiter holds Burst tokens and refills them at Rate tokens per second.
// Each execution spends one token. Without tokens the call is rejected
// with policy.ErrRateLimited before the operation runs; with WaitOnLimit
// set, the caller instead waits (up to MaxWait, interruptible by its
// context) for a token.
//
// Like circuit breakers and bulkheads, a Limiter is shared mutable state:
// one instance per protected resource, reused across calls.
package ratelimit
