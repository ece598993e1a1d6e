// Package policy defines the core types of the resilience engine.
//
// A policy wraps an arbitrary unit of work, an Operation that can fail or
// hang, and decides how its result is handled: retried, substituted,
// rejected, or propagated. The concrete policies live in their own packages
// (retry, circuit, bulkhead, timeout, fallback, ratelimit); this package
// holds what they all share.
//
// # Operations and Outcomes
//
// An Operation is a zero-argument, cancellable unit of work:
//
//	op := func(ctx context.Context) (string, error) {
//	    return fetch(ctx, url)
//	}
//
// Executing an operation through a policy produces an Outcome: either a
// value or a classified error. Outcomes are immutable and live only for the
// call that produced them.
//
// # Composition
//
// Policies compose with Wrap and Compose. The outermost policy executes an
// operation that executes the next policy inward, and so on until the
// caller's operation runs:
//
//	p := policy.Compose[string](retryPolicy, breaker, timeoutPolicy)
//	out := p.Execute(ctx, op)
//
// Composition is associative: grouping does not change the call order, only
// the nesting expresses it. A layer observes the Outcome that crosses its
// boundary and nothing else about its neighbors.
//
// # Error kinds
//
// Failures synthesized by a policy without running the operation (open
// circuit, full bulkhead, exhausted rate limit) are distinguishable from
// operation failures by kind:
//
//	switch policy.KindOf(out.Err()) {
//	case policy.KindCircuitOpen:
//	    // the operation was never attempted
//	case policy.KindOperation:
//	    // the operation itself failed
//	}
//
// # Blocking and asynchronous use
//
// Execute blocks the calling goroutine through every suspension point
// (retry delays, queue waits, deadline waits). Go runs the same execution
// on its own goroutine and hands back a Future for callers that cannot
// block.
package policy
