// Package bulkhead bounds concurrent and queued executions of an
// operation.
//
// A Bulkhead admits up to MaxConcurrent operations at a time. When every
// execution slot is taken, up to MaxQueue further callers wait for a slot;
// anything beyond that is rejected immediately with policy.ErrBulkheadFull
// and the operation never runs:
//
//	b := bulkhead.New[string](bulkhead.Config{
//	    MaxConcurrent: 8,
//	    MaxQueue:      16,
//	})
//	out := b.Execute(ctx, op)
//
// Queued callers acquire slots in arrival order. Cancelling a queued
// caller's context releases its queue slot without it ever occupying an
// execution slot. A Bulkhead instance is shared mutable state; reuse one
// instance per protected resource.
package bulkhead
