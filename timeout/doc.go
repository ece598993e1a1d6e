// Package timeout bounds the duration of an operation.
//
// Two modes are offered. Pessimistic (the default) races the operation
// against the deadline on a separate goroutine: when the deadline fires
// first the caller gets policy.ErrTimeout immediately and the operation's
// eventual result is discarded. The operation still receives a canceled
// context so a cooperative one stops early, but a hung one is simply
// abandoned.
//
// Optimistic mode trusts the operation to observe its context: it derives
// a deadline context, runs the operation inline, and maps the resulting
// deadline error to policy.ErrTimeout. Use it for operations known to
// honor cancellation; it never leaves a goroutine behind.
package timeout
