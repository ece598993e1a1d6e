// Package circuit implements the circuit breaker pattern as a policy.
//
// A Breaker is a three-state machine shared by every call that passes
// through it:
//
//   - Closed: calls pass through. Consecutive failures are counted; a
//     success resets the count. Reaching FailureThreshold opens the
//     circuit.
//   - Open: calls fail fast with policy.ErrCircuitOpen; the operation is
//     never invoked. After BreakDuration the next call becomes a trial.
//   - HalfOpen: exactly one trial call runs. Success closes the circuit,
//     failure reopens it and restarts the break timer. Calls arriving
//     while the trial is in flight fail fast.
//
// State transitions are lazy: the open→half-open move happens on the next
// call after the break elapses, not on a timer. A Breaker instance holds
// shared mutable state and is safe for concurrent use; create one per
// protected resource and reuse it across calls (the registry package keeps
// named instances).
package circuit
