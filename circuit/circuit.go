package circuit

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/faultops/policy"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means calls pass through.
	StateClosed State = iota
	// StateOpen means calls fail fast without invoking the operation.
	StateOpen
	// StateHalfOpen means a single trial call probes recovery.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config configures the circuit breaker.
type Config struct {
	// FailureThreshold is the number of consecutive failures in the
	// closed state that opens the circuit.
	// Default: 5
	FailureThreshold int

	// BreakDuration is how long the circuit stays open before the next
	// call is admitted as a trial.
	// Default: 30 seconds
	BreakDuration time.Duration

	// IsFailure decides whether an error counts against the threshold.
	// Default: every failure except cancellation.
	IsFailure func(err error) bool

	// OnBreak is called when the circuit opens, with the failure that
	// tripped it and the configured break duration.
	OnBreak func(err error, breakDuration time.Duration)

	// OnReset is called when a trial succeeds and the circuit closes.
	OnReset func()

	// OnHalfOpen is called when a trial call is about to be attempted.
	OnHalfOpen func()
}

// Breaker fails fast once a failure threshold is crossed and probes
// recovery after a cool-down. One instance guards one resource; the same
// instance must be shared by every call that should trip it.
type Breaker[T any] struct {
	config Config

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	trialing bool
}

// New creates a circuit breaker.
func New[T any](config Config) *Breaker[T] {
	// Apply defaults
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.BreakDuration <= 0 {
		config.BreakDuration = 30 * time.Second
	}
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool {
			return err != nil && !policy.Canceled(err)
		}
	}

	return &Breaker[T]{
		config: config,
		state:  StateClosed,
	}
}

// Execute runs the operation through the breaker. While the circuit is
// open, and while a half-open trial is in flight, it fails fast with
// policy.ErrCircuitOpen without invoking the operation.
func (b *Breaker[T]) Execute(ctx context.Context, op policy.Operation[T]) policy.Outcome[T] {
	trial, err := b.beforeCall()
	if err != nil {
		return policy.Failure[T](err)
	}

	value, opErr := op(ctx)
	b.afterCall(trial, opErr)

	if opErr != nil {
		return policy.Failure[T](opErr)
	}
	return policy.Success(value)
}

// beforeCall admits or rejects a call and reports whether it is the
// half-open trial.
func (b *Breaker[T]) beforeCall() (trial bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Lazy open → half-open transition on the first call past the break.
	if b.state == StateOpen && time.Since(b.openedAt) >= b.config.BreakDuration {
		b.state = StateHalfOpen
		b.trialing = false
	}

	switch b.state {
	case StateOpen:
		return false, policy.ErrCircuitOpen
	case StateHalfOpen:
		if b.trialing {
			return false, policy.ErrCircuitOpen
		}
		b.trialing = true
		if b.config.OnHalfOpen != nil {
			b.config.OnHalfOpen()
		}
		return true, nil
	default:
		return false, nil
	}
}

func (b *Breaker[T]) afterCall(trial bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	failure := b.config.IsFailure(err)

	switch b.state {
	case StateClosed:
		if failure {
			b.failures++
			if b.failures >= b.config.FailureThreshold {
				b.openLocked(err)
			}
		} else {
			b.failures = 0
		}

	case StateHalfOpen:
		if !trial {
			return
		}
		b.trialing = false
		if failure {
			// Failed probe: reopen and restart the break timer.
			b.openLocked(err)
		} else {
			b.closeLocked()
		}

	case StateOpen:
		// A call admitted in the closed state finished after another
		// caller tripped the circuit. Its result no longer matters.
	}
}

// openLocked transitions to open. The failure counter is meaningful only
// in the closed state, so it is cleared here.
func (b *Breaker[T]) openLocked(err error) {
	b.state = StateOpen
	b.openedAt = time.Now()
	b.failures = 0
	b.trialing = false

	if b.config.OnBreak != nil {
		b.config.OnBreak(err, b.config.BreakDuration)
	}
}

func (b *Breaker[T]) closeLocked() {
	b.state = StateClosed
	b.failures = 0

	if b.config.OnReset != nil {
		b.config.OnReset()
	}
}

// State returns the current circuit state. An open circuit whose break
// duration has elapsed reports half-open, matching what the next call
// will see.
func (b *Breaker[T]) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && time.Since(b.openedAt) >= b.config.BreakDuration {
		return StateHalfOpen
	}
	return b.state
}

// Reset forces the circuit closed and clears the failure count.
func (b *Breaker[T]) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateClosed {
		b.closeLocked()
		return
	}
	b.failures = 0
}

// Metrics contains a snapshot of breaker state.
type Metrics struct {
	State               State
	ConsecutiveFailures int
	OpenedAt            time.Time
}

// Metrics returns a snapshot of the breaker's state.
func (b *Breaker[T]) Metrics() Metrics {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Metrics{
		State:               b.state,
		ConsecutiveFailures: b.failures,
		OpenedAt:            b.openedAt,
	}
}
