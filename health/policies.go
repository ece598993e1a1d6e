package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/faultops/bulkhead"
	"github.com/jonwraymond/faultops/circuit"
)

// CircuitState is the view of a circuit breaker this package needs. Every
// circuit.Breaker satisfies it regardless of its value type.
type CircuitState interface {
	State() circuit.State
}

// CircuitChecker reports the state of a circuit breaker: closed is
// healthy, half-open is degraded (a probe is deciding), open is unhealthy.
type CircuitChecker struct {
	name    string
	breaker CircuitState
}

// NewCircuitChecker creates a checker watching the given breaker.
func NewCircuitChecker(name string, breaker CircuitState) *CircuitChecker {
	return &CircuitChecker{name: name, breaker: breaker}
}

// Name returns the name of this checker.
func (c *CircuitChecker) Name() string {
	return c.name
}

// Check reports the breaker state.
func (c *CircuitChecker) Check(ctx context.Context) Result {
	state := c.breaker.State()
	details := map[string]any{"state": state.String()}

	switch state {
	case circuit.StateClosed:
		return Healthy("circuit closed").WithDetails(details)
	case circuit.StateHalfOpen:
		return Degraded("circuit half-open, probing recovery").WithDetails(details)
	default:
		return Unhealthy("circuit open, failing fast", nil).WithDetails(details)
	}
}

// BulkheadMetrics is the view of a bulkhead this package needs.
type BulkheadMetrics interface {
	Metrics() bulkhead.Metrics
}

// BulkheadChecker reports bulkhead saturation: degraded when every
// execution slot is busy, healthy otherwise.
type BulkheadChecker struct {
	name string
	bh   BulkheadMetrics
}

// NewBulkheadChecker creates a checker watching the given bulkhead.
func NewBulkheadChecker(name string, bh BulkheadMetrics) *BulkheadChecker {
	return &BulkheadChecker{name: name, bh: bh}
}

// Name returns the name of this checker.
func (c *BulkheadChecker) Name() string {
	return c.name
}

// Check reports slot saturation.
func (c *BulkheadChecker) Check(ctx context.Context) Result {
	m := c.bh.Metrics()
	details := map[string]any{
		"active":         m.Active,
		"queued":         m.Queued,
		"max_concurrent": m.MaxConcurrent,
		"rejected":       m.Rejected,
	}

	if m.Active >= m.MaxConcurrent {
		msg := fmt.Sprintf("all %d execution slots busy, %d queued", m.MaxConcurrent, m.Queued)
		return Degraded(msg).WithDetails(details)
	}
	return Healthy("slots available").WithDetails(details)
}
