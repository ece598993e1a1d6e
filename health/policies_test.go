package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonwraymond/faultops/bulkhead"
	"github.com/jonwraymond/faultops/circuit"
)

func TestCircuitChecker_Closed(t *testing.T) {
	b := circuit.New[int](circuit.Config{FailureThreshold: 3})
	checker := NewCircuitChecker("billing-circuit", b)

	if checker.Name() != "billing-circuit" {
		t.Errorf("Name() = %q, want billing-circuit", checker.Name())
	}

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("closed circuit status = %v, want healthy", result.Status)
	}
	if result.Details["state"] != "closed" {
		t.Errorf("state detail = %v, want closed", result.Details["state"])
	}
}

func TestCircuitChecker_Open(t *testing.T) {
	b := circuit.New[int](circuit.Config{FailureThreshold: 1, BreakDuration: time.Minute})
	b.Execute(context.Background(), func(ctx context.Context) (int, error) {
		return 0, errors.New("boom")
	})

	result := NewCircuitChecker("c", b).Check(context.Background())
	if result.Status != StatusUnhealthy {
		t.Errorf("open circuit status = %v, want unhealthy", result.Status)
	}
	if result.Details["state"] != "open" {
		t.Errorf("state detail = %v, want open", result.Details["state"])
	}
}

func TestCircuitChecker_HalfOpen(t *testing.T) {
	b := circuit.New[int](circuit.Config{FailureThreshold: 1, BreakDuration: 10 * time.Millisecond})
	b.Execute(context.Background(), func(ctx context.Context) (int, error) {
		return 0, errors.New("boom")
	})

	time.Sleep(20 * time.Millisecond)

	result := NewCircuitChecker("c", b).Check(context.Background())
	if result.Status != StatusDegraded {
		t.Errorf("half-open circuit status = %v, want degraded", result.Status)
	}
}

func TestBulkheadChecker_SlotsAvailable(t *testing.T) {
	bh := bulkhead.New[int](bulkhead.Config{MaxConcurrent: 2})
	checker := NewBulkheadChecker("worker-pool", bh)

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("idle bulkhead status = %v, want healthy", result.Status)
	}
	if result.Details["max_concurrent"] != 2 {
		t.Errorf("max_concurrent detail = %v, want 2", result.Details["max_concurrent"])
	}
}

func TestBulkheadChecker_Saturated(t *testing.T) {
	bh := bulkhead.New[int](bulkhead.Config{MaxConcurrent: 1, MaxQueue: 5})

	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		bh.Execute(context.Background(), func(ctx context.Context) (int, error) {
			close(started)
			<-release
			return 0, nil
		})
	}()
	<-started

	result := NewBulkheadChecker("worker-pool", bh).Check(context.Background())
	if result.Status != StatusDegraded {
		t.Errorf("saturated bulkhead status = %v, want degraded", result.Status)
	}

	close(release)
	wg.Wait()

	result = NewBulkheadChecker("worker-pool", bh).Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("drained bulkhead status = %v, want healthy", result.Status)
	}
}
