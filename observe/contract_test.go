package observe

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestObserver_DisabledSubsystemsAreNoops verifies an observer built with
// everything disabled still hands out usable primitives, so instrumented
// code never nil-checks.
func TestObserver_DisabledSubsystemsAreNoops(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "observe-test"})
	if err != nil {
		t.Fatalf("NewObserver error: %v", err)
	}

	if obs.Tracer() == nil {
		t.Error("Tracer() = nil, want no-op tracer")
	}
	if obs.Meter() == nil {
		t.Error("Meter() = nil, want no-op meter")
	}
	if obs.Logger() == nil {
		t.Error("Logger() = nil, want no-op logger")
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown error: %v", err)
	}
}

// The noop implementations must absorb every call without panicking, since
// hooks and Instrument call them unconditionally.
func TestNoopPrimitives_AbsorbCalls(t *testing.T) {
	meta := PolicyMeta{Name: "noop"}

	logger := &noopLogger{}
	scoped := logger.WithPolicy(meta)
	if scoped == nil {
		t.Fatal("WithPolicy returned nil logger")
	}
	scoped.Info(context.Background(), "ignored")

	metrics := &noopMetrics{}
	metrics.RecordExecution(context.Background(), meta, 10*time.Millisecond, nil)
	metrics.RecordExecution(context.Background(), meta, 10*time.Millisecond, errors.New("ignored"))
	metrics.RecordEvent(context.Background(), meta, EventRetry)

	tracer := newNoopTracer()
	ctx, span := tracer.StartSpan(context.Background(), meta)
	if ctx == nil {
		t.Fatal("StartSpan returned nil context")
	}
	tracer.EndSpan(span, errors.New("ignored"))
}
