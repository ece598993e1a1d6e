package policy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/faultops/bulkhead"
	"github.com/jonwraymond/faultops/circuit"
	"github.com/jonwraymond/faultops/fallback"
	"github.com/jonwraymond/faultops/policy"
	"github.com/jonwraymond/faultops/retry"
	"github.com/jonwraymond/faultops/timeout"
)

// TestRetryAroundBreaker_ShortCircuits verifies the cross-layer rule: once
// enough failures open the breaker, later retry attempts fail fast without
// the operation running.
func TestRetryAroundBreaker_ShortCircuits(t *testing.T) {
	testErr := errors.New("test error")

	breaker := circuit.New[string](circuit.Config{
		FailureThreshold: 3,
		BreakDuration:    time.Minute,
	})
	r := retry.New[string](retry.Config{
		MaxRetries: 10,
		Schedule:   retry.NoDelay(),
	})

	invocations := 0
	out := policy.Wrap[string](r, breaker).Execute(context.Background(), func(ctx context.Context) (string, error) {
		invocations++
		return "", testErr
	})

	if invocations != 3 {
		t.Errorf("operation invoked %d times, want 3 (breaker threshold)", invocations)
	}
	if out.Kind() != policy.KindCircuitOpen {
		t.Errorf("final kind = %v, want KindCircuitOpen", out.Kind())
	}
}

// TestRetryAroundBreaker_SkipRejected verifies the retry predicate that
// refuses to retry against an open circuit: the first circuit-open failure
// ends the call.
func TestRetryAroundBreaker_SkipRejected(t *testing.T) {
	testErr := errors.New("test error")

	breaker := circuit.New[string](circuit.Config{
		FailureThreshold: 3,
		BreakDuration:    time.Minute,
	})

	invocations := 0
	retries := 0
	r := retry.New[string](retry.Config{
		MaxRetries: 10,
		Schedule:   retry.NoDelay(),
		RetryIf:    retry.SkipRejected,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			retries++
		},
	})

	out := policy.Wrap[string](r, breaker).Execute(context.Background(), func(ctx context.Context) (string, error) {
		invocations++
		return "", testErr
	})

	if invocations != 3 {
		t.Errorf("operation invoked %d times, want 3", invocations)
	}
	// Retries 1-3 ran the operation; the 4th attempt hit the open circuit
	// and was not retried.
	if retries != 3 {
		t.Errorf("OnRetry fired %d times, want 3", retries)
	}
	if out.Kind() != policy.KindCircuitOpen {
		t.Errorf("final kind = %v, want KindCircuitOpen", out.Kind())
	}
}

// TestFallbackOutermost_CatchesRejections verifies a composed chain where
// the fallback substitutes whatever the inner layers could not resolve.
func TestFallbackOutermost_CatchesRejections(t *testing.T) {
	testErr := errors.New("test error")

	onFallback := 0
	p := policy.Compose[string](
		fallback.New[string](fallback.Config[string]{
			Value:      "default",
			OnFallback: func(err error) { onFallback++ },
		}),
		retry.New[string](retry.Config{MaxRetries: 2, Schedule: retry.NoDelay()}),
		circuit.New[string](circuit.Config{FailureThreshold: 2, BreakDuration: time.Minute}),
	)

	out := p.Execute(context.Background(), func(ctx context.Context) (string, error) {
		return "", testErr
	})

	if !out.Ok() || out.Value() != "default" {
		t.Errorf("outcome = %+v, want fallback value", out)
	}
	if onFallback != 1 {
		t.Errorf("OnFallback fired %d times, want 1", onFallback)
	}
}

// TestNoOpFallback_Idempotent verifies that wrapping any policy in a
// fallback whose predicate never matches does not change outcomes.
func TestNoOpFallback_Idempotent(t *testing.T) {
	testErr := errors.New("test error")

	behaviors := []func(ctx context.Context) (string, error){
		func(ctx context.Context) (string, error) { return "ok", nil },
		func(ctx context.Context) (string, error) { return "", testErr },
	}

	inner := retry.New[string](retry.Config{MaxRetries: 1, Schedule: retry.NoDelay()})
	wrapped := policy.Wrap[string](fallback.New[string](fallback.Config[string]{
		Value:    "never used",
		HandleIf: func(err error) bool { return false },
	}), inner)

	for i, op := range behaviors {
		plain := inner.Execute(context.Background(), op)
		withNoop := wrapped.Execute(context.Background(), op)

		if plain.Ok() != withNoop.Ok() || plain.Value() != withNoop.Value() {
			t.Errorf("behavior %d: wrapped outcome %+v differs from plain %+v", i, withNoop, plain)
		}
		if plain.Err() != nil && !errors.Is(withNoop.Err(), plain.Err()) {
			t.Errorf("behavior %d: wrapped error %v differs from plain %v", i, withNoop.Err(), plain.Err())
		}
	}
}

// TestTimeoutInsideBulkhead verifies a slot is released when its operation
// times out, so later callers are not starved.
func TestTimeoutInsideBulkhead(t *testing.T) {
	p := policy.Compose[string](
		bulkhead.New[string](bulkhead.Config{MaxConcurrent: 1}),
		timeout.New[string](timeout.Config{Timeout: 20 * time.Millisecond}),
	)

	slow := func(ctx context.Context) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second):
			return "too late", nil
		}
	}

	out := p.Execute(context.Background(), slow)
	if out.Kind() != policy.KindTimeout {
		t.Fatalf("first call kind = %v, want KindTimeout", out.Kind())
	}

	// The slot must be free again for a fast call.
	out = p.Execute(context.Background(), func(ctx context.Context) (string, error) {
		return "quick", nil
	})
	if !out.Ok() || out.Value() != "quick" {
		t.Errorf("second call outcome = %+v, want success quick", out)
	}
}
