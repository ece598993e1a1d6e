package observe

import (
	"context"
	"time"

	"github.com/jonwraymond/faultops/policy"
)

// Middleware wraps policy executions with observability (tracing, metrics,
// logging) and builds the callback hooks the policy configs accept.
//
// Contract:
//   - Concurrency: Instrument returns a thread-safe policy; hooks are safe
//     for concurrent invocation.
//   - Errors: outcomes from the wrapped policy are recorded and propagated
//     unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}

// Instrument wraps p with a span, duration histogram, and total/error
// counters. Place it outermost so the span covers every retry and wait
// inside.
func Instrument[T any](m *Middleware, meta PolicyMeta, p policy.Policy[T]) policy.Policy[T] {
	return policy.PolicyFunc[T](func(ctx context.Context, op policy.Operation[T]) policy.Outcome[T] {
		ctx, span := m.tracer.StartSpan(ctx, meta)

		start := time.Now()
		out := p.Execute(ctx, op)
		duration := time.Since(start)

		m.tracer.EndSpan(span, out.Err())
		m.metrics.RecordExecution(ctx, meta, duration, out.Err())

		logger := m.logger.WithPolicy(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration) / float64(time.Millisecond)},
		}

		if err := out.Err(); err != nil {
			fields = append(fields,
				Field{Key: "error", Value: err.Error()},
				Field{Key: "error_kind", Value: policy.KindOf(err).String()},
			)
			logger.Error(ctx, "policy execution failed", fields...)
		} else {
			logger.Info(ctx, "policy execution completed", fields...)
		}

		return out
	})
}

// OnRetry builds a retry.Config.OnRetry hook that logs each retry and
// counts it as an event.
func (m *Middleware) OnRetry(meta PolicyMeta) func(attempt int, err error, delay time.Duration) {
	logger := m.logger.WithPolicy(meta)
	return func(attempt int, err error, delay time.Duration) {
		ctx := context.Background()
		m.metrics.RecordEvent(ctx, meta, EventRetry)
		logger.Warn(ctx, "retrying after failure",
			Field{Key: "attempt", Value: attempt},
			Field{Key: "error", Value: err.Error()},
			Field{Key: "delay_ms", Value: float64(delay) / float64(time.Millisecond)},
		)
	}
}

// OnBreak builds a circuit.Config.OnBreak hook.
func (m *Middleware) OnBreak(meta PolicyMeta) func(err error, breakDuration time.Duration) {
	logger := m.logger.WithPolicy(meta)
	return func(err error, breakDuration time.Duration) {
		ctx := context.Background()
		m.metrics.RecordEvent(ctx, meta, EventBreak)
		logger.Error(ctx, "circuit opened",
			Field{Key: "error", Value: err.Error()},
			Field{Key: "break_ms", Value: float64(breakDuration) / float64(time.Millisecond)},
		)
	}
}

// OnReset builds a circuit.Config.OnReset hook.
func (m *Middleware) OnReset(meta PolicyMeta) func() {
	logger := m.logger.WithPolicy(meta)
	return func() {
		ctx := context.Background()
		m.metrics.RecordEvent(ctx, meta, EventReset)
		logger.Info(ctx, "circuit closed")
	}
}

// OnHalfOpen builds a circuit.Config.OnHalfOpen hook.
func (m *Middleware) OnHalfOpen(meta PolicyMeta) func() {
	logger := m.logger.WithPolicy(meta)
	return func() {
		ctx := context.Background()
		m.metrics.RecordEvent(ctx, meta, EventHalfOpen)
		logger.Info(ctx, "circuit half-open, attempting trial")
	}
}

// OnTimeout builds a timeout.Config.OnTimeout hook.
func (m *Middleware) OnTimeout(meta PolicyMeta) func(elapsed time.Duration) {
	logger := m.logger.WithPolicy(meta)
	return func(elapsed time.Duration) {
		ctx := context.Background()
		m.metrics.RecordEvent(ctx, meta, EventTimeout)
		logger.Warn(ctx, "operation timed out",
			Field{Key: "elapsed_ms", Value: float64(elapsed) / float64(time.Millisecond)},
		)
	}
}

// OnFallback builds a fallback.Config.OnFallback hook.
func (m *Middleware) OnFallback(meta PolicyMeta) func(err error) {
	logger := m.logger.WithPolicy(meta)
	return func(err error) {
		ctx := context.Background()
		m.metrics.RecordEvent(ctx, meta, EventFallback)
		logger.Warn(ctx, "substituting fallback result",
			Field{Key: "error", Value: err.Error()},
			Field{Key: "error_kind", Value: policy.KindOf(err).String()},
		)
	}
}

// NewNoopMiddleware creates a Middleware that records nothing. Useful as a
// default when telemetry is not configured.
func NewNoopMiddleware() *Middleware {
	return NewMiddleware(newNoopTracer(), &noopMetrics{}, &noopLogger{})
}
