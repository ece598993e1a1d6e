package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/faultops/policy"
)

// Event names recorded by the policy hooks.
const (
	EventRetry    = "retry"
	EventBreak    = "break"
	EventReset    = "reset"
	EventHalfOpen = "half_open"
	EventTimeout  = "timeout"
	EventFallback = "fallback"
)

// Metrics records execution metrics for policies.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordExecution records a policy execution with duration and error status.
	RecordExecution(ctx context.Context, meta PolicyMeta, duration time.Duration, err error)

	// RecordEvent records a single policy event (a retry, a circuit
	// opening, a timeout, ...).
	RecordEvent(ctx context.Context, meta PolicyMeta, event string)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	eventCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	totalCount, err := meter.Int64Counter(
		"policy.exec.total",
		metric.WithDescription("Total number of policy executions"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"policy.exec.errors",
		metric.WithDescription("Total number of failed policy executions"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	eventCount, err := meter.Int64Counter(
		"policy.events",
		metric.WithDescription("Policy events: retries, breaks, resets, timeouts, fallbacks"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"policy.exec.duration_ms",
		metric.WithDescription("Policy execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		totalCount:   totalCount,
		errorCount:   errorCount,
		eventCount:   eventCount,
		durationHist: durationHist,
	}, nil
}

func metaAttributes(meta PolicyMeta) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("policy.name", meta.Name),
	}
	if meta.Resource != "" {
		attrs = append(attrs, attribute.String("policy.resource", meta.Resource))
	}
	return attrs
}

// RecordExecution records metrics for a policy execution.
func (m *metricsImpl) RecordExecution(ctx context.Context, meta PolicyMeta, duration time.Duration, err error) {
	attrs := metaAttributes(meta)
	opt := metric.WithAttributes(attrs...)

	// Always increment total counter
	m.totalCount.Add(ctx, 1, opt)

	// Failures additionally carry the error kind
	if err != nil {
		errAttrs := append(attrs, attribute.String("policy.error_kind", policy.KindOf(err).String()))
		m.errorCount.Add(ctx, 1, metric.WithAttributes(errAttrs...))
	}

	durationMs := float64(duration) / float64(time.Millisecond)
	m.durationHist.Record(ctx, durationMs, opt)
}

// RecordEvent records a single policy event.
func (m *metricsImpl) RecordEvent(ctx context.Context, meta PolicyMeta, event string) {
	attrs := append(metaAttributes(meta), attribute.String("policy.event", event))
	m.eventCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordExecution(ctx context.Context, meta PolicyMeta, duration time.Duration, err error) {
}

func (m *noopMetrics) RecordEvent(ctx context.Context, meta PolicyMeta, event string) {}
