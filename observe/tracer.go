package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/faultops/policy"
)

// PolicyMeta identifies a policy instance for telemetry purposes.
type PolicyMeta struct {
	Name     string   // Policy instance name, e.g. the guarded service (required)
	Resource string   // Protected resource, e.g. an endpoint (optional)
	Layers   []string // Composed layer names, outermost first (optional)
}

// SpanName returns the deterministic span name for this policy.
// Format: policy.exec.<name>
func (m PolicyMeta) SpanName() string {
	return "policy.exec." + m.Name
}

// Tracer wraps OpenTelemetry tracing with policy-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a policy execution.
	StartSpan(ctx context.Context, meta PolicyMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error and its kind.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// newTracer creates a new Tracer wrapping the given OpenTelemetry tracer.
func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with policy metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta PolicyMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("policy.name", meta.Name),
	}
	if meta.Resource != "" {
		attrs = append(attrs, attribute.String("policy.resource", meta.Resource))
	}
	if len(meta.Layers) > 0 {
		attrs = append(attrs, attribute.StringSlice("policy.layers", meta.Layers))
	}

	ctx, span := t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	return ctx, span
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("policy.error_kind", policy.KindOf(err).String()))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// newNoopTracer creates a no-op tracer.
func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta PolicyMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
