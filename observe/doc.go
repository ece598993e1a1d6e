// Package observe provides telemetry for policy executions.
//
// The resilience policies report what happens to them through plain
// callback hooks (OnRetry, OnBreak, OnTimeout, ...). This package turns
// those hooks, plus the executions themselves, into OpenTelemetry traces
// and metrics and structured JSON logs. It is a pure instrumentation
// library: no execution, no transport, no I/O beyond exporter setup.
//
// # Setup
//
// Build an Observer from a Config selecting the exporters, then derive a
// Middleware:
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "checkout",
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	})
//	mw, err := observe.MiddlewareFromObserver(obs)
//
// # Instrumenting policies
//
// Instrument wraps any policy with a span, duration histogram, and
// total/error counters keyed by the failure kind:
//
//	p := observe.Instrument(mw, observe.PolicyMeta{Name: "billing-api"}, composed)
//
// The hook constructors produce the callback functions the policy configs
// accept, wired to the same logger and event counter:
//
//	r := retry.New[string](retry.Config{
//	    OnRetry: mw.OnRetry(meta),
//	})
//
// Hooks run synchronously at the event point; keep the exporters
// non-blocking.
package observe
