// Package health surfaces the state of shared policy instances as health
// checks.
//
// An open circuit breaker or a saturated bulkhead usually means a
// downstream dependency is struggling; operators want to see that on the
// service's health endpoint before the error rate does the telling.
// CircuitChecker and BulkheadChecker translate policy state into
// healthy/degraded/unhealthy results, and the Aggregator combines any
// number of checks behind the standard liveness/readiness HTTP handlers.
package health
