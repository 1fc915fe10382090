// Package testdoubles provides test doubles (spies) for the observability interfaces of package graph.
//
// This package contains spy implementations used by the graph and journal tests:
//   - LoggerSpy: captures graph.Logger calls
//   - ContextualLoggerSpy: captures graph.ContextualLogger calls together with their context
//   - MetricsCollectorSpy: captures metrics recording calls, with and without context
//   - TracingCollectorSpy: captures spans and their attributes
//
// These test doubles enable testing of observability instrumentation without requiring
// actual telemetry backends.
package testdoubles
