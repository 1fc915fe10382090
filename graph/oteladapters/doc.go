// Package oteladapters provides OpenTelemetry implementations of the graph observability interfaces.
//
// The graph and the Postgres journal only depend on the small interfaces in package graph
// (Logger, ContextualLogger, MetricsCollector, ContextualMetricsCollector, TracingCollector).
// This package lives in its own module, so the OpenTelemetry dependencies are only pulled in
// by users who want them:
//
//	tracer := otel.Tracer("graph")
//	meter := otel.Meter("graph")
//
//	g, err := tinkergraph.New(
//		tinkergraph.WithTracing(oteladapters.NewTracingCollector(tracer)),
//		tinkergraph.WithMetrics(oteladapters.NewMetricsCollector(meter)),
//		tinkergraph.WithContextualLogger(oteladapters.NewSlogBridgeLogger("graph")),
//	)
package oteladapters
