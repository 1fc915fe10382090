package tinkergraph

import (
	"maps"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/strategy"
)

// Option defines a functional option for configuring a Graph.
type Option func(*Graph) error

// WithStrategyHolder sets the holder consulted at every interceptable operation.
// Without this option the graph uses a strategy.Shared holder.
func WithStrategyHolder(holder strategy.Holder) Option {
	return func(g *Graph) error {
		if holder == nil {
			return graph.ErrNilHolder
		}

		g.holder = holder

		return nil
	}
}

// WithEnvironment sets entries that are added to the environment of every strategy.Context
// the graph builds. The map is copied.
func WithEnvironment(environment map[string]any) Option {
	return func(g *Graph) error {
		g.environment = maps.Clone(environment)
		return nil
	}
}

// WithLogger sets the logger for the Graph.
// The logger will receive messages at different levels:
//
// Debug level: completed operations with timing (development use)
// Warn level: operations that returned an error, including strategy rejections.
func WithLogger(logger graph.Logger) Option {
	return func(g *Graph) error {
		g.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Graph.
// It receives the same messages as the Logger, together with the operation's context.
func WithContextualLogger(logger graph.ContextualLogger) Option {
	return func(g *Graph) error {
		g.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Graph.
// It receives operation durations, operation counts and error counts, labeled by operation.
func WithMetrics(collector graph.MetricsCollector) Option {
	return func(g *Graph) error {
		g.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Graph.
// Every interceptable operation is wrapped in a span named after it.
func WithTracing(collector graph.TracingCollector) Option {
	return func(g *Graph) error {
		g.tracingCollector = collector
		return nil
	}
}
