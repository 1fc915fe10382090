package postgresjournal

import (
	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/journal"
)

// Option defines a functional option for configuring Journal.
type Option func(*Journal) error

// WithTableName sets the table name for the Journal.
func WithTableName(tableName string) Option {
	return func(j *Journal) error {
		if tableName == "" {
			return journal.ErrEmptyTableName
		}

		j.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Journal.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Record counts and durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger graph.Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Journal.
// It receives the operational messages together with the operation's context, for trace correlation.
func WithContextualLogger(logger graph.ContextualLogger) Option {
	return func(j *Journal) error {
		j.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Journal.
// It receives operation durations, operation and error counts, and the number of records per operation.
func WithMetrics(collector graph.MetricsCollector) Option {
	return func(j *Journal) error {
		j.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Journal.
// Append and Query each run in their own span.
func WithTracing(collector graph.TracingCollector) Option {
	return func(j *Journal) error {
		j.tracingCollector = collector
		return nil
	}
}
