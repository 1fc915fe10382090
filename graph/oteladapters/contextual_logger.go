package oteladapters

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

// SlogBridgeLogger implements graph.ContextualLogger on top of log/slog.
// Created with NewSlogBridgeLogger it writes through the OpenTelemetry slog bridge,
// which correlates every record with the span found in the context.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a contextual logger that emits to the global OpenTelemetry LoggerProvider.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogBridgeLoggerWithHandler creates a contextual logger writing to handler as-is, without trace correlation.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

// DebugContext logs a debug message with context.
func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

// InfoContext logs an info message with context.
func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

// WarnContext logs a warning message with context.
func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

// ErrorContext logs an error message with context.
func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

var _ graph.ContextualLogger = (*SlogBridgeLogger)(nil)

// OTelLogger implements graph.ContextualLogger by emitting OpenTelemetry log records directly.
// Attribute values keep their kind where the log API has one (strings, integers, floats, bools, durations).
type OTelLogger struct {
	logger log.Logger
}

// NewOTelLogger creates a contextual logger emitting to logger.
func NewOTelLogger(logger log.Logger) *OTelLogger {
	return &OTelLogger{logger: logger}
}

// DebugContext emits a debug record.
func (l *OTelLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityDebug, msg, args)
}

// InfoContext emits an info record.
func (l *OTelLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityInfo, msg, args)
}

// WarnContext emits a warning record.
func (l *OTelLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityWarn, msg, args)
}

// ErrorContext emits an error record.
func (l *OTelLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityError, msg, args)
}

// emit builds the record from slog-style key/value args. A trailing key without value and
// non-string keys are dropped.
func (l *OTelLogger) emit(ctx context.Context, severity log.Severity, msg string, args []any) {
	record := log.Record{}
	record.SetTimestamp(time.Now())
	record.SetSeverity(severity)
	record.SetSeverityText(severity.String())
	record.SetBody(log.StringValue(msg))

	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}

		record.AddAttributes(log.KeyValue{Key: key, Value: logValue(args[i+1])})
	}

	l.logger.Emit(ctx, record)
}

func logValue(v any) log.Value {
	switch typed := v.(type) {
	case string:
		return log.StringValue(typed)
	case int:
		return log.IntValue(typed)
	case int64:
		return log.Int64Value(typed)
	case float64:
		return log.Float64Value(typed)
	case bool:
		return log.BoolValue(typed)
	case time.Duration:
		return log.Int64Value(typed.Milliseconds())
	case error:
		return log.StringValue(typed.Error())
	default:
		return log.StringValue(slog.AnyValue(v).String())
	}
}

var _ graph.ContextualLogger = (*OTelLogger)(nil)
