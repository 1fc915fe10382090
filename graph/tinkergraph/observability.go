package tinkergraph

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

const (
	logMsgOperationCompleted = "graph operation completed"
	logMsgOperationFailed    = "graph operation failed"
	logAttrOperation         = "operation"
	logAttrError             = "error"
	logAttrDurationMS        = "duration_ms"
	metricOperationDuration  = "graph_operation_duration_seconds"
	metricOperationsTotal    = "graph_operations_total"
	metricOperationErrors    = "graph_operation_errors_total"
	spanNamePrefix           = "graph."
	spanAttrOperation        = "operation"
	spanAttrDurationMS       = "duration_ms"
	spanAttrError            = "error"
	labelStatus              = "status"
	statusSuccess            = "success"
	statusError              = "error"
)

// instrument runs fn once, wrapped in the configured tracing, metrics and logging.
func instrument[T any](
	ctx context.Context,
	g *Graph,
	op graph.Operation,
	fn func(ctx context.Context) (T, error),
) (T, error) {

	if !g.isObserved() {
		return fn(ctx)
	}

	ctx, span := g.startSpan(ctx, op)
	start := time.Now()

	result, err := fn(ctx)

	duration := time.Since(start)
	status := statusSuccess
	if err != nil {
		status = statusError
	}

	g.recordOperationMetrics(ctx, op, status, duration, err != nil)
	g.finishSpan(span, status, duration, err)

	if err != nil {
		g.logOperation(ctx, true, logMsgOperationFailed,
			logAttrOperation, string(op),
			logAttrError, err.Error(),
			logAttrDurationMS, toMilliseconds(duration))
	} else {
		g.logOperation(ctx, false, logMsgOperationCompleted,
			logAttrOperation, string(op),
			logAttrDurationMS, toMilliseconds(duration))
	}

	return result, err
}

func (g *Graph) isObserved() bool {
	return g.logger != nil || g.contextualLogger != nil || g.metricsCollector != nil || g.tracingCollector != nil
}

// logOperation logs at warn level for failures and debug level otherwise, to every configured logger.
func (g *Graph) logOperation(ctx context.Context, failed bool, msg string, args ...any) {
	if g.logger != nil {
		if failed {
			g.logger.Warn(msg, args...)
		} else {
			g.logger.Debug(msg, args...)
		}
	}

	if g.contextualLogger != nil {
		if failed {
			g.contextualLogger.WarnContext(ctx, msg, args...)
		} else {
			g.contextualLogger.DebugContext(ctx, msg, args...)
		}
	}
}

// recordOperationMetrics records duration, count and error metrics if the metrics collector is configured.
func (g *Graph) recordOperationMetrics(
	ctx context.Context,
	op graph.Operation,
	status string,
	duration time.Duration,
	failed bool,
) {

	if g.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		logAttrOperation: string(op),
		labelStatus:      status,
	}

	// Use context-aware methods if available
	if contextualCollector, ok := g.metricsCollector.(graph.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, metricOperationsTotal, labels)
		if failed {
			contextualCollector.IncrementCounterContext(ctx, metricOperationErrors, labels)
		}

		return
	}

	g.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
	g.metricsCollector.IncrementCounter(metricOperationsTotal, labels)
	if failed {
		g.metricsCollector.IncrementCounter(metricOperationErrors, labels)
	}
}

// startSpan starts a tracing span if the tracing collector is configured.
func (g *Graph) startSpan(ctx context.Context, op graph.Operation) (context.Context, graph.SpanContext) {
	if g.tracingCollector == nil {
		return ctx, nil
	}

	return g.tracingCollector.StartSpan(ctx, spanNamePrefix+string(op), map[string]string{
		spanAttrOperation: string(op),
	})
}

// finishSpan finishes a tracing span if the tracing collector is configured.
func (g *Graph) finishSpan(span graph.SpanContext, status string, duration time.Duration, err error) {
	if g.tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		spanAttrDurationMS: formatMilliseconds(duration),
	}

	if err != nil {
		attrs[spanAttrError] = err.Error()
	}

	g.tracingCollector.FinishSpan(span, status, attrs)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMilliseconds(d time.Duration) string {
	return strconv.FormatFloat(toMilliseconds(d), 'f', 3, 64)
}
