package postgresjournal

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/journal/postgresjournal/internal/adapters"
)

const (
	operationAppend      = "append"
	operationQuery       = "query"
	operationCreateTable = "create_table"

	logMsgSQLExecuted     = "executed sql for: "
	logMsgOperation       = "journal operation: "
	logMsgCompleted       = " completed"
	logMsgFailed          = " failed"
	logMsgCloseRowsFailed = "failed to close database rows"
	logAttrError          = "error"
	logAttrQuery          = "query"
	logAttrRecordCount    = "record_count"
	logAttrDurationMS     = "duration_ms"
	logAttrErrorType      = "error_type"

	metricOperationDuration = "journal_operation_duration_seconds"
	metricOperationsTotal   = "journal_operations_total"
	metricErrorsTotal       = "journal_errors_total"
	metricRecords           = "journal_records"

	spanNamePrefix     = "journal."
	spanAttrOperation  = "operation"
	spanAttrTable      = "table"
	spanAttrRecords    = "record_count"
	spanAttrDurationMS = "duration_ms"
	spanAttrErrorType  = "error_type"
	spanAttrError      = "error"

	labelStatus    = "status"
	labelErrorType = "error_type"
	statusSuccess  = "success"
	statusError    = "error"

	errorTypeBuildQuery    = "build_query"
	errorTypeDatabaseExec  = "database_exec"
	errorTypeDatabaseQuery = "database_query"
	errorTypeRowsAffected  = "rows_affected"
	errorTypePartialAppend = "partial_append"
	errorTypeRowScan       = "row_scan"
	errorTypeBuildRecord   = "build_record"
)

// startOperation opens the span of an operation and starts its clock.
func (j *Journal) startOperation(ctx context.Context, operation string) (context.Context, graph.SpanContext, time.Time) {
	if j.tracingCollector != nil {
		var span graph.SpanContext
		ctx, span = j.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{
			spanAttrOperation: operation,
			spanAttrTable:     j.tableName,
		})

		return ctx, span, time.Now()
	}

	return ctx, nil, time.Now()
}

// finishOperationSuccess logs, measures and closes the span of a successful operation.
func (j *Journal) finishOperationSuccess(
	ctx context.Context,
	span graph.SpanContext,
	operation string,
	recordCount int,
	start time.Time,
) {

	duration := time.Since(start)

	j.logInfo(ctx, logMsgOperation+operation+logMsgCompleted,
		logAttrRecordCount, recordCount,
		logAttrDurationMS, toMilliseconds(duration))

	labels := map[string]string{spanAttrOperation: operation, labelStatus: statusSuccess}
	j.recordDuration(ctx, duration, labels)
	j.incrementCounter(ctx, metricOperationsTotal, labels)
	j.recordValue(ctx, metricRecords, float64(recordCount), labels)

	j.finishSpan(span, statusSuccess, map[string]string{
		spanAttrRecords:    strconv.Itoa(recordCount),
		spanAttrDurationMS: formatMilliseconds(duration),
	})
}

// finishOperationError logs, measures and closes the span of a failed operation.
func (j *Journal) finishOperationError(
	ctx context.Context,
	span graph.SpanContext,
	operation string,
	errorType string,
	err error,
	start time.Time,
) {

	duration := time.Since(start)

	j.logError(ctx, logMsgOperation+operation+logMsgFailed,
		logAttrError, err.Error(),
		logAttrErrorType, errorType,
		logAttrDurationMS, toMilliseconds(duration))

	labels := map[string]string{spanAttrOperation: operation, labelStatus: statusError}
	j.recordDuration(ctx, duration, labels)
	j.incrementCounter(ctx, metricOperationsTotal, labels)
	j.incrementCounter(ctx, metricErrorsTotal, map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		labelErrorType:    errorType,
	})

	j.finishSpan(span, statusError, map[string]string{
		spanAttrErrorType:  errorType,
		spanAttrError:      err.Error(),
		spanAttrDurationMS: formatMilliseconds(duration),
	})
}

// closeRows safely closes database rows and logs any errors.
func (j *Journal) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if j.logger != nil {
			j.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}

		if j.contextualLogger != nil {
			j.contextualLogger.WarnContext(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logSQL logs SQL statements with execution time at debug level if the logger is configured.
func (j *Journal) logSQL(ctx context.Context, operation string, sqlQuery string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if j.logger != nil {
		j.logger.Debug(logMsgSQLExecuted+operation, args...)
	}

	if j.contextualLogger != nil {
		j.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+operation, args...)
	}
}

// logInfo logs operational information at info level if the logger is configured.
func (j *Journal) logInfo(ctx context.Context, msg string, args ...any) {
	if j.logger != nil {
		j.logger.Info(msg, args...)
	}

	if j.contextualLogger != nil {
		j.contextualLogger.InfoContext(ctx, msg, args...)
	}
}

// logError logs failures at error level if the logger is configured.
func (j *Journal) logError(ctx context.Context, msg string, args ...any) {
	if j.logger != nil {
		j.logger.Error(msg, args...)
	}

	if j.contextualLogger != nil {
		j.contextualLogger.ErrorContext(ctx, msg, args...)
	}
}

// recordDuration records duration metrics with context if the collector supports it.
func (j *Journal) recordDuration(ctx context.Context, duration time.Duration, labels map[string]string) {
	if j.metricsCollector == nil {
		return
	}

	// Use context-aware method if available
	if contextualCollector, ok := j.metricsCollector.(graph.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		return
	}

	j.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

// incrementCounter increments a counter with context if the collector supports it.
func (j *Journal) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if j.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := j.metricsCollector.(graph.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	j.metricsCollector.IncrementCounter(metric, labels)
}

// recordValue records a value metric with context if the collector supports it.
func (j *Journal) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if j.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := j.metricsCollector.(graph.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	j.metricsCollector.RecordValue(metric, value, labels)
}

// finishSpan finishes a tracing span if the tracing collector is configured.
func (j *Journal) finishSpan(span graph.SpanContext, status string, attrs map[string]string) {
	if j.tracingCollector != nil && span != nil {
		j.tracingCollector.FinishSpan(span, status, attrs)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMilliseconds(d time.Duration) string {
	return strconv.FormatFloat(toMilliseconds(d), 'f', 3, 64)
}
