package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"

	"github.com/AntonStoeckl/graph-strategies-go/graph/oteladapters"
)

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	// setup
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message", "operation", "add_vertex")
	logger.InfoContext(ctx, "info message", "record_count", 2)
	logger.WarnContext(ctx, "warn message", "duration_ms", 1.5)
	logger.ErrorContext(ctx, "error message", "error", "boom")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG","msg":"debug message","operation":"add_vertex"`)
	assert.Contains(t, output, `"level":"INFO","msg":"info message","record_count":2`)
	assert.Contains(t, output, `"level":"WARN","msg":"warn message","duration_ms":1.5`)
	assert.Contains(t, output, `"level":"ERROR","msg":"error message","error":"boom"`)
}

func Test_SlogBridgeLogger_WithGlobalProvider(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("graph")
	require.NotNil(t, logger)

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "no provider configured", "key", "value")
	})
}

// recordingLogger is a log.Logger keeping every emitted record.
type recordingLogger struct {
	embedded.Logger
	records []log.Record
}

func (l *recordingLogger) Emit(_ context.Context, record log.Record) {
	l.records = append(l.records, record.Clone())
}

func (l *recordingLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

func recordAttributes(record log.Record) map[string]log.Value {
	attrs := map[string]log.Value{}
	record.WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value
		return true
	})

	return attrs
}

func Test_OTelLogger_Severities(t *testing.T) {
	// setup
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug")
	logger.InfoContext(ctx, "info")
	logger.WarnContext(ctx, "warn")
	logger.ErrorContext(ctx, "error")

	// assert
	require.Len(t, recorder.records, 4)
	assert.Equal(t, log.SeverityDebug, recorder.records[0].Severity())
	assert.Equal(t, log.SeverityInfo, recorder.records[1].Severity())
	assert.Equal(t, log.SeverityWarn, recorder.records[2].Severity())
	assert.Equal(t, log.SeverityError, recorder.records[3].Severity())
	assert.Equal(t, "warn", recorder.records[2].Body().AsString())
	assert.False(t, recorder.records[0].Timestamp().IsZero())
}

func Test_OTelLogger_AttributeKinds(t *testing.T) {
	// setup
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)

	// act
	logger.InfoContext(context.Background(), "journal operation: append completed",
		"operation", "append",
		"record_count", 3,
		"sequence_number", int64(42),
		"duration_ms", 1.25,
		"replicated", false,
		"timeout", 2*time.Second,
		"labels", []string{"a", "b"},
		17, "non-string key is dropped",
		"dangling",
	)

	// assert
	require.Len(t, recorder.records, 1)
	attrs := recordAttributes(recorder.records[0])
	assert.Len(t, attrs, 7)
	assert.Equal(t, "append", attrs["operation"].AsString())
	assert.Equal(t, int64(3), attrs["record_count"].AsInt64())
	assert.Equal(t, int64(42), attrs["sequence_number"].AsInt64())
	assert.Equal(t, 1.25, attrs["duration_ms"].AsFloat64())
	assert.False(t, attrs["replicated"].AsBool())
	assert.Equal(t, int64(2000), attrs["timeout"].AsInt64())
	assert.Equal(t, "[a b]", attrs["labels"].AsString())
	assert.NotContains(t, attrs, "dangling")
}
