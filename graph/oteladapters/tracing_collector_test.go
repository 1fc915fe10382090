package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/graph-strategies-go/graph/oteladapters"
	"github.com/AntonStoeckl/graph-strategies-go/testutil/observability/testdoubles"
)

func newTracerFixture() (*oteladapters.TracingCollector, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	return oteladapters.NewTracingCollector(provider.Tracer("test")), exporter
}

func assertSpanHasAttribute(t *testing.T, span tracetest.SpanStub, key, expected string) {
	t.Helper()

	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			assert.Equal(t, expected, attr.Value.AsString(), "attribute %s", key)
			return
		}
	}

	assert.Failf(t, "attribute not found", "span %q has no attribute %q", span.Name, key)
}

func Test_TracingCollector_SuccessfulSpan(t *testing.T) {
	// setup
	collector, exporter := newTracerFixture()

	// act
	ctx, spanCtx := collector.StartSpan(context.Background(), "graph.add_vertex", map[string]string{"operation": "add_vertex"})
	spanCtx.AddAttribute("label", "person")
	collector.FinishSpan(spanCtx, "success", map[string]string{"duration_ms": "0.042"})

	// assert
	assert.NotNil(t, ctx)
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "graph.add_vertex", span.Name)
	assert.Equal(t, codes.Ok, span.Status.Code)
	assertSpanHasAttribute(t, span, "operation", "add_vertex")
	assertSpanHasAttribute(t, span, "label", "person")
	assertSpanHasAttribute(t, span, "duration_ms", "0.042")
	assert.Empty(t, span.Events)
}

func Test_TracingCollector_FailedSpanRecordsError(t *testing.T) {
	// setup
	collector, exporter := newTracerFixture()

	// act
	_, spanCtx := collector.StartSpan(context.Background(), "graph.add_edge", nil)
	collector.FinishSpan(spanCtx, "error", map[string]string{"error": "edge label can not be empty"})

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, codes.Error, span.Status.Code)
	assert.Equal(t, "edge label can not be empty", span.Status.Description)
	require.Len(t, span.Events, 1)
	assert.Equal(t, "exception", span.Events[0].Name)
	assert.Contains(t, span.Events[0].Attributes, attribute.String("exception.message", "edge label can not be empty"))
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	testCases := []struct {
		status              string
		expectedCode        codes.Code
		expectedDescription string
	}{
		{status: "ok", expectedCode: codes.Ok},
		{status: "completed", expectedCode: codes.Ok},
		{status: "failed", expectedCode: codes.Error, expectedDescription: "Operation failed"},
		{status: "canceled", expectedCode: codes.Error, expectedDescription: "Operation cancelled"},
		{status: "timeout", expectedCode: codes.Error, expectedDescription: "Operation timed out"},
		{status: "read_only", expectedCode: codes.Error, expectedDescription: "Graph is read-only"},
		{status: "skipped", expectedCode: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// setup
			collector, exporter := newTracerFixture()

			// act
			_, spanCtx := collector.StartSpan(context.Background(), "graph.remove_vertex", nil)
			collector.FinishSpan(spanCtx, tc.status, nil)

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
			assert.Equal(t, tc.expectedDescription, spans[0].Status.Description)
			if tc.expectedCode == codes.Unset {
				assertSpanHasAttribute(t, spans[0], "status", tc.status)
			}
		})
	}
}

func Test_TracingCollector_NestedSpans(t *testing.T) {
	// setup
	collector, exporter := newTracerFixture()

	// act
	ctx, parent := collector.StartSpan(context.Background(), "graph.remove_vertex", nil)
	_, child := collector.StartSpan(ctx, "graph.remove_edge", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "graph.remove_edge", spans[0].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID())
}

func Test_TracingCollector_IgnoresForeignSpanContexts(t *testing.T) {
	// setup
	collector, exporter := newTracerFixture()

	// act
	collector.FinishSpan(&testdoubles.SpySpanContext{}, "success", nil)
	collector.FinishSpan(nil, "success", nil)

	// assert
	assert.Empty(t, exporter.GetSpans())
}
