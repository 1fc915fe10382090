package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/oteladapters"
	"github.com/AntonStoeckl/graph-strategies-go/graph/tinkergraph"
)

func Test_Graph_WithOpenTelemetry(t *testing.T) {
	// setup
	collector, reader := newMeterFixture()
	tracing, exporter := newTracerFixture()
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)

	g, err := tinkergraph.New(
		tinkergraph.WithMetrics(collector),
		tinkergraph.WithTracing(tracing),
		tinkergraph.WithContextualLogger(logger),
	)
	require.NoError(t, err)
	ctx := context.Background()

	// act
	marko, err := g.AddVertex(ctx, "name", "marko")
	require.NoError(t, err)
	_, edgeErr := marko.AddEdge(ctx, "", marko)

	// assert
	assert.ErrorIs(t, edgeErr, graph.ErrEdgeLabelEmpty)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "graph.add_vertex", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Equal(t, "graph.add_edge", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Equal(t, graph.ErrEdgeLabelEmpty.Error(), spans[1].Status.Description)

	resourceMetrics := collect(t, reader)
	total, ok := findMetric(t, resourceMetrics, "graph_operations_total").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, total.DataPoints, 2)

	errorsTotal, ok := findMetric(t, resourceMetrics, "graph_operation_errors_total").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, errorsTotal.DataPoints, 1)
	operation, _ := errorsTotal.DataPoints[0].Attributes.Value("operation")
	assert.Equal(t, "add_edge", operation.AsString())

	assert.Contains(t, buf.String(), `"msg":"graph operation completed"`)
	assert.Contains(t, buf.String(), `"msg":"graph operation failed"`)
}
