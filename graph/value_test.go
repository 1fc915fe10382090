package graph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/tinkergraph"
)

func Test_Value_KeepsPropertyTypes(t *testing.T) {
	// setup
	ctx := context.Background()
	g, err := tinkergraph.New()
	require.NoError(t, err)

	// arrange
	v, err := g.AddVertex(ctx,
		"string", "marko",
		"int", 29,
		"int64", int64(1<<40),
		"bool", true,
		"float64", 0.5,
		"float32", float32(0.25),
	)
	require.NoError(t, err)

	// act + assert
	s, err := graph.Value[string](ctx, v, "string")
	assert.NoError(t, err)
	assert.Equal(t, "marko", s)

	i, err := graph.Value[int](ctx, v, "int")
	assert.NoError(t, err)
	assert.Equal(t, 29, i)

	i64, err := graph.Value[int64](ctx, v, "int64")
	assert.NoError(t, err)
	assert.Equal(t, int64(1<<40), i64)

	b, err := graph.Value[bool](ctx, v, "bool")
	assert.NoError(t, err)
	assert.True(t, b)

	f64, err := graph.Value[float64](ctx, v, "float64")
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, f64, 0.0001)

	f32, err := graph.Value[float32](ctx, v, "float32")
	assert.NoError(t, err)
	assert.InDelta(t, float32(0.25), f32, 0.0001)
}

func Test_Value_Errors(t *testing.T) {
	// setup
	ctx := context.Background()
	g, err := tinkergraph.New()
	require.NoError(t, err)

	v, err := g.AddVertex(ctx, "age", 29)
	require.NoError(t, err)

	// act + assert
	_, err = graph.Value[string](ctx, v, "age")
	assert.ErrorIs(t, err, graph.ErrPropertyValueType)

	_, err = graph.Value[int](ctx, v, "missing")
	assert.ErrorIs(t, err, graph.ErrPropertyNotFound)

	require.NoError(t, v.Remove(ctx))

	_, err = graph.Value[int](ctx, v, "age")
	assert.ErrorIs(t, err, graph.ErrElementRemoved)
}
