package strategy_test

import (
	"context"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

// fakeGraph is the smallest graph.Graph a Context accepts. addVertex counts its calls
// and returns a vertex-less result that is comparable across instances.
type fakeGraph struct {
	added int
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{}
}

func (g *fakeGraph) addVertex(_ context.Context, keyValues ...any) (graph.Vertex, error) {
	if _, err := graph.ParseKeyValues(keyValues...); err != nil {
		return nil, err
	}

	g.added++

	return nil, nil
}

func (g *fakeGraph) AddVertex(ctx context.Context, keyValues ...any) (graph.Vertex, error) {
	return g.addVertex(ctx, keyValues...)
}

func (g *fakeGraph) Vertex(context.Context, any) (graph.Vertex, error) {
	return nil, graph.ErrVertexNotFound
}

func (g *fakeGraph) Edge(context.Context, any) (graph.Edge, error) {
	return nil, graph.ErrEdgeNotFound
}

func (g *fakeGraph) Vertices(context.Context) []graph.Vertex {
	return nil
}

func (g *fakeGraph) Edges(context.Context) []graph.Edge {
	return nil
}
