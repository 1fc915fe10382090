package tinkergraph

import (
	"context"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/strategy"
)

// Edge connects two vertices of a Graph.
type Edge struct {
	element
	out *Vertex
	in  *Vertex
}

// OutVertex returns the vertex the edge starts at.
func (e *Edge) OutVertex() graph.Vertex {
	return e.out
}

// InVertex returns the vertex the edge points to.
func (e *Edge) InVertex() graph.Vertex {
	return e.in
}

// Remove deletes the edge through the active strategy. Removing it again is a no-op.
func (e *Edge) Remove(ctx context.Context) error {
	sc, err := strategy.NewContextWithEnvironment[graph.Edge](e.g, e, e.g.environmentFor(graph.OpRemoveEdge))
	if err != nil {
		return err
	}

	_, err = instrument(ctx, e.g, graph.OpRemoveEdge, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, strategy.Compose(ctx, e.g.holder, strategy.SelectRemoveEdge(sc), strategy.RemoveElementFunc(e.remove))(ctx)
	})

	return err
}

// String renders the edge as e[id][outID-label->inID].
func (e *Edge) String() string {
	return graph.EdgeString(e)
}

func (e *Edge) remove(_ context.Context) error {
	e.g.mu.Lock()
	defer e.g.mu.Unlock()

	if e.removed {
		return nil
	}

	e.detach()
	delete(e.g.edges, e.id)

	return nil
}

// detach unlinks the edge from its vertices and marks it removed. Must be called with g.mu held for writing.
func (e *Edge) detach() {
	delete(e.out.outEdges, e.id)
	delete(e.in.inEdges, e.id)
	e.removed = true
}

var _ graph.Edge = (*Edge)(nil)
