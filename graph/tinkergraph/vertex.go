package tinkergraph

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/strategy"
)

// Vertex is a node of a Graph.
type Vertex struct {
	element
	outEdges map[int64]*Edge
	inEdges  map[int64]*Edge
}

// AddEdge creates an edge from v to inV through the active strategy.
func (v *Vertex) AddEdge(ctx context.Context, label string, inV graph.Vertex, keyValues ...any) (graph.Edge, error) {
	sc, err := strategy.NewContextWithEnvironment[graph.Vertex](v.g, v, v.g.environmentFor(graph.OpAddEdge))
	if err != nil {
		return nil, err
	}

	return instrument(ctx, v.g, graph.OpAddEdge, func(ctx context.Context) (graph.Edge, error) {
		return strategy.Compose(ctx, v.g.holder, strategy.SelectAddEdge(sc), strategy.AddEdgeFunc(v.addEdge))(ctx, label, inV, keyValues...)
	})
}

// Edges returns a snapshot of the incident edges in direction, restricted to labels if any are given.
func (v *Vertex) Edges(_ context.Context, direction graph.Direction, labels ...string) []graph.Edge {
	v.g.mu.RLock()
	defer v.g.mu.RUnlock()

	incident := make(map[int64]*Edge)
	if direction == graph.Out || direction == graph.Both {
		maps.Copy(incident, v.outEdges)
	}

	if direction == graph.In || direction == graph.Both {
		maps.Copy(incident, v.inEdges)
	}

	if len(labels) > 0 {
		maps.DeleteFunc(incident, func(_ int64, e *Edge) bool {
			return !slices.Contains(labels, e.label)
		})
	}

	return sortedEdges(incident)
}

// Remove deletes the vertex and its incident edges through the active strategy.
// Incident edges are removed one by one with Edge.Remove, so strategies see each of them.
func (v *Vertex) Remove(ctx context.Context) error {
	sc, err := strategy.NewContextWithEnvironment[graph.Vertex](v.g, v, v.g.environmentFor(graph.OpRemoveVertex))
	if err != nil {
		return err
	}

	_, err = instrument(ctx, v.g, graph.OpRemoveVertex, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, strategy.Compose(ctx, v.g.holder, strategy.SelectRemoveVertex(sc), strategy.RemoveElementFunc(v.remove))(ctx)
	})

	return err
}

// String renders the vertex as v[id].
func (v *Vertex) String() string {
	return graph.VertexString(v)
}

func (v *Vertex) addEdge(_ context.Context, label string, inV graph.Vertex, keyValues ...any) (graph.Edge, error) {
	if label == "" {
		return nil, graph.ErrEdgeLabelEmpty
	}

	if inV == nil {
		return nil, graph.ErrNilVertex
	}

	in, ok := inV.(*Vertex)
	if !ok {
		return nil, fmt.Errorf("%w: %T", graph.ErrUnsupportedElement, inV)
	}

	if in == nil {
		return nil, graph.ErrNilVertex
	}

	if in.g != v.g {
		return nil, graph.ErrForeignVertex
	}

	properties, err := graph.ParseKeyValues(keyValues...)
	if err != nil {
		return nil, err
	}

	v.g.mu.Lock()
	defer v.g.mu.Unlock()

	for _, endpoint := range []*Vertex{v, in} {
		if endpoint.removed {
			return nil, fmt.Errorf("%w: %v", graph.ErrElementRemoved, endpoint)
		}
	}

	e := &Edge{out: v, in: in}
	e.element = element{g: v.g, self: e, id: v.g.nextID(), label: label, properties: properties}

	v.outEdges[e.id] = e
	in.inEdges[e.id] = e
	v.g.edges[e.id] = e

	return e, nil
}

func (v *Vertex) remove(ctx context.Context) error {
	if v.IsRemoved() {
		return nil
	}

	for _, e := range v.Edges(ctx, graph.Both) {
		if err := e.Remove(ctx); err != nil {
			return err
		}
	}

	v.g.mu.Lock()
	defer v.g.mu.Unlock()

	if v.removed {
		return nil
	}

	// edges added concurrently after the snapshot above go with the vertex
	for id, e := range v.outEdges {
		e.detach()
		delete(v.g.edges, id)
	}

	for id, e := range v.inEdges {
		e.detach()
		delete(v.g.edges, id)
	}

	v.removed = true
	delete(v.g.vertices, v.id)

	return nil
}

var _ graph.Vertex = (*Vertex)(nil)
