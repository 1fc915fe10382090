package strategy

import (
	"context"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

// Behaviors of the interceptable operations. A graph implementation supplies its default
// behavior in one of these shapes and executes whatever Compose hands back.
type (
	// AddVertexFunc creates a vertex.
	AddVertexFunc func(ctx context.Context, keyValues ...any) (graph.Vertex, error)

	// AddEdgeFunc creates an edge out of the vertex in the Context.
	AddEdgeFunc func(ctx context.Context, label string, inV graph.Vertex, keyValues ...any) (graph.Edge, error)

	// RemoveElementFunc removes the vertex or edge in the Context.
	RemoveElementFunc func(ctx context.Context) error

	// GetPropertyFunc reads a property of the element in the Context.
	GetPropertyFunc func(ctx context.Context, key string) (graph.Property, error)

	// SetPropertyFunc writes a property of the element in the Context.
	SetPropertyFunc func(ctx context.Context, key string, value any) (graph.Property, error)

	// RemovePropertyFunc removes the property in the Context.
	RemovePropertyFunc func(ctx context.Context) error

	// VertexByIDFunc looks up a vertex.
	VertexByIDFunc func(ctx context.Context, id any) (graph.Vertex, error)

	// EdgeByIDFunc looks up an edge.
	EdgeByIDFunc func(ctx context.Context, id any) (graph.Edge, error)
)

// GraphStrategy exposes one hook per interceptable operation. Each hook receives the Context of
// the invocation and returns the transformation to apply to the default behavior.
type GraphStrategy interface {
	AddVertexStrategy(sc Context[graph.Graph]) UnaryOperator[AddVertexFunc]
	AddEdgeStrategy(sc Context[graph.Vertex]) UnaryOperator[AddEdgeFunc]
	RemoveVertexStrategy(sc Context[graph.Vertex]) UnaryOperator[RemoveElementFunc]
	RemoveEdgeStrategy(sc Context[graph.Edge]) UnaryOperator[RemoveElementFunc]
	GetPropertyStrategy(sc Context[graph.Element]) UnaryOperator[GetPropertyFunc]
	SetPropertyStrategy(sc Context[graph.Element]) UnaryOperator[SetPropertyFunc]
	RemovePropertyStrategy(sc Context[graph.Property]) UnaryOperator[RemovePropertyFunc]
	VertexByIDStrategy(sc Context[graph.Graph]) UnaryOperator[VertexByIDFunc]
	EdgeByIDStrategy(sc Context[graph.Graph]) UnaryOperator[EdgeByIDFunc]
}

// BaseStrategy implements every hook as identity. Embed it and override the hooks to intercept.
type BaseStrategy struct{}

func (BaseStrategy) AddVertexStrategy(Context[graph.Graph]) UnaryOperator[AddVertexFunc] {
	return Identity[AddVertexFunc]()
}

func (BaseStrategy) AddEdgeStrategy(Context[graph.Vertex]) UnaryOperator[AddEdgeFunc] {
	return Identity[AddEdgeFunc]()
}

func (BaseStrategy) RemoveVertexStrategy(Context[graph.Vertex]) UnaryOperator[RemoveElementFunc] {
	return Identity[RemoveElementFunc]()
}

func (BaseStrategy) RemoveEdgeStrategy(Context[graph.Edge]) UnaryOperator[RemoveElementFunc] {
	return Identity[RemoveElementFunc]()
}

func (BaseStrategy) GetPropertyStrategy(Context[graph.Element]) UnaryOperator[GetPropertyFunc] {
	return Identity[GetPropertyFunc]()
}

func (BaseStrategy) SetPropertyStrategy(Context[graph.Element]) UnaryOperator[SetPropertyFunc] {
	return Identity[SetPropertyFunc]()
}

func (BaseStrategy) RemovePropertyStrategy(Context[graph.Property]) UnaryOperator[RemovePropertyFunc] {
	return Identity[RemovePropertyFunc]()
}

func (BaseStrategy) VertexByIDStrategy(Context[graph.Graph]) UnaryOperator[VertexByIDFunc] {
	return Identity[VertexByIDFunc]()
}

func (BaseStrategy) EdgeByIDStrategy(Context[graph.Graph]) UnaryOperator[EdgeByIDFunc] {
	return Identity[EdgeByIDFunc]()
}

var _ GraphStrategy = BaseStrategy{}

// Selectors name the hook of each operation for Compose.
func SelectAddVertex(sc Context[graph.Graph]) func(GraphStrategy) UnaryOperator[AddVertexFunc] {
	return func(s GraphStrategy) UnaryOperator[AddVertexFunc] { return s.AddVertexStrategy(sc) }
}

func SelectAddEdge(sc Context[graph.Vertex]) func(GraphStrategy) UnaryOperator[AddEdgeFunc] {
	return func(s GraphStrategy) UnaryOperator[AddEdgeFunc] { return s.AddEdgeStrategy(sc) }
}

func SelectRemoveVertex(sc Context[graph.Vertex]) func(GraphStrategy) UnaryOperator[RemoveElementFunc] {
	return func(s GraphStrategy) UnaryOperator[RemoveElementFunc] { return s.RemoveVertexStrategy(sc) }
}

func SelectRemoveEdge(sc Context[graph.Edge]) func(GraphStrategy) UnaryOperator[RemoveElementFunc] {
	return func(s GraphStrategy) UnaryOperator[RemoveElementFunc] { return s.RemoveEdgeStrategy(sc) }
}

func SelectGetProperty(sc Context[graph.Element]) func(GraphStrategy) UnaryOperator[GetPropertyFunc] {
	return func(s GraphStrategy) UnaryOperator[GetPropertyFunc] { return s.GetPropertyStrategy(sc) }
}

func SelectSetProperty(sc Context[graph.Element]) func(GraphStrategy) UnaryOperator[SetPropertyFunc] {
	return func(s GraphStrategy) UnaryOperator[SetPropertyFunc] { return s.SetPropertyStrategy(sc) }
}

func SelectRemoveProperty(sc Context[graph.Property]) func(GraphStrategy) UnaryOperator[RemovePropertyFunc] {
	return func(s GraphStrategy) UnaryOperator[RemovePropertyFunc] { return s.RemovePropertyStrategy(sc) }
}

func SelectVertexByID(sc Context[graph.Graph]) func(GraphStrategy) UnaryOperator[VertexByIDFunc] {
	return func(s GraphStrategy) UnaryOperator[VertexByIDFunc] { return s.VertexByIDStrategy(sc) }
}

func SelectEdgeByID(sc Context[graph.Graph]) func(GraphStrategy) UnaryOperator[EdgeByIDFunc] {
	return func(s GraphStrategy) UnaryOperator[EdgeByIDFunc] { return s.EdgeByIDStrategy(sc) }
}
