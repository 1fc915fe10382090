package strategy

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

// ReadOnlyStrategy rejects every mutation with graph.ErrReadOnly. Reads pass through.
type ReadOnlyStrategy struct {
	BaseStrategy
}

// ReadOnly creates a ReadOnlyStrategy.
func ReadOnly() *ReadOnlyStrategy {
	return &ReadOnlyStrategy{}
}

func (s *ReadOnlyStrategy) AddVertexStrategy(Context[graph.Graph]) UnaryOperator[AddVertexFunc] {
	return func(AddVertexFunc) AddVertexFunc {
		return func(context.Context, ...any) (graph.Vertex, error) {
			return nil, readOnlyError(graph.OpAddVertex)
		}
	}
}

func (s *ReadOnlyStrategy) AddEdgeStrategy(Context[graph.Vertex]) UnaryOperator[AddEdgeFunc] {
	return func(AddEdgeFunc) AddEdgeFunc {
		return func(context.Context, string, graph.Vertex, ...any) (graph.Edge, error) {
			return nil, readOnlyError(graph.OpAddEdge)
		}
	}
}

func (s *ReadOnlyStrategy) RemoveVertexStrategy(Context[graph.Vertex]) UnaryOperator[RemoveElementFunc] {
	return rejectRemoval(graph.OpRemoveVertex)
}

func (s *ReadOnlyStrategy) RemoveEdgeStrategy(Context[graph.Edge]) UnaryOperator[RemoveElementFunc] {
	return rejectRemoval(graph.OpRemoveEdge)
}

func (s *ReadOnlyStrategy) SetPropertyStrategy(Context[graph.Element]) UnaryOperator[SetPropertyFunc] {
	return func(SetPropertyFunc) SetPropertyFunc {
		return func(context.Context, string, any) (graph.Property, error) {
			return nil, readOnlyError(graph.OpSetProperty)
		}
	}
}

func (s *ReadOnlyStrategy) RemovePropertyStrategy(Context[graph.Property]) UnaryOperator[RemovePropertyFunc] {
	return func(RemovePropertyFunc) RemovePropertyFunc {
		return func(context.Context) error {
			return readOnlyError(graph.OpRemoveProperty)
		}
	}
}

func rejectRemoval(op graph.Operation) UnaryOperator[RemoveElementFunc] {
	return func(RemoveElementFunc) RemoveElementFunc {
		return func(context.Context) error {
			return readOnlyError(op)
		}
	}
}

func readOnlyError(op graph.Operation) error {
	return fmt.Errorf("%w: %s", graph.ErrReadOnly, op)
}

var _ GraphStrategy = (*ReadOnlyStrategy)(nil)
