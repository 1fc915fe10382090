package strategy

import "github.com/AntonStoeckl/graph-strategies-go/graph"

// SequenceStrategy applies several strategies as one. For every hook the transformation of the
// first strategy is the outermost, so its wrapper runs first and sees the results of the later ones.
type SequenceStrategy struct {
	strategies []GraphStrategy
}

// Sequence creates a SequenceStrategy. Returns graph.ErrNilStrategy if any strategy is nil.
func Sequence(strategies ...GraphStrategy) (*SequenceStrategy, error) {
	for _, s := range strategies {
		if isMissing(s) {
			return nil, graph.ErrNilStrategy
		}
	}

	return &SequenceStrategy{strategies: append([]GraphStrategy(nil), strategies...)}, nil
}

// Strategies returns the strategies in application order.
func (s *SequenceStrategy) Strategies() []GraphStrategy {
	return append([]GraphStrategy(nil), s.strategies...)
}

func (s *SequenceStrategy) AddVertexStrategy(sc Context[graph.Graph]) UnaryOperator[AddVertexFunc] {
	return sequenceOf(s.strategies, SelectAddVertex(sc))
}

func (s *SequenceStrategy) AddEdgeStrategy(sc Context[graph.Vertex]) UnaryOperator[AddEdgeFunc] {
	return sequenceOf(s.strategies, SelectAddEdge(sc))
}

func (s *SequenceStrategy) RemoveVertexStrategy(sc Context[graph.Vertex]) UnaryOperator[RemoveElementFunc] {
	return sequenceOf(s.strategies, SelectRemoveVertex(sc))
}

func (s *SequenceStrategy) RemoveEdgeStrategy(sc Context[graph.Edge]) UnaryOperator[RemoveElementFunc] {
	return sequenceOf(s.strategies, SelectRemoveEdge(sc))
}

func (s *SequenceStrategy) GetPropertyStrategy(sc Context[graph.Element]) UnaryOperator[GetPropertyFunc] {
	return sequenceOf(s.strategies, SelectGetProperty(sc))
}

func (s *SequenceStrategy) SetPropertyStrategy(sc Context[graph.Element]) UnaryOperator[SetPropertyFunc] {
	return sequenceOf(s.strategies, SelectSetProperty(sc))
}

func (s *SequenceStrategy) RemovePropertyStrategy(sc Context[graph.Property]) UnaryOperator[RemovePropertyFunc] {
	return sequenceOf(s.strategies, SelectRemoveProperty(sc))
}

func (s *SequenceStrategy) VertexByIDStrategy(sc Context[graph.Graph]) UnaryOperator[VertexByIDFunc] {
	return sequenceOf(s.strategies, SelectVertexByID(sc))
}

func (s *SequenceStrategy) EdgeByIDStrategy(sc Context[graph.Graph]) UnaryOperator[EdgeByIDFunc] {
	return sequenceOf(s.strategies, SelectEdgeByID(sc))
}

// sequenceOf folds the selected transformations so that strategies[0] ends up outermost.
func sequenceOf[T any](strategies []GraphStrategy, selector func(GraphStrategy) UnaryOperator[T]) UnaryOperator[T] {
	operators := make([]UnaryOperator[T], len(strategies))
	for i, s := range strategies {
		operators[i] = selector(s)
	}

	return func(impl T) T {
		for i := len(operators) - 1; i >= 0; i-- {
			impl = operators[i](impl)
		}

		return impl
	}
}

var _ GraphStrategy = (*SequenceStrategy)(nil)
