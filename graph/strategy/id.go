package strategy

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

// DefaultIDKey is the property key used by ID when none is given.
const DefaultIDKey = "__id"

// IDStrategy lets callers choose element ids by storing them in a property.
//
// Vertices and edges added without the id property get a random UUID. The id property can not be
// changed or removed afterwards. Lookups by id resolve against the property instead of the ids
// assigned by the underlying graph.
type IDStrategy struct {
	BaseStrategy
	key   string
	newID func() string
}

// ID creates an IDStrategy that keeps ids under key. Returns graph.ErrPropertyKeyEmpty for an empty key.
func ID(key string) (*IDStrategy, error) {
	if key == "" {
		return nil, graph.ErrPropertyKeyEmpty
	}

	return &IDStrategy{key: key, newID: uuid.NewString}, nil
}

// Key returns the property key holding ids.
func (s *IDStrategy) Key() string {
	return s.key
}

func (s *IDStrategy) AddVertexStrategy(Context[graph.Graph]) UnaryOperator[AddVertexFunc] {
	return func(next AddVertexFunc) AddVertexFunc {
		return func(ctx context.Context, keyValues ...any) (graph.Vertex, error) {
			return next(ctx, s.withID(keyValues)...)
		}
	}
}

func (s *IDStrategy) AddEdgeStrategy(Context[graph.Vertex]) UnaryOperator[AddEdgeFunc] {
	return func(next AddEdgeFunc) AddEdgeFunc {
		return func(ctx context.Context, label string, inV graph.Vertex, keyValues ...any) (graph.Edge, error) {
			return next(ctx, label, inV, s.withID(keyValues)...)
		}
	}
}

func (s *IDStrategy) SetPropertyStrategy(Context[graph.Element]) UnaryOperator[SetPropertyFunc] {
	return func(next SetPropertyFunc) SetPropertyFunc {
		return func(ctx context.Context, key string, value any) (graph.Property, error) {
			if key == s.key {
				return nil, fmt.Errorf("%w: %s", graph.ErrIDKeyImmutable, key)
			}

			return next(ctx, key, value)
		}
	}
}

func (s *IDStrategy) RemovePropertyStrategy(sc Context[graph.Property]) UnaryOperator[RemovePropertyFunc] {
	return func(next RemovePropertyFunc) RemovePropertyFunc {
		return func(ctx context.Context) error {
			if sc.Current().IsPresent() && sc.Current().Key() == s.key {
				return fmt.Errorf("%w: %s", graph.ErrIDKeyImmutable, s.key)
			}

			return next(ctx)
		}
	}
}

func (s *IDStrategy) VertexByIDStrategy(sc Context[graph.Graph]) UnaryOperator[VertexByIDFunc] {
	return func(VertexByIDFunc) VertexByIDFunc {
		return func(ctx context.Context, id any) (graph.Vertex, error) {
			for _, v := range sc.BaseGraph().Vertices(ctx) {
				if s.matches(ctx, v, id) {
					return v, nil
				}
			}

			return nil, fmt.Errorf("%w: %v", graph.ErrVertexNotFound, id)
		}
	}
}

func (s *IDStrategy) EdgeByIDStrategy(sc Context[graph.Graph]) UnaryOperator[EdgeByIDFunc] {
	return func(EdgeByIDFunc) EdgeByIDFunc {
		return func(ctx context.Context, id any) (graph.Edge, error) {
			for _, e := range sc.BaseGraph().Edges(ctx) {
				if s.matches(ctx, e, id) {
					return e, nil
				}
			}

			return nil, fmt.Errorf("%w: %v", graph.ErrEdgeNotFound, id)
		}
	}
}

func (s *IDStrategy) withID(keyValues []any) []any {
	if graph.HasKey(s.key, keyValues...) {
		return keyValues
	}

	withID := make([]any, 0, len(keyValues)+2)
	withID = append(withID, s.key, s.newID())

	return append(withID, keyValues...)
}

func (s *IDStrategy) matches(ctx context.Context, element graph.Element, id any) bool {
	property, err := element.Property(ctx, s.key)
	if err != nil || !property.IsPresent() {
		return false
	}

	return sameValue(property.Value(), id)
}

// sameValue compares without panicking on values of incomparable types.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}

	if reflect.TypeOf(a) != reflect.TypeOf(b) || !reflect.TypeOf(a).Comparable() {
		return false
	}

	return a == b
}

var _ GraphStrategy = (*IDStrategy)(nil)
