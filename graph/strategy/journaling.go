package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/journal"
)

const nullJSON = "null"

// JournalingStrategy appends a journal.MutationRecord after every successful mutation.
//
// The record value is encoded before the mutation runs. A value the journal can not encode fails
// with journal.ErrMarshalingValueFailed and leaves the graph untouched.
//
// The record is appended with the context of the call, so a journal backed by a database takes
// part in its cancellation. When appending fails the mutation has already happened in the graph
// and the journal error is returned to the caller unchanged.
type JournalingStrategy struct {
	BaseStrategy
	journal journal.Appender
	now     func() time.Time
}

// Journaling creates a JournalingStrategy. Returns journal.ErrNilJournal for a nil journal.
func Journaling(j journal.Appender) (*JournalingStrategy, error) {
	if isMissing(j) {
		return nil, journal.ErrNilJournal
	}

	return &JournalingStrategy{journal: j, now: time.Now}, nil
}

func (s *JournalingStrategy) AddVertexStrategy(Context[graph.Graph]) UnaryOperator[AddVertexFunc] {
	return func(next AddVertexFunc) AddVertexFunc {
		return func(ctx context.Context, keyValues ...any) (graph.Vertex, error) {
			valueJSON, err := marshalProperties(keyValues)
			if err != nil {
				return nil, err
			}

			v, err := next(ctx, keyValues...)
			if err != nil {
				return nil, err
			}

			if err = s.record(ctx, graph.OpAddVertex, v.ID(), v.Label(), "", valueJSON); err != nil {
				return nil, err
			}

			return v, nil
		}
	}
}

func (s *JournalingStrategy) AddEdgeStrategy(sc Context[graph.Vertex]) UnaryOperator[AddEdgeFunc] {
	return func(next AddEdgeFunc) AddEdgeFunc {
		return func(ctx context.Context, label string, inV graph.Vertex, keyValues ...any) (graph.Edge, error) {
			var inID any
			if !isMissing(inV) {
				inID = inV.ID()
			}

			properties, _ := graph.ParseKeyValues(keyValues...)
			valueJSON, err := journal.MarshalValue(map[string]any{
				"out":        sc.Current().ID(),
				"in":         inID,
				"properties": properties,
			})
			if err != nil {
				return nil, err
			}

			e, err := next(ctx, label, inV, keyValues...)
			if err != nil {
				return nil, err
			}

			if err = s.record(ctx, graph.OpAddEdge, e.ID(), e.Label(), "", valueJSON); err != nil {
				return nil, err
			}

			return e, nil
		}
	}
}

func (s *JournalingStrategy) RemoveVertexStrategy(sc Context[graph.Vertex]) UnaryOperator[RemoveElementFunc] {
	return s.recordRemoval(graph.OpRemoveVertex, sc.Current())
}

func (s *JournalingStrategy) RemoveEdgeStrategy(sc Context[graph.Edge]) UnaryOperator[RemoveElementFunc] {
	return s.recordRemoval(graph.OpRemoveEdge, sc.Current())
}

func (s *JournalingStrategy) SetPropertyStrategy(sc Context[graph.Element]) UnaryOperator[SetPropertyFunc] {
	return func(next SetPropertyFunc) SetPropertyFunc {
		return func(ctx context.Context, key string, value any) (graph.Property, error) {
			valueJSON := []byte(nullJSON)
			if graph.ValidateProperty(key, value) == nil {
				var err error
				if valueJSON, err = journal.MarshalValue(value); err != nil {
					return nil, err
				}
			}

			p, err := next(ctx, key, value)
			if err != nil {
				return nil, err
			}

			element := sc.Current()
			if err = s.record(ctx, graph.OpSetProperty, element.ID(), element.Label(), key, valueJSON); err != nil {
				return nil, err
			}

			return p, nil
		}
	}
}

func (s *JournalingStrategy) RemovePropertyStrategy(sc Context[graph.Property]) UnaryOperator[RemovePropertyFunc] {
	return func(next RemovePropertyFunc) RemovePropertyFunc {
		return func(ctx context.Context) error {
			property := sc.Current()
			if !property.IsPresent() || detached(property) {
				return next(ctx)
			}

			if err := next(ctx); err != nil {
				return err
			}

			element := property.Element()

			return s.record(ctx, graph.OpRemoveProperty, element.ID(), element.Label(), property.Key(), []byte(nullJSON))
		}
	}
}

func (s *JournalingStrategy) recordRemoval(op graph.Operation, element graph.Element) UnaryOperator[RemoveElementFunc] {
	return func(next RemoveElementFunc) RemoveElementFunc {
		return func(ctx context.Context) error {
			if alreadyRemoved(element) {
				return next(ctx)
			}

			if err := next(ctx); err != nil {
				return err
			}

			return s.record(ctx, op, element.ID(), element.Label(), "", []byte(nullJSON))
		}
	}
}

func (s *JournalingStrategy) record(
	ctx context.Context,
	op graph.Operation,
	elementID any,
	label string,
	key string,
	valueJSON []byte,
) error {

	record, err := journal.BuildMutationRecordFromJSON(op, fmt.Sprint(elementID), label, key, valueJSON, s.now())
	if err != nil {
		return err
	}

	return s.journal.Append(ctx, record)
}

// marshalProperties encodes the properties of an add_vertex record.
// Malformed key/values encode as null, the graph rejects them anyway.
func marshalProperties(keyValues []any) ([]byte, error) {
	properties, err := graph.ParseKeyValues(keyValues...)
	if err != nil {
		return []byte(nullJSON), nil
	}

	return journal.MarshalValue(properties)
}

// removalReporter is implemented by elements that know whether they were removed.
type removalReporter interface {
	IsRemoved() bool
}

func alreadyRemoved(element graph.Element) bool {
	r, ok := element.(removalReporter)
	return ok && r.IsRemoved()
}

// attachmentReporter is implemented by properties that can tell whether their element still holds them.
type attachmentReporter interface {
	IsAttached() bool
}

func detached(property graph.Property) bool {
	r, ok := property.(attachmentReporter)
	return ok && !r.IsAttached()
}

var _ GraphStrategy = (*JournalingStrategy)(nil)
