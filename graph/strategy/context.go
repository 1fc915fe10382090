package strategy

import (
	"iter"
	"maps"
	"reflect"
	"slices"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

// Context is handed to every strategy hook so the transformation it builds knows
// what it is operating on.
//
// T is the type of the entity that triggered the operation, for example the vertex
// on which AddEdge was called. A Context is immutable once built.
type Context[T any] struct {
	baseGraph   graph.Graph
	current     T
	environment Environment
}

// NewContext builds a Context with an empty environment.
func NewContext[T any](g graph.Graph, current T) (Context[T], error) {
	return NewContextWithEnvironment(g, current, nil)
}

// NewContextWithEnvironment builds a Context whose environment is a copy of env.
// A nil env results in an empty environment. Later changes to env do not affect the Context.
func NewContextWithEnvironment[T any](g graph.Graph, current T, env map[string]any) (Context[T], error) {
	if isMissing(g) {
		return Context[T]{}, graph.ErrNilGraph
	}

	if isMissing(current) {
		return Context[T]{}, graph.ErrNilCurrent
	}

	return Context[T]{
		baseGraph:   g,
		current:     current,
		environment: newEnvironment(env),
	}, nil
}

// Current returns the entity that triggered the operation.
func (c Context[T]) Current() T {
	return c.current
}

// BaseGraph returns the graph the operation runs against.
func (c Context[T]) BaseGraph() graph.Graph {
	return c.baseGraph
}

// Environment returns a read-only view of the auxiliary values captured at construction.
func (c Context[T]) Environment() Environment {
	return c.environment
}

// Environment is a read-only view over the key/value environment of a Context.
// The zero value is an empty environment.
type Environment struct {
	entries map[string]any
}

func newEnvironment(env map[string]any) Environment {
	if len(env) == 0 {
		return Environment{entries: map[string]any{}}
	}

	return Environment{entries: maps.Clone(env)}
}

// Get returns the value stored under key.
func (e Environment) Get(key string) (any, bool) {
	value, ok := e.entries[key]
	return value, ok
}

// Len returns the number of entries.
func (e Environment) Len() int {
	return len(e.entries)
}

// Keys returns the keys in sorted order.
func (e Environment) Keys() []string {
	return slices.Sorted(maps.Keys(e.entries))
}

// All iterates over all entries in unspecified order.
func (e Environment) All() iter.Seq2[string, any] {
	return maps.All(e.entries)
}

// ToMap returns a copy of the entries that the caller may modify freely.
func (e Environment) ToMap() map[string]any {
	if e.entries == nil {
		return map[string]any{}
	}

	return maps.Clone(e.entries)
}

// Set always fails with graph.ErrEnvironmentReadOnly.
func (e Environment) Set(_ string, _ any) error {
	return graph.ErrEnvironmentReadOnly
}

// Delete always fails with graph.ErrEnvironmentReadOnly.
func (e Environment) Delete(_ string) error {
	return graph.ErrEnvironmentReadOnly
}

// isMissing reports whether v is nil, including typed nils stored in an interface.
func isMissing(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
