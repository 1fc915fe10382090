package tinkergraph

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/strategy"
)

// element holds what vertices and edges have in common. All fields behind g.mu.
type element struct {
	g          *Graph
	self       graph.Element
	id         int64
	label      string
	properties map[string]any
	removed    bool
}

// ID returns the int64 id assigned at creation.
func (e *element) ID() any {
	return e.id
}

// Label returns the element's label.
func (e *element) Label() string {
	return e.label
}

// IsRemoved reports whether the element was removed from its graph.
func (e *element) IsRemoved() bool {
	e.g.mu.RLock()
	defer e.g.mu.RUnlock()

	return e.removed
}

// Keys returns the property keys, sorted. A removed element has none.
func (e *element) Keys(_ context.Context) []string {
	e.g.mu.RLock()
	defer e.g.mu.RUnlock()

	if e.removed {
		return []string{}
	}

	return slices.Sorted(maps.Keys(e.properties))
}

// Properties returns a snapshot of the properties, sorted by key.
func (e *element) Properties(_ context.Context) []graph.Property {
	e.g.mu.RLock()
	defer e.g.mu.RUnlock()

	if e.removed {
		return []graph.Property{}
	}

	result := make([]graph.Property, 0, len(e.properties))
	for _, key := range slices.Sorted(maps.Keys(e.properties)) {
		result = append(result, &Property{owner: e, key: key, value: e.properties[key], present: true})
	}

	return result
}

// Property reads a property through the active strategy.
func (e *element) Property(ctx context.Context, key string) (graph.Property, error) {
	sc, err := strategy.NewContextWithEnvironment(e.g, e.self, e.g.environmentFor(graph.OpGetProperty))
	if err != nil {
		return nil, err
	}

	return instrument(ctx, e.g, graph.OpGetProperty, func(ctx context.Context) (graph.Property, error) {
		return strategy.Compose(ctx, e.g.holder, strategy.SelectGetProperty(sc), strategy.GetPropertyFunc(e.getProperty))(ctx, key)
	})
}

// SetProperty writes a property through the active strategy.
func (e *element) SetProperty(ctx context.Context, key string, value any) (graph.Property, error) {
	sc, err := strategy.NewContextWithEnvironment(e.g, e.self, e.g.environmentFor(graph.OpSetProperty))
	if err != nil {
		return nil, err
	}

	return instrument(ctx, e.g, graph.OpSetProperty, func(ctx context.Context) (graph.Property, error) {
		return strategy.Compose(ctx, e.g.holder, strategy.SelectSetProperty(sc), strategy.SetPropertyFunc(e.setProperty))(ctx, key, value)
	})
}

func (e *element) getProperty(_ context.Context, key string) (graph.Property, error) {
	e.g.mu.RLock()
	defer e.g.mu.RUnlock()

	if e.removed {
		return nil, fmt.Errorf("%w: %v", graph.ErrElementRemoved, e.self)
	}

	value, ok := e.properties[key]
	if !ok {
		return &Property{owner: e, key: key}, nil
	}

	return &Property{owner: e, key: key, value: value, present: true}, nil
}

func (e *element) setProperty(_ context.Context, key string, value any) (graph.Property, error) {
	if err := graph.ValidateProperty(key, value); err != nil {
		return nil, err
	}

	e.g.mu.Lock()
	defer e.g.mu.Unlock()

	if e.removed {
		return nil, fmt.Errorf("%w: %v", graph.ErrElementRemoved, e.self)
	}

	e.properties[key] = value

	return &Property{owner: e, key: key, value: value, present: true}, nil
}

// Property is a key/value pair read from a vertex or an edge. It is a snapshot: later writes to the
// same key are not reflected in Value.
type Property struct {
	owner   *element
	key     string
	value   any
	present bool
}

// Key returns the property key.
func (p *Property) Key() string {
	return p.key
}

// Value returns the property value, nil for an empty property.
func (p *Property) Value() any {
	return p.value
}

// IsPresent reports whether the element had the property when it was read.
func (p *Property) IsPresent() bool {
	return p.present
}

// IsAttached reports whether the owning element still holds the key, unlike IsPresent which
// reflects the time of the read.
func (p *Property) IsAttached() bool {
	if !p.present {
		return false
	}

	p.owner.g.mu.RLock()
	defer p.owner.g.mu.RUnlock()

	_, exists := p.owner.properties[p.key]

	return !p.owner.removed && exists
}

// Element returns the vertex or edge owning the property.
func (p *Property) Element() graph.Element {
	return p.owner.self
}

// Remove deletes the property through the active strategy.
func (p *Property) Remove(ctx context.Context) error {
	sc, err := strategy.NewContextWithEnvironment[graph.Property](p.owner.g, p, p.owner.g.environmentFor(graph.OpRemoveProperty))
	if err != nil {
		return err
	}

	_, err = instrument(ctx, p.owner.g, graph.OpRemoveProperty, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, strategy.Compose(ctx, p.owner.g.holder, strategy.SelectRemoveProperty(sc), strategy.RemovePropertyFunc(p.remove))(ctx)
	})

	return err
}

// String renders the property as p[key->value] or p[empty].
func (p *Property) String() string {
	return graph.PropertyString(p)
}

func (p *Property) remove(_ context.Context) error {
	if !p.present {
		return nil
	}

	p.owner.g.mu.Lock()
	defer p.owner.g.mu.Unlock()

	if !p.owner.removed {
		delete(p.owner.properties, p.key)
	}

	return nil
}

var _ graph.Property = (*Property)(nil)
