package graph

import "context"

// Direction selects which incident edges of a vertex are returned.
type Direction int

const (
	// Out selects edges whose out vertex is the vertex being asked.
	Out Direction = iota

	// In selects edges whose in vertex is the vertex being asked.
	In

	// Both selects edges in either direction. A self-loop is returned once.
	Both
)

// String provides a string representation of Direction for logging and debugging.
func (d Direction) String() string {
	switch d {
	case Out:
		return "out"
	case In:
		return "in"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// Graph is a container of vertices and edges.
//
// Implementations decide how elements are stored. Each method that maps to an Operation
// is interceptable: implementations route it through the active strategy before executing.
type Graph interface {
	// AddVertex creates a vertex with the given properties, supplied as alternating keys and values.
	AddVertex(ctx context.Context, keyValues ...any) (Vertex, error)

	// Vertex returns the vertex with the given id or ErrVertexNotFound.
	Vertex(ctx context.Context, id any) (Vertex, error)

	// Edge returns the edge with the given id or ErrEdgeNotFound.
	Edge(ctx context.Context, id any) (Edge, error)

	// Vertices returns a snapshot of all vertices, ordered by creation.
	Vertices(ctx context.Context) []Vertex

	// Edges returns a snapshot of all edges, ordered by creation.
	Edges(ctx context.Context) []Edge
}

// Element is the common behavior of vertices and edges.
type Element interface {
	ID() any
	Label() string

	// Keys returns the property keys of the element, sorted.
	Keys(ctx context.Context) []string

	// Property returns the property for key. A missing key yields an empty property
	// (IsPresent reports false), not an error.
	Property(ctx context.Context, key string) (Property, error)

	// SetProperty writes a property and returns it.
	SetProperty(ctx context.Context, key string, value any) (Property, error)

	// Properties returns a snapshot of all properties, sorted by key.
	Properties(ctx context.Context) []Property

	// Remove deletes the element. Removing an already removed element is a no-op.
	Remove(ctx context.Context) error
}

// Vertex is a node of the graph.
type Vertex interface {
	Element

	// AddEdge creates an edge from this vertex to inV.
	AddEdge(ctx context.Context, label string, inV Vertex, keyValues ...any) (Edge, error)

	// Edges returns a snapshot of the incident edges in the given direction, optionally
	// restricted to the given labels.
	Edges(ctx context.Context, direction Direction, labels ...string) []Edge
}

// Edge connects an out vertex to an in vertex.
type Edge interface {
	Element
	OutVertex() Vertex
	InVertex() Vertex
}

// Property is a key/value pair owned by an element.
type Property interface {
	Key() string
	Value() any
	IsPresent() bool
	Element() Element

	// Remove deletes the property from its element. Removing an empty or already removed property is a no-op.
	Remove(ctx context.Context) error
}
