// Package graph provides the core abstractions of a property graph whose
// structural operations can be intercepted by pluggable strategies.
//
// This package defines the interfaces every graph implementation exposes
// (Graph, Vertex, Edge, Property), the catalog of interceptable operations,
// helpers shared by implementations, and the common error definitions.
//
// Interceptable operations:
//   - Adding vertices and edges
//   - Looking up vertices and edges by id
//   - Reading, writing and removing properties
//   - Removing vertices and edges
//
// Key types:
//   - Graph: the entry point, creates vertices and enumerates elements
//   - Element: common behavior of vertices and edges (id, label, properties)
//   - Property: a key/value pair owned by an element
//   - Operation: names one interceptable operation category
//
// Common usage pattern:
//
//	g, _ := tinkergraph.New()
//
//	marko, _ := g.AddVertex(ctx, "name", "marko")
//	josh, _ := g.AddVertex(ctx, "name", "josh")
//	e, err := marko.AddEdge(ctx, "knows", josh, "weight", 0.5)
//	if err != nil {
//		// handle error
//	}
//
//	weight, err := graph.Value[float64](ctx, e, "weight")
package graph
