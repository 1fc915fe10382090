package tinkergraph

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"sync"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/strategy"
)

const defaultVertexLabel = "vertex"

// Graph is an in-memory property graph. It is safe for concurrent use.
type Graph struct {
	mu       sync.RWMutex
	vertices map[int64]*Vertex
	edges    map[int64]*Edge
	lastID   int64

	holder      strategy.Holder
	environment map[string]any

	logger           graph.Logger
	contextualLogger graph.ContextualLogger
	metricsCollector graph.MetricsCollector
	tracingCollector graph.TracingCollector
}

// New creates an empty Graph with optional configuration.
func New(options ...Option) (*Graph, error) {
	g := &Graph{
		vertices: make(map[int64]*Vertex),
		edges:    make(map[int64]*Edge),
		holder:   strategy.NewShared(),
	}

	for _, option := range options {
		if err := option(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// StrategyHolder returns the holder consulted at every interceptable operation.
func (g *Graph) StrategyHolder() strategy.Holder {
	return g.holder
}

// AddVertex creates a vertex labeled "vertex" with the given properties.
func (g *Graph) AddVertex(ctx context.Context, keyValues ...any) (graph.Vertex, error) {
	sc, err := strategy.NewContextWithEnvironment[graph.Graph](g, g, g.environmentFor(graph.OpAddVertex))
	if err != nil {
		return nil, err
	}

	return instrument(ctx, g, graph.OpAddVertex, func(ctx context.Context) (graph.Vertex, error) {
		return strategy.Compose(ctx, g.holder, strategy.SelectAddVertex(sc), strategy.AddVertexFunc(g.addVertex))(ctx, keyValues...)
	})
}

// Vertex returns the vertex with the given id. Ids may be given as any integer type or a decimal string.
func (g *Graph) Vertex(ctx context.Context, id any) (graph.Vertex, error) {
	sc, err := strategy.NewContextWithEnvironment[graph.Graph](g, g, g.environmentFor(graph.OpVertexByID))
	if err != nil {
		return nil, err
	}

	return instrument(ctx, g, graph.OpVertexByID, func(ctx context.Context) (graph.Vertex, error) {
		return strategy.Compose(ctx, g.holder, strategy.SelectVertexByID(sc), strategy.VertexByIDFunc(g.vertexByID))(ctx, id)
	})
}

// Edge returns the edge with the given id. Ids may be given as any integer type or a decimal string.
func (g *Graph) Edge(ctx context.Context, id any) (graph.Edge, error) {
	sc, err := strategy.NewContextWithEnvironment[graph.Graph](g, g, g.environmentFor(graph.OpEdgeByID))
	if err != nil {
		return nil, err
	}

	return instrument(ctx, g, graph.OpEdgeByID, func(ctx context.Context) (graph.Edge, error) {
		return strategy.Compose(ctx, g.holder, strategy.SelectEdgeByID(sc), strategy.EdgeByIDFunc(g.edgeByID))(ctx, id)
	})
}

// Vertices returns a snapshot of all vertices ordered by id.
func (g *Graph) Vertices(_ context.Context) []graph.Vertex {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]graph.Vertex, 0, len(g.vertices))
	for _, id := range slices.Sorted(maps.Keys(g.vertices)) {
		result = append(result, g.vertices[id])
	}

	return result
}

// Edges returns a snapshot of all edges ordered by id.
func (g *Graph) Edges(_ context.Context) []graph.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return sortedEdges(g.edges)
}

// String renders the graph with its element counts.
func (g *Graph) String() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return fmt.Sprintf("tinkergraph[vertices:%d edges:%d]", len(g.vertices), len(g.edges))
}

func (g *Graph) addVertex(_ context.Context, keyValues ...any) (graph.Vertex, error) {
	properties, err := graph.ParseKeyValues(keyValues...)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	v := &Vertex{
		outEdges: make(map[int64]*Edge),
		inEdges:  make(map[int64]*Edge),
	}
	v.element = element{g: g, self: v, id: g.nextID(), label: defaultVertexLabel, properties: properties}
	g.vertices[v.id] = v

	return v, nil
}

func (g *Graph) vertexByID(_ context.Context, id any) (graph.Vertex, error) {
	key, ok := toID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %v", graph.ErrVertexNotFound, id)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	v, exists := g.vertices[key]
	if !exists {
		return nil, fmt.Errorf("%w: %v", graph.ErrVertexNotFound, id)
	}

	return v, nil
}

func (g *Graph) edgeByID(_ context.Context, id any) (graph.Edge, error) {
	key, ok := toID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %v", graph.ErrEdgeNotFound, id)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	e, exists := g.edges[key]
	if !exists {
		return nil, fmt.Errorf("%w: %v", graph.ErrEdgeNotFound, id)
	}

	return e, nil
}

// nextID must be called with g.mu held for writing.
func (g *Graph) nextID() int64 {
	g.lastID++
	return g.lastID
}

// environmentFor returns the entries handed to the strategy.Context of op.
func (g *Graph) environmentFor(op graph.Operation) map[string]any {
	environment := make(map[string]any, len(g.environment)+1)
	maps.Copy(environment, g.environment)
	environment[graph.EnvOperation] = op

	return environment
}

func sortedEdges(edges map[int64]*Edge) []graph.Edge {
	result := make([]graph.Edge, 0, len(edges))
	for _, id := range slices.Sorted(maps.Keys(edges)) {
		result = append(result, edges[id])
	}

	return result
}

func toID(id any) (int64, bool) {
	switch v := id.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint32:
		return int64(v), true
	case uint:
		return toID(uint64(v))
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}

		return int64(v), true
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

var _ graph.Graph = (*Graph)(nil)
