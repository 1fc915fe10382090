// Package strategy provides the extension point that lets a graph implementation have its
// structural operations intercepted and transformed without modifying the implementation.
//
// A graph owns a Holder which carries zero or one active GraphStrategy. At every interceptable
// operation the implementation builds a Context, asks the Holder for the active strategy and calls
// Compose with a selector naming the matching hook plus its own default behavior. Compose returns
// the default behavior untouched when no strategy is active, or the strategy's transformation of it.
//
// Two holders are provided:
//   - Shared: one slot visible to every caller
//   - Scoped: one slot per execution scope, where a scope is attached to a context.Context with WithScope
//
// Usage:
//
//	holder := strategy.NewScoped()
//	g, _ := tinkergraph.New(tinkergraph.WithStrategyHolder(holder))
//
//	ctx = strategy.WithScope(ctx)
//	defer holder.Release(ctx)
//
//	_ = holder.SetStrategy(ctx, strategy.Some(strategy.ReadOnly()))
//	_, err := g.AddVertex(ctx) // errors.Is(err, graph.ErrReadOnly)
//
// Implementing a strategy means embedding BaseStrategy and overriding the hooks of interest:
//
//	type countingStrategy struct {
//		strategy.BaseStrategy
//		added atomic.Int64
//	}
//
//	func (s *countingStrategy) AddVertexStrategy(_ strategy.Context[graph.Graph]) strategy.UnaryOperator[strategy.AddVertexFunc] {
//		return func(next strategy.AddVertexFunc) strategy.AddVertexFunc {
//			return func(ctx context.Context, keyValues ...any) (graph.Vertex, error) {
//				s.added.Add(1)
//				return next(ctx, keyValues...)
//			}
//		}
//	}
//
// This package never logs, retries or recovers: failures raised by a strategy reach the caller unchanged.
package strategy
