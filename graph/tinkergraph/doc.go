// Package tinkergraph provides an in-memory implementation of the graph interfaces whose structural
// operations are routed through a strategy.Holder.
//
// Every interceptable operation builds a strategy.Context, asks the holder for the active strategy and
// executes whatever strategy.Compose returns. Without an active strategy the default behavior runs
// unchanged.
//
// Key features:
//   - Goroutine-safe vertex, edge and property storage
//   - Sequential int64 element ids
//   - Snapshot iteration, so elements can be removed while iterating
//   - Idempotent removal of vertices, edges and properties
//   - Optional logging, metrics and tracing
//
// Usage examples:
//
//	// Basic usage with a shared strategy slot
//	g, _ := tinkergraph.New()
//	_ = g.StrategyHolder().SetStrategy(ctx, strategy.Some(strategy.ReadOnly()))
//
//	// Per execution scope strategies and operational logging
//	holder := strategy.NewScoped()
//	g, _ := tinkergraph.New(
//		tinkergraph.WithStrategyHolder(holder),
//		tinkergraph.WithLogger(slog.Default()),
//	)
package tinkergraph
