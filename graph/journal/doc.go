// Package journal records graph mutations as an append-only sequence of MutationRecord values.
//
// The Journaling strategy in package strategy appends a record after every successful mutation of a
// graph it is active on. Records are plain data built on scalars and JSON, so any storage engine
// can keep them:
//   - MemoryJournal keeps them in process (tests, short-lived graphs)
//   - postgresjournal.Journal keeps them in a PostgreSQL table
//
// Common usage pattern:
//
//	j := journal.NewMemoryJournal()
//	journaling, _ := strategy.Journaling(j)
//	_ = holder.SetStrategy(ctx, strategy.Some(journaling))
//
//	v, _ := g.AddVertex(ctx, "name", "marko")
//
//	records, err := j.Query(ctx, journal.BuildFilter().ForElement(v.ID()).Finalize())
package journal
