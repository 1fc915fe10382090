// Command journaled builds a small graph through a stack of strategies and prints the resulting journal.
//
// Writers run in their own execution scope with ID assignment and journaling applied, while a
// reader scope sees the same graph through a read-only strategy. With JOURNALED_POSTGRES_DSN set the
// journal is stored in PostgreSQL, otherwise in memory.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/graph-strategies-go/example/journaled/config"
	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/journal"
	"github.com/AntonStoeckl/graph-strategies-go/graph/journal/postgresjournal"
	"github.com/AntonStoeckl/graph-strategies-go/graph/strategy"
	"github.com/AntonStoeckl/graph-strategies-go/graph/tinkergraph"
)

const envTenant = "tenant"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config failed", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runErr := run(ctx, cfg, logger); runErr != nil {
		logger.Error("journaled example failed", "error", runErr)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	j, closeJournal, err := openJournal(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	holder := strategy.NewScoped()

	g, err := tinkergraph.New(
		tinkergraph.WithStrategyHolder(holder),
		tinkergraph.WithEnvironment(map[string]any{envTenant: cfg.Tenant}),
		tinkergraph.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ids, err := strategy.ID(cfg.IDKey)
	if err != nil {
		return err
	}

	writerCtx, err := writerScope(ctx, holder, ids, j)
	if err != nil {
		return err
	}
	defer holder.Release(writerCtx)

	readerCtx, err := readerScope(ctx, holder, ids)
	if err != nil {
		return err
	}
	defer holder.Release(readerCtx)

	markoID, err := buildModernGraph(writerCtx, g, cfg.IDKey)
	if err != nil {
		return err
	}

	if err = inspectAsReader(readerCtx, g, markoID, logger); err != nil {
		return err
	}

	return printJournal(ctx, j, logger)
}

// writerScope returns a context whose scope assigns ids and journals every mutation.
func writerScope(ctx context.Context, holder strategy.Holder, ids *strategy.IDStrategy, j journal.Journal) (context.Context, error) {
	journaling, err := strategy.Journaling(j)
	if err != nil {
		return nil, err
	}

	writer, err := strategy.Sequence(ids, journaling)
	if err != nil {
		return nil, err
	}

	writerCtx := strategy.WithScope(ctx)
	if setErr := holder.SetStrategy(writerCtx, strategy.Some(writer)); setErr != nil {
		return nil, setErr
	}

	return writerCtx, nil
}

// readerScope returns a context whose scope resolves the same ids but rejects every mutation.
func readerScope(ctx context.Context, holder strategy.Holder, ids *strategy.IDStrategy) (context.Context, error) {
	reader, err := strategy.Sequence(strategy.ReadOnly(), ids)
	if err != nil {
		return nil, err
	}

	readerCtx := strategy.WithScope(ctx)
	if setErr := holder.SetStrategy(readerCtx, strategy.Some(reader)); setErr != nil {
		return nil, setErr
	}

	return readerCtx, nil
}

func openJournal(ctx context.Context, cfg config.Config, logger *slog.Logger) (journal.Journal, func(), error) {
	if !cfg.UsesPostgres() {
		logger.Info("using in-memory journal")
		return journal.NewMemoryJournal(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}

	pgJournal, err := postgresjournal.NewJournalFromPGXPool(
		pool,
		postgresjournal.WithTableName(cfg.TableName),
		postgresjournal.WithLogger(logger),
	)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	if err = pgJournal.CreateTable(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	logger.Info("using postgres journal", "table", pgJournal.TableName())

	return pgJournal, pool.Close, nil
}

// buildModernGraph adds a few people and projects and returns the id of marko.
func buildModernGraph(ctx context.Context, g *tinkergraph.Graph, idKey string) (string, error) {
	marko, err := g.AddVertex(ctx, "name", "marko", "age", 29)
	if err != nil {
		return "", err
	}

	vadas, err := g.AddVertex(ctx, "name", "vadas", "age", 27)
	if err != nil {
		return "", err
	}

	lop, err := g.AddVertex(ctx, idKey, "lop", "name", "lop", "lang", "java")
	if err != nil {
		return "", err
	}

	if _, err = marko.AddEdge(ctx, "knows", vadas, "weight", 0.5); err != nil {
		return "", err
	}

	if _, err = marko.AddEdge(ctx, "created", lop, "weight", 0.4); err != nil {
		return "", err
	}

	if _, err = vadas.SetProperty(ctx, "age", 28); err != nil {
		return "", err
	}

	if _, err = marko.SetProperty(ctx, idKey, "someone-else"); !errors.Is(err, graph.ErrIDKeyImmutable) {
		return "", fmt.Errorf("expected id to be immutable, got: %w", err)
	}

	if err = vadas.Remove(ctx); err != nil {
		return "", err
	}

	return graph.Value[string](ctx, marko, idKey)
}

func inspectAsReader(ctx context.Context, g *tinkergraph.Graph, markoID string, logger *slog.Logger) error {
	marko, err := g.Vertex(ctx, markoID)
	if err != nil {
		return err
	}

	logger.Info("reader found vertex",
		"vertex", fmt.Sprint(marko),
		"edges", len(marko.Edges(ctx, graph.Out)),
		"vertices", len(g.Vertices(ctx)))

	if _, err = g.AddVertex(ctx, "name", "intruder"); !errors.Is(err, graph.ErrReadOnly) {
		return fmt.Errorf("expected reader scope to be read-only, got: %w", err)
	}

	logger.Info("reader scope rejected mutation", "error", graph.ErrReadOnly.Error())

	return nil
}

func printJournal(ctx context.Context, j journal.Journal, logger *slog.Logger) error {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	records, err := j.Query(queryCtx, journal.MatchingAnyRecord())
	if err != nil {
		return err
	}

	for _, record := range records {
		logger.Info("journal record",
			"sequence_number", record.SequenceNumber,
			"operation", string(record.Operation),
			"element_id", record.ElementID,
			"label", record.Label,
			"key", record.Key,
			"value", string(record.ValueJSON))
	}

	return nil
}
