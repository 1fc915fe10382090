package postgresjournal_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/journal"
	"github.com/AntonStoeckl/graph-strategies-go/graph/journal/postgresjournal"
	"github.com/AntonStoeckl/graph-strategies-go/testutil/postgresjournal/config"
)

// Runs against a real database when GRAPH_JOURNAL_POSTGRES_DSN is set (directly or in a .env file).
func Test_Integration_AppendAndQuery(t *testing.T) {
	dsn, ok := config.PostgresDSN()
	if !ok {
		t.Skipf("%s not set", config.EnvDSN)
	}

	ctx := context.Background()

	pool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolConfig(dsn))
	require.NoError(t, err)
	defer pool.Close()

	sqlDB := config.PostgresSQLDBConfig(dsn)
	defer func() { _ = sqlDB.Close() }()

	sqlxDB := config.PostgresSQLXConfig(dsn)
	defer func() { _ = sqlxDB.Close() }()

	factories := map[string]func(tableName string) (*postgresjournal.Journal, error){
		"pgx_pool": func(tableName string) (*postgresjournal.Journal, error) {
			return postgresjournal.NewJournalFromPGXPool(pool, postgresjournal.WithTableName(tableName))
		},
		"sql_db": func(tableName string) (*postgresjournal.Journal, error) {
			return postgresjournal.NewJournalFromSQLDB(sqlDB, postgresjournal.WithTableName(tableName))
		},
		"sqlx": func(tableName string) (*postgresjournal.Journal, error) {
			return postgresjournal.NewJournalFromSQLX(sqlxDB, postgresjournal.WithTableName(tableName))
		},
	}

	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			// setup
			tableName := fmt.Sprintf("graph_journal_%s", uuid.NewString()[:8])
			j, err := factory(tableName)
			require.NoError(t, err)
			require.NoError(t, j.CreateTable(ctx))
			defer func() {
				_, _ = sqlDB.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, tableName))
			}()

			occurredAt := time.Now().UTC().Truncate(time.Microsecond)
			addVertex, err := journal.BuildMutationRecord(graph.OpAddVertex, 1, "person", "", nil, occurredAt)
			require.NoError(t, err)
			setName, err := journal.BuildMutationRecord(graph.OpSetProperty, 1, "person", "name", "marko", occurredAt)
			require.NoError(t, err)
			addOther, err := journal.BuildMutationRecord(graph.OpAddVertex, 2, "software", "", nil, occurredAt)
			require.NoError(t, err)

			// act
			require.NoError(t, j.Append(ctx, addVertex, setName))
			require.NoError(t, j.Append(ctx, addOther))

			all, queryAllErr := j.Query(ctx, journal.MatchingAnyRecord())
			forFirst, queryFirstErr := j.Query(ctx, journal.BuildFilter().ForElement(1).Finalize())
			properties, queryPropertiesErr := j.Query(
				ctx,
				journal.BuildFilter().WithOperations(graph.OpSetProperty).Finalize(),
			)

			// assert
			require.NoError(t, queryAllErr)
			require.NoError(t, queryFirstErr)
			require.NoError(t, queryPropertiesErr)

			require.Len(t, all, 3)
			assert.Less(t, all[0].SequenceNumber, all[1].SequenceNumber)
			assert.Less(t, all[1].SequenceNumber, all[2].SequenceNumber)
			assert.True(t, occurredAt.Equal(all[0].OccurredAt))

			assert.Len(t, forFirst, 2)
			require.Len(t, properties, 1)

			var value string
			require.NoError(t, properties[0].DecodeValue(&value))
			assert.Equal(t, "marko", value)

			after, err := j.Query(
				ctx,
				journal.BuildFilter().WithSequenceNumberHigherThan(all[1].SequenceNumber).Finalize(),
			)
			require.NoError(t, err)
			require.Len(t, after, 1)
			assert.Equal(t, "2", after[0].ElementID)
		})
	}
}
