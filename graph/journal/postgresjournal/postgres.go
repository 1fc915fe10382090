package postgresjournal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/journal"
	"github.com/AntonStoeckl/graph-strategies-go/graph/journal/postgresjournal/internal/adapters"
)

const (
	defaultTableName  = "graph_journal"
	dialectPostgres   = "postgres"
	colSequenceNumber = "sequence_number"
	colOperation      = "operation"
	colElementID      = "element_id"
	colLabel          = "label"
	colPropertyKey    = "property_key"
	colValue          = "value"
	colOccurredAt     = "occurred_at"
	castJsonb         = "?::jsonb"
	indexSuffix       = "_element_idx"
)

const createTableTemplate = `CREATE TABLE IF NOT EXISTS %s (
	sequence_number BIGSERIAL PRIMARY KEY,
	operation TEXT NOT NULL,
	element_id TEXT NOT NULL,
	label TEXT NOT NULL DEFAULT '',
	property_key TEXT NOT NULL DEFAULT '',
	value JSONB NOT NULL,
	occurred_at TIMESTAMP WITH TIME ZONE NOT NULL
)`

const createIndexTemplate = `CREATE INDEX IF NOT EXISTS %s ON %s (element_id, sequence_number)`

type sqlQueryString = string

// Journal is a journal.Journal backed by a PostgreSQL table.
type Journal struct {
	db               adapters.DBAdapter
	tableName        string
	logger           graph.Logger
	contextualLogger graph.ContextualLogger
	metricsCollector graph.MetricsCollector
	tracingCollector graph.TracingCollector
}

type queryResultRow struct {
	sequenceNumber int64
	operation      string
	elementID      string
	label          string
	propertyKey    string
	value          []byte
	occurredAt     time.Time
}

// NewJournalFromPGXPool creates a new Journal using a pgx Pool with optional configuration.
func NewJournalFromPGXPool(db *pgxpool.Pool, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewPGXAdapter(db), options)
}

// NewJournalFromPGXPoolWithReplica creates a new Journal that appends to the primary pool and
// queries the replica pool.
func NewJournalFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Journal, error) {
	if db == nil || replica == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewPGXAdapterWithReplica(db, replica), options)
}

// NewJournalFromSQLDB creates a new Journal using a sql.DB with optional configuration.
func NewJournalFromSQLDB(db *sql.DB, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLAdapter(db), options)
}

// NewJournalFromSQLX creates a new Journal using a sqlx.DB with optional configuration.
func NewJournalFromSQLX(db *sqlx.DB, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLXAdapter(db), options)
}

func newJournal(db adapters.DBAdapter, options []Option) (*Journal, error) {
	j := &Journal{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(j); err != nil {
			return nil, err
		}
	}

	return j, nil
}

// TableName returns the name of the table holding the records.
func (j *Journal) TableName() string {
	return j.tableName
}

// CreateTable creates the journal table and its element index if they do not exist yet.
func (j *Journal) CreateTable(ctx context.Context) error {
	ctx, span, start := j.startOperation(ctx, operationCreateTable)

	statements := []sqlQueryString{
		fmt.Sprintf(createTableTemplate, pq.QuoteIdentifier(j.tableName)),
		fmt.Sprintf(createIndexTemplate, pq.QuoteIdentifier(j.tableName+indexSuffix), pq.QuoteIdentifier(j.tableName)),
	}

	for _, statement := range statements {
		execStart := time.Now()
		_, execErr := j.db.Exec(ctx, statement)
		j.logSQL(ctx, operationCreateTable, statement, time.Since(execStart))

		if execErr != nil {
			j.finishOperationError(ctx, span, operationCreateTable, errorTypeDatabaseExec, execErr, start)
			return execErr
		}
	}

	j.finishOperationSuccess(ctx, span, operationCreateTable, 0, start)

	return nil
}

// Append stores the records in one INSERT statement, so either all of them or none are stored.
// Sequence numbers are assigned by the database in the given order.
func (j *Journal) Append(
	ctx context.Context,
	record journal.MutationRecord,
	additionalRecords ...journal.MutationRecord,
) error {

	ctx, span, start := j.startOperation(ctx, operationAppend)

	allRecords := append(journal.MutationRecords{record}, additionalRecords...)

	sqlQuery, buildQueryErr := j.buildInsertQuery(allRecords)
	if buildQueryErr != nil {
		j.finishOperationError(ctx, span, operationAppend, errorTypeBuildQuery, buildQueryErr, start)
		return buildQueryErr
	}

	execStart := time.Now()
	result, execErr := j.db.Exec(ctx, sqlQuery)
	j.logSQL(ctx, operationAppend, sqlQuery, time.Since(execStart))

	if execErr != nil {
		err := errors.Join(journal.ErrAppendingRecordFailed, execErr)
		j.finishOperationError(ctx, span, operationAppend, errorTypeDatabaseExec, err, start)

		return err
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		err := errors.Join(journal.ErrGettingRowsAffected, rowsAffectedErr)
		j.finishOperationError(ctx, span, operationAppend, errorTypeRowsAffected, err, start)

		return err
	}

	if rowsAffected != int64(len(allRecords)) {
		err := fmt.Errorf("%w: stored %d of %d", journal.ErrRecordsPartiallyStored, rowsAffected, len(allRecords))
		j.finishOperationError(ctx, span, operationAppend, errorTypePartialAppend, err, start)

		return err
	}

	j.finishOperationSuccess(ctx, span, operationAppend, len(allRecords), start)

	return nil
}

// Query returns the records matching filter, ordered by sequence number.
func (j *Journal) Query(ctx context.Context, filter journal.Filter) (journal.MutationRecords, error) {
	ctx, span, start := j.startOperation(ctx, operationQuery)

	sqlQuery, buildQueryErr := j.buildSelectQuery(filter)
	if buildQueryErr != nil {
		j.finishOperationError(ctx, span, operationQuery, errorTypeBuildQuery, buildQueryErr, start)
		return nil, buildQueryErr
	}

	queryStart := time.Now()
	rows, queryErr := j.db.Query(ctx, sqlQuery)
	j.logSQL(ctx, operationQuery, sqlQuery, time.Since(queryStart))

	if queryErr != nil {
		err := errors.Join(journal.ErrQueryingRecordsFailed, queryErr)
		j.finishOperationError(ctx, span, operationQuery, errorTypeDatabaseQuery, err, start)

		return nil, err
	}
	defer j.closeRows(ctx, rows)

	records, errorType, processErr := j.processQueryResults(rows)
	if processErr != nil {
		j.finishOperationError(ctx, span, operationQuery, errorType, processErr, start)
		return nil, processErr
	}

	j.finishOperationSuccess(ctx, span, operationQuery, len(records), start)

	return records, nil
}

// processQueryResults converts database rows into mutation records.
// On failure it also returns the error type used for metrics.
func (j *Journal) processQueryResults(rows adapters.DBRows) (journal.MutationRecords, string, error) {
	records := make(journal.MutationRecords, 0)
	row := queryResultRow{}

	for rows.Next() {
		scanErr := rows.Scan(
			&row.sequenceNumber,
			&row.operation,
			&row.elementID,
			&row.label,
			&row.propertyKey,
			&row.value,
			&row.occurredAt,
		)
		if scanErr != nil {
			return nil, errorTypeRowScan, errors.Join(journal.ErrScanningDBRowFailed, scanErr)
		}

		record, buildErr := journal.BuildMutationRecordFromJSON(
			graph.Operation(row.operation),
			row.elementID,
			row.label,
			row.propertyKey,
			row.value,
			row.occurredAt,
		)
		if buildErr != nil {
			return nil, errorTypeBuildRecord, errors.Join(journal.ErrBuildingRecordFailed, buildErr)
		}

		record.SequenceNumber = journal.SequenceNumberUint(row.sequenceNumber)
		records = append(records, record)
	}

	if iterErr := rows.Err(); iterErr != nil {
		return nil, errorTypeDatabaseQuery, errors.Join(journal.ErrQueryingRecordsFailed, iterErr)
	}

	return records, "", nil
}

func (j *Journal) buildInsertQuery(records journal.MutationRecords) (sqlQueryString, error) {
	rows := make([]any, 0, len(records))

	for _, record := range records {
		if err := validateRecord(record); err != nil {
			return "", err
		}

		rows = append(rows, goqu.Record{
			colOperation:   string(record.Operation),
			colElementID:   record.ElementID,
			colLabel:       record.Label,
			colPropertyKey: record.Key,
			colValue:       goqu.L(castJsonb, string(record.ValueJSON)),
			colOccurredAt:  record.OccurredAt,
		})
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(j.tableName).
		Rows(rows...)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (j *Journal) buildSelectQuery(filter journal.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(j.tableName).
		Select(colSequenceNumber, colOperation, colElementID, colLabel, colPropertyKey, colValue, colOccurredAt).
		Order(goqu.I(colSequenceNumber).Asc())

	if conditions := whereConditions(filter); len(conditions) > 0 {
		selectStmt = selectStmt.Where(conditions...)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// whereConditions translates the filter criteria; all of them must match.
func whereConditions(filter journal.Filter) []exp.Expression {
	conditions := make([]exp.Expression, 0, 3)

	if elementIDs := filter.ElementIDs(); len(elementIDs) > 0 {
		conditions = append(conditions, goqu.C(colElementID).In(elementIDs))
	}

	if operations := filter.Operations(); len(operations) > 0 {
		names := make([]string, 0, len(operations))
		for _, op := range operations {
			names = append(names, string(op))
		}

		conditions = append(conditions, goqu.C(colOperation).In(names))
	}

	if sequenceNumber := filter.SequenceNumberHigherThan(); sequenceNumber > 0 {
		conditions = append(conditions, goqu.C(colSequenceNumber).Gt(sequenceNumber))
	}

	return conditions
}

func validateRecord(record journal.MutationRecord) error {
	if record.Operation == "" {
		return journal.ErrEmptyOperation
	}

	if record.ElementID == "" {
		return journal.ErrEmptyElementID
	}

	if !jsoniter.ConfigFastest.Valid(record.ValueJSON) {
		return journal.ErrInvalidValueJSON
	}

	return nil
}

var _ journal.Journal = (*Journal)(nil)
