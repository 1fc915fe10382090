package journal

import "errors"

var (
	ErrNilJournal             = errors.New("argument can not be nil: journal")
	ErrNilDatabaseConnection  = errors.New("database connection must not be nil")
	ErrEmptyTableName         = errors.New("journal table name must not be empty")
	ErrEmptyOperation         = errors.New("mutation record operation must not be empty")
	ErrEmptyElementID         = errors.New("mutation record element id must not be empty")
	ErrInvalidValueJSON       = errors.New("mutation record value json is not valid")
	ErrMarshalingValueFailed  = errors.New("marshaling mutation record value failed")
	ErrAppendingRecordFailed  = errors.New("appending mutation record failed")
	ErrQueryingRecordsFailed  = errors.New("querying mutation records failed")
	ErrScanningDBRowFailed    = errors.New("scanning db row failed")
	ErrBuildingQueryFailed    = errors.New("building query failed")
	ErrGettingRowsAffected    = errors.New("getting rows affected failed")
	ErrBuildingRecordFailed   = errors.New("building mutation record from db row failed")
	ErrRecordsPartiallyStored = errors.New("not all mutation records were stored")
)

// SequenceNumberUint is a type alias for uint, the position of a record in a journal.
type SequenceNumberUint = uint
