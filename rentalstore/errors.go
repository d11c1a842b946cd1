package rentalstore

import "errors"

var (
	// ErrNilDatabaseConnection is returned when a store is constructed without a database handle.
	ErrNilDatabaseConnection = errors.New("database connection is nil")

	// ErrUnsupportedDialect is returned for an SQL dialect the store cannot speak.
	ErrUnsupportedDialect = errors.New("unsupported sql dialect")

	// ErrBuildingQueryFailed is returned when an SQL statement cannot be built.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingFailed is returned when a read against the store fails.
	ErrQueryingFailed = errors.New("querying the store failed")

	// ErrScanningDBRowFailed is returned when a result row cannot be scanned.
	ErrScanningDBRowFailed = errors.New("scanning db row failed")

	// ErrUpdatingFailed is returned when a write against the store fails.
	ErrUpdatingFailed = errors.New("updating the store failed")

	// ErrCorruptRecord is returned when a persisted record cannot be decoded into a domain type.
	ErrCorruptRecord = errors.New("corrupt record in store")

	// ErrSchemaIncomplete is returned when one of the required tables is missing.
	ErrSchemaIncomplete = errors.New("store schema is incomplete")

	// ErrInvalidTimestamp is returned when a timestamp cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
