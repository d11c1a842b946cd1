package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
	"github.com/AntonStoeckl/rental-return-events/rentalstore/sqlengine/internal/adapters"
)

const (
	tableUsers   = "users"
	tableAssets  = "assets"
	tableRentals = "rentals"

	colID                   = "id"
	colName                 = "name"
	colAssetType            = "asset_type"
	colUserID               = "user_id"
	colAssetID              = "asset_id"
	colCreatedAtLocationID  = "created_at_location_id"
	colCreatedAt            = "created_at"
	colExpiresAt            = "expires_at"
	colStatus               = "status"
	colEligibleAssetTypes   = "eligible_asset_types"
	colReturnedAtLocationID = "returned_at_location_id"
	colReturnedAt           = "returned_at"

	logMsgBuildQueryFailed   = "failed to build sql statement"
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgDBExecFailed       = "database statement execution failed"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgScanRowFailed      = "failed to scan database row"
	logMsgCorruptRecord      = "failed to decode stored record"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgUpdateMatchedNone  = "rental status update matched no row"
	logMsgSQLExecuted        = "executed sql for: "
	logMsgOperation          = "rentalstore operation: "
	logAttrError             = "error"
	logAttrQuery             = "query"
	logAttrDurationMS        = "duration_ms"
	logAttrRowCount          = "row_count"
	logAttrRentalID          = "rental_id"
	logAttrTable             = "table"

	operationGetAsset           = "get_asset"
	operationGetRental          = "get_rental"
	operationListRentalsForUser = "list_rentals_for_user"
	operationUpdateRentalStatus = "update_rental_status"
	operationInsert             = "insert"
	operationReset              = "reset"
	operationVerifySchema       = "verify_schema"

	metricOperationDuration = "rentalstore_operation_duration_seconds"
	metricErrors            = "rentalstore_errors_total"
	metricLabelOperation    = "operation"
	metricLabelStatus       = "status"
	statusSuccess           = "success"
	statusError             = "error"
)

// Store is the SQL backed record store for users, assets and rentals.
// It is a value type, copies share the underlying connection.
type Store struct {
	db               adapters.DBAdapter
	dialect          string
	logger           rentalstore.Logger
	contextualLogger rentalstore.ContextualLogger
	metricsCollector rentalstore.MetricsCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
// The dialect is always PostgreSQL.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, rentalstore.ErrNilDatabaseConnection
	}

	s, err := newStore(adapters.NewPGXAdapter(db), options...)
	if err != nil {
		return Store{}, err
	}

	s.dialect = DialectPostgres

	return s, nil
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
// The dialect defaults to PostgreSQL, use WithDialect(DialectSQLite) for SQLite handles.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, rentalstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
// The dialect defaults to PostgreSQL.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, rentalstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (Store, error) {
	s := Store{
		db:      db,
		dialect: DialectPostgres,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// Dialect returns the SQL dialect the store speaks.
func (s Store) Dialect() string {
	return s.dialect
}

func (s Store) builder() goqu.DialectWrapper {
	return goqu.Dialect(s.dialect)
}

// toSQL renders a goqu statement with interpolated values.
func (s Store) toSQL(ctx context.Context, stmt interface {
	ToSQL() (string, []any, error)
}) (string, error) {
	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, toSQLErr)
		return "", errors.Join(rentalstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// executeQuery runs a read and returns rows with timing information.
func (s Store) executeQuery(ctx context.Context, operation string, sqlQuery string) (adapters.DBRows, time.Duration, error) {
	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, operation, duration)

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		s.recordError(ctx, operation)

		return nil, duration, errors.Join(rentalstore.ErrQueryingFailed, queryErr)
	}

	return rows, duration, nil
}

// executeStatement runs a write and returns the affected row count with timing information.
func (s Store) executeStatement(ctx context.Context, operation string, sqlQuery string) (int64, time.Duration, error) {
	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, operation, duration)

	if execErr != nil {
		s.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		s.recordError(ctx, operation)

		return 0, duration, errors.Join(rentalstore.ErrUpdatingFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		s.recordError(ctx, operation)

		return 0, duration, errors.Join(rentalstore.ErrUpdatingFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

// closeRows closes database rows and logs any errors.
func (s Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

// scanFailed logs and wraps a row scanning or iteration failure.
func (s Store) scanFailed(ctx context.Context, operation string, err error) error {
	s.logError(ctx, logMsgScanRowFailed, err)
	s.recordError(ctx, operation)

	return errors.Join(rentalstore.ErrScanningDBRowFailed, err)
}

// corruptRecord logs and wraps a decoding failure of a stored record.
func (s Store) corruptRecord(ctx context.Context, operation string, table string, err error) error {
	s.logError(ctx, logMsgCorruptRecord, err, logAttrTable, table)
	s.recordError(ctx, operation)

	return errors.Join(rentalstore.ErrCorruptRecord, err)
}

func (s Store) logQueryWithDuration(ctx context.Context, sqlQuery string, operation string, duration time.Duration) {
	s.logDebug(ctx, logMsgSQLExecuted+operation, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
}

func (s Store) logOperation(ctx context.Context, operation string, duration time.Duration, args ...any) {
	allArgs := append([]any{logAttrDurationMS, toMilliseconds(duration)}, args...)

	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.InfoContext(ctx, logMsgOperation+operation, allArgs...)
	case s.logger != nil:
		s.logger.Info(logMsgOperation+operation, allArgs...)
	}

	s.recordDuration(ctx, operation, duration)
}

func (s Store) logDebug(ctx context.Context, msg string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.DebugContext(ctx, msg, args...)
	case s.logger != nil:
		s.logger.Debug(msg, args...)
	}
}

func (s Store) logWarn(ctx context.Context, msg string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.WarnContext(ctx, msg, args...)
	case s.logger != nil:
		s.logger.Warn(msg, args...)
	}
}

func (s Store) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	case s.logger != nil:
		s.logger.Error(msg, allArgs...)
	}
}

func (s Store) recordDuration(ctx context.Context, operation string, duration time.Duration) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{metricLabelOperation: operation, metricLabelStatus: statusSuccess}

	if contextualCollector, ok := s.metricsCollector.(rentalstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

func (s Store) recordError(ctx context.Context, operation string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{metricLabelOperation: operation, metricLabelStatus: statusError}

	if contextualCollector, ok := s.metricsCollector.(rentalstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricErrors, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricErrors, labels)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
