package sqlengine

import (
	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

const (
	// DialectPostgres selects PostgreSQL flavored SQL.
	DialectPostgres = "postgres"

	// DialectSQLite selects SQLite flavored SQL.
	DialectSQLite = "sqlite3"
)

// Option defines a functional option for configuring the Store.
type Option func(*Store) error

// WithDialect sets the SQL dialect used to build statements.
// Stores built from a pgx pool always speak DialectPostgres.
func WithDialect(dialect string) Option {
	return func(s *Store) error {
		switch dialect {
		case DialectPostgres, DialectSQLite:
			s.dialect = dialect
			return nil

		default:
			return rentalstore.ErrUnsupportedDialect
		}
	}
}

// WithLogger sets the logger for the Store.
//
// Debug level: SQL statements with execution timing
// Info level: row counts and durations of operations
// Warn level: non-critical issues like updates matching no row or cleanup failures
// Error level: failures that make an operation fail.
func WithLogger(logger rentalstore.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, which takes precedence over the plain Logger.
func WithContextualLogger(logger rentalstore.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector which receives durations of store operations and error counts.
func WithMetrics(collector rentalstore.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}
