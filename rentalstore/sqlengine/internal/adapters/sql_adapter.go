package adapters

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// queryExecer is the subset of *sql.DB and *sqlx.DB the adapter needs.
type queryExecer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SQLAdapter implements DBAdapter on top of database/sql.
// It serves both lib/pq and modernc sqlite handles as well as sqlx handles.
type SQLAdapter struct {
	db queryExecer
}

// NewSQLAdapter creates a new adapter for a sql.DB.
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

// NewSQLXAdapter creates a new adapter for a sqlx.DB.
func NewSQLXAdapter(db *sqlx.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

// Query runs a read and hands out the *sql.Rows directly.
func (s *SQLAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Exec runs a write.
func (s *SQLAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return result, nil
}
