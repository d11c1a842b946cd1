package adapters

import (
	"context"
)

// DBAdapter runs fully interpolated SQL against whichever connection the application owns.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows is the cursor over a query result. *sql.Rows satisfies it as is.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult reports the outcome of a write. sql.Result satisfies it as is.
type DBResult interface {
	RowsAffected() (int64, error)
}
