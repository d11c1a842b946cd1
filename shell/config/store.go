package config

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/rental-return-events/rentalstore/sqlengine"
)

// StoreHandle owns the database connection behind a sqlengine.Store.
type StoreHandle struct {
	Store   sqlengine.Store
	migrate func(ctx context.Context) error
	close   func()
}

// Migrate applies pending schema migrations to the underlying database.
func (h StoreHandle) Migrate(ctx context.Context) error {
	return h.migrate(ctx)
}

// Close releases the underlying database connection.
func (h StoreHandle) Close() {
	h.close()
}

// OpenStore connects to the database selected by cfg.DBAdapter and builds a Store on it.
// For SQLite, mustExist makes a missing database file an error instead of creating it.
func OpenStore(ctx context.Context, cfg Config, mustExist bool, options ...sqlengine.Option) (StoreHandle, error) {
	switch cfg.DBAdapter {
	case AdapterPGXPool:
		pool, err := PostgresPGXPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return StoreHandle{}, err
		}

		store, err := sqlengine.NewStoreFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return StoreHandle{}, err
		}

		return StoreHandle{
			Store:   store,
			migrate: func(ctx context.Context) error { return sqlengine.MigratePGXPool(ctx, pool) },
			close:   pool.Close,
		}, nil

	case AdapterSQLDB:
		db, err := PostgresSQLDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return StoreHandle{}, err
		}

		return sqlStoreHandle(db, sqlengine.DialectPostgres, options...)

	case AdapterSQLXDB:
		db, err := PostgresSQLX(ctx, cfg.DatabaseURL)
		if err != nil {
			return StoreHandle{}, err
		}

		store, err := sqlengine.NewStoreFromSQLX(db, append(options[:len(options):len(options)], sqlengine.WithDialect(sqlengine.DialectPostgres))...)
		if err != nil {
			_ = db.Close()
			return StoreHandle{}, err
		}

		return StoreHandle{
			Store:   store,
			migrate: func(ctx context.Context) error { return sqlengine.Migrate(ctx, db.DB, sqlengine.DialectPostgres) },
			close:   closeSQLX(db),
		}, nil

	case AdapterSQLite:
		db, err := SQLiteDB(ctx, cfg.SQLitePath, mustExist)
		if err != nil {
			return StoreHandle{}, err
		}

		return sqlStoreHandle(db, sqlengine.DialectSQLite, options...)

	default:
		return StoreHandle{}, ErrUnsupportedAdapter
	}
}

func sqlStoreHandle(db *sql.DB, dialect string, options ...sqlengine.Option) (StoreHandle, error) {
	store, err := sqlengine.NewStoreFromSQLDB(db, append(options[:len(options):len(options)], sqlengine.WithDialect(dialect))...)
	if err != nil {
		_ = db.Close()
		return StoreHandle{}, err
	}

	return StoreHandle{
		Store:   store,
		migrate: func(ctx context.Context) error { return sqlengine.Migrate(ctx, db, dialect) },
		close:   func() { _ = db.Close() },
	}, nil
}

func closeSQLX(db *sqlx.DB) func() {
	return func() { _ = db.Close() }
}

