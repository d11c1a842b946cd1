package sqlengine

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// ErrMigrationFailed is returned when the schema migrations cannot be applied.
var ErrMigrationFailed = errors.New("applying schema migrations failed")

// Migrate applies all pending schema migrations to db using the given dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	if db == nil {
		return rentalstore.ErrNilDatabaseConnection
	}

	var gooseDialect goose.Dialect

	switch dialect {
	case DialectPostgres:
		gooseDialect = goose.DialectPostgres
	case DialectSQLite:
		gooseDialect = goose.DialectSQLite3
	default:
		return rentalstore.ErrUnsupportedDialect
	}

	migrations, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	provider, err := goose.NewProvider(gooseDialect, db, migrations)
	if err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	if _, err = provider.Up(ctx); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	return nil
}

// MigratePGXPool applies all pending schema migrations through a pgx pool.
func MigratePGXPool(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return rentalstore.ErrNilDatabaseConnection
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func() { _ = db.Close() }()

	return Migrate(ctx, db, DialectPostgres)
}
