package config

import (
	"context"
	"database/sql"
	"errors"
	"os"

	_ "modernc.org/sqlite" // sqlite driver
)

const sqliteDriverName = "sqlite"

// ErrStoreFileMissing is returned when an existing SQLite store file is required but absent.
var ErrStoreFileMissing = errors.New("sqlite store file does not exist")

// SQLiteDSN builds a modernc sqlite DSN for a database file.
// Writers wait for locks instead of failing right away.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)"
}

// SQLiteDB opens and pings the SQLite database at path.
// With mustExist set it refuses to create a new, empty database file.
func SQLiteDB(ctx context.Context, path string, mustExist bool) (*sql.DB, error) {
	if mustExist {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return nil, errors.Join(ErrStoreFileMissing, errors.New(path))
		}
	}

	db, err := sql.Open(sqliteDriverName, SQLiteDSN(path))
	if err != nil {
		return nil, err
	}

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, pingErr
	}

	return db, nil
}
