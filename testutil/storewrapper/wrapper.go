// Package storewrapper builds a migrated, empty sqlengine.Store for tests.
//
// ADAPTER_TYPE selects the database: empty or "sqlite" uses a temporary SQLite file,
// "pgx.pool", "sql.db" and "sqlx.db" connect to the PostgreSQL test database.
package storewrapper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/rental-return-events/rentalstore/sqlengine"
	"github.com/AntonStoeckl/rental-return-events/shell/config"
)

const envAdapterType = "ADAPTER_TYPE"

// Wrapper abstracts over the different database adapters.
type Wrapper interface {
	GetStore() sqlengine.Store
	Close()
}

type handleWrapper struct {
	handle config.StoreHandle
}

func (w *handleWrapper) GetStore() sqlengine.Store {
	return w.handle.Store
}

func (w *handleWrapper) Close() {
	w.handle.Close()
}

// CreateWrapperWithTestConfig opens, migrates and empties the store selected by ADAPTER_TYPE.
// The store is closed automatically when the test ends.
func CreateWrapperWithTestConfig(t testing.TB, options ...sqlengine.Option) Wrapper {
	t.Helper()

	cfg := testConfig(t)
	ctx := context.Background()

	handle, err := config.OpenStore(ctx, cfg, false, options...)
	require.NoError(t, err, "error opening the store in test setup")

	wrapper := &handleWrapper{handle: handle}
	t.Cleanup(wrapper.Close)

	require.NoError(t, handle.Migrate(ctx), "error migrating the store in test setup")
	require.NoError(t, handle.Store.Reset(ctx), "error cleaning up the store in test setup")

	return wrapper
}

func testConfig(t testing.TB) config.Config {
	adapterFromEnv := strings.ToLower(os.Getenv(envAdapterType))

	switch adapterFromEnv {
	case config.AdapterSQLite, "":
		return config.Config{
			DBAdapter:  config.AdapterSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "rentals.db"),
		}

	case config.AdapterPGXPool, config.AdapterSQLDB, config.AdapterSQLXDB:
		return config.Config{
			DBAdapter:   adapterFromEnv,
			DatabaseURL: config.PostgresTestDSN(),
		}

	default:
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterFromEnv))
	}
}
