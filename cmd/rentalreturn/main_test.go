package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/rental-return-events/bootstrap"
	"github.com/AntonStoeckl/rental-return-events/shell/config"
)

func Test_Run_CompletesExampleEvent(t *testing.T) {
	// arrange
	dir := givenSeededStore(t)
	eventFile := givenEventFile(t, dir, bootstrap.ExampleEvents()[0])
	var stdout, stderr bytes.Buffer

	// act
	exitCode := run(context.Background(), []string{eventFile}, &stdout, &stderr)

	// assert
	assert.Equal(t, exitOK, exitCode)
	assert.Contains(t, stdout.String(), `"status": "SUCCESS"`)
	assert.Contains(t, stdout.String(), `"rental_returned_at": "2025-02-10T11:00:00+00:00"`)
}

func Test_Run_UnresolvableEventStillExitsZero(t *testing.T) {
	dir := givenSeededStore(t)
	eventFile := givenEventFile(t, dir, bootstrap.ExampleEvents()[2])
	var stdout, stderr bytes.Buffer

	exitCode := run(context.Background(), []string{eventFile}, &stdout, &stderr)

	assert.Equal(t, exitOK, exitCode)
	assert.Contains(t, stdout.String(), `"message": "No active rentals found for user tpg_u0005"`)
}

func Test_Run_Failures(t *testing.T) {
	dir := givenSeededStore(t)

	notAnObject := filepath.Join(dir, "list.json")
	require.NoError(t, os.WriteFile(notAnObject, []byte(`[1, 2]`), 0o600))

	malformed := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`{"user_qr_data": `), 0o600))

	testCases := []struct {
		description string
		args        []string
	}{
		{description: "no arguments", args: nil},
		{description: "too many arguments", args: []string{"a.json", "b.json"}},
		{description: "missing event file", args: []string{filepath.Join(dir, "absent.json")}},
		{description: "event is not an object", args: []string{notAnObject}},
		{description: "malformed json", args: []string{malformed}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			exitCode := run(context.Background(), tc.args, &stdout, &stderr)

			assert.Equal(t, exitFailure, exitCode)
			assert.Empty(t, stdout.String())
		})
	}
}

func Test_Run_MissingStoreFile(t *testing.T) {
	// arrange
	dir := t.TempDir()
	t.Setenv("RENTAL_DB_ADAPTER", config.AdapterSQLite)
	t.Setenv("RENTAL_SQLITE_PATH", filepath.Join(dir, "absent.db"))
	t.Setenv("RENTAL_OTLP_ENDPOINT", "")
	eventFile := givenEventFile(t, dir, bootstrap.ExampleEvents()[0])
	var stdout, stderr bytes.Buffer

	// act
	exitCode := run(context.Background(), []string{eventFile}, &stdout, &stderr)

	// assert
	assert.Equal(t, exitFailure, exitCode)
	assert.NoFileExists(t, filepath.Join(dir, "absent.db"))
}

func Test_Run_StoreWithoutTables(t *testing.T) {
	// arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.db")
	db, err := config.SQLiteDB(context.Background(), path, false)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	t.Setenv("RENTAL_DB_ADAPTER", config.AdapterSQLite)
	t.Setenv("RENTAL_SQLITE_PATH", path)
	t.Setenv("RENTAL_OTLP_ENDPOINT", "")
	eventFile := givenEventFile(t, dir, bootstrap.ExampleEvents()[0])
	var stdout, stderr bytes.Buffer

	// act
	exitCode := run(context.Background(), []string{eventFile}, &stdout, &stderr)

	// assert
	assert.Equal(t, exitFailure, exitCode)
	assert.Contains(t, stderr.String(), "rental store is not usable")
}

func givenSeededStore(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "challenge.db")
	t.Setenv("RENTAL_DB_ADAPTER", config.AdapterSQLite)
	t.Setenv("RENTAL_SQLITE_PATH", path)
	t.Setenv("RENTAL_OTLP_ENDPOINT", "")

	ctx := context.Background()
	handle, err := config.OpenStore(ctx, config.Config{DBAdapter: config.AdapterSQLite, SQLitePath: path}, false)
	require.NoError(t, err, "error in arranging test data")
	defer handle.Close()

	require.NoError(t, handle.Migrate(ctx), "error in arranging test data")
	_, err = bootstrap.Seed(ctx, handle.Store)
	require.NoError(t, err, "error in arranging test data")

	return dir
}

func givenEventFile(t *testing.T, dir string, event bootstrap.ExampleEvent) string {
	t.Helper()

	content, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(event.Payload)
	require.NoError(t, err, "error in arranging test data")

	path := filepath.Join(dir, event.FileName)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}
