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

	"github.com/AntonStoeckl/rental-return-events/features/returnrental"
	"github.com/AntonStoeckl/rental-return-events/shell/config"
)

func Test_Run_SeedsStoreAndWritesEvents(t *testing.T) {
	// arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "challenge.db")
	eventsDir := filepath.Join(dir, "events")
	t.Setenv("RENTAL_DB_ADAPTER", config.AdapterSQLite)
	t.Setenv("RENTAL_SQLITE_PATH", path)
	var stdout, stderr bytes.Buffer

	// act
	exitCode := run(context.Background(), []string{"-events-dir", eventsDir}, &stdout, &stderr)

	// assert
	require.Equal(t, exitOK, exitCode, stderr.String())
	assert.Contains(t, stdout.String(), "seeded 5 users, 50 assets and 10 rentals")

	content, err := os.ReadFile(filepath.Join(eventsDir, "event_03.json"))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(content, &raw))
	event, err := returnrental.DecodeReturnEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, "tpg_a00500", event.AssetID)

	handle, err := config.OpenStore(context.Background(), config.Config{DBAdapter: config.AdapterSQLite, SQLitePath: path}, true)
	require.NoError(t, err)
	defer handle.Close()
	rentals, err := handle.Store.ListRentalsForUser(context.Background(), "tpg_u0005")
	require.NoError(t, err)
	assert.Len(t, rentals, 3)
}

func Test_Run_SeedingTwiceReplacesData(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RENTAL_DB_ADAPTER", config.AdapterSQLite)
	t.Setenv("RENTAL_SQLITE_PATH", filepath.Join(dir, "challenge.db"))
	var stdout, stderr bytes.Buffer

	first := run(context.Background(), nil, &stdout, &stderr)
	second := run(context.Background(), nil, &stdout, &stderr)

	assert.Equal(t, exitOK, first)
	assert.Equal(t, exitOK, second, stderr.String())
}
