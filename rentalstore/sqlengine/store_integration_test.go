package sqlengine_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
	"github.com/AntonStoeckl/rental-return-events/rentalstore/sqlengine"
	"github.com/AntonStoeckl/rental-return-events/shell/config"
	"github.com/AntonStoeckl/rental-return-events/testutil/storewrapper"
)

func Test_Store_RentalRoundTrip(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()
	createdAt := time.Date(2025, 2, 5, 12, 0, 0, 0, time.UTC)
	expiresAt := createdAt.Add(10 * 24 * time.Hour)
	rental := givenRental("r-1", "tpg_u0001", createdAt, &expiresAt)
	require.NoError(t, store.AddRental(ctx, rental))

	// act
	stored, found, err := store.GetRental(ctx, "r-1")

	// assert
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rental.ID, stored.ID)
	assert.Equal(t, rental.AssetID, stored.AssetID)
	assert.Equal(t, rental.CreatedAtLocationID, stored.CreatedAtLocationID)
	assert.Equal(t, rental.EligibleAssetTypes, stored.EligibleAssetTypes)
	assert.Equal(t, rentalstore.RentalStatusInProgress, stored.Status)
	assert.True(t, createdAt.Equal(stored.CreatedAt))
	require.NotNil(t, stored.ExpiresAt)
	assert.True(t, expiresAt.Equal(*stored.ExpiresAt))
	assert.Nil(t, stored.ReturnedAt)
	assert.Nil(t, stored.ReturnedAtLocationID)
}

func Test_Store_ListRentalsForUser_ReturnsOnlyThatUserInCreationOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()
	base := time.Date(2025, 2, 5, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.AddRental(ctx, givenRental("r-late", "tpg_u0001", base.Add(time.Hour), nil)))
	require.NoError(t, store.AddRental(ctx, givenRental("r-early", "tpg_u0001", base, nil)))
	require.NoError(t, store.AddRental(ctx, givenRental("r-other", "tpg_u0002", base, nil)))

	// act
	rentals, err := store.ListRentalsForUser(ctx, "tpg_u0001")

	// assert
	require.NoError(t, err)
	require.Len(t, rentals, 2)
	assert.Equal(t, "r-early", rentals[0].ID)
	assert.Equal(t, "r-late", rentals[1].ID)
}

func Test_Store_UpdateRentalStatus_IsVisibleOnReadBack(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()
	createdAt := time.Date(2025, 2, 5, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.AddRental(ctx, givenRental("r-1", "tpg_u0001", createdAt, nil)))
	returnedAt := time.Date(2025, 2, 10, 11, 0, 0, 0, time.FixedZone("", 3600))

	// act
	err := store.UpdateRentalStatus(ctx, "r-1", rentalstore.RentalStatusCompleted, returnedAt, "topanga-location-01")
	stored, found, getErr := store.GetRental(ctx, "r-1")

	// assert
	require.NoError(t, err)
	require.NoError(t, getErr)
	require.True(t, found)
	assert.Equal(t, rentalstore.RentalStatusCompleted, stored.Status)
	require.NotNil(t, stored.ReturnedAt)
	assert.True(t, returnedAt.Equal(*stored.ReturnedAt))
	assert.Equal(t, "2025-02-10T11:00:00+01:00", rentalstore.FormatTimestamp(*stored.ReturnedAt))
	require.NotNil(t, stored.ReturnedAtLocationID)
	assert.Equal(t, "topanga-location-01", *stored.ReturnedAtLocationID)
}

func Test_Store_UpdateRentalStatus_UnknownRentalIsNotAnError(t *testing.T) {
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()

	err := store.UpdateRentalStatus(ctx, "missing", rentalstore.RentalStatusCompleted, time.Now(), "loc")

	assert.NoError(t, err)
}

func Test_Store_AssetsAndReset(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()
	require.NoError(t, store.AddUser(ctx, rentalstore.User{ID: "tpg_u0001", Name: "Adam B."}))
	require.NoError(t, store.AddAsset(ctx, rentalstore.Asset{ID: "tpg_a00005", AssetType: "3-compartment"}))

	// act
	asset, found, err := store.GetAsset(ctx, "tpg_a00005")
	resetErr := store.Reset(ctx)
	_, foundAfterReset, errAfterReset := store.GetAsset(ctx, "tpg_a00005")

	// assert
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "3-compartment", asset.AssetType)
	assert.NoError(t, resetErr)
	assert.NoError(t, errAfterReset)
	assert.False(t, foundAfterReset)
}

func Test_Store_VerifySchema_AfterMigration(t *testing.T) {
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()

	assert.NoError(t, store.VerifySchema(context.Background()))
}

func Test_Migrate_SQLite_IsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	db, err := config.SQLiteDB(ctx, filepath.Join(t.TempDir(), "rentals.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// act
	firstErr := sqlengine.Migrate(ctx, db, sqlengine.DialectSQLite)
	secondErr := sqlengine.Migrate(ctx, db, sqlengine.DialectSQLite)

	// assert
	assert.NoError(t, firstErr)
	assert.NoError(t, secondErr)
}

func Test_Migrate_RejectsBadInput(t *testing.T) {
	ctx := context.Background()
	db, err := config.SQLiteDB(ctx, filepath.Join(t.TempDir(), "rentals.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.ErrorIs(t, sqlengine.Migrate(ctx, (*sql.DB)(nil), sqlengine.DialectSQLite), rentalstore.ErrNilDatabaseConnection)
	assert.ErrorIs(t, sqlengine.Migrate(ctx, db, "oracle"), rentalstore.ErrUnsupportedDialect)
}

func givenRental(id, userID string, createdAt time.Time, expiresAt *time.Time) rentalstore.Rental {
	return rentalstore.Rental{
		ID:                  id,
		UserID:              userID,
		AssetID:             "tpg_a00001",
		CreatedAtLocationID: "topanga-location-01",
		CreatedAt:           createdAt,
		ExpiresAt:           expiresAt,
		Status:              rentalstore.RentalStatusInProgress,
		EligibleAssetTypes:  []string{"3-compartment", "clamshell"},
	}
}
