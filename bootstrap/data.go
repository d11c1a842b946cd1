package bootstrap

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

const (
	LocationOne   = "topanga-location-01"
	LocationTwo   = "topanga-location-02"
	LocationThree = "topanga-location-03"

	assetCount = 50
	day        = 24 * time.Hour
)

// ReferenceNow is the fixed point in time all demo data is relative to.
var ReferenceNow = time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

// AssetTypes in the order assets are assigned to them by id number.
var AssetTypes = []string{"3-compartment", "clamshell", "large-bowl", "small-bowl", "mug"}

// compatibleAssetTypes lists which returned asset types a rental of a given asset type accepts.
var compatibleAssetTypes = map[string][]string{
	"3-compartment": {"3-compartment", "clamshell"},
	"clamshell":     {"3-compartment", "clamshell"},
	"large-bowl":    {"large-bowl", "small-bowl"},
	"small-bowl":    {"large-bowl", "small-bowl"},
	"mug":           {"mug"},
}

// EligibleAssetTypesFor returns the asset types a rental of assetType may be closed with.
func EligibleAssetTypesFor(assetType string) []string {
	return append([]string(nil), compatibleAssetTypes[assetType]...)
}

// AssetID renders the id of the n-th demo asset.
func AssetID(n int) string {
	return fmt.Sprintf("tpg_a%05d", n)
}

// AssetTypeOf returns the type of the n-th demo asset.
func AssetTypeOf(n int) string {
	return AssetTypes[n%len(AssetTypes)]
}

// Users returns the demo users.
func Users() rentalstore.Users {
	return rentalstore.Users{
		{ID: "tpg_u0001", Name: "Adam B."},
		{ID: "tpg_u0002", Name: "Page S."},
		{ID: "tpg_u0003", Name: "Max O."},
		{ID: "tpg_u0004", Name: "Wesley J."},
		{ID: "tpg_u0005", Name: "Don B."},
	}
}

// Assets returns the demo assets tpg_a00001 to tpg_a00050.
func Assets() rentalstore.Assets {
	assets := make(rentalstore.Assets, 0, assetCount)
	for n := 1; n <= assetCount; n++ {
		assets = append(assets, rentalstore.Asset{ID: AssetID(n), AssetType: AssetTypeOf(n)})
	}

	return assets
}

type rentalSeed struct {
	userID        string
	assetNumber   int
	location      string
	createdAgo    time.Duration
	expiresInDays int
	returned      bool
	returnedAt    string
	returnedAgo   time.Duration
}

var rentalSeeds = []rentalSeed{
	{userID: "tpg_u0001", assetNumber: 1, location: LocationOne, createdAgo: 5 * day, expiresInDays: 10},
	{userID: "tpg_u0001", assetNumber: 2, location: LocationOne, createdAgo: 3 * day, expiresInDays: 7},
	{userID: "tpg_u0002", assetNumber: 10, location: LocationTwo, createdAgo: 8 * day, expiresInDays: 15, returned: true, returnedAt: LocationOne, returnedAgo: 1 * day},
	{userID: "tpg_u0002", assetNumber: 15, location: LocationOne, createdAgo: 1 * day, expiresInDays: 5},
	{userID: "tpg_u0003", assetNumber: 20, location: LocationThree, createdAgo: 2 * day, expiresInDays: 6},
	{userID: "tpg_u0004", assetNumber: 25, location: LocationOne, createdAgo: 6 * day, expiresInDays: 10},
	{userID: "tpg_u0004", assetNumber: 30, location: LocationTwo, createdAgo: 4 * day, expiresInDays: 8, returned: true, returnedAt: LocationOne, returnedAgo: 2 * day},
	{userID: "tpg_u0005", assetNumber: 35, location: LocationThree, createdAgo: 7 * day, expiresInDays: 10},
	{userID: "tpg_u0005", assetNumber: 40, location: LocationOne, createdAgo: 3 * day, expiresInDays: 7},
	{userID: "tpg_u0005", assetNumber: 45, location: LocationTwo, createdAgo: 9 * day, expiresInDays: 12, returned: true, returnedAt: LocationThree, returnedAgo: 3 * day},
}

// Rentals returns the demo rentals with fresh random ids.
func Rentals() rentalstore.Rentals {
	rentals := make(rentalstore.Rentals, 0, len(rentalSeeds))

	for _, seed := range rentalSeeds {
		createdAt := ReferenceNow.Add(-seed.createdAgo)
		expiresAt := createdAt.Add(time.Duration(seed.expiresInDays) * day)

		rental := rentalstore.Rental{
			ID:                  uuid.NewString(),
			UserID:              seed.userID,
			AssetID:             AssetID(seed.assetNumber),
			CreatedAtLocationID: seed.location,
			CreatedAt:           createdAt,
			ExpiresAt:           &expiresAt,
			Status:              rentalstore.RentalStatusInProgress,
			EligibleAssetTypes:  EligibleAssetTypesFor(AssetTypeOf(seed.assetNumber)),
		}

		if seed.returned {
			returnedAt := ReferenceNow.Add(-seed.returnedAgo)
			returnedAtLocation := seed.returnedAt
			rental.Status = rentalstore.RentalStatusCompleted
			rental.ReturnedAt = &returnedAt
			rental.ReturnedAtLocationID = &returnedAtLocation
		}

		rentals = append(rentals, rental)
	}

	return rentals
}
