package returnrental_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/AntonStoeckl/rental-return-events/features/returnrental"
	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

var (
	referenceNow = time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	containers   = []string{"3-compartment", "clamshell"}
	bowls        = []string{"large-bowl", "small-bowl"}
)

func Test_SelectEligibleRental_PicksEarliestCreated(t *testing.T) {
	// arrange
	asset := rentalstore.Asset{ID: "tpg_a00001", AssetType: "clamshell"}
	rentals := rentalstore.Rentals{
		givenOpenRental("r-newer", referenceNow.Add(-3*24*time.Hour), nil, containers),
		givenOpenRental("r-older", referenceNow.Add(-5*24*time.Hour), nil, containers),
	}

	// act
	selected, found := returnrental.SelectEligibleRental(asset, true, rentals, referenceNow)

	// assert
	assert.True(t, found)
	assert.Equal(t, "r-older", selected.ID)
}

func Test_SelectEligibleRental_SkipsIneligible(t *testing.T) {
	expired := referenceNow.Add(-time.Hour)
	expiringNow := referenceNow
	completed := givenOpenRental("r-completed", referenceNow.Add(-9*24*time.Hour), nil, containers)
	completed.Status = rentalstore.RentalStatusCompleted

	testCases := []struct {
		description string
		rental      rentalstore.Rental
	}{
		{description: "completed", rental: completed},
		{description: "wrong asset type", rental: givenOpenRental("r-bowl", referenceNow.Add(-8*24*time.Hour), nil, bowls)},
		{description: "expired", rental: givenOpenRental("r-expired", referenceNow.Add(-7*24*time.Hour), &expired, containers)},
		{description: "expires exactly at return time", rental: givenOpenRental("r-edge", referenceNow.Add(-6*24*time.Hour), &expiringNow, containers)},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			asset := rentalstore.Asset{ID: "tpg_a00001", AssetType: "clamshell"}
			eligible := givenOpenRental("r-eligible", referenceNow.Add(-time.Hour), nil, containers)

			// act
			selected, found := returnrental.SelectEligibleRental(asset, true, rentalstore.Rentals{tc.rental, eligible}, referenceNow)
			_, foundAlone := returnrental.SelectEligibleRental(asset, true, rentalstore.Rentals{tc.rental}, referenceNow)

			// assert
			assert.True(t, found)
			assert.Equal(t, "r-eligible", selected.ID)
			assert.False(t, foundAlone)
		})
	}
}

func Test_SelectEligibleRental_UnknownAssetSelectsNothing(t *testing.T) {
	rentals := rentalstore.Rentals{givenOpenRental("r-1", referenceNow.Add(-time.Hour), nil, containers)}

	_, found := returnrental.SelectEligibleRental(rentalstore.Asset{}, false, rentals, referenceNow)

	assert.False(t, found)
}

func Test_SelectEligibleRental_NoExpiryNeverExpires(t *testing.T) {
	asset := rentalstore.Asset{ID: "tpg_a00004", AssetType: "mug"}
	rentals := rentalstore.Rentals{givenOpenRental("r-1", referenceNow.Add(-365*24*time.Hour), nil, []string{"mug"})}

	selected, found := returnrental.SelectEligibleRental(asset, true, rentals, referenceNow.Add(365*24*time.Hour))

	assert.True(t, found)
	assert.Equal(t, "r-1", selected.ID)
}

func Test_SelectEligibleRental_TieBreaksOnRentalID(t *testing.T) {
	asset := rentalstore.Asset{ID: "tpg_a00001", AssetType: "clamshell"}
	createdAt := referenceNow.Add(-time.Hour)
	rentals := rentalstore.Rentals{
		givenOpenRental("r-b", createdAt, nil, containers),
		givenOpenRental("r-a", createdAt, nil, containers),
	}

	selected, found := returnrental.SelectEligibleRental(asset, true, rentals, referenceNow)

	assert.True(t, found)
	assert.Equal(t, "r-a", selected.ID)
}

func Test_SelectEligibleRental_ComparesInstantsAcrossOffsets(t *testing.T) {
	asset := rentalstore.Asset{ID: "tpg_a00001", AssetType: "clamshell"}
	plusTwo := time.FixedZone("", 2*3600)
	rentals := rentalstore.Rentals{
		givenOpenRental("r-utc", time.Date(2025, 2, 10, 10, 30, 0, 0, time.UTC), nil, containers),
		givenOpenRental("r-plus-two", time.Date(2025, 2, 10, 12, 0, 0, 0, plusTwo), nil, containers),
	}

	selected, found := returnrental.SelectEligibleRental(asset, true, rentals, referenceNow)

	assert.True(t, found)
	assert.Equal(t, "r-plus-two", selected.ID)
}

func Test_SelectEligibleRental_Properties(t *testing.T) {
	assetTypes := []string{"3-compartment", "clamshell", "large-bowl", "small-bowl", "mug"}
	statuses := []rentalstore.RentalStatus{
		rentalstore.RentalStatusInProgress,
		rentalstore.RentalStatusCompleted,
		rentalstore.RentalStatusForgiven,
	}

	rapid.Check(t, func(t *rapid.T) {
		asset := rentalstore.Asset{ID: "asset", AssetType: rapid.SampledFrom(assetTypes).Draw(t, "assetType")}
		count := rapid.IntRange(0, 8).Draw(t, "count")

		rentals := make(rentalstore.Rentals, 0, count)
		for i := range count {
			createdAt := referenceNow.Add(-time.Duration(rapid.IntRange(0, 240).Draw(t, "createdHoursAgo")) * time.Hour)

			var expiresAt *time.Time
			if rapid.Bool().Draw(t, "expires") {
				e := referenceNow.Add(time.Duration(rapid.IntRange(-48, 48).Draw(t, "expiresInHours")) * time.Hour)
				expiresAt = &e
			}

			rental := givenOpenRental(fmt.Sprintf("r-%02d", i), createdAt, expiresAt,
				rapid.SliceOfDistinct(rapid.SampledFrom(assetTypes), rapid.ID[string]).Draw(t, "eligible"))
			rental.Status = rapid.SampledFrom(statuses).Draw(t, "status")
			rentals = append(rentals, rental)
		}

		selected, found := returnrental.SelectEligibleRental(asset, true, rentals, referenceNow)
		eligible := returnrental.EligibleRentals(asset, rentals, referenceNow)

		if found != (len(eligible) > 0) {
			t.Fatalf("found=%v but %d eligible rentals", found, len(eligible))
		}

		if !found {
			return
		}

		if !selected.IsInProgress() || !selected.AcceptsAssetType(asset.AssetType) || selected.IsExpiredAt(referenceNow) {
			t.Fatalf("selected rental %s is not eligible", selected.ID)
		}

		for _, other := range eligible {
			if other.CreatedAt.Before(selected.CreatedAt) {
				t.Fatalf("rental %s was created before the selected %s", other.ID, selected.ID)
			}
		}
	})
}

func givenOpenRental(id string, createdAt time.Time, expiresAt *time.Time, eligible []string) rentalstore.Rental {
	return rentalstore.Rental{
		ID:                  id,
		UserID:              "tpg_u0001",
		AssetID:             "tpg_a00001",
		CreatedAtLocationID: "topanga-location-01",
		CreatedAt:           createdAt,
		ExpiresAt:           expiresAt,
		Status:              rentalstore.RentalStatusInProgress,
		EligibleAssetTypes:  eligible,
	}
}
