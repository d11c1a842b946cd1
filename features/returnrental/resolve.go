package returnrental

import (
	"context"
	"time"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

// SelectEligibleRental picks the rental a returned asset settles.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: the returned asset (if it exists), all rentals of the returning user, the return time
//	WHEN: a return event is resolved
//	THEN: among the eligible rentals the one created first is selected
//	ELIGIBLE: status is IN_PROGRESS, the asset type is one of the rental's eligible asset types,
//	          and the rental expires strictly after the return time or never
//	TIE: equal creation times are ordered by ascending rental id
//	NONE: an unknown asset or an empty eligible set selects nothing
func SelectEligibleRental(
	asset rentalstore.Asset,
	assetFound bool,
	rentals rentalstore.Rentals,
	at time.Time,
) (rentalstore.Rental, bool) {

	if !assetFound {
		return rentalstore.Rental{}, false
	}

	var selected rentalstore.Rental
	found := false

	for _, rental := range EligibleRentals(asset, rentals, at) {
		if !found || createdBefore(rental, selected) {
			selected = rental
			found = true
		}
	}

	return selected, found
}

// EligibleRentals filters rentals down to those the asset may close at the given time, keeping their order.
func EligibleRentals(asset rentalstore.Asset, rentals rentalstore.Rentals, at time.Time) rentalstore.Rentals {
	eligible := make(rentalstore.Rentals, 0, len(rentals))

	for _, rental := range rentals {
		if !rental.IsInProgress() {
			continue
		}

		if !rental.AcceptsAssetType(asset.AssetType) {
			continue
		}

		if rental.IsExpiredAt(at) {
			continue
		}

		eligible = append(eligible, rental)
	}

	return eligible
}

func createdBefore(a, b rentalstore.Rental) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}

	return a.ID < b.ID
}

// resolve loads the asset and the user's rentals and selects the rental to settle.
// A missing asset is not an error, it resolves to nothing.
func (h CommandHandler) resolve(ctx context.Context, event rentalstore.ReturnEvent) (rentalstore.Rental, bool, error) {
	asset, assetFound, err := h.store.GetAsset(ctx, event.AssetID)
	if err != nil {
		return rentalstore.Rental{}, false, err
	}

	if !assetFound {
		h.logDebug(ctx, logMsgAssetNotFound, logAttrAssetID, event.AssetID)
		return rentalstore.Rental{}, false, nil
	}

	rentals, err := h.store.ListRentalsForUser(ctx, event.UserID)
	if err != nil {
		return rentalstore.Rental{}, false, err
	}

	rental, found := SelectEligibleRental(asset, assetFound, rentals, event.Timestamp)

	h.logDebug(ctx, logMsgResolved,
		logAttrUserID, event.UserID,
		logAttrAssetType, asset.AssetType,
		logAttrRentalCount, len(rentals),
		logAttrFound, found,
	)

	return rental, found, nil
}
