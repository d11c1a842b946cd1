package rentalstore

import (
	"slices"
	"time"
)

// RentalStatus is the lifecycle state of a Rental.
type RentalStatus string

const (
	// RentalStatusInProgress marks an open rental which can be closed by a return.
	RentalStatusInProgress RentalStatus = "IN_PROGRESS"

	// RentalStatusCompleted marks a rental closed by a return.
	RentalStatusCompleted RentalStatus = "COMPLETED"

	// RentalStatusForgiven is reserved for manual dispositions.
	RentalStatusForgiven RentalStatus = "FORGIVEN"

	// RentalStatusFlagged is reserved for manual dispositions.
	RentalStatusFlagged RentalStatus = "FLAGGED"
)

// IsKnown reports whether s is one of the defined statuses.
func (s RentalStatus) IsKnown() bool {
	switch s {
	case RentalStatusInProgress, RentalStatusCompleted, RentalStatusForgiven, RentalStatusFlagged:
		return true
	default:
		return false
	}
}

// Rentals is an alias type for a slice of Rental.
type Rentals = []Rental

// Rental is the checkout of an asset by a user.
//
// ExpiresAt is nil for rentals that never expire.
// ReturnedAt and ReturnedAtLocationID are only set once the rental is completed.
type Rental struct {
	ID                   string
	UserID               string
	AssetID              string
	CreatedAtLocationID  string
	CreatedAt            time.Time
	ExpiresAt            *time.Time
	Status               RentalStatus
	EligibleAssetTypes   []string
	ReturnedAtLocationID *string
	ReturnedAt           *time.Time
}

// IsInProgress reports whether the rental is still open.
func (r Rental) IsInProgress() bool {
	return r.Status == RentalStatusInProgress
}

// AcceptsAssetType reports whether an asset of the given type may close this rental.
func (r Rental) AcceptsAssetType(assetType string) bool {
	return slices.Contains(r.EligibleAssetTypes, assetType)
}

// IsExpiredAt reports whether the rental has expired at t.
// A rental expiring exactly at t counts as expired.
func (r Rental) IsExpiredAt(t time.Time) bool {
	return r.ExpiresAt != nil && !r.ExpiresAt.After(t)
}
