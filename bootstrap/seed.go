package bootstrap

import (
	"context"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

// Seeder defines the store operations needed to load the demo data.
type Seeder interface {
	Reset(ctx context.Context) error
	AddUser(ctx context.Context, user rentalstore.User) error
	AddAsset(ctx context.Context, asset rentalstore.Asset) error
	AddRental(ctx context.Context, rental rentalstore.Rental) error
}

// Dataset is the demo data as it was written to a store.
type Dataset struct {
	Users   rentalstore.Users
	Assets  rentalstore.Assets
	Rentals rentalstore.Rentals
}

// RentalOf returns the seeded rental of the given asset.
func (d Dataset) RentalOf(assetID string) (rentalstore.Rental, bool) {
	for _, rental := range d.Rentals {
		if rental.AssetID == assetID {
			return rental, true
		}
	}

	return rentalstore.Rental{}, false
}

// Seed replaces the store content with the demo data.
func Seed(ctx context.Context, store Seeder) (Dataset, error) {
	dataset := Dataset{Users: Users(), Assets: Assets(), Rentals: Rentals()}

	if err := store.Reset(ctx); err != nil {
		return Dataset{}, err
	}

	for _, user := range dataset.Users {
		if err := store.AddUser(ctx, user); err != nil {
			return Dataset{}, err
		}
	}

	for _, asset := range dataset.Assets {
		if err := store.AddAsset(ctx, asset); err != nil {
			return Dataset{}, err
		}
	}

	for _, rental := range dataset.Rentals {
		if err := store.AddRental(ctx, rental); err != nil {
			return Dataset{}, err
		}
	}

	return dataset, nil
}
