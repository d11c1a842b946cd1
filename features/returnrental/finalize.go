package returnrental

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

// ErrRentalVanished is returned when a rental cannot be read back after completing it.
var ErrRentalVanished = errors.New("rental not found after status update")

// finalize completes the rental with the return time and location and returns the stored result.
//
// It issues exactly one update and checks no precondition, resolution only hands it IN_PROGRESS rentals.
func (h CommandHandler) finalize(
	ctx context.Context,
	rental rentalstore.Rental,
	event rentalstore.ReturnEvent,
) (rentalstore.Rental, error) {

	err := h.store.UpdateRentalStatus(ctx, rental.ID, rentalstore.RentalStatusCompleted, event.Timestamp, event.LocationID)
	if err != nil {
		return rentalstore.Rental{}, err
	}

	completed, found, err := h.store.GetRental(ctx, rental.ID)
	if err != nil {
		return rentalstore.Rental{}, err
	}

	if !found {
		return rentalstore.Rental{}, errors.Join(ErrRentalVanished, errors.New(rental.ID))
	}

	return completed, nil
}
