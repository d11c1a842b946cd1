package sqlengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

var rentalColumns = []any{
	colID,
	colUserID,
	colAssetID,
	colCreatedAtLocationID,
	colCreatedAt,
	colExpiresAt,
	colStatus,
	colEligibleAssetTypes,
	colReturnedAtLocationID,
	colReturnedAt,
}

// GetRental reads a single rental by id. A missing rental is reported as found == false.
func (s Store) GetRental(ctx context.Context, rentalID string) (rentalstore.Rental, bool, error) {
	stmt := s.builder().
		From(tableRentals).
		Select(rentalColumns...).
		Where(goqu.C(colID).Eq(rentalID)).
		Limit(1)

	rentals, err := s.queryRentals(ctx, operationGetRental, stmt)
	if err != nil {
		return rentalstore.Rental{}, false, err
	}

	if len(rentals) == 0 {
		return rentalstore.Rental{}, false, nil
	}

	return rentals[0], true, nil
}

// ListRentalsForUser reads all rentals of a user regardless of their status,
// ordered by creation time as stored and then by id.
func (s Store) ListRentalsForUser(ctx context.Context, userID string) (rentalstore.Rentals, error) {
	stmt := s.builder().
		From(tableRentals).
		Select(rentalColumns...).
		Where(goqu.C(colUserID).Eq(userID)).
		Order(goqu.C(colCreatedAt).Asc(), goqu.C(colID).Asc())

	return s.queryRentals(ctx, operationListRentalsForUser, stmt)
}

// UpdateRentalStatus sets status, return time and return location of a rental.
//
// The update is unconditional, it neither checks the current status nor
// fails when no row matched. Callers confirm the outcome by reading the rental back.
func (s Store) UpdateRentalStatus(
	ctx context.Context,
	rentalID string,
	status rentalstore.RentalStatus,
	returnedAt time.Time,
	returnedAtLocationID string,
) error {

	stmt := s.builder().
		Update(tableRentals).
		Set(goqu.Record{
			colStatus:               string(status),
			colReturnedAt:           rentalstore.FormatTimestamp(returnedAt),
			colReturnedAtLocationID: returnedAtLocationID,
		}).
		Where(goqu.C(colID).Eq(rentalID))

	sqlQuery, err := s.toSQL(ctx, stmt)
	if err != nil {
		return err
	}

	rowsAffected, duration, err := s.executeStatement(ctx, operationUpdateRentalStatus, sqlQuery)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		s.logWarn(ctx, logMsgUpdateMatchedNone, logAttrRentalID, rentalID)
	}

	s.logOperation(ctx, operationUpdateRentalStatus, duration, logAttrRentalID, rentalID, logAttrRowCount, rowsAffected)

	return nil
}

// AddRental inserts a rental.
func (s Store) AddRental(ctx context.Context, rental rentalstore.Rental) error {
	eligibleAssetTypes, err := encodeAssetTypes(rental.EligibleAssetTypes)
	if err != nil {
		return errors.Join(rentalstore.ErrBuildingQueryFailed, err)
	}

	stmt := s.builder().
		Insert(tableRentals).
		Rows(goqu.Record{
			colID:                   rental.ID,
			colUserID:               rental.UserID,
			colAssetID:              rental.AssetID,
			colCreatedAtLocationID:  rental.CreatedAtLocationID,
			colCreatedAt:            rentalstore.FormatTimestamp(rental.CreatedAt),
			colExpiresAt:            encodeOptionalTimestamp(rental.ExpiresAt),
			colStatus:               string(rental.Status),
			colEligibleAssetTypes:   eligibleAssetTypes,
			colReturnedAtLocationID: encodeOptionalString(rental.ReturnedAtLocationID),
			colReturnedAt:           encodeOptionalTimestamp(rental.ReturnedAt),
		})

	return s.insert(ctx, tableRentals, stmt)
}

func (s Store) queryRentals(ctx context.Context, operation string, stmt *goqu.SelectDataset) (rentalstore.Rentals, error) {
	sqlQuery, err := s.toSQL(ctx, stmt)
	if err != nil {
		return nil, err
	}

	rows, duration, err := s.executeQuery(ctx, operation, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(ctx, rows)

	rentals := make(rentalstore.Rentals, 0)

	for rows.Next() {
		row := rentalRow{}
		if scanErr := rows.Scan(row.scanTargets()...); scanErr != nil {
			return nil, s.scanFailed(ctx, operation, scanErr)
		}

		rental, decodeErr := row.toRental()
		if decodeErr != nil {
			return nil, s.corruptRecord(ctx, operation, tableRentals, decodeErr)
		}

		rentals = append(rentals, rental)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, s.scanFailed(ctx, operation, rowsErr)
	}

	s.logOperation(ctx, operation, duration, logAttrRowCount, len(rentals))

	return rentals, nil
}
