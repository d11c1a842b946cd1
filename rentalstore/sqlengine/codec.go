package sqlengine

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

var (
	errMissingRequiredColumn = errors.New("required column is null or empty")
	errUnknownRentalStatus   = errors.New("unknown rental status")
	errMalformedAssetTypes   = errors.New("eligible asset types is not a json list of strings")
)

// rentalRow mirrors a rentals row, every column is TEXT and may be NULL.
type rentalRow struct {
	id                   sql.NullString
	userID               sql.NullString
	assetID              sql.NullString
	createdAtLocationID  sql.NullString
	createdAt            sql.NullString
	expiresAt            sql.NullString
	status               sql.NullString
	eligibleAssetTypes   sql.NullString
	returnedAtLocationID sql.NullString
	returnedAt           sql.NullString
}

func (r *rentalRow) scanTargets() []any {
	return []any{
		&r.id,
		&r.userID,
		&r.assetID,
		&r.createdAtLocationID,
		&r.createdAt,
		&r.expiresAt,
		&r.status,
		&r.eligibleAssetTypes,
		&r.returnedAtLocationID,
		&r.returnedAt,
	}
}

// toRental decodes the raw row into a domain Rental.
func (r *rentalRow) toRental() (rentalstore.Rental, error) {
	if r.id.String == "" || r.userID.String == "" || r.createdAt.String == "" {
		return rentalstore.Rental{}, errors.Join(errMissingRequiredColumn, errors.New("rental "+r.id.String))
	}

	createdAt, err := rentalstore.ParseStoredTimestamp(r.createdAt.String)
	if err != nil {
		return rentalstore.Rental{}, err
	}

	expiresAt, err := decodeOptionalTimestamp(r.expiresAt)
	if err != nil {
		return rentalstore.Rental{}, err
	}

	returnedAt, err := decodeOptionalTimestamp(r.returnedAt)
	if err != nil {
		return rentalstore.Rental{}, err
	}

	status := rentalstore.RentalStatus(r.status.String)
	if !status.IsKnown() {
		return rentalstore.Rental{}, errors.Join(errUnknownRentalStatus, errors.New(r.status.String))
	}

	eligibleAssetTypes, err := decodeAssetTypes(r.eligibleAssetTypes)
	if err != nil {
		return rentalstore.Rental{}, err
	}

	return rentalstore.Rental{
		ID:                   r.id.String,
		UserID:               r.userID.String,
		AssetID:              r.assetID.String,
		CreatedAtLocationID:  r.createdAtLocationID.String,
		CreatedAt:            createdAt,
		ExpiresAt:            expiresAt,
		Status:               status,
		EligibleAssetTypes:   eligibleAssetTypes,
		ReturnedAtLocationID: decodeOptionalString(r.returnedAtLocationID),
		ReturnedAt:           returnedAt,
	}, nil
}

func decodeOptionalTimestamp(value sql.NullString) (*time.Time, error) {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return nil, nil
	}

	t, err := rentalstore.ParseStoredTimestamp(value.String)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func decodeOptionalString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}

	v := value.String

	return &v
}

// decodeAssetTypes parses the JSON list column. NULL and empty text are an empty list.
func decodeAssetTypes(value sql.NullString) ([]string, error) {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return []string{}, nil
	}

	var assetTypes []string
	if err := jsoniter.ConfigFastest.UnmarshalFromString(value.String, &assetTypes); err != nil {
		return nil, errors.Join(errMalformedAssetTypes, err)
	}

	if assetTypes == nil {
		return []string{}, nil
	}

	return assetTypes, nil
}

func encodeAssetTypes(assetTypes []string) (string, error) {
	if assetTypes == nil {
		assetTypes = []string{}
	}

	return jsoniter.ConfigFastest.MarshalToString(assetTypes)
}

func encodeOptionalTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}

	return rentalstore.FormatTimestamp(*t)
}

func encodeOptionalString(s *string) any {
	if s == nil {
		return nil
	}

	return *s
}
