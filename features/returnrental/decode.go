package returnrental

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

// Field names of a raw return event.
const (
	FieldUserQRData  = "user_qr_data"
	FieldAssetQRData = "asset_qr_data"
	FieldLocationID  = "location_id"
	FieldTimestamp   = "timestamp"
)

var requiredFields = []string{FieldUserQRData, FieldAssetQRData, FieldLocationID, FieldTimestamp}

var (
	// ErrInvalidReturnEvent is joined into every decoding failure, callers only need to check this one.
	ErrInvalidReturnEvent = errors.New("invalid return event")

	// ErrMissingField is returned when a required field is absent or null.
	ErrMissingField = errors.New("required field is missing")

	// ErrDecodingFailed is returned when a field is not a string, not valid base64, not valid UTF-8 text,
	// or not an ISO-8601 timestamp with offset.
	ErrDecodingFailed = errors.New("field could not be decoded")

	// ErrValidationFailed is returned when a decoded field is empty.
	ErrValidationFailed = errors.New("decoded field is empty")
)

// RawEvent is a return event as read from JSON.
type RawEvent = map[string]any

// DecodeReturnEvent validates and decodes a raw return event.
//
// All required fields are checked for presence before anything is decoded,
// so a record missing several fields reports all of them.
func DecodeReturnEvent(raw RawEvent) (rentalstore.ReturnEvent, error) {
	var missing []string
	for _, field := range requiredFields {
		if value, ok := raw[field]; !ok || value == nil {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return rentalstore.ReturnEvent{}, invalid(ErrMissingField, strings.Join(missing, ", "))
	}

	values := make(map[string]string, len(requiredFields))
	for _, field := range requiredFields {
		value, ok := raw[field].(string)
		if !ok {
			return rentalstore.ReturnEvent{}, invalid(ErrDecodingFailed, field+" is not a string")
		}

		values[field] = value
	}

	userID, err := DecodeQRData(values[FieldUserQRData])
	if err != nil {
		return rentalstore.ReturnEvent{}, invalid(err, FieldUserQRData)
	}

	assetID, err := DecodeQRData(values[FieldAssetQRData])
	if err != nil {
		return rentalstore.ReturnEvent{}, invalid(err, FieldAssetQRData)
	}

	timestamp, err := rentalstore.ParseTimestamp(values[FieldTimestamp])
	if err != nil {
		return rentalstore.ReturnEvent{}, invalid(errors.Join(ErrDecodingFailed, err), FieldTimestamp)
	}

	event := rentalstore.ReturnEvent{
		UserID:     userID,
		AssetID:    assetID,
		LocationID: values[FieldLocationID],
		Timestamp:  timestamp,
	}

	if empty := emptyFields(event); len(empty) > 0 {
		return rentalstore.ReturnEvent{}, invalid(ErrValidationFailed, strings.Join(empty, ", "))
	}

	return event, nil
}

// DecodeQRData decodes standard base64 QR content into its text identifier.
// Surrounding whitespace is ignored, anything else outside the alphabet is an error.
func DecodeQRData(encoded string) (string, error) {
	decoded, err := base64.StdEncoding.Strict().DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", errors.Join(ErrDecodingFailed, err)
	}

	if !utf8.Valid(decoded) {
		return "", errors.Join(ErrDecodingFailed, errors.New("decoded bytes are not valid utf-8"))
	}

	return string(decoded), nil
}

// EncodeQRData encodes an identifier the way QR codes carry it.
func EncodeQRData(plain string) string {
	return base64.StdEncoding.EncodeToString([]byte(plain))
}

func emptyFields(event rentalstore.ReturnEvent) []string {
	var empty []string

	if event.UserID == "" {
		empty = append(empty, FieldUserQRData)
	}

	if event.AssetID == "" {
		empty = append(empty, FieldAssetQRData)
	}

	if event.LocationID == "" {
		empty = append(empty, FieldLocationID)
	}

	return empty
}

func invalid(cause error, detail string) error {
	return errors.Join(ErrInvalidReturnEvent, cause, errors.New(detail))
}
