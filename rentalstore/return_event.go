package rentalstore

import "time"

// ReturnEvent is a decoded and validated rental return.
// It should only be constructed by the return event decoder, which guarantees non-empty fields.
type ReturnEvent struct {
	UserID     string
	AssetID    string
	LocationID string
	Timestamp  time.Time
}
