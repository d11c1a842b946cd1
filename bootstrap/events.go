package bootstrap

import (
	"time"

	"github.com/AntonStoeckl/rental-return-events/features/returnrental"
	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

// ExampleEvent is a demo return event with the file name it is written to.
type ExampleEvent struct {
	FileName    string
	Description string
	Payload     returnrental.RawEvent
}

// ExampleEvents returns the demo return events.
func ExampleEvents() []ExampleEvent {
	return []ExampleEvent{
		{
			FileName:    "event_01.json",
			Description: "tpg_u0001 returns the asset they checked out (tpg_a00001)",
			Payload:     buildPayload("tpg_u0001", "tpg_a00001", LocationOne, ReferenceNow.Add(-time.Hour)),
		},
		{
			FileName:    "event_02.json",
			Description: "tpg_u0002 returns tpg_a00015, their only open rental",
			Payload:     buildPayload("tpg_u0002", "tpg_a00015", LocationTwo, ReferenceNow.Add(30*time.Minute)),
		},
		{
			FileName:    "event_03.json",
			Description: "tpg_u0005 returns tpg_a00500, an asset that does not exist",
			Payload:     buildPayload("tpg_u0005", "tpg_a00500", LocationThree, ReferenceNow.Add(time.Hour)),
		},
		{
			FileName:    "event_04.json",
			Description: "tpg_u0004 returns tpg_a00025 before the rental expires",
			Payload:     buildPayload("tpg_u0004", "tpg_a00025", LocationOne, ReferenceNow.Add(2*time.Hour)),
		},
		{
			FileName:    "event_05.json",
			Description: "tpg_u0001 returns a large-bowl, only their second rental accepts it",
			Payload:     buildPayload("tpg_u0001", "tpg_a00002", LocationOne, ReferenceNow.Add(3*time.Hour)),
		},
	}
}

func buildPayload(userID, assetID, locationID string, at time.Time) returnrental.RawEvent {
	return returnrental.RawEvent{
		returnrental.FieldTimestamp:   rentalstore.FormatTimestamp(at),
		returnrental.FieldLocationID:  locationID,
		returnrental.FieldUserQRData:  returnrental.EncodeQRData(userID),
		returnrental.FieldAssetQRData: returnrental.EncodeQRData(assetID),
	}
}
