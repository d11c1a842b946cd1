package returnrental

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

const (
	// StatusSuccess marks a completed return.
	StatusSuccess = "SUCCESS"

	// StatusFailed marks a return that completed no rental.
	StatusFailed = "FAILED"

	// MessageCompleted is the message of every successful response.
	MessageCompleted = "Rental successfully completed"

	// MessageInvalidReturnEvent is the message for events that could not be decoded.
	MessageInvalidReturnEvent = "Invalid return event"

	// MessageProcessingError is the message for store failures.
	MessageProcessingError = "Error processing rental return"

	// ErrorNoEligibleRental is the fixed diagnostic of every failed response.
	ErrorNoEligibleRental = "No eligible rental found"

	messageNoActiveRentals = "No active rentals found for user %s"

	jsonIndent = "    "
)

// Response is the uniform outcome of handling a return event.
// Optional fields are pointers so they render as null when absent.
type Response struct {
	Status           string  `json:"status"`
	Message          string  `json:"message"`
	RentalID         *string `json:"rental_id"`
	RentalReturnedAt *string `json:"rental_returned_at"`
	RentalStatus     *string `json:"rental_status"`
	Error            *string `json:"error"`
}

// SuccessResponse shapes the response for a finalized rental.
func SuccessResponse(rental rentalstore.Rental) Response {
	rentalID := rental.ID
	rentalStatus := string(rental.Status)

	var returnedAt *string
	if rental.ReturnedAt != nil {
		formatted := rentalstore.FormatTimestamp(*rental.ReturnedAt)
		returnedAt = &formatted
	}

	return Response{
		Status:           StatusSuccess,
		Message:          MessageCompleted,
		RentalID:         &rentalID,
		RentalReturnedAt: returnedAt,
		RentalStatus:     &rentalStatus,
	}
}

// FailureResponse shapes a failed response with the given message.
func FailureResponse(message string) Response {
	diagnostic := ErrorNoEligibleRental

	return Response{
		Status:  StatusFailed,
		Message: message,
		Error:   &diagnostic,
	}
}

// NoActiveRentalsMessage names the user for whom no rental could be resolved.
func NoActiveRentalsMessage(userID string) string {
	return fmt.Sprintf(messageNoActiveRentals, userID)
}

// IsSuccess reports whether a rental was completed.
func (r Response) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// JSON renders the response as indented JSON.
func (r Response) JSON() ([]byte, error) {
	return jsoniter.ConfigFastest.MarshalIndent(r, "", jsonIndent)
}
