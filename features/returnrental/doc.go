// Package returnrental implements the feature: return a rented asset.
//
// A return event names a user and an asset, both base64 encoded as read from QR codes,
// plus a location and a timestamp. Handling it runs four steps:
//
//	decode   -> validated rentalstore.ReturnEvent, or an invalid event failure
//	resolve  -> the single rental the return settles, or none
//	finalize -> mark that rental COMPLETED and read it back
//	respond  -> uniform SUCCESS or FAILED Response
//
// Resolution is a pure function over the asset and the user's rentals, see SelectEligibleRental.
// The CommandHandler wires the steps to a RecordStore and serializes resolve and finalize per user,
// so concurrent returns by the same user never complete the same rental twice.
package returnrental
