// Package rentalstore provides the core types of the rental return domain
// together with the dependency-free interfaces shared by store implementations.
//
// Key types:
//   - Asset: a physical item with an asset type used for compatibility matching
//   - Rental: the checkout of an asset by a user, closed by a return event
//   - ReturnEvent: a validated, decoded rental return
//   - User: the holder of rentals
//
// Lookups that can legitimately miss (asset, rental) are reported as a found flag
// instead of an error. Errors are reserved for an unreachable store or corrupt records.
//
// The sqlengine subpackage persists these types in PostgreSQL or SQLite,
// the oteladapters subpackage implements the observability interfaces with OpenTelemetry.
package rentalstore
