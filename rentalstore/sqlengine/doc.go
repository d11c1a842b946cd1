// Package sqlengine provides the SQL implementation of the rental record store.
//
// The Store reads and writes users, assets and rentals in PostgreSQL or SQLite.
// It accepts a pgxpool.Pool, a sql.DB or a sqlx.DB, and builds dialect-specific SQL with goqu.
//
// Lookups that can miss return a found flag:
//
//	asset, found, err := store.GetAsset(ctx, assetID)
//	if err != nil {
//		return err // store unreachable or corrupt record
//	}
//	if !found {
//		// no such asset
//	}
//
// The list of eligible asset types is persisted as JSON text, encoding and decoding it
// is purely a concern of this package.
//
// Migrate creates the schema with goose from embedded migrations,
// VerifySchema checks that an existing database carries all required tables.
package sqlengine
