// Package adapters provide database adapter implementations for the SQL rental store.
//
// The store builds fully interpolated SQL strings and only needs to run them.
// These adapters present pgxpool.Pool, sql.DB and sqlx.DB behind the common DBAdapter
// interface so the store works with whichever connection type the application owns.
package adapters
