// Package config provides environment configuration and database connection helpers
// for the rental return tools.
//
// It loads settings from RENTAL_* environment variables, creates connections for the
// supported adapters (pgx.Pool, sql.DB and sqlx.DB on PostgreSQL, sql.DB on SQLite),
// and sets up logging and the OpenTelemetry providers.
//
// This package is part of the shell (infrastructure) layer.
package config
