// Package oteladapters provides OpenTelemetry implementations of the rentalstore
// observability interfaces: tracing, metrics and trace-correlated logging.
package oteladapters
