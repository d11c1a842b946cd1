// Package testdoubles provides spies for the logging, metrics and tracing interfaces of the rentalstore package.
//
// The spies record every call and are safe for concurrent use, so tests can assert on
// what the store and the command handler reported without an OpenTelemetry backend.
package testdoubles
