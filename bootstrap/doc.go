// Package bootstrap provides the demo data set of the rental return tools:
// five users, fifty assets, ten rentals around a fixed reference time,
// and five example return events exercising the interesting resolution cases.
package bootstrap
