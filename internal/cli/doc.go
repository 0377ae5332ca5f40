// Package cli implements the boarding command line tool: sequencing a
// bookings file, entering bookings interactively and writing sample input.
package cli
