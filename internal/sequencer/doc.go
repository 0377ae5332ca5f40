// Package sequencer computes the boarding order for a single-door bus.
//
// The pipeline is parse → priority → sort → number:
//   - Parse validates raw records into bookings
//   - Priority is the furthest seat distance of a booking
//   - Generate orders bookings by priority, furthest first, lower ID on ties
//   - Details joins a sequence back to its bookings for display
//
// Every function is pure and safe to call concurrently on separate inputs.
package sequencer
