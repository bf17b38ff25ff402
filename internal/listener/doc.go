// Package listener owns the UDP receive loop.
//
// Ownership boundary:
// - socket bind with retry backoff
// - datagram read and size limits
// - decode and handoff to a Handler
//
// Decoding itself lives in internal/protocol; the listener only counts,
// logs and forwards the result.
package listener
