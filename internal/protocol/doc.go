// Package protocol owns the Art-Net wire contract and decode primitives.
//
// Ownership boundary:
// - header validation (magic, opcode selector, protocol version)
// - opcode table and payload dispatch
// - per-opcode payload decoders
//
// Decoding is structural only. Every function in this package is pure and
// safe for concurrent use; decoded values never alias the input buffer.
package protocol
