// Package monitor keeps a live view of decoded Art-Net traffic and serves it
// over HTTP.
//
// Ownership boundary:
// - per-opcode and per-reason counters
// - last TimeCode seen and a ring of recent frames
// - health, readiness, metrics and traffic routes
package monitor
