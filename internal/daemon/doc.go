// Package daemon wires the listener and the monitor into one process.
//
// Lifecycle order:
// - bind listener -> serve monitor -> read loop
//
// A listener or monitor failure stops the whole service.
package daemon
