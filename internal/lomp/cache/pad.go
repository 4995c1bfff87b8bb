// Package cache gives sharing-critical fields (barrier counters, per-thread
// flags, steal slots) cache-line isolation so that one thread's writes don't
// invalidate a neighbor's cache line.
package cache

// Pad reserves LineSize bytes. Embed it between fields that are written by
// different threads to prevent false sharing.
type Pad [LineSize]byte
