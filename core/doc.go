// Package core defines the shared types used across the log4g framework.
//
// It provides the Level type for severity filtering, the Entry type that
// represents a single log event, and the Field type for zero-allocation
// structured key-value pairs. Each Entry carries a location.Info value
// describing the call site that produced it; entries logged without
// caller capture hold the sentinel unavailable location.
//
// Entry objects are pooled via sync.Pool to keep the hot path
// allocation-free. Callers get an Entry with GetEntry and must return
// it with PutEntry once the handler has consumed it. Recycling resets
// the location so no entry ever observes a previous event's call site.
//
// Field encodes values into fixed-size numeric slots (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. The Any field exists as a fallback for
// arbitrary types but will cause an allocation.
package core
