// Package conv provides safe integer arithmetic and conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// when measuring signed ranges or converting between signed/unsigned and
// different bit-width integer types.
//
// Use cases:
//   - Measuring the width of an inclusive int64 range without wraparound
//   - Converting word and byte counts to Go's int (platform-dependent)
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, offsets already range-checked), use direct type casts instead to
// avoid overhead.
package conv
