// Package bitmap provides the fixed-size packed word storage behind a
// bounded integer set.
//
// # Layout
//
// A bitmap of n bits is stored in ceil(n/64) contiguous uint64 words:
//
//	┌──────────────────┬──────────────────┬──────────────────┬─────┐
//	│  Word 0          │  Word 1          │  Word 2          │ ... │
//	│  bits [0,63]     │  bits [64,127]   │  bits [128,191]  │     │
//	└──────────────────┴──────────────────┴──────────────────┴─────┘
//
// Bit offset i lives in word i/64 at position i%64. Padding bits in the last
// word (when n is not a multiple of 64) are never addressed and stay zero.
//
// # Sizing
//
// Storage is allocated exactly once, in New, and never grows. WordsFor is the
// single sizing formula; New refuses sizes whose word count cannot be
// represented as an int and reports runtime allocation refusals as errors
// instead of panicking.
//
// # Thread Safety
//
// Fixed is not safe for concurrent use. Callers that share a Fixed must
// serialise access themselves.
package bitmap
