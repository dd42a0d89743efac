package conv

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvertedRange is returned when max < min.
	ErrInvertedRange = errors.New("range upper bound is below lower bound")

	// ErrWidthOverflow is returned when the number of values in a range
	// cannot be represented in a uint64.
	ErrWidthOverflow = errors.New("range width overflows uint64")
)

// RangeWidth returns the number of values in the inclusive range [lo, hi].
//
// The subtraction is done in uint64 two's-complement arithmetic, which is
// exact for every hi >= lo. The only range whose width does not fit is
// [math.MinInt64, math.MaxInt64] (2^64 values).
func RangeWidth(lo, hi int64) (uint64, error) {
	if hi < lo {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrInvertedRange, lo, hi)
	}
	span := uint64(hi) - uint64(lo)
	if span == math.MaxUint64 {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrWidthOverflow, lo, hi)
	}
	return span + 1, nil
}

// Offset returns v - lo as an unsigned distance. The caller must have
// checked lo <= v.
func Offset(lo, v int64) uint64 {
	return uint64(v) - uint64(lo)
}

// CeilDiv returns ceil(n / d). d must be non-zero.
func CeilDiv(n, d uint64) uint64 {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

// Uint64ToInt converts uint64 to int safely.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// Uint64ToInt64 converts uint64 to int64 safely.
func Uint64ToInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int64 (too large)", v)
	}
	return int64(v), nil
}

// MulUint64 returns a*b, or an error if the product overflows.
func MulUint64(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, fmt.Errorf("integer overflow: %d * %d exceeds uint64", a, b)
	}
	return a * b, nil
}
