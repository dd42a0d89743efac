package bmset

import (
	"errors"
	"fmt"
)

// Construction failures. New wraps exactly one of these in a
// *ConstructionError.
var (
	// ErrInvalidRange is returned when max < min.
	ErrInvalidRange = errors.New("invalid range")

	// ErrRangeTooWide is returned when the number of values in the range
	// (or the storage it needs) cannot be represented.
	ErrRangeTooWide = errors.New("range too wide")

	// ErrAllocation is returned when storage could not be obtained, either
	// because a resource controller refused the charge or because the
	// runtime refused the allocation.
	ErrAllocation = errors.New("allocation failed")

	// ErrLockInit is returned when the lock of a locked set could not be
	// created.
	ErrLockInit = errors.New("lock initialization failed")

	// ErrInvalidMode is returned for an unknown Mode value.
	ErrInvalidMode = errors.New("invalid concurrency mode")
)

// Operation failures.
var (
	// ErrValueRange is returned when a value lies outside [Min, Max].
	ErrValueRange = errors.New("value out of range")

	// ErrThreading is returned when the lock of a locked set could not be
	// acquired, released or closed.
	ErrThreading = errors.New("threading error")

	// ErrInternal is returned for an unrecognised operation. It is not
	// reachable through the exported API.
	ErrInternal = errors.New("internal error")

	// ErrClosed is returned when a set is used after Close.
	ErrClosed = errors.New("set closed")

	// ErrNotLocked is returned by the default locker when Unlock is called
	// without a matching Lock.
	ErrNotLocked = errors.New("unlock of unlocked lock")
)

// ConstructionError reports why New failed.
//
// The failure reason (ErrInvalidRange, ErrRangeTooWide, ErrAllocation,
// ErrLockInit, ErrInvalidMode) and any underlying cause can be matched with
// errors.Is.
type ConstructionError struct {
	Min int64
	Max int64
	Err error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("bmset: cannot create set [%d, %d]: %v", e.Min, e.Max, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// ValueRangeError indicates a value outside the bounds of a set.
type ValueRangeError struct {
	Value int64
	Min   int64
	Max   int64
}

func (e *ValueRangeError) Error() string {
	return fmt.Sprintf("bmset: value %d outside [%d, %d]", e.Value, e.Min, e.Max)
}

func (e *ValueRangeError) Unwrap() error { return ErrValueRange }

// LockPhase identifies the lock step that failed.
type LockPhase uint8

const (
	// PhaseAcquire means Lock failed. The bitmap was not inspected or
	// mutated.
	PhaseAcquire LockPhase = iota
	// PhaseRelease means Unlock failed after the operation ran.
	PhaseRelease
	// PhaseClose means closing the lock failed during Close.
	PhaseClose
)

func (p LockPhase) String() string {
	switch p {
	case PhaseAcquire:
		return "acquire"
	case PhaseRelease:
		return "release"
	case PhaseClose:
		return "close"
	default:
		return fmt.Sprintf("LockPhase(%d)", uint8(p))
	}
}

// LockError indicates a failure of the lock of a locked set.
//
// For PhaseRelease, Applied reports whether the operation itself completed
// before the release failed; when it did, the membership value returned
// alongside the error is valid and any mutation has taken effect.
type LockError struct {
	Phase   LockPhase
	Op      Op
	Applied bool
	Cause   error
}

func (e *LockError) Error() string {
	if e.Phase == PhaseRelease {
		return fmt.Sprintf("bmset: lock %s failed after %s (applied=%t): %v", e.Phase, e.Op, e.Applied, e.Cause)
	}
	return fmt.Sprintf("bmset: lock %s failed: %v", e.Phase, e.Cause)
}

func (e *LockError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrThreading}
	}
	return []error{ErrThreading, e.Cause}
}
