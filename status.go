package bmset

import (
	"errors"
	"fmt"
)

// Status is the result code of an operation, for callers that prefer a flat
// code over error matching.
type Status uint8

const (
	// StatusSuccess means the operation completed.
	StatusSuccess Status = iota
	// StatusValueRange means the value was outside [Min, Max].
	StatusValueRange
	// StatusInternal means an unrecognised operation or an unclassified error.
	StatusInternal
	// StatusThreading means the lock could not be acquired or released.
	StatusThreading
	// StatusClosed means the set was already closed.
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusValueRange:
		return "value_range"
	case StatusInternal:
		return "internal"
	case StatusThreading:
		return "threading"
	case StatusClosed:
		return "closed"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// StatusOf collapses an error returned by IsElementOf, Add or Remove into a
// Status.
//
// A lock failure takes precedence over an internal error when both are
// present, so a failed release is never hidden. The full detail stays
// available through errors.Is and errors.As.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrClosed):
		return StatusClosed
	case errors.Is(err, ErrValueRange):
		return StatusValueRange
	case errors.Is(err, ErrThreading):
		return StatusThreading
	default:
		return StatusInternal
	}
}

// MemberValid reports whether the membership value returned together with
// err reflects the state immediately before the operation: true on success
// and when only the lock release failed after the operation completed.
func MemberValid(err error) bool {
	if err == nil {
		return true
	}
	var le *LockError
	if errors.As(err, &le) && le.Phase == PhaseRelease && le.Applied {
		return !errors.Is(err, ErrInternal)
	}
	return false
}
