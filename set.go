package bmset

import (
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/hupe1980/bmset/internal/bitmap"
	"github.com/hupe1980/bmset/internal/conv"
	"github.com/hupe1980/bmset/resource"
)

// Mode selects whether a Set guards its storage with an internal lock.
type Mode uint8

const (
	// ModeNone performs no synchronisation. Callers must serialise access.
	ModeNone Mode = iota
	// ModeLocked serialises every access to the storage with an internal
	// per-set lock.
	ModeLocked
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeLocked:
		return "locked"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Op is the kind of operation applied to a single value.
type Op uint8

const (
	// OpNone queries membership without mutation.
	OpNone Op = iota
	// OpAdd inserts the value if absent.
	OpAdd
	// OpRemove deletes the value if present.
	OpRemove
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return "query"
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Set is a fixed-range set of int64 values backed by a bitmap with one bit
// per value in [Min, Max].
//
// A Set created with ModeNone is not safe for concurrent use. A Set created
// with ModeLocked may be used from any number of goroutines; each operation
// is linearizable. Close must not run concurrently with other operations.
type Set struct {
	min  int64
	max  int64
	mode Mode

	bm *bitmap.Fixed

	rc      *resource.Controller
	charged int64

	metrics MetricsCollector
	timed   bool

	// The lock is written on every operation of a locked set; keep it off
	// the cache line holding the read-mostly fields above.
	_    cpu.CacheLinePad
	lock Locker
}

// New creates an empty set holding values in the inclusive range [lo, hi].
//
// The set is sized once: ceil((hi-lo+1)/64) words. Every failure is returned
// as a *ConstructionError wrapping one of ErrInvalidRange, ErrRangeTooWide,
// ErrAllocation, ErrLockInit or ErrInvalidMode; no partially built set is
// ever returned and any memory charged to a resource controller is
// refunded.
func New(lo, hi int64, optFns ...Option) (*Set, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	fail := func(reason, cause error) (*Set, error) {
		err := reason
		if cause != nil {
			err = fmt.Errorf("%w: %w", reason, cause)
		}
		return nil, &ConstructionError{Min: lo, Max: hi, Err: err}
	}

	if o.mode != ModeNone && o.mode != ModeLocked {
		return fail(ErrInvalidMode, fmt.Errorf("mode %d", uint8(o.mode)))
	}

	width, err := conv.RangeWidth(lo, hi)
	if err != nil {
		if errors.Is(err, conv.ErrInvertedRange) {
			return fail(ErrInvalidRange, err)
		}
		return fail(ErrRangeTooWide, err)
	}

	size, err := bitmap.BytesFor(width)
	if err != nil {
		return fail(ErrRangeTooWide, err)
	}
	charge, err := conv.Uint64ToInt64(size)
	if err != nil {
		return fail(ErrRangeTooWide, err)
	}

	if err := o.controller.AcquireMemory(charge); err != nil {
		return fail(ErrAllocation, err)
	}
	committed := false
	defer func() {
		if !committed {
			o.controller.ReleaseMemory(charge)
		}
	}()

	bm, err := bitmap.New(width)
	if err != nil {
		if errors.Is(err, bitmap.ErrTooLarge) {
			return fail(ErrRangeTooWide, err)
		}
		return fail(ErrAllocation, err)
	}

	var lock Locker = nopLocker{}
	if o.mode == ModeLocked {
		lock, err = o.lockerFactory()
		if err == nil && lock == nil {
			err = errors.New("locker factory returned nil")
		}
		if err != nil {
			bm.Release()
			return fail(ErrLockInit, err)
		}
	}

	_, noop := o.metricsCollector.(NoopMetricsCollector)

	committed = true
	return &Set{
		min:     lo,
		max:     hi,
		mode:    o.mode,
		bm:      bm,
		rc:      o.controller,
		charged: charge,
		metrics: o.metricsCollector,
		timed:   o.mode == ModeLocked && !noop,
		lock:    lock,
	}, nil
}

// Close releases the lock (closing it if it implements io.Closer), returns
// the storage charge to the resource controller and drops the storage.
//
// Closing an already closed set returns ErrClosed.
func (s *Set) Close() error {
	if s.bm == nil {
		return ErrClosed
	}

	var err error
	if c, ok := s.lock.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil {
			err = &LockError{Phase: PhaseClose, Cause: cerr}
		}
	}
	s.lock = nil

	s.bm.Release()
	s.bm = nil

	s.rc.ReleaseMemory(s.charged)
	s.charged = 0

	return err
}

// IsElementOf reports whether v is in the set.
func (s *Set) IsElementOf(v int64) (bool, error) {
	return s.apply(v, OpNone)
}

// Add inserts v. It reports whether v was already present; adding a present
// value is a successful no-op.
func (s *Set) Add(v int64) (bool, error) {
	return s.apply(v, OpAdd)
}

// Remove deletes v. It reports whether v was present; removing an absent
// value is a successful no-op.
func (s *Set) Remove(v int64) (bool, error) {
	return s.apply(v, OpRemove)
}

// Contains reports whether v is in the set, treating any error as absence.
func (s *Set) Contains(v int64) bool {
	ok, err := s.apply(v, OpNone)
	return err == nil && ok
}

// apply is the single routine behind IsElementOf, Add and Remove. The
// returned bool is the membership of v immediately before the operation.
//
// The range check runs before the lock is taken. If the lock cannot be
// released after the operation ran, the membership value is still returned,
// together with a *LockError in PhaseRelease.
func (s *Set) apply(v int64, op Op) (bool, error) {
	if s.bm == nil {
		return false, ErrClosed
	}

	if v < s.min || v > s.max {
		err := &ValueRangeError{Value: v, Min: s.min, Max: s.max}
		s.metrics.RecordOperation(op, err)
		return false, err
	}
	offset := conv.Offset(s.min, v)

	var start time.Time
	if s.timed {
		start = time.Now()
	}

	if err := s.lock.Lock(); err != nil {
		lerr := &LockError{Phase: PhaseAcquire, Op: op, Cause: err}
		s.metrics.RecordOperation(op, lerr)
		return false, lerr
	}

	if s.timed {
		s.metrics.RecordLockWait(time.Since(start))
	}

	was, opErr := s.do(offset, op)

	if err := s.lock.Unlock(); err != nil {
		lerr := &LockError{Phase: PhaseRelease, Op: op, Applied: opErr == nil, Cause: err}
		if opErr != nil {
			opErr = errors.Join(opErr, lerr)
		} else {
			opErr = lerr
		}
	}

	s.metrics.RecordOperation(op, opErr)
	return was, opErr
}

func (s *Set) do(offset uint64, op Op) (bool, error) {
	switch op {
	case OpNone:
		return s.bm.Test(offset), nil
	case OpAdd:
		return s.bm.Set(offset), nil
	case OpRemove:
		return s.bm.Clear(offset), nil
	default:
		return s.bm.Test(offset), fmt.Errorf("%w: unknown operation %s", ErrInternal, op)
	}
}

// Min returns the smallest value the set can hold.
func (s *Set) Min() int64 { return s.min }

// Max returns the largest value the set can hold.
func (s *Set) Max() int64 { return s.max }

// Mode returns the concurrency mode chosen at construction.
func (s *Set) Mode() Mode { return s.mode }

// Len returns the number of values in [Min, Max].
func (s *Set) Len() uint64 {
	// Cannot fail: New rejected every range whose width overflows.
	w, _ := conv.RangeWidth(s.min, s.max)
	return w
}

// SizeInBytes returns the size of the bitmap storage, or 0 after Close.
func (s *Set) SizeInBytes() uint64 {
	if s.bm == nil {
		return 0
	}
	return s.bm.SizeInBytes()
}

// Count returns the number of members, counted under the lock of a locked
// set.
func (s *Set) Count() (int, error) {
	if s.bm == nil {
		return 0, ErrClosed
	}
	if err := s.lock.Lock(); err != nil {
		return 0, &LockError{Phase: PhaseAcquire, Cause: err}
	}
	n := s.bm.Count()
	if err := s.lock.Unlock(); err != nil {
		return n, &LockError{Phase: PhaseRelease, Applied: true, Cause: err}
	}
	return n, nil
}

// Words returns a copy of the storage words, taken under the lock of a
// locked set. Bit i of the copy (word i/64, position i%64) is the membership
// of Min()+i.
func (s *Set) Words() ([]uint64, error) {
	if s.bm == nil {
		return nil, ErrClosed
	}
	if err := s.lock.Lock(); err != nil {
		return nil, &LockError{Phase: PhaseAcquire, Cause: err}
	}
	words := s.bm.Words()
	if err := s.lock.Unlock(); err != nil {
		return words, &LockError{Phase: PhaseRelease, Applied: true, Cause: err}
	}
	return words, nil
}
