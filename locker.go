package bmset

import (
	"sync"
	"sync/atomic"
)

// Locker is the interior lock of a locked set.
//
// Unlike sync.Locker, both methods report failure instead of panicking, so
// a broken lock surfaces as ErrThreading to the caller. A Locker that also
// implements io.Closer is closed by Set.Close.
type Locker interface {
	Lock() error
	Unlock() error
}

// LockerFactory creates the lock of a new locked set.
type LockerFactory func() (Locker, error)

// NewMutexLocker returns a Locker backed by sync.Mutex. It is the default
// LockerFactory.
func NewMutexLocker() (Locker, error) {
	return &mutexLocker{}, nil
}

type mutexLocker struct {
	mu   sync.Mutex
	held atomic.Bool
}

func (l *mutexLocker) Lock() error {
	l.mu.Lock()
	l.held.Store(true)
	return nil
}

// Unlock returns ErrNotLocked rather than crashing the process the way
// sync.Mutex does on an unlock of an unlocked mutex.
func (l *mutexLocker) Unlock() error {
	if !l.held.CompareAndSwap(true, false) {
		return ErrNotLocked
	}
	l.mu.Unlock()
	return nil
}

// nopLocker is the lock of a set in ModeNone.
type nopLocker struct{}

func (nopLocker) Lock() error   { return nil }
func (nopLocker) Unlock() error { return nil }
