// Package resource provides a shared memory budget for bounded sets.
//
// A Controller is charged with a set's storage size when the set is created
// and refunded when it is closed. Acquisition is non-blocking: if the charge
// would exceed the limit, construction fails immediately and the caller
// decides what to do.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20, // 64MB across all sets
//	})
//
//	s, err := bmset.New(0, 1<<20, bmset.WithResourceController(rc))
//	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
//	    // over budget
//	}
//	defer s.Close() // refunds the charge
//
// All methods are safe for concurrent use and handle a nil Controller as
// "unlimited, untracked".
package resource

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64
}

// Controller manages a memory budget shared by many sets.
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64
	peak    atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{
		cfg: cfg,
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// Returns ErrMemoryLimitExceeded if limit would be exceeded.
// Non-blocking - callers control retry/backoff policy.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return fmt.Errorf("%w: requested %d bytes, %d of %d in use",
				ErrMemoryLimitExceeded, bytes, c.memUsed.Load(), c.cfg.MemoryLimitBytes)
		}
	}

	used := c.memUsed.Add(bytes)
	for {
		p := c.peak.Load()
		if used <= p || c.peak.CompareAndSwap(p, used) {
			break
		}
	}
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// PeakMemoryUsage returns the highest memory usage observed.
func (c *Controller) PeakMemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.peak.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}
