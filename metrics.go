package bmset

import (
	"errors"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Collectors are called on the operation hot path and must be safe for
// concurrent use when attached to a locked set.
type MetricsCollector interface {
	// RecordOperation is called after each IsElementOf, Add or Remove.
	// err is nil if successful.
	RecordOperation(op Op, err error)

	// RecordLockWait is called after the lock of a locked set has been
	// acquired, with the time spent waiting for it.
	RecordLockWait(d time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOperation(Op, error)    {}
func (NoopMetricsCollector) RecordLockWait(time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	QueryCount         atomic.Int64
	AddCount           atomic.Int64
	RemoveCount        atomic.Int64
	ValueRangeErrors   atomic.Int64
	ThreadingErrors    atomic.Int64
	InternalErrors     atomic.Int64
	LockWaitCount      atomic.Int64
	LockWaitTotalNanos atomic.Int64
	LockWaitMaxNanos   atomic.Int64
}

// RecordOperation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOperation(op Op, err error) {
	switch op {
	case OpNone:
		b.QueryCount.Add(1)
	case OpAdd:
		b.AddCount.Add(1)
	case OpRemove:
		b.RemoveCount.Add(1)
	}

	if err == nil {
		return
	}

	switch {
	case errors.Is(err, ErrValueRange):
		b.ValueRangeErrors.Add(1)
	case errors.Is(err, ErrThreading):
		b.ThreadingErrors.Add(1)
	default:
		b.InternalErrors.Add(1)
	}
}

// RecordLockWait implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLockWait(d time.Duration) {
	n := d.Nanoseconds()
	b.LockWaitCount.Add(1)
	b.LockWaitTotalNanos.Add(n)
	for {
		cur := b.LockWaitMaxNanos.Load()
		if n <= cur || b.LockWaitMaxNanos.CompareAndSwap(cur, n) {
			return
		}
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		QueryCount:       b.QueryCount.Load(),
		AddCount:         b.AddCount.Load(),
		RemoveCount:      b.RemoveCount.Load(),
		ValueRangeErrors: b.ValueRangeErrors.Load(),
		ThreadingErrors:  b.ThreadingErrors.Load(),
		InternalErrors:   b.InternalErrors.Load(),
		LockWaitCount:    b.LockWaitCount.Load(),
		LockWaitAvgNanos: b.getAvgLockWaitNanos(),
		LockWaitMaxNanos: b.LockWaitMaxNanos.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgLockWaitNanos() int64 {
	count := b.LockWaitCount.Load()
	if count == 0 {
		return 0
	}
	return b.LockWaitTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	QueryCount       int64
	AddCount         int64
	RemoveCount      int64
	ValueRangeErrors int64
	ThreadingErrors  int64
	InternalErrors   int64
	LockWaitCount    int64
	LockWaitAvgNanos int64
	LockWaitMaxNanos int64
}

// Operations returns the total number of recorded operations.
func (s BasicMetricsStats) Operations() int64 {
	return s.QueryCount + s.AddCount + s.RemoveCount
}
