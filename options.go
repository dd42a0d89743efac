package bmset

import (
	"github.com/hupe1980/bmset/resource"
)

type options struct {
	mode             Mode
	lockerFactory    LockerFactory
	controller       *resource.Controller
	metricsCollector MetricsCollector
}

func defaultOptions() options {
	return options{
		mode:             ModeNone,
		lockerFactory:    NewMutexLocker,
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures a Set at construction. Every option is fixed for the
// lifetime of the set.
type Option func(*options)

// WithLocking makes the set safe for concurrent use by guarding its storage
// with an internal lock. Equivalent to WithMode(ModeLocked).
func WithLocking() Option {
	return WithMode(ModeLocked)
}

// WithMode selects the concurrency mode.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithLockerFactory configures how the lock of a locked set is created.
// It has no effect on sets in ModeNone.
//
// If nil is passed, NewMutexLocker is used.
func WithLockerFactory(f LockerFactory) Option {
	return func(o *options) {
		if f == nil {
			f = NewMutexLocker
		}
		o.lockerFactory = f
	}
}

// WithResourceController charges the storage of the set against a shared
// memory budget. The charge is refunded by Close.
//
// Example:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
//	s, err := bmset.New(0, 1<<16, bmset.WithResourceController(rc))
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &bmset.BasicMetricsCollector{}
//	s, _ := bmset.New(0, 1023, bmset.WithLocking(), bmset.WithMetricsCollector(metrics))
//	// ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
