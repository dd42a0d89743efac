// Package testutil provides testing utilities for bmset.
//
// It is used by tests, benchmarks and the stress command. It provides a
// seeded, goroutine-safe random source, a generator of random operation
// workloads over a value range, and a serial reference model to check a
// set against.
//
// # Random Workloads
//
//	rng := testutil.NewRNG(seed)
//	ops := rng.Workload(10000, -512, 511, testutil.DefaultMix)
//
// # Reference Model
//
//	m := testutil.NewModel(-512, 511)
//	for _, op := range ops {
//	    wantWas := m.Apply(op)
//	    ...
//	}
package testutil
