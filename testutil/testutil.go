package testutil

import (
	"fmt"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Int64Between returns a pseudo-random value in the inclusive range [lo, hi].
// It works for any lo <= hi, including the full int64 range.
func (r *RNG) Int64Between(lo, hi int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.int64BetweenLocked(lo, hi)
}

func (r *RNG) int64BetweenLocked(lo, hi int64) int64 {
	span := uint64(hi) - uint64(lo)
	if span == ^uint64(0) {
		return int64(r.rand.Uint64())
	}
	// Modulo bias is irrelevant for test workloads.
	return int64(uint64(lo) + r.rand.Uint64()%(span+1))
}

// OpKind is the kind of a generated operation.
type OpKind uint8

const (
	Query OpKind = iota
	Add
	Remove
)

func (k OpKind) String() string {
	switch k {
	case Query:
		return "query"
	case Add:
		return "add"
	case Remove:
		return "remove"
	default:
		return fmt.Sprintf("OpKind(%d)", uint8(k))
	}
}

// Op is a single generated operation.
type Op struct {
	Kind  OpKind
	Value int64
}

// Mix sets the relative weights of operation kinds and the share of values
// drawn from outside the range.
type Mix struct {
	Query  int
	Add    int
	Remove int

	// OutOfRange is the probability in [0, 1] that a value lies just
	// outside [lo, hi].
	OutOfRange float64

	// Hot, when > 0, concentrates half of the in-range values on the first
	// Hot values of the range to raise contention.
	Hot int
}

// DefaultMix is an even mix with a few out-of-range values.
var DefaultMix = Mix{Query: 1, Add: 1, Remove: 1, OutOfRange: 0.05}

// Workload generates n random operations over [lo, hi].
func (r *RNG) Workload(n int, lo, hi int64, mix Mix) []Op {
	total := mix.Query + mix.Add + mix.Remove
	if total <= 0 {
		panic("testutil: empty operation mix")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make([]Op, n)
	for i := range ops {
		var kind OpKind
		switch w := r.rand.Intn(total); {
		case w < mix.Query:
			kind = Query
		case w < mix.Query+mix.Add:
			kind = Add
		default:
			kind = Remove
		}
		ops[i] = Op{Kind: kind, Value: r.valueLocked(lo, hi, mix)}
	}
	return ops
}

func (r *RNG) valueLocked(lo, hi int64, mix Mix) int64 {
	if mix.OutOfRange > 0 && r.rand.Float64() < mix.OutOfRange {
		if r.rand.Intn(2) == 0 && lo > -1<<63 {
			return lo - 1
		}
		if hi < 1<<63-1 {
			return hi + 1
		}
		if lo > -1<<63 {
			return lo - 1
		}
	}
	if mix.Hot > 0 && r.rand.Intn(2) == 0 {
		hotHi := lo + int64(mix.Hot) - 1
		if hotHi < lo || hotHi > hi {
			hotHi = hi
		}
		return r.int64BetweenLocked(lo, hotHi)
	}
	return r.int64BetweenLocked(lo, hi)
}

// Partition splits ops into n round-robin slices, one per worker.
func Partition(ops []Op, n int) [][]Op {
	parts := make([][]Op, n)
	for i, op := range ops {
		parts[i%n] = append(parts[i%n], op)
	}
	return parts
}
