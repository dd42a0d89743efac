package testutil

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Model is a serial reference implementation of a bounded set over
// [lo, hi], backed by a 64-bit roaring bitmap of offsets. It is not safe
// for concurrent use.
type Model struct {
	lo, hi int64
	rb     *roaring64.Bitmap
}

// NewModel creates an empty model over [lo, hi].
func NewModel(lo, hi int64) *Model {
	return &Model{lo: lo, hi: hi, rb: roaring64.New()}
}

// InRange reports whether v lies in [lo, hi].
func (m *Model) InRange(v int64) bool {
	return v >= m.lo && v <= m.hi
}

// Apply applies op and returns the membership of op.Value before it, and
// whether the value was in range.
func (m *Model) Apply(op Op) (was bool, ok bool) {
	if !m.InRange(op.Value) {
		return false, false
	}
	off := uint64(op.Value) - uint64(m.lo)
	was = m.rb.Contains(off)
	switch op.Kind {
	case Add:
		m.rb.Add(off)
	case Remove:
		m.rb.Remove(off)
	}
	return was, true
}

// Contains reports whether v is a member.
func (m *Model) Contains(v int64) bool {
	if !m.InRange(v) {
		return false
	}
	return m.rb.Contains(uint64(v) - uint64(m.lo))
}

// Cardinality returns the number of members.
func (m *Model) Cardinality() uint64 {
	return m.rb.GetCardinality()
}

// Members returns the members in ascending order.
func (m *Model) Members() []int64 {
	out := make([]int64, 0, m.rb.GetCardinality())
	it := m.rb.Iterator()
	for it.HasNext() {
		out = append(out, int64(uint64(m.lo)+it.Next()))
	}
	return out
}
