// Package bmset provides a dense, fixed-range set of int64 values backed by
// a bitmap.
//
// A Set holds one bit per value in an inclusive range [min, max] chosen at
// construction. Membership test, insert and delete are O(1); storage is
// allocated once and never grows.
//
// # Quick Start
//
//	s, err := bmset.New(-32768, 32767)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	was, err := s.Add(10)       // was == false
//	was, err = s.Add(10)        // was == true, idempotent
//	ok, err := s.IsElementOf(10) // ok == true
//	was, err = s.Remove(10)     // was == true
//	_, err = s.Add(40000)       // errors.Is(err, bmset.ErrValueRange)
//
// # Index Mapping
//
// Value v maps to bit offset v-min, stored in word (v-min)/64 at position
// (v-min)%64. The difference is computed in uint64, so every range with
// max >= min is exact, including ranges touching math.MinInt64 and
// math.MaxInt64. The one range whose width does not fit in a uint64,
// [math.MinInt64, math.MaxInt64], is rejected with ErrRangeTooWide.
//
// # Concurrency
//
// The concurrency mode is fixed at construction:
//
//	s, _ := bmset.New(0, 1<<20, bmset.WithLocking())
//
// A locked set owns a Locker; every read and write of the bitmap happens
// while holding it. Range checks run before the lock is taken, so
// out-of-range calls never contend. Lock failures are returned as
// *LockError (matching ErrThreading) and never retried. When only the
// release fails, the operation has already taken effect and its result is
// returned together with the error; see MemberValid.
//
// # Results
//
// Operations return (bool, error). Callers that want the flat result codes
// of a C-style API can use StatusOf:
//
//	was, err := s.Add(v)
//	switch bmset.StatusOf(err) {
//	case bmset.StatusSuccess:
//	case bmset.StatusValueRange:
//	case bmset.StatusThreading:
//	}
//
// # Resource Accounting
//
// WithResourceController charges each set's storage to a shared memory
// budget (see package resource); Close refunds it.
package bmset
