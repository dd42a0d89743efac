package bmset_test

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/hupe1980/bmset"
	"github.com/hupe1980/bmset/resource"
)

// Example demonstrates the basic operations over the int16 range.
func Example() {
	s, err := bmset.New(math.MinInt16, math.MaxInt16)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	was, _ := s.Add(10)
	fmt.Println("add 10, was member:", was)

	was, _ = s.Add(10)
	fmt.Println("add 10 again, was member:", was)

	ok, _ := s.IsElementOf(10)
	fmt.Println("10 is member:", ok)

	_, err = s.Add(math.MaxInt16 + 1)
	fmt.Println("add 32768:", bmset.StatusOf(err))

	was, _ = s.Remove(11)
	fmt.Println("remove 11, was member:", was)

	// Output:
	// add 10, was member: false
	// add 10 again, was member: true
	// 10 is member: true
	// add 32768: value_range
	// remove 11, was member: false
}

// Example_locked demonstrates a set shared between goroutines.
func Example_locked() {
	s, err := bmset.New(0, 999, bmset.WithLocking())
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	done := make(chan struct{})
	for w := range 4 {
		go func() {
			for v := int64(w); v < 1000; v += 4 {
				_, _ = s.Add(v)
			}
			done <- struct{}{}
		}()
	}
	for range 4 {
		<-done
	}

	fmt.Println(s.Mode(), s.Contains(0), s.Contains(999))
	// Output: locked true true
}

// Example_memoryBudget demonstrates charging sets to a shared memory budget.
func Example_memoryBudget() {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1024})

	a, err := bmset.New(0, 4095, bmset.WithResourceController(rc)) // 512 bytes
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("in use:", rc.MemoryUsage())

	_, err = bmset.New(0, 8191, bmset.WithResourceController(rc)) // 1024 bytes
	fmt.Println("over budget:", errors.Is(err, bmset.ErrAllocation))

	_ = a.Close()
	fmt.Println("in use after close:", rc.MemoryUsage())

	// Output:
	// in use: 512
	// over budget: true
	// in use after close: 0
}

// Example_invalidRange demonstrates construction failure.
func Example_invalidRange() {
	_, err := bmset.New(10, 9)
	fmt.Println(errors.Is(err, bmset.ErrInvalidRange))
	fmt.Println(err)

	// Output:
	// true
	// bmset: cannot create set [10, 9]: invalid range: range upper bound is below lower bound: [10, 9]
}
