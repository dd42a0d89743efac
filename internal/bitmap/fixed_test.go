package bitmap

import (
	"errors"
	"math"
	"testing"
)

func TestWordsFor(t *testing.T) {
	tests := []struct {
		nbits uint64
		want  uint64
	}{
		{1, 1},
		{63, 1},
		{64, 1},
		{65, 2},
		{128, 2},
		{129, 3},
		{65536, 1024},
		{math.MaxUint64, 1 << 58},
	}

	for _, tt := range tests {
		if got := WordsFor(tt.nbits); got != tt.want {
			t.Errorf("WordsFor(%d) = %d, want %d", tt.nbits, got, tt.want)
		}
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		offset   uint64
		wantWord uint64
		wantMask uint64
	}{
		{0, 0, 1},
		{1, 0, 2},
		{63, 0, 1 << 63},
		{64, 1, 1},
		{32778, 512, 1 << 10},
	}

	for _, tt := range tests {
		w, m := Locate(tt.offset)
		if w != tt.wantWord || m != tt.wantMask {
			t.Errorf("Locate(%d) = (%d, %#x), want (%d, %#x)", tt.offset, w, m, tt.wantWord, tt.wantMask)
		}
	}
}

func TestFixed_Basic(t *testing.T) {
	f, err := New(1000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if f.Len() != 1000 {
		t.Errorf("Len = %d, want 1000", f.Len())
	}
	if f.NumWords() != 16 {
		t.Errorf("NumWords = %d, want 16", f.NumWords())
	}
	if f.SizeInBytes() != 128 {
		t.Errorf("SizeInBytes = %d, want 128", f.SizeInBytes())
	}

	if f.Set(100) {
		t.Error("Set should return false for new bit")
	}
	if !f.Set(100) {
		t.Error("Set should return true for existing bit")
	}
	if !f.Test(100) {
		t.Error("Test should return true for set bit")
	}
	if f.Test(101) || f.Test(99) {
		t.Error("neighbouring bits must stay clear")
	}

	if c := f.Count(); c != 1 {
		t.Errorf("Count = %d, want 1", c)
	}

	if !f.Clear(100) {
		t.Error("Clear should return true for set bit")
	}
	if f.Clear(100) {
		t.Error("Clear should return false for clear bit")
	}
	if f.Test(100) {
		t.Error("Test should return false after Clear")
	}
}

func TestFixed_WordBoundaries(t *testing.T) {
	f, err := New(256)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, off := range []uint64{0, 63, 64, 127, 128, 255} {
		f.Set(off)
	}

	words := f.Words()
	want := []uint64{1 | 1<<63, 1 | 1<<63, 1, 1 << 63}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = %#x, want %#x", i, words[i], want[i])
		}
	}

	// Words is a copy.
	words[0] = 0
	if !f.Test(0) {
		t.Error("mutating Words() result must not affect the bitmap")
	}
}

func TestFixed_TooLarge(t *testing.T) {
	// 2^64-1 bits needs 2^58 words: representable as int on 64-bit
	// platforms but far beyond what the runtime will allocate.
	_, err := New(math.MaxUint64)
	if !errors.Is(err, ErrAllocation) && !errors.Is(err, ErrTooLarge) {
		t.Fatalf("New(MaxUint64) err = %v, want ErrAllocation or ErrTooLarge", err)
	}
}

func TestFixed_Release(t *testing.T) {
	f, err := New(64)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	f.Release()
	if f.NumWords() != 0 || f.Len() != 0 {
		t.Error("Release should drop storage")
	}
}

func BenchmarkFixed_SetClear(b *testing.B) {
	f, err := New(1 << 16)
	if err != nil {
		b.Fatal(err)
	}
	var off uint64
	for b.Loop() {
		f.Set(off)
		f.Clear(off)
		off = (off + 7919) & (1<<16 - 1)
	}
}
