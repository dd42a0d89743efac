package bitmap

import (
	"errors"
	"fmt"
	"math/bits"
	"runtime"

	"github.com/hupe1980/bmset/internal/conv"
)

// WordBits is the number of bits per word.
const WordBits = 64

// WordBytes is the number of bytes per word.
const WordBytes = WordBits / 8

var (
	// ErrTooLarge is returned when the word count does not fit an int.
	ErrTooLarge = errors.New("bitmap too large")

	// ErrAllocation is returned when the runtime refuses the allocation.
	ErrAllocation = errors.New("bitmap allocation failed")
)

// Fixed is a fixed-size bitmap over the bit offsets [0, Len()).
type Fixed struct {
	// words is the backing storage, allocated once.
	words []uint64

	// nbits is the number of addressable bits.
	nbits uint64
}

// WordsFor returns the number of words needed to hold nbits bits.
func WordsFor(nbits uint64) uint64 {
	return conv.CeilDiv(nbits, WordBits)
}

// BytesFor returns the storage size in bytes of a bitmap holding nbits bits.
func BytesFor(nbits uint64) (uint64, error) {
	return conv.MulUint64(WordsFor(nbits), WordBytes)
}

// Locate maps a bit offset to its word index and the mask selecting the bit
// inside that word.
//
//go:nosplit
func Locate(offset uint64) (word uint64, mask uint64) {
	return offset / WordBits, uint64(1) << (offset % WordBits)
}

// New allocates a zeroed bitmap of nbits bits.
func New(nbits uint64) (*Fixed, error) {
	n, err := conv.Uint64ToInt(WordsFor(nbits))
	if err != nil {
		return nil, fmt.Errorf("%w: %d bits: %w", ErrTooLarge, nbits, err)
	}

	words, err := allocate(n)
	if err != nil {
		return nil, err
	}

	return &Fixed{
		words: words,
		nbits: nbits,
	}, nil
}

// allocate turns a runtime allocation panic (e.g. "makeslice: len out of
// range") into ErrAllocation.
func allocate(n int) (words []uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			words = nil
			err = fmt.Errorf("%w: %d words: %v", ErrAllocation, n, re)
		}
	}()
	return make([]uint64, n), nil
}

// Len returns the number of addressable bits.
func (f *Fixed) Len() uint64 {
	return f.nbits
}

// NumWords returns the number of storage words.
func (f *Fixed) NumWords() int {
	return len(f.words)
}

// SizeInBytes returns the storage size in bytes.
func (f *Fixed) SizeInBytes() uint64 {
	return uint64(len(f.words)) * WordBytes
}

// Test reports whether the bit at offset is set.
func (f *Fixed) Test(offset uint64) bool {
	w, mask := Locate(offset)
	return f.words[w]&mask != 0
}

// Set sets the bit at offset. Returns true if it was already set.
func (f *Fixed) Set(offset uint64) bool {
	w, mask := Locate(offset)
	if f.words[w]&mask != 0 {
		return true
	}
	f.words[w] |= mask
	return false
}

// Clear clears the bit at offset. Returns true if it was set.
func (f *Fixed) Clear(offset uint64) bool {
	w, mask := Locate(offset)
	if f.words[w]&mask == 0 {
		return false
	}
	f.words[w] &^= mask
	return true
}

// Count returns the number of set bits.
func (f *Fixed) Count() int {
	count := 0
	for _, w := range f.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// Words returns a copy of the backing words.
func (f *Fixed) Words() []uint64 {
	out := make([]uint64, len(f.words))
	copy(out, f.words)
	return out
}

// Release drops the backing storage. The bitmap must not be used afterwards.
func (f *Fixed) Release() {
	f.words = nil
	f.nbits = 0
}
