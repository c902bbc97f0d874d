// Package mask provides a fixed-size set of flags over the entries of a
// batch, tracking which entries still need work.
//
// A Mask is created once per batch and shrinks as entries finish. Recursive
// steps take their own Mask (see Clone) so that the bookkeeping of
// one step never leaks into another.
package mask

import (
	"fmt"
	"math/bits"
	"strings"
)

const wordSize = 64

// Mask is an ordered set of booleans, one per batch entry.
// The zero value is an empty mask of length 0.
type Mask struct {
	words []uint64
	n     int
}

// New creates a mask of n entries, all set to initial.
func New(n int, initial bool) Mask {
	if n < 0 {
		panic(fmt.Sprintf("mask: negative length %d", n))
	}
	m := Mask{words: make([]uint64, (n+wordSize-1)/wordSize), n: n}
	if initial {
		for i := range m.words {
			m.words[i] = ^uint64(0)
		}
		m.clearTail()
	}
	return m
}

// clearTail zeroes the bits beyond n in the last word.
func (m *Mask) clearTail() {
	if rem := m.n % wordSize; rem != 0 && len(m.words) > 0 {
		m.words[len(m.words)-1] &= (uint64(1) << rem) - 1
	}
}

func (m Mask) check(i int) {
	if i < 0 || i >= m.n {
		panic(fmt.Sprintf("mask: index %d out of range [0,%d)", i, m.n))
	}
}

// Len returns the number of entries.
func (m Mask) Len() int {
	return m.n
}

// Set marks entry i as needing work.
func (m Mask) Set(i int) {
	m.check(i)
	m.words[i/wordSize] |= 1 << (uint(i) % wordSize)
}

// Unset marks entry i as done.
func (m Mask) Unset(i int) {
	m.check(i)
	m.words[i/wordSize] &^= 1 << (uint(i) % wordSize)
}

// IsSet reports whether entry i still needs work.
func (m Mask) IsSet(i int) bool {
	m.check(i)
	return m.words[i/wordSize]&(1<<(uint(i)%wordSize)) != 0
}

// SetCount returns the number of set entries.
func (m Mask) SetCount() int {
	count := 0
	for _, w := range m.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// Any reports whether at least one entry is set.
func (m Mask) Any() bool {
	for _, w := range m.words {
		if w != 0 {
			return true
		}
	}
	return false
}

// Indices returns the set entries in ascending order.
func (m Mask) Indices() []int {
	out := make([]int, 0, m.SetCount())
	for wi, w := range m.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, wi*wordSize+b)
			w &= w - 1
		}
	}
	return out
}

// Clone returns an independent copy of m.
func (m Mask) Clone() Mask {
	words := make([]uint64, len(m.words))
	copy(words, m.words)
	return Mask{words: words, n: m.n}
}

// And returns a new mask set where both m and other are set.
// Both masks must have the same length.
func (m Mask) And(other Mask) Mask {
	if m.n != other.n {
		panic(fmt.Sprintf("mask: length mismatch %d != %d", m.n, other.n))
	}
	out := m.Clone()
	for i := range out.words {
		out.words[i] &= other.words[i]
	}
	return out
}

// String returns the mask as a string of '1' and '0', entry 0 first.
func (m Mask) String() string {
	var b strings.Builder
	b.Grow(m.n)
	for i := 0; i < m.n; i++ {
		if m.IsSet(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
