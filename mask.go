package bitmask

import (
	"fmt"
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// Mask is an immutable, byte-aligned sequence of bits.
//
// The zero value is a valid mask of length 0. Use [Zeroes], [FromBitString] or
// [FromBinary] to create masks of a given width.
type Mask struct {
	bits *bitset.BitSet
}

// Zeroes returns an all-false mask of the given length. length must be a positive
// multiple of 8.
func Zeroes(length int) (Mask, error) {
	if length <= 0 || length%8 != 0 {
		return Mask{}, fmt.Errorf("%w: length must be a positive multiple of 8, got %d", ErrInvalidArgument, length)
	}

	return Mask{bits: bitset.New(uint(length))}, nil
}

// MustZeroes is like [Zeroes] but panics on an invalid length. It is intended for
// package-level mask constants.
func MustZeroes(length int) Mask {
	m, err := Zeroes(length)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of bit slots in the mask.
func (m Mask) Len() int {
	if m.bits == nil {
		return 0
	}
	return int(m.bits.Len())
}

// Get reports the bit at position.
func (m Mask) Get(position int) (bool, error) {
	if err := m.checkPosition(position); err != nil {
		return false, err
	}
	return m.bits.Test(uint(position)), nil
}

// True returns a copy of m with the bit at position set.
func (m Mask) True(position int) (Mask, error) {
	return m.Set(position, true)
}

// False returns a copy of m with the bit at position cleared.
func (m Mask) False(position int) (Mask, error) {
	return m.Set(position, false)
}

// Set returns a copy of m with the bit at position set to value. On error m is
// returned unchanged.
func (m Mask) Set(position int, value bool) (Mask, error) {
	if err := m.checkPosition(position); err != nil {
		return m, err
	}

	bits := m.bits.Clone()
	if value {
		bits.Set(uint(position))
	} else {
		bits.Clear(uint(position))
	}

	return Mask{bits: bits}, nil
}

// Empty reports whether no bit is set.
func (m Mask) Empty() bool {
	return m.bits == nil || m.bits.None()
}

// Cardinality returns the number of set bits. It is unrelated to Len.
func (m Mask) Cardinality() int {
	if m.bits == nil {
		return 0
	}
	return int(m.bits.Count())
}

// And returns the bitwise intersection of m and other.
func (m Mask) And(other Mask) (Mask, error) {
	return m.combine("and", other, (*bitset.BitSet).Intersection)
}

// AndNot returns the bits of m that are not set in other.
func (m Mask) AndNot(other Mask) (Mask, error) {
	return m.combine("and not", other, (*bitset.BitSet).Difference)
}

// Or returns the bitwise union of m and other.
func (m Mask) Or(other Mask) (Mask, error) {
	return m.combine("or", other, (*bitset.BitSet).Union)
}

// Xor returns the bitwise symmetric difference of m and other.
func (m Mask) Xor(other Mask) (Mask, error) {
	return m.combine("xor", other, (*bitset.BitSet).SymmetricDifference)
}

// Equal reports whether m and other have the same length and the same bit pattern.
func (m Mask) Equal(other Mask) bool {
	if m.Len() != other.Len() {
		return false
	}
	if m.Len() == 0 {
		return true
	}
	return m.bits.Equal(other.bits)
}

// All returns a sequence of (position, bit) pairs for every position in ascending
// order. Each range over the sequence starts again from position 0.
func (m Mask) All() iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		n := m.Len()
		for i := 0; i < n; i++ {
			if !yield(i, m.bits.Test(uint(i))) {
				return
			}
		}
	}
}

// Positions returns a sequence of the set positions in ascending order.
func (m Mask) Positions() iter.Seq[int] {
	return func(yield func(int) bool) {
		if m.bits == nil {
			return
		}
		for i, ok := m.bits.NextSet(0); ok; i, ok = m.bits.NextSet(i + 1) {
			if !yield(int(i)) {
				return
			}
		}
	}
}

func (m Mask) combine(op string, other Mask, fn func(*bitset.BitSet, *bitset.BitSet) *bitset.BitSet) (Mask, error) {
	if m.Len() != other.Len() {
		return m, fmt.Errorf("%w: operator %q needs masks of the same size, got %d and %d",
			ErrInvalidArgument, op, m.Len(), other.Len())
	}
	if m.Len() == 0 {
		return Mask{}, nil
	}

	return Mask{bits: fn(m.bits, other.bits)}, nil
}

func (m Mask) checkPosition(position int) error {
	if position < 0 || position >= m.Len() {
		return fmt.Errorf("%w: size of the mask is %d, position %d", ErrOutOfBounds, m.Len(), position)
	}
	return nil
}
