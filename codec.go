package bitmask

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// FromBitString parses a string of '0' and '1' characters; character i becomes
// position i. Unless allowUnaligned is set, the string length must be a multiple of 8.
// Unaligned input, when allowed, is padded with zeroes up to the next multiple of 8.
func FromBitString(text string, allowUnaligned bool) (Mask, error) {
	if text == "" {
		return Mask{}, fmt.Errorf("%w: bit string must not be empty", ErrInvalidArgument)
	}
	if strings.Trim(text, "01") != "" {
		return Mask{}, fmt.Errorf("%w: bit string must contain zeroes and ones only, %q provided", ErrInvalidArgument, text)
	}
	if !allowUnaligned && len(text)%8 != 0 {
		return Mask{}, fmt.Errorf("%w: bit string length must be a multiple of 8, %d characters provided", ErrInvalidArgument, len(text))
	}

	length := (len(text) + 7) / 8 * 8
	bits := bitset.New(uint(length))
	for i := 0; i < len(text); i++ {
		if text[i] == '1' {
			bits.Set(uint(i))
		}
	}

	return Mask{bits: bits}, nil
}

// FromBinary builds a mask of 8*len(data) bits from its [Mask.Bytes] encoding. data is
// copied; any byte string is accepted.
func FromBinary(data []byte) Mask {
	if len(data) == 0 {
		return Mask{}
	}

	bits := bitset.New(uint(len(data) * 8))
	for i, b := range data {
		for j := 0; b != 0; j++ {
			if b&1 == 1 {
				bits.Set(uint(i*8 + j))
			}
			b >>= 1
		}
	}

	return Mask{bits: bits}
}

// Bytes returns the canonical binary encoding: Len()/8 bytes, position i stored in
// byte i/8 at bit i%8 counted from the least-significant bit.
func (m Mask) Bytes() []byte {
	out := make([]byte, m.Len()/8)
	for i := range m.Positions() {
		out[i/8] |= 1 << (i % 8)
	}
	return out
}

// String returns the Len() characters long '0'/'1' representation of the mask.
func (m Mask) String() string {
	var b strings.Builder
	b.Grow(m.Len())
	for _, bit := range m.All() {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m Mask) MarshalBinary() ([]byte, error) {
	return m.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It replaces the value held by
// the receiver variable; masks previously copied from it are not affected.
func (m *Mask) UnmarshalBinary(data []byte) error {
	*m = FromBinary(data)
	return nil
}

// MarshalText implements encoding.TextMarshaler using the bit string representation.
func (m Mask) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text must be byte aligned;
// empty text yields the zero-length mask.
func (m *Mask) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = Mask{}
		return nil
	}
	decoded, err := FromBitString(string(text), false)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}
