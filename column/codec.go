package column

import (
	"database/sql/driver"
	"fmt"
	"io"

	"github.com/MrEthical07/bitmask"
)

// Codec converts masks to and from one column representation.
type Codec interface {
	// Name is the storage type name.
	Name() string
	// Declaration returns the column type for a mask of byteLen bytes.
	Declaration(dialect Dialect, byteLen int) (string, error)
	Encode(m bitmask.Mask) (driver.Value, error)
	Decode(src any) (bitmask.Mask, error)
}

var (
	_ Codec = Binary{}
	_ Codec = Debug{}
)

// Binary stores masks as their canonical byte encoding in a fixed-width binary column.
type Binary struct{}

// Name implements Codec.
func (Binary) Name() string { return "bitmask" }

// Declaration returns a binary column type exactly byteLen bytes wide.
func (b Binary) Declaration(dialect Dialect, byteLen int) (string, error) {
	if err := checkLength(b.Name(), byteLen); err != nil {
		return "", err
	}
	return dialect.binary(byteLen)
}

// Encode returns m.Bytes().
func (Binary) Encode(m bitmask.Mask) (driver.Value, error) {
	return m.Bytes(), nil
}

// Decode accepts a []byte, a string or an io.Reader, which is drained completely.
func (Binary) Decode(src any) (bitmask.Mask, error) {
	switch v := src.(type) {
	case []byte:
		return bitmask.FromBinary(v), nil
	case string:
		return bitmask.FromBinary([]byte(v)), nil
	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return bitmask.Mask{}, fmt.Errorf("read mask payload: %w", err)
		}
		return bitmask.FromBinary(data), nil
	}
	return bitmask.Mask{}, fmt.Errorf("%w: expected []byte, string or io.Reader, got %T", bitmask.ErrInvalidArgument, src)
}

// Debug stores masks as '0'/'1' strings, one character per bit. It is meant for
// traceability and debugging, not for querying or indexing.
type Debug struct{}

// Name implements Codec.
func (Debug) Name() string { return "bitmask_debug" }

// Declaration returns a character column of byteLen*8 characters. Columns wider than
// 255 characters use the dialect's large-object text type.
func (d Debug) Declaration(dialect Dialect, byteLen int) (string, error) {
	if err := checkLength(d.Name(), byteLen); err != nil {
		return "", err
	}
	return dialect.text(byteLen * 8)
}

// Encode returns m.String().
func (Debug) Encode(m bitmask.Mask) (driver.Value, error) {
	return m.String(), nil
}

// Decode accepts a string or []byte holding a byte-aligned bit string.
func (Debug) Decode(src any) (bitmask.Mask, error) {
	switch v := src.(type) {
	case string:
		return bitmask.FromBitString(v, false)
	case []byte:
		return bitmask.FromBitString(string(v), false)
	}
	return bitmask.Mask{}, fmt.Errorf("%w: expected string or []byte, got %T", bitmask.ErrInvalidArgument, src)
}
