// Package bitmask provides Mask, an immutable fixed-width bit vector used to store a set
// of boolean flags addressed by integer position.
//
// A Mask is a value: every transformation (True, False, Set, And, AndNot, Or, Xor)
// returns a new Mask and never writes to the receiver, so masks can be shared between
// goroutines without synchronization.
//
// # Encodings
//
// A Mask has two canonical encodings. [Mask.String] renders one '0' or '1' character
// per position, position i at character i. [Mask.Bytes] packs eight positions per byte;
// position i lives in byte i/8 at bit i%8 counted from the least-significant bit, so
// the bit string "00000100" encodes as the single byte 0x20.
//
// # Architecture boundaries
//
// This package is a pure in-memory value type with no I/O. Flag domains are projected
// onto masks by the flags sub-package; storage and transport live in column, store and
// token.
//
// # What this package must NOT do
//
//   - Resize an existing mask.
//   - Mutate a mask after construction.
//   - Import any sub-package of this module.
package bitmask
