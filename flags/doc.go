// Package flags projects closed flag domains onto bitmask.Mask values.
//
// A flag domain is a fixed set of values, each bound to a unique non-negative integer
// code. Any comparable type with Code and String methods can be a member; a [Domain]
// indexes the members once at construction and never changes afterwards.
//
// # Sizing
//
// Masks produced for a domain are always [InferLength] bits wide, computed over every
// code in the domain rather than the flags actually stored. Encode and decode use the
// same computation, so the byte width of a stored mask never drifts for a given domain.
//
// # Decoding policy
//
// [Projector.Decode] rejects a set bit that has no domain member with [ErrDecoding].
// Stored data written by a newer or older domain definition therefore fails loudly
// instead of silently losing flags.
//
// # Concurrency
//
// Domain and Projector are read-only after construction and safe for concurrent use.
// Builder is not; use one per goroutine or guard it externally.
package flags
