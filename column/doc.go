// Package column maps bitmask.Mask values and flag sets onto SQL columns.
//
// Two codecs are provided. [Binary] stores the canonical byte encoding in a fixed-width
// binary column and is the one to use for anything that is queried or indexed. [Debug]
// stores the '0'/'1' text form, which is readable in a SQL console at eight times the
// width.
//
// [Enum] binds the binary codec to a flag domain: callers pass and receive flag slices
// and the column width is derived from the domain.
//
// # Architecture boundaries
//
// Declarations are plain strings for CREATE TABLE / migration tooling; encode and decode
// work on database/sql driver values. The package never opens connections itself.
package column
