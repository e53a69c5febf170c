// Package testdomain provides a small flag domain shared by tests across the module.
package testdomain

import (
	"strconv"

	"github.com/MrEthical07/bitmask/flags"
)

// Option is a flag type with sparse codes.
type Option int

const (
	Foo Option = 1
	Bar Option = 3
	Baz Option = 7
)

// Code implements flags.Flag.
func (o Option) Code() int { return int(o) }

func (o Option) String() string {
	switch o {
	case Foo:
		return "foo"
	case Bar:
		return "bar"
	case Baz:
		return "baz"
	}
	return "option(" + strconv.Itoa(int(o)) + ")"
}

// Domain holds Foo, Bar and Baz.
var Domain = flags.MustDomain("foo", Foo, Bar, Baz)

// Wide is a domain whose highest code needs a second byte.
type Wide int

const (
	Low  Wide = 0
	High Wide = 8
)

// Code implements flags.Flag.
func (w Wide) Code() int { return int(w) }

func (w Wide) String() string {
	switch w {
	case Low:
		return "low"
	case High:
		return "high"
	}
	return "wide(" + strconv.Itoa(int(w)) + ")"
}

// WideDomain holds Low and High.
var WideDomain = flags.MustDomain("wide", Low, High)
