package flags

// Flag is the capability every domain member implements: a stable non-negative integer
// code used as its bit position, and a symbolic name.
type Flag interface {
	comparable
	Code() int
	String() string
}

// Named is a flag whose name and code are data rather than Go constants. It backs
// domains defined at runtime, for example from a configuration file.
type Named struct {
	Name  string
	Value int
}

// Code implements Flag.
func (n Named) Code() int { return n.Value }

// String implements Flag.
func (n Named) String() string { return n.Name }
