package flags

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MrEthical07/bitmask"
)

// Domain is a closed set of flags indexed by code and by name. Its members and their
// codes are fixed when [NewDomain] returns.
type Domain[F Flag] struct {
	name    string
	members []F
	byCode  map[int]F
	byName  map[string]F
	length  int
}

// NewDomain indexes members under the given domain name. Codes must be non-negative
// and unique, names must be non-empty and unique, and at least one member is required.
// The members keep the order in which they are passed.
func NewDomain[F Flag](name string, members ...F) (*Domain[F], error) {
	if name == "" {
		return nil, fmt.Errorf("%w: domain name cannot be empty", bitmask.ErrInvalidArgument)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: domain %q has no members", bitmask.ErrInvalidArgument, name)
	}

	d := &Domain[F]{
		name:    name,
		members: slices.Clone(members),
		byCode:  make(map[int]F, len(members)),
		byName:  make(map[string]F, len(members)),
	}

	codes := make([]int, 0, len(members))
	for _, m := range members {
		code, label := m.Code(), m.String()

		if code < 0 {
			return nil, fmt.Errorf("%w: domain %q member %q uses negative code %d",
				bitmask.ErrInvalidArgument, name, label, code)
		}
		if label == "" {
			return nil, fmt.Errorf("%w: domain %q has a member with an empty name (code %d)",
				bitmask.ErrInvalidArgument, name, code)
		}
		if prev, exists := d.byCode[code]; exists {
			return nil, fmt.Errorf("%w: domain %q members %q and %q share code %d",
				bitmask.ErrInvalidArgument, name, prev.String(), label, code)
		}
		if _, exists := d.byName[label]; exists {
			return nil, fmt.Errorf("%w: domain %q declares %q twice", bitmask.ErrInvalidArgument, name, label)
		}

		d.byCode[code] = m
		d.byName[label] = m
		codes = append(codes, code)
	}

	length, err := InferLength(codes...)
	if err != nil {
		return nil, err
	}
	d.length = length

	return d, nil
}

// MustDomain is like [NewDomain] but panics on error. Use it for package-level domain
// variables.
func MustDomain[F Flag](name string, members ...F) *Domain[F] {
	d, err := NewDomain(name, members...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the domain name, which identifies it in errors and storage type names.
func (d *Domain[F]) Name() string {
	return d.name
}

// Length returns the bit width of masks for this domain.
func (d *Domain[F]) Length() int {
	return d.length
}

// Members returns the members in declaration order.
func (d *Domain[F]) Members() []F {
	return slices.Clone(d.members)
}

// Member returns the member bound to code, or false if the code is unassigned.
func (d *Domain[F]) Member(code int) (F, bool) {
	m, ok := d.byCode[code]
	return m, ok
}

// Lookup returns the member with the given name, or false if there is none.
func (d *Domain[F]) Lookup(name string) (F, bool) {
	m, ok := d.byName[name]
	return m, ok
}

// Contains reports whether f is a member of the domain.
func (d *Domain[F]) Contains(f F) bool {
	m, ok := d.byCode[f.Code()]
	return ok && m == f
}

func (d *Domain[F]) check(f F) error {
	if !d.Contains(f) {
		return fmt.Errorf("%w: %q (code %d) is not a member of %q", ErrTypeMismatch, f.String(), f.Code(), d.name)
	}
	return nil
}

func (d *Domain[F]) checkAll(flags []F) error {
	var errs []error
	for _, f := range flags {
		if err := d.check(f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
