package flags

import (
	"fmt"

	"github.com/MrEthical07/bitmask"
)

// Projector converts between sets of flags of one domain and masks.
type Projector[F Flag] struct {
	domain *Domain[F]
}

// NewProjector binds a projector to domain.
func NewProjector[F Flag](domain *Domain[F]) *Projector[F] {
	return &Projector[F]{domain: domain}
}

// Domain returns the bound domain.
func (p *Projector[F]) Domain() *Domain[F] {
	return p.domain
}

// Length returns the bit width of every mask the projector produces.
func (p *Projector[F]) Length() int {
	return p.domain.Length()
}

// Encode returns a mask of Length() bits with the bit at each flag's code set.
// Duplicate flags are harmless. A flag outside the domain fails with ErrTypeMismatch
// and no mask is produced.
func (p *Projector[F]) Encode(flags ...F) (bitmask.Mask, error) {
	if err := p.domain.checkAll(flags); err != nil {
		return bitmask.Mask{}, err
	}

	m, err := bitmask.Zeroes(p.domain.Length())
	if err != nil {
		return bitmask.Mask{}, err
	}

	for _, f := range flags {
		if m, err = m.True(f.Code()); err != nil {
			return bitmask.Mask{}, err
		}
	}

	return m, nil
}

// Decode returns the members whose bits are set in m, in ascending code order.
// A set bit that no member claims fails with ErrDecoding.
func (p *Projector[F]) Decode(m bitmask.Mask) ([]F, error) {
	out := make([]F, 0, m.Cardinality())
	for position := range m.Positions() {
		f, ok := p.domain.Member(position)
		if !ok {
			return nil, fmt.Errorf("%w: bit %d has no member in %q", ErrDecoding, position, p.domain.Name())
		}
		out = append(out, f)
	}
	return out, nil
}

// Contains reports whether f's bit is set in m.
func (p *Projector[F]) Contains(m bitmask.Mask, f F) (bool, error) {
	if err := p.domain.check(f); err != nil {
		return false, err
	}
	return m.Get(f.Code())
}
