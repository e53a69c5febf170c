package flags

import (
	"fmt"

	"github.com/MrEthical07/bitmask"
)

// Builder accumulates flags of one domain into a mask. Each successful call replaces the
// working mask with an updated copy, so masks returned by Get never change.
//
// A Builder is not safe for concurrent use.
type Builder[F Flag] struct {
	domain *Domain[F]
	mask   bitmask.Mask
}

// NewBuilder returns a builder holding an all-zero mask sized for domain.
func NewBuilder[F Flag](domain *Domain[F]) *Builder[F] {
	return &Builder[F]{
		domain: domain,
		mask:   bitmask.MustZeroes(domain.Length()),
	}
}

// Add sets the bits of flags. At least one flag is required; if any flag is outside
// the domain nothing changes.
func (b *Builder[F]) Add(flags ...F) error {
	return b.apply("add", flags, true)
}

// Remove clears the bits of flags, with the same validation as Add.
func (b *Builder[F]) Remove(flags ...F) error {
	return b.apply("remove", flags, false)
}

// Get returns the current mask.
func (b *Builder[F]) Get() bitmask.Mask {
	return b.mask
}

func (b *Builder[F]) apply(op string, flags []F, value bool) error {
	if len(flags) == 0 {
		return fmt.Errorf("%w: expected at least one flag to %s", bitmask.ErrInvalidArgument, op)
	}
	if err := b.domain.checkAll(flags); err != nil {
		return err
	}

	next := b.mask
	for _, f := range flags {
		var err error
		if next, err = next.Set(f.Code(), value); err != nil {
			return err
		}
	}
	b.mask = next

	return nil
}
