package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MrEthical07/bitmask"
	"github.com/MrEthical07/bitmask/flags"
)

// FlagStore keeps sets of flags from one domain in a Store.
type FlagStore[F flags.Flag] struct {
	store     *Store
	projector *flags.Projector[F]
}

// NewFlagStore binds store to domain.
func NewFlagStore[F flags.Flag](store *Store, domain *flags.Domain[F]) *FlagStore[F] {
	return &FlagStore[F]{
		store:     store,
		projector: flags.NewProjector(domain),
	}
}

// Save replaces the set stored under name with list.
func (fs *FlagStore[F]) Save(ctx context.Context, name string, list ...F) error {
	m, err := fs.projector.Encode(list...)
	if err != nil {
		return err
	}
	return fs.store.Save(ctx, name, m)
}

// Load returns the flags stored under name in ascending code order.
func (fs *FlagStore[F]) Load(ctx context.Context, name string) ([]F, error) {
	m, err := fs.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	list, err := fs.projector.Decode(m)
	if err != nil {
		fs.store.logger.WarnContext(ctx, "stored mask does not match domain",
			slog.String("name", name),
			slog.String("domain", fs.projector.Domain().Name()),
			slog.String("bits", m.String()),
			slog.Any("error", err))
		return nil, err
	}
	return list, nil
}

// Grant atomically adds list to the set stored under name and returns the new set.
func (fs *FlagStore[F]) Grant(ctx context.Context, name string, list ...F) ([]F, error) {
	return fs.update(ctx, name, list, bitmask.Mask.Or)
}

// Revoke atomically removes list from the set stored under name and returns the new set.
func (fs *FlagStore[F]) Revoke(ctx context.Context, name string, list ...F) ([]F, error) {
	return fs.update(ctx, name, list, bitmask.Mask.AndNot)
}

// Has reports whether f is in the set stored under name. A missing name holds no flags.
func (fs *FlagStore[F]) Has(ctx context.Context, name string, f F) (bool, error) {
	m, err := fs.store.Load(ctx, name)
	if errors.Is(err, ErrNotFound) {
		m, err = bitmask.Zeroes(fs.projector.Length())
	}
	if err != nil {
		return false, err
	}
	return fs.projector.Contains(m, f)
}

func (fs *FlagStore[F]) update(
	ctx context.Context,
	name string,
	list []F,
	op func(bitmask.Mask, bitmask.Mask) (bitmask.Mask, error),
) ([]F, error) {
	b := flags.NewBuilder(fs.projector.Domain())
	if err := b.Add(list...); err != nil {
		return nil, err
	}
	delta := b.Get()

	m, err := fs.store.Update(ctx, name, fs.projector.Length(), func(current bitmask.Mask) (bitmask.Mask, error) {
		return op(current, delta)
	})
	if err != nil {
		return nil, err
	}
	return fs.projector.Decode(m)
}
