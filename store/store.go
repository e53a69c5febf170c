package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrEthical07/bitmask"
	"github.com/redis/go-redis/v9"
)

// Store reads and writes masks in Redis. It is safe for concurrent use.
type Store struct {
	redis      redis.UniversalClient
	prefix     string
	ttl        time.Duration
	maxRetries int
	logger     *slog.Logger
	metrics    Metrics
}

// NewStore returns a Store keeping its keys under prefix.
func NewStore(rdb redis.UniversalClient, prefix string, opts ...Option) *Store {
	s := &Store{
		redis:      rdb,
		prefix:     prefix,
		maxRetries: defaultMaxRetries,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(name string) string {
	return s.prefix + ":mask:" + name
}

// Metrics returns the store's operation counters.
func (s *Store) Metrics() *Metrics {
	return &s.metrics
}

func (s *Store) backendError(err error) error {
	s.metrics.inc(MetricBackendError)
	return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
}

// Save stores m under name, replacing any previous value.
func (s *Store) Save(ctx context.Context, name string, m bitmask.Mask) error {
	if err := s.redis.Set(ctx, s.key(name), m.Bytes(), s.ttl).Err(); err != nil {
		return s.backendError(err)
	}
	s.metrics.inc(MetricSave)
	return nil
}

// Load returns the mask stored under name, or ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) (bitmask.Mask, error) {
	data, err := s.redis.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.metrics.inc(MetricLoadMiss)
			return bitmask.Mask{}, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return bitmask.Mask{}, s.backendError(err)
	}
	s.metrics.inc(MetricLoad)
	return bitmask.FromBinary(data), nil
}

// Delete removes the mask stored under name. Deleting a missing name is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.redis.Del(ctx, s.key(name)).Err(); err != nil {
		return s.backendError(err)
	}
	s.metrics.inc(MetricDelete)
	return nil
}

// Names returns the names of all stored masks, in no particular order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	prefix := s.key("")

	var names []string
	it := s.redis.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for it.Next(ctx) {
		names = append(names, it.Val()[len(prefix):])
	}
	if err := it.Err(); err != nil {
		return nil, s.backendError(err)
	}
	return names, nil
}

// Update atomically replaces the mask under name with fn's result. A missing name
// starts from an all-zero mask of length bits; a stored mask of a different length is
// rejected with bitmask.ErrInvalidArgument. Errors from fn are returned as is and leave
// the stored value untouched. Concurrent writers are detected with WATCH and the update
// is retried; ErrConflict is returned once retries are exhausted.
func (s *Store) Update(
	ctx context.Context,
	name string,
	length int,
	fn func(current bitmask.Mask) (bitmask.Mask, error),
) (bitmask.Mask, error) {
	key := s.key(name)

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		var (
			next    bitmask.Mask
			callErr error
		)

		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			current, err := s.readForUpdate(ctx, tx, key, length)
			if err != nil {
				callErr = err
				return err
			}

			if next, callErr = fn(current); callErr != nil {
				return callErr
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, next.Bytes(), s.ttl)
				return nil
			})
			return err
		}, key)

		switch {
		case err == nil:
			s.metrics.inc(MetricUpdate)
			return next, nil
		case callErr != nil:
			return bitmask.Mask{}, callErr
		case errors.Is(err, redis.TxFailedErr):
			s.metrics.inc(MetricUpdateRetry)
			s.logger.DebugContext(ctx, "mask update lost a race, retrying",
				slog.String("key", key), slog.Int("attempt", attempt+1))
			continue
		default:
			return bitmask.Mask{}, s.backendError(err)
		}
	}

	s.metrics.inc(MetricUpdateConflict)
	s.logger.WarnContext(ctx, "mask update gave up", slog.String("key", key), slog.Int("retries", s.maxRetries))
	return bitmask.Mask{}, fmt.Errorf("%w: %q", ErrConflict, name)
}

// readForUpdate loads key inside a WATCH transaction. Backend errors are wrapped so
// Update can tell them apart from a lost race.
func (s *Store) readForUpdate(ctx context.Context, tx *redis.Tx, key string, length int) (bitmask.Mask, error) {
	data, err := tx.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return bitmask.Zeroes(length)
	case err != nil:
		return bitmask.Mask{}, s.backendError(err)
	}

	current := bitmask.FromBinary(data)
	if current.Len() != length {
		s.logger.WarnContext(ctx, "stored mask has unexpected width",
			slog.String("key", key), slog.Int("bits", current.Len()), slog.Int("expected", length))
		return bitmask.Mask{}, fmt.Errorf("%w: stored mask %q has %d bits, expected %d",
			bitmask.ErrInvalidArgument, key, current.Len(), length)
	}
	return current, nil
}

// Ping checks connectivity and reports the round-trip time.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), s.backendError(err)
	}
	return time.Since(start), nil
}
