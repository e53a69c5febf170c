// Command mask-loadtest measures Store.Load and Store.Update throughput against Redis,
// or against an in-process miniredis when no address is given.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/bitmask"
	"github.com/MrEthical07/bitmask/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	flag "github.com/spf13/pflag"
)

type options struct {
	names       int
	width       int
	hot         int
	concurrency int
	ops         int
	prefix      string
}

func main() {
	var (
		opts      options
		redisAddr string
	)
	flag.IntVar(&opts.names, "names", 10000, "number of masks to seed")
	flag.IntVar(&opts.width, "bits", 64, "mask width in bits (multiple of 8)")
	flag.IntVar(&opts.hot, "hot", 16, "number of names shared by update workers")
	flag.IntVar(&opts.concurrency, "concurrency", 64, "number of concurrent workers")
	flag.IntVar(&opts.ops, "ops", 50000, "operations per phase (load + update)")
	flag.StringVar(&redisAddr, "redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
	flag.StringVar(&opts.prefix, "prefix", "bm", "mask key prefix")
	flag.Parse()

	if err := opts.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	addr := redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	client, cleanup, err := connect(addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer cleanup()

	if err := run(context.Background(), store.NewStore(client, opts.prefix, store.WithMaxRetries(1000)), opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o options) validate() error {
	if o.names <= 0 || o.hot <= 0 || o.concurrency <= 0 || o.ops <= 0 {
		return fmt.Errorf("names, hot, concurrency and ops must be > 0")
	}
	if o.hot > o.names {
		return fmt.Errorf("hot (%d) cannot exceed names (%d)", o.hot, o.names)
	}
	if _, err := bitmask.Zeroes(o.width); err != nil {
		return fmt.Errorf("bits: %w", err)
	}
	return nil
}

func connect(addr string) (redis.UniversalClient, func(), error) {
	if addr != "" {
		client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		fmt.Printf("using redis at %s\n", addr)
		return client, func() { _ = client.Close() }, nil
	}

	mr, err := miniredis.Run()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start miniredis: %w", err)
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
	fmt.Printf("using miniredis at %s\n", mr.Addr())
	return client, func() {
		_ = client.Close()
		mr.Close()
	}, nil
}

func run(ctx context.Context, s *store.Store, opts options) error {
	if _, err := s.Ping(ctx); err != nil {
		return err
	}

	fmt.Printf("seeding %d masks of %d bits...\n", opts.names, opts.width)
	startSeed := time.Now()
	for i := range opts.names {
		if err := s.Save(ctx, nameFor(i), seedMask(i, opts.width)); err != nil {
			return fmt.Errorf("save failed: %w", err)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	loadStats := runPhase(opts.ops, opts.concurrency, func(r *rand.Rand, _ int) error {
		_, err := s.Load(ctx, nameFor(r.Intn(opts.names)))
		return err
	})
	updateStats := runPhase(opts.ops, opts.concurrency, func(r *rand.Rand, i int) error {
		position := r.Intn(opts.width)
		value := i%2 == 0
		_, err := s.Update(ctx, nameFor(r.Intn(opts.hot)), opts.width, func(current bitmask.Mask) (bitmask.Mask, error) {
			return current.Set(position, value)
		})
		return err
	})

	fmt.Println("---- results ----")
	printStats("load", loadStats)
	printStats("update", updateStats)

	m := s.Metrics()
	fmt.Printf("store: retries=%d conflicts=%d backend_errors=%d\n",
		m.Value(store.MetricUpdateRetry),
		m.Value(store.MetricUpdateConflict),
		m.Value(store.MetricBackendError),
	)
	return nil
}

// runPhase spreads ops calls of op over concurrency workers and records each latency.
func runPhase(ops, concurrency int, op func(r *rand.Rand, i int) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := range concurrency {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				err := op(r, i)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	return computeStats(time.Since(start), latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total, failures: failures}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	return samples[(len(samples)-1)*p/100]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

func nameFor(i int) string {
	return fmt.Sprintf("user-%d", i)
}

// seedMask sets every seventh bit, offset by i, so seeded masks differ.
func seedMask(i, width int) bitmask.Mask {
	m := bitmask.MustZeroes(width)
	for p := i % 7; p < width; p += 7 {
		m, _ = m.True(p)
	}
	return m
}
