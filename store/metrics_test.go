package store

import (
	"context"
	"sync"
	"testing"

	"github.com/MrEthical07/bitmask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestMetricsCountOperations(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a", mustBits(t, "10000000")))
	_, err := s.Load(ctx, "a")
	require.NoError(t, err)
	_, err = s.Load(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Update(ctx, "b", 8, func(current bitmask.Mask) (bitmask.Mask, error) {
		return current.True(3)
	})
	require.NoError(t, err)

	mr.Close()
	_, err = s.Load(ctx, "a")
	require.ErrorIs(t, err, ErrRedisUnavailable)

	m := s.Metrics()
	assert.Equal(t, uint64(1), m.Value(MetricSave))
	assert.Equal(t, uint64(1), m.Value(MetricLoad))
	assert.Equal(t, uint64(1), m.Value(MetricLoadMiss))
	assert.Equal(t, uint64(1), m.Value(MetricDelete))
	assert.Equal(t, uint64(1), m.Value(MetricUpdate))
	assert.Equal(t, uint64(1), m.Value(MetricBackendError))
	assert.Zero(t, m.Value(MetricUpdateConflict))
	assert.Zero(t, m.Value(metricIDCount))

	snap := m.Snapshot()
	assert.Len(t, snap, int(metricIDCount))
	assert.Equal(t, uint64(1), snap[MetricSave])
}

func TestMetricsCountConflicts(t *testing.T) {
	s, _ := newTestStore(t, WithMaxRetries(0))
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "c", mustBits(t, "00000000")))

	// A write from inside the callback invalidates the WATCH, so the only attempt fails.
	_, err := s.Update(ctx, "c", 8, func(current bitmask.Mask) (bitmask.Mask, error) {
		require.NoError(t, s.Save(ctx, "c", mustBits(t, "11111111")))
		return current.True(0)
	})
	require.ErrorIs(t, err, ErrConflict)

	assert.Equal(t, uint64(1), s.Metrics().Value(MetricUpdateRetry))
	assert.Equal(t, uint64(1), s.Metrics().Value(MetricUpdateConflict))
	assert.Zero(t, s.Metrics().Value(MetricUpdate))
}

func TestMetricIDString(t *testing.T) {
	assert.Equal(t, "bitmask_store_saves_total", MetricSave.String())
	assert.Equal(t, "unknown", metricIDCount.String())
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out[m.Name] += dp.Value
			}
		}
	}
	return out
}

func TestExportMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("bitmask-test")

	s, _ := newTestStore(t)
	ctx := context.Background()

	exp, err := s.ExportMetrics(meter)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "a", mustBits(t, "10000000")))
	require.NoError(t, s.Save(ctx, "b", mustBits(t, "01000000")))

	got := collect(t, reader)
	assert.Equal(t, int64(2), got["bitmask_store_saves_total"])
	assert.Equal(t, int64(0), got["bitmask_store_loads_total"])
	assert.Len(t, got, int(metricIDCount))

	require.NoError(t, exp.Close())
	assert.Empty(t, collect(t, reader))
}

func TestExportMetricsRejectsNilMeter(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.ExportMetrics(nil)
	require.ErrorIs(t, err, ErrNilMeter)

	var exp *Exporter
	require.NoError(t, exp.Close())
}

func TestExportMetricsConcurrentCollect(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	s, _ := newTestStore(t)
	exp, err := s.ExportMetrics(provider.Meter("bitmask-test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = exp.Close() })

	ctx := context.Background()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Save(ctx, "n", bitmask.MustZeroes(8))
			var rm metricdata.ResourceMetrics
			_ = reader.Collect(ctx, &rm)
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(8), s.Metrics().Value(MetricSave))
}
