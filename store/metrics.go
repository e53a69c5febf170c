package store

import "sync/atomic"

// MetricID identifies a Store counter.
type MetricID uint8

const (
	MetricSave MetricID = iota
	MetricLoad
	MetricLoadMiss
	MetricDelete
	MetricUpdate
	MetricUpdateRetry
	MetricUpdateConflict
	MetricBackendError
	metricIDCount
)

var metricNames = [metricIDCount]string{
	MetricSave:           "bitmask_store_saves_total",
	MetricLoad:           "bitmask_store_loads_total",
	MetricLoadMiss:       "bitmask_store_load_misses_total",
	MetricDelete:         "bitmask_store_deletes_total",
	MetricUpdate:         "bitmask_store_updates_total",
	MetricUpdateRetry:    "bitmask_store_update_retries_total",
	MetricUpdateConflict: "bitmask_store_update_conflicts_total",
	MetricBackendError:   "bitmask_store_backend_errors_total",
}

var metricHelp = [metricIDCount]string{
	MetricSave:           "Masks written by Save.",
	MetricLoad:           "Masks read by Load.",
	MetricLoadMiss:       "Load calls for names with no stored mask.",
	MetricDelete:         "Delete calls.",
	MetricUpdate:         "Committed Update transactions.",
	MetricUpdateRetry:    "Update attempts that lost a WATCH race.",
	MetricUpdateConflict: "Update calls that ran out of retries.",
	MetricBackendError:   "Redis errors surfaced as ErrRedisUnavailable.",
}

// String returns the exported metric name.
func (id MetricID) String() string {
	if id >= metricIDCount {
		return "unknown"
	}
	return metricNames[id]
}

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds lock-free operation counters for one Store.
type Metrics struct {
	counters [metricIDCount]paddedCounter
}

func (m *Metrics) inc(id MetricID) {
	if m == nil || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value returns the current count for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot returns every counter. Counters are read one by one, so a snapshot taken
// under load is not a single consistent cut.
func (m *Metrics) Snapshot() map[MetricID]uint64 {
	out := make(map[MetricID]uint64, int(metricIDCount))
	for id := MetricID(0); id < metricIDCount; id++ {
		out[id] = m.Value(id)
	}
	return out
}
