// Package store persists masks and flag sets in Redis.
//
// Values are stored under "<prefix>:mask:<name>" as the canonical binary encoding of
// the mask (see bitmask.Mask.Bytes), so other readers only need FromBinary to load
// them.
//
// # Architecture boundaries
//
// Store owns key layout and the optimistic read-modify-write loop; it never interprets
// the bits. FlagStore adds flag-domain projection on top and is the only place where
// domain semantics meet Redis.
//
// # Metrics
//
// Every Store counts its operations (see MetricID). ExportMetrics publishes the counters
// on an OpenTelemetry meter; nothing is exported unless it is called.
//
// # What this package must NOT do
//
//   - Create or close the Redis client; callers own its lifecycle.
//   - Retry backend failures. Only WATCH conflicts are retried.
package store
