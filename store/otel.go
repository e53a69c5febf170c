package store

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// Exporter publishes a Store's counters as OpenTelemetry observable counters.
type Exporter struct {
	registration metric.Registration
}

// ExportMetrics registers one observable counter per MetricID on meter. Values are read
// from the store on each collection. Close the returned Exporter to unregister.
func (s *Store) ExportMetrics(meter metric.Meter) (*Exporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}

	var instruments [metricIDCount]metric.Int64ObservableCounter
	observables := make([]metric.Observable, 0, int(metricIDCount))
	for id := MetricID(0); id < metricIDCount; id++ {
		ins, err := meter.Int64ObservableCounter(id.String(), metric.WithDescription(metricHelp[id]))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", id, err)
		}
		instruments[id] = ins
		observables = append(observables, ins)
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		for id, ins := range instruments {
			observer.ObserveInt64(ins, int64(s.metrics.Value(MetricID(id))))
		}
		return nil
	}, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}

	return &Exporter{registration: registration}, nil
}

// Close unregisters the callback. It is safe to call on a nil Exporter.
func (e *Exporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
