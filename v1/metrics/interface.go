package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/logsink/v1/observability"
)

// MetricsCollector exposes logsink operations as Prometheus metrics and lets
// applications register their own metrics on the same registry.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	// Observer counts rotations, pruned files and failed sink writes.
	observability.Observer

	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}
