package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/logsink/v1/observability"
)

// ObserveOperation records one logsink operation. It implements
// observability.Observer, so a *Metrics can be attached to a logger with
// LoggerClient.WithObserver.
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	outcome := "success"
	if ctx.Error != nil {
		outcome = "error"
	}

	m.operationsTotal.WithLabelValues(ctx.Component, ctx.Operation, ctx.Resource, outcome).Inc()
	if ctx.Duration > 0 {
		m.operationDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())
	}
	if ctx.Size > 0 {
		m.bytesTotal.WithLabelValues(ctx.Component, ctx.Operation, ctx.Resource).Add(float64(ctx.Size))
	}
}

// CreateCounter creates and registers a CounterVec.
// The name is prefixed with the configured namespace.
//
// Example:
//
//	requests := m.CreateCounter("http_requests_total", "Handled requests", []string{"status"})
//	requests.WithLabelValues("200").Inc()
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := m.createCounterVec(name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

// CreateHistogram creates and registers a HistogramVec.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := m.createHistogramVec(name, help, labels, buckets)
	m.registerer.MustRegister(hist)
	return hist
}

// CreateGauge creates and registers a GaugeVec.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := m.createGaugeVec(name, help, labels)
	m.registerer.MustRegister(gauge)
	return gauge
}

func (m *Metrics) createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func (m *Metrics) createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

func (m *Metrics) createGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}
