package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPath is where the server exposes the registry.
const MetricsPath = "/metrics"

// Metrics encapsulates the Prometheus registry, the logsink operation metrics
// and the HTTP server that exposes them.
type Metrics struct {
	// Server exposes the registry at MetricsPath. It is started by the Fx
	// lifecycle or by the caller.
	Server *http.Server

	// Registry holds every metric of this instance.
	Registry *prometheus.Registry

	namespace  string
	registerer prometheus.Registerer

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	bytesTotal        *prometheus.CounterVec
}

// NewMetrics creates the registry, registers the logsink metrics and prepares
// the HTTP server. The server is not started.
//
// Registered metrics (before Namespace is applied):
//   - logsink_operations_total{component,operation,resource,outcome}
//   - logsink_operation_duration_seconds{component,operation}
//   - logsink_bytes_total{component,operation,resource}
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	var registerer prometheus.Registerer = registry
	if cfg.ServiceName != "" {
		registerer = prometheus.WrapRegistererWith(
			prometheus.Labels{"service": cfg.ServiceName},
			registry,
		)
	}

	m := &Metrics{
		Registry:   registry,
		namespace:  cfg.Namespace,
		registerer: registerer,
	}

	m.operationsTotal = m.createCounterVec("logsink_operations_total",
		"Total number of observed logsink operations",
		[]string{"component", "operation", "resource", "outcome"})
	m.operationDuration = m.createHistogramVec("logsink_operation_duration_seconds",
		"Duration of observed logsink operations in seconds",
		[]string{"component", "operation"}, prometheus.DefBuckets)
	m.bytesTotal = m.createCounterVec("logsink_bytes_total",
		"Bytes involved in observed logsink operations, e.g. the size of pruned files",
		[]string{"component", "operation", "resource"})

	registerer.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.bytesTotal,
	)

	if cfg.EnableDefaultCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	mux := http.NewServeMux()
	mux.Handle(MetricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    address,
		Handler: mux,
	}
	return m
}
