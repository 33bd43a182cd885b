package metrics

// DefaultMetricsAddress is used when Config.Address is empty.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration structure for the Prometheus metrics server.
type Config struct {
	// Address determines the network address where the Prometheus
	// metrics HTTP server listens.
	//
	// Example values:
	//   - ":9090"   → Listen on all interfaces, port 9090
	//   - "127.0.0.1:9100" → Listen only on localhost, port 9100
	//
	// Default: ":9090"
	Address string `yaml:"address" mapstructure:"address"`

	// EnableDefaultCollectors controls whether the built-in Go runtime
	// and process metrics are registered next to the logsink metrics.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" mapstructure:"enable_default_collectors"`

	// Namespace prefixes every metric name.
	//
	// Example:
	//   Namespace: "billing"
	//   → "billing_logsink_operations_total"
	Namespace string `yaml:"namespace" mapstructure:"namespace"`

	// ServiceName is added as a constant "service" label to every metric.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
}
