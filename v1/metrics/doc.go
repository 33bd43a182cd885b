// Package metrics exposes logsink operations as Prometheus metrics.
//
// A *Metrics implements observability.Observer. Attached to a logger, it
// counts daily rotations, pruned files and failed sink writes, labelled by
// component ("rotation" or "sink"), operation and sink name:
//
//	logsink_operations_total{component="rotation",operation="prune",resource="json-file:info_%DATE%.log",outcome="success"} 3
//	logsink_bytes_total{component="rotation",operation="prune",resource="json-file:info_%DATE%.log"} 18234
//
// The registry is served at /metrics by Metrics.Server. Applications can
// register their own metrics on the same registry with CreateCounter,
// CreateHistogram and CreateGauge.
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:     ":9090",
//		ServiceName: "billing",
//	})
//	go m.Server.ListenAndServe()
//
//	log, err := logger.NewLoggerClient(cfg)
//	if err != nil {
//		return err
//	}
//	log.WithObserver(m)
//
// # FX Module Integration
//
// FXModule provides *Metrics as the observability.Observer that
// logger.FXModule attaches automatically, and runs the server for the
// lifetime of the application.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package metrics
