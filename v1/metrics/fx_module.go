package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/logsink/v1/logger"
	"github.com/Aleph-Alpha/logsink/v1/observability"
)

// FXModule provides *Metrics, the MetricsCollector interface and an
// observability.Observer, which logger.FXModule picks up to report its sink
// operations. The metrics server runs for the lifetime of the application.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(metrics.Config{Address: ":9090"}),
//	    fx.Supply(logger.Config{Level: "info"}),
//	    logger.FXModule,
//	    metrics.FXModule,
//	)
//
// List logger.FXModule first so that the logger is closed after the metrics
// server has logged its shutdown.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) MetricsCollector { return m },
		func(m *Metrics) observability.Observer { return m },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the metrics server on application start and
// shuts it down gracefully on stop. Server failures are logged through the
// logsink logger.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.LoggerClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})

				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Error starting Prometheus metrics server", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Prometheus metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
