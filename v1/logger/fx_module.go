package logger

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/logsink/v1/environment"
	"github.com/Aleph-Alpha/logsink/v1/observability"
)

// FXModule defines the Fx module for the logger package.
// This module integrates the logger into an Fx-based application by providing
// the logger factory and registering its lifecycle hooks.
//
// The module:
//  1. Provides *LoggerClient and the Logger interface
//  2. Invokes RegisterLoggerLifecycle to flush and close the sinks on shutdown
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(logger.Config{Level: "info", LogToConsole: true}),
//	    logger.FXModule,
//	)
//
// Dependencies required by this module:
//   - A logger.Config instance
//
// Optional dependencies:
//   - *environment.Resolved, used instead of the process environment
//   - observability.Observer, attached with WithObserver
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClientWithDI,
		func(client *LoggerClient) Logger { return client },
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// LoggerParams groups the dependencies needed to create a logger client via
// dependency injection.
type LoggerParams struct {
	fx.In

	Config      Config
	Environment *environment.Resolved  `optional:"true"`
	Observer    observability.Observer `optional:"true"`
}

// NewLoggerClientWithDI creates a logger client from injected dependencies.
// Errors abort the Fx application start.
func NewLoggerClientWithDI(params LoggerParams) (*LoggerClient, error) {
	var opts []Option
	if params.Environment != nil {
		opts = append(opts, WithEnvironment(*params.Environment))
	}

	client, err := NewLoggerClient(params.Config, opts...)
	if err != nil {
		return nil, err
	}
	if params.Observer != nil {
		client.WithObserver(params.Observer)
	}
	return client, nil
}

// RegisterLoggerLifecycle flushes and closes every sink when the application
// stops.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *LoggerClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
