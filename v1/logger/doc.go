// Package logger provides the logsink logging facade.
//
// A LoggerClient resolves a Config against the process environment, builds
// its sinks once, and dispatches every entry to all of them. Each sink
// decides for itself whether it admits the entry's severity.
//
// Core Features:
//   - Seven npm-style severities (error, warn, info, http, verbose, debug, silly)
//   - Daily rotated JSON and/or human-readable files with retention pruning
//   - Dedicated error-only files next to the primary files
//   - Optional colorized console output
//   - Runtime muting of every sink at once
//   - Trace and span IDs from OpenTelemetry contexts
//
// Basic Usage:
//
//	import "github.com/Aleph-Alpha/logsink/v1/logger"
//
//	log, err := logger.NewLoggerClient(logger.Config{
//		Level:        "warn",
//		FileFormat:   "both",
//		LogToConsole: true,
//	})
//	if err != nil {
//		return err
//	}
//	defer log.Close()
//
//	log.Warn("disk low", nil, map[string]interface{}{"free_mb": 12})
//	log.Error("upload failed", err, nil)
//	log.InfoWithContext(ctx, "request handled", nil, nil)
//
// With that configuration the logger owns, in order:
//
//	json-file     warn_%DATE%.log
//	readable-file warn_%DATE%_readable.log
//	json-file     error_%DATE%.log
//	readable-file error_%DATE%_readable.log
//	console
//
// Environment:
//
// NODE_ENV must be production, development or test. LOG_LEVEL and
// LOG_RETENTION_DAYS provide the defaults for Config.Level and
// Config.LogRetentionDays; invalid values fall back to info and 14 days.
// The environment is read once per process.
//
// Configuration:
//
// Config can be filled in code or loaded with LoadConfig from a YAML, JSON
// or TOML file, with LOGSINK_* environment variables taking precedence.
//
// FX Module Integration:
//
//	app := fx.New(
//		fx.Supply(cfg),
//		logger.FXModule,
//		metrics.FXModule,
//	)
//	app.Run()
//
// Errors:
//
// NewLoggerClient returns ErrConfiguration for invalid options or NODE_ENV
// and ErrIO when the log directory cannot be created. Nothing else is ever
// returned to callers: a sink that fails to write reports the failure to the
// observer attached with WithObserver and the other sinks are unaffected.
//
// Thread Safety:
//
// All methods on LoggerClient are safe for concurrent use by multiple
// goroutines.
package logger
