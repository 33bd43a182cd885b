package logger

import (
	"context"

	"github.com/Aleph-Alpha/logsink/v1/severity"
)

// Logger is the logging contract implemented by *LoggerClient.
//
// Every call is fire-and-forget: delivery failures are never returned to the
// caller. Attach an observer to the client to see them.
type Logger interface {
	// Log writes msg at level to every sink whose floor admits it.
	Log(level severity.Level, msg string, err error, fields ...map[string]interface{})

	Error(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	HTTP(msg string, err error, fields ...map[string]interface{})
	Verbose(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Silly(msg string, err error, fields ...map[string]interface{})

	// Context-aware variants add trace_id and span_id when ctx carries an
	// OpenTelemetry span.
	LogWithContext(ctx context.Context, level severity.Level, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// Print logs at the default dispatch level set with SetLevel.
	Print(msg string, err error, fields ...map[string]interface{})

	// SetLevel changes the default dispatch level. Sink floors are unchanged.
	SetLevel(level severity.Level)

	// ToggleMuted mutes or unmutes every sink at once and returns the new
	// state.
	ToggleMuted() bool
}
