package logger

import (
	"context"
	"log"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Aleph-Alpha/logsink/v1/severity"
)

// convertToZapFields converts error and additional field maps into Zap's structured logging fields.
// If multiple fields maps contain the same key, the later maps will override earlier ones.
func (l *LoggerClient) convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	var zapFields []zap.Field
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}

	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			zapFields = append(zapFields, zap.Any(key, value))
		}
	}
	return zapFields
}

// traceFields returns trace_id and span_id for the span carried by ctx, if any.
func traceFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	}
}

func (l *LoggerClient) write(level severity.Level, msg string, fields []zap.Field) {
	if !level.Valid() {
		return
	}
	if ce := l.Zap.Check(level.ZapLevel(), msg); ce != nil {
		ce.Write(fields...)
	}
}

// Log writes msg at level to every sink whose floor admits it. Entries with
// an invalid level are dropped.
//
// Example:
//
//	logger.Log(severity.HTTP, "GET /health", nil, map[string]interface{}{
//	    "status": 200,
//	})
func (l *LoggerClient) Log(level severity.Level, msg string, err error, fields ...map[string]interface{}) {
	l.write(level, msg, l.convertToZapFields(err, fields...))
}

// LogWithContext is like Log and adds trace_id and span_id when ctx carries
// an active span.
func (l *LoggerClient) LogWithContext(ctx context.Context, level severity.Level, msg string, err error, fields ...map[string]interface{}) {
	l.write(level, msg, append(l.convertToZapFields(err, fields...), traceFields(ctx)...))
}

// Error logs a message at error level. Error entries reach every sink,
// including the dedicated error files.
//
// Example:
//
//	err := database.Connect()
//	if err != nil {
//	    logger.Error("Failed to connect to database", err, map[string]interface{}{
//	        "retry_count": 3,
//	    })
//	}
func (l *LoggerClient) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Log(severity.Error, msg, err, fields...)
}

// Warn logs a message at warn level.
func (l *LoggerClient) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Log(severity.Warn, msg, err, fields...)
}

// Info logs a message at info level.
//
// Example:
//
//	logger.Info("User logged in successfully", nil, map[string]interface{}{
//	    "user_id": 12345,
//	})
func (l *LoggerClient) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Log(severity.Info, msg, err, fields...)
}

// HTTP logs a message at http level, typically one entry per request.
func (l *LoggerClient) HTTP(msg string, err error, fields ...map[string]interface{}) {
	l.Log(severity.HTTP, msg, err, fields...)
}

// Verbose logs a message at verbose level.
func (l *LoggerClient) Verbose(msg string, err error, fields ...map[string]interface{}) {
	l.Log(severity.Verbose, msg, err, fields...)
}

// Debug logs a message at debug level.
func (l *LoggerClient) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Log(severity.Debug, msg, err, fields...)
}

// Silly logs a message at silly level, the most verbose one.
func (l *LoggerClient) Silly(msg string, err error, fields ...map[string]interface{}) {
	l.Log(severity.Silly, msg, err, fields...)
}

// ErrorWithContext logs at error level with trace correlation.
func (l *LoggerClient) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.LogWithContext(ctx, severity.Error, msg, err, fields...)
}

// WarnWithContext logs at warn level with trace correlation.
func (l *LoggerClient) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.LogWithContext(ctx, severity.Warn, msg, err, fields...)
}

// InfoWithContext logs at info level with trace correlation.
func (l *LoggerClient) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.LogWithContext(ctx, severity.Info, msg, err, fields...)
}

// DebugWithContext logs at debug level with trace correlation.
func (l *LoggerClient) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.LogWithContext(ctx, severity.Debug, msg, err, fields...)
}

// SetLevel changes the default dispatch level used by Print, Write and
// StdLogger. It does not change which levels the sinks admit. Invalid levels
// are ignored.
func (l *LoggerClient) SetLevel(level severity.Level) {
	if !level.Valid() {
		return
	}
	l.level.SetLevel(level.ZapLevel())
}

// Level returns the default dispatch level.
func (l *LoggerClient) Level() severity.Level {
	return severity.FromZap(l.level.Level())
}

// Print logs msg at the default dispatch level.
func (l *LoggerClient) Print(msg string, err error, fields ...map[string]interface{}) {
	l.Log(l.Level(), msg, err, fields...)
}

// Write implements io.Writer. Each call becomes one entry at the default
// dispatch level with trailing newlines removed. It never fails.
func (l *LoggerClient) Write(p []byte) (int, error) {
	l.Print(strings.TrimRight(string(p), "\r\n"), nil)
	return len(p), nil
}

// StdLogger returns a standard library logger that writes through Write,
// for libraries that only accept a *log.Logger.
func (l *LoggerClient) StdLogger() *log.Logger {
	return log.New(l, "", 0)
}
