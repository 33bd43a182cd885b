package logger

import "github.com/Aleph-Alpha/logsink/v1/logerr"

// Errors returned by NewLoggerClient, ResolveSettings and LoadConfig.
var (
	// ErrConfiguration marks invalid options or a missing/invalid NODE_ENV.
	ErrConfiguration = logerr.ErrConfiguration

	// ErrIO marks a log directory that could not be created.
	ErrIO = logerr.ErrIO
)

// IsConfigurationError checks if the error is a configuration error.
func IsConfigurationError(err error) bool {
	return logerr.IsConfigurationError(err)
}

// IsIOError checks if the error is an io error.
func IsIOError(err error) bool {
	return logerr.IsIOError(err)
}
