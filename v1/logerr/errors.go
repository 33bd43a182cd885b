// Package logerr holds the error taxonomy shared by the logsink packages.
//
// Callers should match on the sentinels with errors.Is (or the Is helpers);
// the concrete messages carry the detail and are not stable.
package logerr

import "errors"

var (
	// ErrConfiguration is returned for invalid options or a missing/invalid
	// runtime mode. It is fatal for the caller and never recovered locally.
	ErrConfiguration = errors.New("logsink: configuration error")

	// ErrIO is returned when the log directory cannot be prepared during sink
	// construction. Write failures after construction are not surfaced to
	// callers; they go to the observer hook instead.
	ErrIO = errors.New("logsink: io error")
)

// IsConfigurationError checks if the error is a configuration error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsIOError checks if the error is an io error.
func IsIOError(err error) bool {
	return errors.Is(err, ErrIO)
}
