package logerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsHelpers(t *testing.T) {
	cfgErr := fmt.Errorf("%w: unknown level %q", ErrConfiguration, "loud")
	ioErr := fmt.Errorf("%w: create log directory: %w", ErrIO, errors.New("permission denied"))

	if !IsConfigurationError(cfgErr) || IsIOError(cfgErr) {
		t.Fatalf("misclassified %v", cfgErr)
	}
	if !IsIOError(ioErr) || IsConfigurationError(ioErr) {
		t.Fatalf("misclassified %v", ioErr)
	}
	if IsConfigurationError(nil) || IsIOError(nil) {
		t.Fatalf("nil must not match")
	}
}
