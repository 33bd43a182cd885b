package sink

import (
	"fmt"

	"github.com/Aleph-Alpha/logsink/v1/logerr"
	"github.com/Aleph-Alpha/logsink/v1/severity"
)

// Format selects which file sinks exist.
type Format string

const (
	FormatReadable Format = "readable"
	FormatJSON     Format = "json"
	FormatBoth     Format = "both"
)

// ParseFormat validates s against the three known formats.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if _, err := f.fileKinds(); err != nil {
		return "", err
	}
	return f, nil
}

// fileKinds returns the file sink kinds implied by f, JSON first.
func (f Format) fileKinds() ([]Kind, error) {
	switch f {
	case FormatJSON:
		return []Kind{KindJSONFile}, nil
	case FormatReadable:
		return []Kind{KindReadableFile}, nil
	case FormatBoth:
		return []Kind{KindJSONFile, KindReadableFile}, nil
	default:
		return nil, fmt.Errorf("%w: unknown file format %q, must be one of readable, json, both",
			logerr.ErrConfiguration, string(f))
	}
}

// Settings is the fully resolved input of Build. Every field is set; there
// are no fallbacks left to apply.
type Settings struct {
	// Floor is the minimum severity of the primary and console sinks.
	Floor severity.Level

	// Format decides which file sinks are built.
	Format Format

	// FileNamePrefix, when set, replaces the date-first naming scheme.
	FileNamePrefix string

	// LogToConsole adds a console sink at Floor.
	LogToConsole bool

	// Directory receives every file sink. It is created if missing.
	Directory string

	// RetentionDays is the rotation policy's retention window; must be >= 1.
	RetentionDays int

	// Silent is the initial mute state of every sink.
	Silent bool
}

func (s Settings) validate() ([]Kind, error) {
	if !s.Floor.Valid() {
		return nil, fmt.Errorf("%w: invalid severity floor %s", logerr.ErrConfiguration, s.Floor)
	}
	if s.RetentionDays <= 0 {
		return nil, fmt.Errorf("%w: retention must be at least 1 day, got %d",
			logerr.ErrConfiguration, s.RetentionDays)
	}
	if s.Directory == "" {
		return nil, fmt.Errorf("%w: log directory must not be empty", logerr.ErrConfiguration)
	}
	return s.Format.fileKinds()
}
