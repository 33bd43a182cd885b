package logger

import (
	"fmt"

	"github.com/Aleph-Alpha/logsink/v1/environment"
	"github.com/Aleph-Alpha/logsink/v1/severity"
	"github.com/Aleph-Alpha/logsink/v1/sink"
)

// ResolveSettings fills the gaps in cfg from env and the package defaults and
// validates the result. It has no side effects.
//
// Explicit options are strict: an unknown level or file format, or a
// retention below one day, is a configuration error.
func ResolveSettings(cfg Config, env environment.Resolved) (sink.Settings, error) {
	floor := env.DefaultSeverity
	if !floor.Valid() {
		floor = environment.DefaultSeverity
	}
	if cfg.Level != "" {
		lvl, err := severity.Parse(cfg.Level)
		if err != nil {
			return sink.Settings{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		floor = lvl
	}

	retention := env.DefaultRetentionDays
	if retention < 1 {
		retention = environment.DefaultRetentionDays
	}
	if cfg.LogRetentionDays != nil {
		if *cfg.LogRetentionDays < 1 {
			return sink.Settings{}, fmt.Errorf("%w: log retention must be at least 1 day, got %d",
				ErrConfiguration, *cfg.LogRetentionDays)
		}
		retention = *cfg.LogRetentionDays
	}

	rawFormat := cfg.FileFormat
	if rawFormat == "" {
		rawFormat = DefaultFileFormat
	}
	format, err := sink.ParseFormat(rawFormat)
	if err != nil {
		return sink.Settings{}, err
	}

	dir := cfg.LogDirectory
	if dir == "" {
		dir = DefaultLogDirectory
	}

	return sink.Settings{
		Floor:          floor,
		Format:         format,
		FileNamePrefix: cfg.FileNamePrefix,
		LogToConsole:   cfg.LogToConsole,
		Directory:      dir,
		RetentionDays:  retention,
		Silent:         cfg.Silent,
	}, nil
}
