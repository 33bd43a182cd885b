package logger

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Defaults applied by ResolveSettings when an option is left empty.
const (
	DefaultLogDirectory = "logs/"
	DefaultFileFormat   = "readable"
)

// EnvPrefix is the prefix of environment variables that override values
// loaded with LoadConfig, e.g. LOGSINK_LEVEL or LOGSINK_LOG_TO_CONSOLE.
const EnvPrefix = "LOGSINK"

// Config defines the options of a logger. Every field is optional; empty
// values are filled in by ResolveSettings from the resolved environment or
// the package defaults.
type Config struct {
	// Level is the minimum severity of the primary and console sinks:
	// error, warn, info, http, verbose, debug or silly.
	// Default: LOG_LEVEL from the environment, else "info"
	Level string `yaml:"level" mapstructure:"level"`

	// FileNamePrefix replaces the default "<level>_<date>" file names with
	// "<prefix>_<level>.<date>".
	FileNamePrefix string `yaml:"file_name_prefix" mapstructure:"file_name_prefix"`

	// LogToConsole adds a colorized console sink at Level.
	// Default: false
	LogToConsole bool `yaml:"log_to_console" mapstructure:"log_to_console"`

	// LogDirectory receives every log file. It is created if missing.
	// Default: "logs/"
	LogDirectory string `yaml:"log_directory" mapstructure:"log_directory"`

	// LogRetentionDays is how many days rotated files are kept. nil means
	// unset; zero and negative values are rejected.
	// Default: LOG_RETENTION_DAYS from the environment, else 14
	LogRetentionDays *int `yaml:"log_retention_days" mapstructure:"log_retention_days"`

	// FileFormat selects the file sinks: "readable", "json" or "both".
	// Default: "readable"
	FileFormat string `yaml:"file_format" mapstructure:"file_format"`

	// Silent starts every sink muted. ToggleMuted flips it at runtime.
	// Default: false
	Silent bool `yaml:"silent" mapstructure:"silent"`
}

// RetentionDays returns a pointer to days for Config.LogRetentionDays.
func RetentionDays(days int) *int {
	return &days
}

// LoadConfig reads a Config from a YAML, JSON or TOML file. Environment
// variables prefixed with EnvPrefix take precedence over the file.
//
// Example:
//
//	cfg, err := logger.LoadConfig("conf/logging.yaml")
//	if err != nil {
//	    return err
//	}
//	log, err := logger.NewLoggerClient(cfg)
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key must be known to viper so that AutomaticEnv can override keys
	// missing from the file. Retention is bound instead of defaulted so that
	// an absent value stays nil.
	v.SetDefault("level", "")
	v.SetDefault("file_name_prefix", "")
	v.SetDefault("log_to_console", false)
	v.SetDefault("log_directory", DefaultLogDirectory)
	if err := v.BindEnv("log_retention_days"); err != nil {
		return Config{}, fmt.Errorf("%w: failed to bind log_retention_days: %w", ErrConfiguration, err)
	}
	v.SetDefault("file_format", DefaultFileFormat)
	v.SetDefault("silent", false)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%w: failed to read config file %s: %w", ErrConfiguration, path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: failed to unmarshal config: %w", ErrConfiguration, err)
	}
	return cfg, nil
}
