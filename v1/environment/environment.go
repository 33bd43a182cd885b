package environment

import (
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/Aleph-Alpha/logsink/v1/logerr"
	"github.com/Aleph-Alpha/logsink/v1/severity"
)

// Environment variables read by the resolver.
const (
	EnvRuntimeMode   = "NODE_ENV"
	EnvLogLevel      = "LOG_LEVEL"
	EnvRetentionDays = "LOG_RETENTION_DAYS"
)

// Fallbacks used when the optional variables are absent or malformed.
const (
	DefaultSeverity      = severity.Info
	DefaultRetentionDays = 14
)

// RuntimeMode is the deployment mode of the process.
type RuntimeMode string

const (
	Production  RuntimeMode = "production"
	Development RuntimeMode = "development"
	Test        RuntimeMode = "test"
)

// Valid reports whether m is one of the three recognized modes.
func (m RuntimeMode) Valid() bool {
	switch m {
	case Production, Development, Test:
		return true
	}
	return false
}

// Resolved is the immutable, validated view of the process environment.
// It is passed by value to everything that needs defaults.
type Resolved struct {
	RuntimeMode          RuntimeMode
	DefaultSeverity      severity.Level
	DefaultRetentionDays int
}

// Source supplies raw environment values. ok is false when the key is absent.
type Source interface {
	Lookup(key string) (value string, ok bool)
}

// MapSource is a Source backed by a plain map.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// ResolveFrom validates src and returns the resolved defaults. It is pure:
// the same snapshot always yields the same result.
//
// A missing or unrecognized runtime mode is a configuration error. Invalid
// optional values are not errors; they silently fall back to the defaults.
func ResolveFrom(src Source) (Resolved, error) {
	raw, ok := src.Lookup(EnvRuntimeMode)
	mode := RuntimeMode(raw)
	if !ok || !mode.Valid() {
		return Resolved{}, fmt.Errorf("%w: %s has incorrect value %q, must be one of production, development, test",
			logerr.ErrConfiguration, EnvRuntimeMode, raw)
	}

	return Resolved{
		RuntimeMode:          mode,
		DefaultSeverity:      resolveSeverity(src),
		DefaultRetentionDays: resolveRetentionDays(src),
	}, nil
}

func resolveSeverity(src Source) severity.Level {
	raw, ok := src.Lookup(EnvLogLevel)
	if !ok {
		return DefaultSeverity
	}
	lvl, err := severity.Parse(raw)
	if err != nil {
		return DefaultSeverity
	}
	return lvl
}

// resolveRetentionDays accepts any finite number of at least one day;
// fractions are truncated.
func resolveRetentionDays(src Source) int {
	raw, ok := src.Lookup(EnvRetentionDays)
	if !ok {
		return DefaultRetentionDays
	}
	days, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(days) || math.IsInf(days, 0) || days < 1 {
		return DefaultRetentionDays
	}
	return int(days)
}

var resolveOnce = sync.OnceValues(func() (Resolved, error) {
	return ResolveFrom(NewViperSource())
})

// Resolve reads the process environment on first call and returns the same
// result (including a failure) on every later call.
func Resolve() (Resolved, error) {
	return resolveOnce()
}

// MustResolve is like Resolve but panics on error. Use it at startup where a
// missing runtime mode should stop the process.
func MustResolve() Resolved {
	env, err := Resolve()
	if err != nil {
		panic(err)
	}
	return env
}
