package sink

import (
	"io"
	"sync/atomic"

	"go.uber.org/zap/zapcore"

	"github.com/Aleph-Alpha/logsink/v1/observability"
	"github.com/Aleph-Alpha/logsink/v1/rotation"
	"github.com/Aleph-Alpha/logsink/v1/severity"
)

// Kind is the type of destination a sink writes to.
type Kind string

const (
	KindJSONFile     Kind = "json-file"
	KindReadableFile Kind = "readable-file"
	KindConsole      Kind = "console"
)

// Purpose distinguishes the primary sinks from the dedicated error stream.
type Purpose string

const (
	PurposePrimary Purpose = "primary"
	PurposeError   Purpose = "error"
)

// Sink is a single log destination bound to a severity floor. File sinks
// carry a rotation policy; console sinks do not.
//
// A Sink is owned by the logger that built it and is safe for concurrent use.
type Sink struct {
	Kind    Kind
	Purpose Purpose
	Floor   severity.Level

	// Policy is nil for console sinks.
	Policy *rotation.Policy

	muted    atomic.Bool
	encoder  zapcore.Encoder
	out      zapcore.WriteSyncer
	closer   io.Closer
	observer observability.Observer
}

// Name identifies the sink in observer events and metrics, e.g.
// "json-file:warn_%DATE%.log" or "console".
func (s *Sink) Name() string {
	if s.Policy == nil {
		return string(s.Kind)
	}
	return string(s.Kind) + ":" + s.Policy.Template
}

// Admits reports whether an event at level passes this sink's floor,
// ignoring the mute flag.
func (s *Sink) Admits(level severity.Level) bool {
	return level.Admits(s.Floor)
}

// Enabled implements zapcore.LevelEnabler. A muted sink enables nothing.
func (s *Sink) Enabled(z zapcore.Level) bool {
	return !s.muted.Load() && s.Admits(severity.FromZap(z))
}

// Muted reports whether the sink currently drops every event.
func (s *Sink) Muted() bool {
	return s.muted.Load()
}

// SetMuted sets the mute flag.
func (s *Sink) SetMuted(muted bool) {
	s.muted.Store(muted)
}

// ToggleMuted flips the mute flag and returns the new value.
func (s *Sink) ToggleMuted() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Core returns the zap core that encodes and writes events for this sink.
func (s *Sink) Core() zapcore.Core {
	return &sinkCore{
		Core: zapcore.NewCore(s.encoder, s.out, s),
		sink: s,
	}
}

// Sync flushes the underlying writer.
func (s *Sink) Sync() error {
	err := s.out.Sync()
	if s.Kind == KindConsole {
		// Syncing a terminal or pipe returns EINVAL on most platforms.
		return nil
	}
	return err
}

// Close releases the underlying file, if any.
func (s *Sink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
