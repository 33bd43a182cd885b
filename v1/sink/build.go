package sink

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/Aleph-Alpha/logsink/v1/logerr"
	"github.com/Aleph-Alpha/logsink/v1/observability"
	"github.com/Aleph-Alpha/logsink/v1/rotation"
	"github.com/Aleph-Alpha/logsink/v1/severity"
)

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	console   zapcore.WriteSyncer
	observer  observability.Observer
	now       func() time.Time
	maxSizeMB int
}

// WithConsoleOutput redirects the console sink, which writes to stdout by
// default.
func WithConsoleOutput(ws zapcore.WriteSyncer) Option {
	return func(o *buildOptions) {
		o.console = ws
	}
}

// WithObserver reports write failures, rotations and pruning to obs.
func WithObserver(obs observability.Observer) Option {
	return func(o *buildOptions) {
		o.observer = obs
	}
}

// WithClock sets the clock used by file rotation.
func WithClock(now func() time.Time) Option {
	return func(o *buildOptions) {
		o.now = now
	}
}

// WithMaxFileSize caps a single day's file in megabytes.
func WithMaxFileSize(megabytes int) Option {
	return func(o *buildOptions) {
		o.maxSizeMB = megabytes
	}
}

// Build turns settings into the list of sinks, in this order: primary file
// sinks (JSON before readable), dedicated error file sinks, console.
//
// Error sinks are added in every implied format unless the floor is already
// error. The log directory is created before any sink exists; if that fails
// nothing is returned.
func Build(s Settings, opts ...Option) (sinks []*Sink, err error) {
	o := buildOptions{console: zapcore.Lock(os.Stdout)}
	for _, opt := range opts {
		opt(&o)
	}

	kinds, err := s.validate()
	if err != nil {
		return nil, err
	}

	if err := ensureDirectory(s.Directory); err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			err = multierr.Append(err, CloseAll(sinks))
			sinks = nil
		}
	}()

	for _, kind := range kinds {
		fs, err := newFileSink(s, o, kind, PurposePrimary, s.Floor)
		if err != nil {
			return sinks, err
		}
		sinks = append(sinks, fs)
	}

	if s.Floor != severity.Error {
		for _, kind := range kinds {
			fs, err := newFileSink(s, o, kind, PurposeError, severity.Error)
			if err != nil {
				return sinks, err
			}
			sinks = append(sinks, fs)
		}
	}

	if s.LogToConsole {
		sinks = append(sinks, newConsoleSink(s, o))
	}

	return sinks, nil
}

// ensureDirectory creates dir and its parents. Concurrent callers are fine:
// MkdirAll tolerates a directory that already exists.
func ensureDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create log directory %q: %w", logerr.ErrIO, dir, err)
	}
	return nil
}

func newFileSink(s Settings, o buildOptions, kind Kind, purpose Purpose, floor severity.Level) (*Sink, error) {
	policy, err := rotation.NewPolicy(FileNameTemplate(kind, s.FileNamePrefix, floor), s.RetentionDays)
	if err != nil {
		return nil, err
	}

	fs := &Sink{
		Kind:     kind,
		Purpose:  purpose,
		Floor:    floor,
		Policy:   &policy,
		observer: o.observer,
	}

	writerOpts := []rotation.WriterOption{
		rotation.WithName(fs.Name()),
		rotation.WithObserver(o.observer),
		rotation.WithClock(o.now),
		rotation.WithMaxSize(o.maxSizeMB),
	}
	w := rotation.NewWriter(s.Directory, policy, writerOpts...)
	fs.out = w
	fs.closer = w

	if kind == KindJSONFile {
		fs.encoder = newJSONEncoder()
	} else {
		fs.encoder = newReadableEncoder(false)
	}
	fs.SetMuted(s.Silent)
	return fs, nil
}

func newConsoleSink(s Settings, o buildOptions) *Sink {
	cs := &Sink{
		Kind:     KindConsole,
		Purpose:  PurposePrimary,
		Floor:    s.Floor,
		encoder:  newReadableEncoder(true),
		out:      o.console,
		observer: o.observer,
	}
	cs.SetMuted(s.Silent)
	return cs
}

// FileNameTemplate returns the rotation template of a file sink.
//
// Without a prefix the stem is "<level>_%DATE%"; with one it is
// "<prefix>_<level>.%DATE%". JSON files end in ".log" and readable files
// substitute "_readable.log" for that suffix.
func FileNameTemplate(kind Kind, prefix string, floor severity.Level) string {
	stem := floor.String() + "_" + rotation.DateToken
	if prefix != "" {
		stem = prefix + "_" + floor.String() + "." + rotation.DateToken
	}
	if kind == KindReadableFile {
		return stem + "_readable.log"
	}
	return stem + ".log"
}

// CloseAll closes every sink and combines the errors.
func CloseAll(sinks []*Sink) error {
	var err error
	for _, s := range sinks {
		err = multierr.Append(err, s.Close())
	}
	return err
}

// SyncAll flushes every sink and combines the errors.
func SyncAll(sinks []*Sink) error {
	var err error
	for _, s := range sinks {
		err = multierr.Append(err, s.Sync())
	}
	return err
}

// Tee combines the cores of sinks into one. Each sink receives an event
// independently of the others.
func Tee(sinks []*Sink) zapcore.Core {
	cores := make([]zapcore.Core, 0, len(sinks))
	for _, s := range sinks {
		cores = append(cores, s.Core())
	}
	return zapcore.NewTee(cores...)
}
