package logger

import (
	"io"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Aleph-Alpha/logsink/v1/environment"
	"github.com/Aleph-Alpha/logsink/v1/observability"
	"github.com/Aleph-Alpha/logsink/v1/rotation"
	"github.com/Aleph-Alpha/logsink/v1/severity"
	"github.com/Aleph-Alpha/logsink/v1/sink"
)

// LoggerClient is a wrapper around Uber's Zap logger that fans every entry
// out to the sinks built from its Config.
//
// The sink set is fixed at construction. Only the mute state of the sinks and
// the default dispatch level change afterwards.
type LoggerClient struct {
	// Zap is the underlying zap.Logger instance. Entries logged through it
	// directly reach the same sinks as the wrapper methods.
	Zap *zap.Logger

	mu       sync.Mutex
	sinks    []*sink.Sink
	settings sink.Settings
	env      environment.Resolved

	// level is used by Print, Write and StdLogger.
	level zap.AtomicLevel

	observer *observerRelay
}

// Option customizes NewLoggerClient.
type Option func(*options)

type options struct {
	env       *environment.Resolved
	buildOpts []sink.Option
}

// WithEnvironment uses env instead of reading the process environment.
func WithEnvironment(env environment.Resolved) Option {
	return func(o *options) {
		o.env = &env
	}
}

// WithConsoleOutput sends the console sink to ws instead of stdout.
func WithConsoleOutput(ws zapcore.WriteSyncer) Option {
	return func(o *options) {
		o.buildOpts = append(o.buildOpts, sink.WithConsoleOutput(ws))
	}
}

// WithClock sets the clock that decides which dated file receives a write.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.buildOpts = append(o.buildOpts, sink.WithClock(now))
	}
}

// WithMaxFileSize caps a single log file in megabytes before lumberjack
// splits it.
func WithMaxFileSize(megabytes int) Option {
	return func(o *options) {
		o.buildOpts = append(o.buildOpts, sink.WithMaxFileSize(megabytes))
	}
}

// NewLoggerClient resolves cfg against the environment and builds the sinks.
//
// The environment is read once per process (NODE_ENV is required) unless
// WithEnvironment is given. The log directory is created if missing; that is
// the only I/O done before the first entry.
//
// Errors:
//   - ErrConfiguration: invalid option or NODE_ENV
//   - ErrIO: the log directory could not be created
//
// Example:
//
//	log, err := logger.NewLoggerClient(logger.Config{
//	    Level:        "warn",
//	    FileFormat:   "both",
//	    LogToConsole: true,
//	})
//	if err != nil {
//	    return err
//	}
//	defer log.Close()
//	log.Warn("disk low", nil, map[string]interface{}{"free_mb": 12})
func NewLoggerClient(cfg Config, opts ...Option) (*LoggerClient, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var env environment.Resolved
	if o.env != nil {
		env = *o.env
	} else {
		resolved, err := environment.Resolve()
		if err != nil {
			return nil, err
		}
		env = resolved
	}

	settings, err := ResolveSettings(cfg, env)
	if err != nil {
		return nil, err
	}

	relay := &observerRelay{}
	sinks, err := sink.Build(settings, append(o.buildOpts, sink.WithObserver(relay))...)
	if err != nil {
		return nil, err
	}

	return &LoggerClient{
		Zap:      zap.New(sink.Tee(sinks), zap.ErrorOutput(zapcore.AddSync(io.Discard))),
		sinks:    sinks,
		settings: settings,
		env:      env,
		level:    zap.NewAtomicLevelAt(settings.Floor.ZapLevel()),
		observer: relay,
	}, nil
}

// MustNewLoggerClient is like NewLoggerClient but panics on error.
func MustNewLoggerClient(cfg Config, opts ...Option) *LoggerClient {
	client, err := NewLoggerClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// WithObserver attaches an observer that receives rotation, pruning and
// write-failure events from every sink. Passing nil detaches it.
func (l *LoggerClient) WithObserver(observer observability.Observer) *LoggerClient {
	l.observer.set(observer)
	return l
}

// Settings returns the resolved settings the sinks were built from.
func (l *LoggerClient) Settings() sink.Settings {
	return l.settings
}

// Environment returns the environment defaults used at construction.
func (l *LoggerClient) Environment() environment.Resolved {
	return l.env
}

// SinkInfo describes one sink of a logger.
type SinkInfo struct {
	Name    string
	Kind    sink.Kind
	Purpose sink.Purpose
	Floor   severity.Level
	Policy  *rotation.Policy
	Muted   bool
}

// Sinks lists the sinks in build order.
func (l *LoggerClient) Sinks() []SinkInfo {
	infos := make([]SinkInfo, 0, len(l.sinks))
	for _, s := range l.sinks {
		info := SinkInfo{
			Name:    s.Name(),
			Kind:    s.Kind,
			Purpose: s.Purpose,
			Floor:   s.Floor,
			Muted:   s.Muted(),
		}
		if s.Policy != nil {
			p := *s.Policy
			info.Policy = &p
		}
		infos = append(infos, info)
	}
	return infos
}

// ToggleMuted mutes every sink if they are audible and unmutes them if they
// are muted. It returns the new state.
func (l *LoggerClient) ToggleMuted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	muted := !l.muted()
	for _, s := range l.sinks {
		s.SetMuted(muted)
	}
	return muted
}

// SetMuted sets the mute state of every sink.
func (l *LoggerClient) SetMuted(muted bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, s := range l.sinks {
		s.SetMuted(muted)
	}
}

// Muted reports whether the sinks are muted.
func (l *LoggerClient) Muted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.muted()
}

// muted must be called with mu held. Sinks always share one state.
func (l *LoggerClient) muted() bool {
	if len(l.sinks) == 0 {
		return false
	}
	return l.sinks[0].Muted()
}

// Sync flushes every sink.
func (l *LoggerClient) Sync() error {
	return sink.SyncAll(l.sinks)
}

// Close flushes and closes every file sink. Entries logged after Close
// reopen the current day's file.
func (l *LoggerClient) Close() error {
	return multierr.Append(l.Sync(), sink.CloseAll(l.sinks))
}

type observerRelay struct {
	mu       sync.RWMutex
	observer observability.Observer
}

func (r *observerRelay) set(observer observability.Observer) {
	r.mu.Lock()
	r.observer = observer
	r.mu.Unlock()
}

func (r *observerRelay) ObserveOperation(ctx observability.OperationContext) {
	r.mu.RLock()
	observer := r.observer
	r.mu.RUnlock()
	if observer != nil {
		observer.ObserveOperation(ctx)
	}
}
