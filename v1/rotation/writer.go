package rotation

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Aleph-Alpha/logsink/v1/observability"
)

// DefaultMaxSizeMB caps a single day's file. lumberjack moves an oversized
// file aside with a timestamp suffix and keeps appending to a fresh one; the
// moved files keep their day and are pruned with it.
const DefaultMaxSizeMB = 100

// Writer appends to the file named by a Policy for the current day. When the
// calendar day changes it switches to a new file and deletes files of the
// same policy, including size-rotated backups, that are past their retention
// window.
//
// Writes are serialized, so each physical file is appended to as a single
// ordered stream. Observers are notified after the lock is released and may
// write through the same Writer. Writer implements zapcore.WriteSyncer.
type Writer struct {
	mu sync.Mutex

	dir      string
	policy   Policy
	name     string
	now      func() time.Time
	observer observability.Observer

	// day is the date of the file lumberjack points at, empty while closed.
	day string

	// file is reused for every day. lumberjack starts one background
	// goroutine per Logger that never exits.
	file *lumberjack.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) WriterOption {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// WithObserver reports rotations and pruning to obs.
func WithObserver(obs observability.Observer) WriterOption {
	return func(w *Writer) {
		w.observer = obs
	}
}

// WithName sets the name used as Resource in observed operations.
func WithName(name string) WriterOption {
	return func(w *Writer) {
		w.name = name
	}
}

// WithMaxSize overrides DefaultMaxSizeMB.
func WithMaxSize(megabytes int) WriterOption {
	return func(w *Writer) {
		if megabytes > 0 {
			w.file.MaxSize = megabytes
		}
	}
}

// NewWriter returns a Writer for policy inside dir. No file is opened until
// the first write.
func NewWriter(dir string, policy Policy, opts ...WriterOption) *Writer {
	w := &Writer{
		dir:    dir,
		policy: policy,
		name:   policy.Template,
		now:    time.Now,
		// MaxAge and MaxBackups stay zero: retention is enforced by prune,
		// and lumberjack's own cleanup only sees the current day's backups.
		file: &lumberjack.Logger{
			MaxSize:   DefaultMaxSizeMB,
			LocalTime: true,
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write appends p to the current day's file.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	now := w.now()
	var events []observability.OperationContext
	if day := now.Format(DateLayout); day != w.day {
		events = w.rotate(now, day)
	}
	n, err := w.file.Write(p)
	w.mu.Unlock()

	w.notify(events)
	return n, err
}

// Sync is a no-op: lumberjack writes straight to the file without buffering.
func (w *Writer) Sync() error {
	return nil
}

// Close closes the current file, if any. A later Write reopens it.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.day == "" {
		return nil
	}
	w.day = ""
	return w.file.Close()
}

// CurrentFile returns the path that a write at the current time goes to.
func (w *Writer) CurrentFile() string {
	return filepath.Join(w.dir, w.policy.FileName(w.now()))
}

// Policy returns the policy the writer enforces.
func (w *Writer) Policy() Policy {
	return w.policy
}

// rotate points lumberjack at the file for day and prunes expired files. It
// must be called with mu held; the returned events are for notify.
func (w *Writer) rotate(now time.Time, day string) []observability.OperationContext {
	var events []observability.OperationContext
	start := time.Now()
	if err := w.file.Close(); err != nil {
		events = append(events, w.event("rotate", w.file.Filename, time.Since(start), err, 0))
	}

	// lumberjack opens Filename lazily on the next Write.
	path := filepath.Join(w.dir, w.policy.FileName(now))
	w.file.Filename = path
	w.day = day
	events = append(events, w.event("rotate", path, time.Since(start), nil, 0))

	return w.prune(now, events)
}

// prune deletes expired files that belong to this writer's policy. Failures
// are reported and otherwise ignored; they never block logging.
func (w *Writer) prune(now time.Time, events []observability.OperationContext) []observability.OperationContext {
	start := time.Now()
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return append(events, w.event("prune", w.dir, time.Since(start), err, 0))
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		date, ok := w.policy.DateOf(entry.Name(), now.Location())
		if !ok || !w.policy.Expired(date, now) {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}
		err := os.Remove(path)
		if os.IsNotExist(err) {
			// Another writer sharing the directory got there first.
			continue
		}
		events = append(events, w.event("prune", path, time.Since(start), err, size))
	}
	return events
}

func (w *Writer) event(operation, path string, duration time.Duration, err error, size int64) observability.OperationContext {
	return observability.OperationContext{
		Component:   "rotation",
		Operation:   operation,
		Resource:    w.name,
		SubResource: path,
		Duration:    duration,
		Error:       err,
		Size:        size,
	}
}

func (w *Writer) notify(events []observability.OperationContext) {
	if w.observer == nil {
		return
	}
	for _, ev := range events {
		w.observer.ObserveOperation(ev)
	}
}
