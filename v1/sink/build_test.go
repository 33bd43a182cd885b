package sink

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Aleph-Alpha/logsink/v1/logerr"
	"github.com/Aleph-Alpha/logsink/v1/observability"
	"github.com/Aleph-Alpha/logsink/v1/severity"
)

var fixedNow = time.Date(2024, time.April, 15, 9, 30, 0, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

// TestObserver is a mock observer for testing.
type TestObserver struct {
	mu         sync.Mutex
	operations []observability.OperationContext
}

func (t *TestObserver) ObserveOperation(ctx observability.OperationContext) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.operations = append(t.operations, ctx)
}

func (t *TestObserver) Operations(operation string) []observability.OperationContext {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []observability.OperationContext
	for _, op := range t.operations {
		if op.Operation == operation {
			out = append(out, op)
		}
	}
	return out
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Sync() error { return nil }

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func settings(dir string, format Format, floor severity.Level) Settings {
	return Settings{
		Floor:         floor,
		Format:        format,
		Directory:     dir,
		RetentionDays: 14,
	}
}

type shape struct {
	Kind    Kind
	Purpose Purpose
	Floor   severity.Level
}

func shapes(sinks []*Sink) []shape {
	out := make([]shape, 0, len(sinks))
	for _, s := range sinks {
		out = append(out, shape{s.Kind, s.Purpose, s.Floor})
	}
	return out
}

func TestBuildBranchTable(t *testing.T) {
	cases := []struct {
		format Format
		floor  severity.Level
		want   []shape
	}{
		{FormatJSON, severity.Info, []shape{
			{KindJSONFile, PurposePrimary, severity.Info},
			{KindJSONFile, PurposeError, severity.Error},
		}},
		{FormatReadable, severity.Debug, []shape{
			{KindReadableFile, PurposePrimary, severity.Debug},
			{KindReadableFile, PurposeError, severity.Error},
		}},
		{FormatBoth, severity.Silly, []shape{
			{KindJSONFile, PurposePrimary, severity.Silly},
			{KindReadableFile, PurposePrimary, severity.Silly},
			{KindJSONFile, PurposeError, severity.Error},
			{KindReadableFile, PurposeError, severity.Error},
		}},
		{FormatJSON, severity.Error, []shape{
			{KindJSONFile, PurposePrimary, severity.Error},
		}},
		{FormatReadable, severity.Error, []shape{
			{KindReadableFile, PurposePrimary, severity.Error},
		}},
		{FormatBoth, severity.Error, []shape{
			{KindJSONFile, PurposePrimary, severity.Error},
			{KindReadableFile, PurposePrimary, severity.Error},
		}},
	}

	for _, tc := range cases {
		t.Run(string(tc.format)+"@"+tc.floor.String(), func(t *testing.T) {
			sinks, err := Build(settings(t.TempDir(), tc.format, tc.floor), WithClock(fixedClock))
			require.NoError(t, err)
			defer CloseAll(sinks)
			assert.Equal(t, tc.want, shapes(sinks))
		})
	}
}

func TestBuildErrorSinkForEveryNonErrorFloor(t *testing.T) {
	for _, floor := range severity.Levels() {
		sinks, err := Build(settings(t.TempDir(), FormatBoth, floor))
		require.NoError(t, err)

		var errorSinks int
		for _, s := range sinks {
			if s.Purpose == PurposeError {
				errorSinks++
				assert.Equal(t, severity.Error, s.Floor)
			}
		}
		if floor == severity.Error {
			assert.Zero(t, errorSinks, "no duplicate error sink at floor error")
		} else {
			assert.Equal(t, 2, errorSinks, "floor %s", floor)
		}
		require.NoError(t, CloseAll(sinks))
	}
}

func TestBuildBothFormatsWithConsoleAtWarn(t *testing.T) {
	s := settings(t.TempDir(), FormatBoth, severity.Warn)
	s.LogToConsole = true

	sinks, err := Build(s, WithConsoleOutput(&syncBuffer{}))
	require.NoError(t, err)
	defer CloseAll(sinks)

	assert.Equal(t, []shape{
		{KindJSONFile, PurposePrimary, severity.Warn},
		{KindReadableFile, PurposePrimary, severity.Warn},
		{KindJSONFile, PurposeError, severity.Error},
		{KindReadableFile, PurposeError, severity.Error},
		{KindConsole, PurposePrimary, severity.Warn},
	}, shapes(sinks))

	var admitting []Kind
	for _, sk := range sinks {
		if sk.Admits(severity.Warn) {
			admitting = append(admitting, sk.Kind)
		}
	}
	assert.Equal(t, []Kind{KindJSONFile, KindReadableFile, KindConsole}, admitting)

	console := sinks[4]
	assert.Nil(t, console.Policy)
	assert.Equal(t, "console", console.Name())
	for _, fs := range sinks[:4] {
		require.NotNil(t, fs.Policy)
		assert.Equal(t, 14, fs.Policy.MaxRetentionDays)
	}
}

func TestBuildRejectsInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]Settings{
		"unknown format": settings(dir, Format("xml"), severity.Info),
		"empty format":   settings(dir, Format(""), severity.Info),
		"zero retention": {Floor: severity.Info, Format: FormatJSON, Directory: dir, RetentionDays: 0},
		"negative days":  {Floor: severity.Info, Format: FormatJSON, Directory: dir, RetentionDays: -2},
		"invalid floor":  {Floor: severity.Level(0), Format: FormatJSON, Directory: dir, RetentionDays: 1},
		"no directory":   {Floor: severity.Info, Format: FormatJSON, RetentionDays: 1},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			sinks, err := Build(s)
			assert.Nil(t, sinks)
			assert.True(t, logerr.IsConfigurationError(err), "got %v", err)
		})
	}
}

func TestBuildCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	sinks, err := Build(settings(dir, FormatJSON, severity.Info))
	require.NoError(t, err)
	defer CloseAll(sinks)
	assert.DirExists(t, dir)

	// Building again over the existing directory is fine.
	again, err := Build(settings(dir, FormatJSON, severity.Info))
	require.NoError(t, err)
	require.NoError(t, CloseAll(again))
}

func TestBuildDirectoryFailureIsAllOrNothing(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := settings(filepath.Join(blocker, "logs"), FormatBoth, severity.Info)
	s.LogToConsole = true
	sinks, err := Build(s)
	assert.Nil(t, sinks)
	require.Error(t, err)
	assert.True(t, logerr.IsIOError(err))
	assert.False(t, logerr.IsConfigurationError(err))
}

func TestBuildSilentMutesEverySink(t *testing.T) {
	s := settings(t.TempDir(), FormatBoth, severity.Info)
	s.LogToConsole = true
	s.Silent = true

	sinks, err := Build(s, WithConsoleOutput(&syncBuffer{}))
	require.NoError(t, err)
	defer CloseAll(sinks)

	require.Len(t, sinks, 5)
	for _, sk := range sinks {
		assert.True(t, sk.Muted(), sk.Name())
		assert.False(t, sk.Enabled(zapcore.ErrorLevel))
	}
}

func TestFileNameTemplate(t *testing.T) {
	assert.Equal(t, "info_%DATE%.log", FileNameTemplate(KindJSONFile, "", severity.Info))
	assert.Equal(t, "info_%DATE%_readable.log", FileNameTemplate(KindReadableFile, "", severity.Info))
	assert.Equal(t, "api_warn.%DATE%.log", FileNameTemplate(KindJSONFile, "api", severity.Warn))
	assert.Equal(t, "api_warn.%DATE%_readable.log", FileNameTemplate(KindReadableFile, "api", severity.Warn))
	assert.Equal(t, "api_error.%DATE%.log", FileNameTemplate(KindJSONFile, "api", severity.Error))
}

func TestToggleMuted(t *testing.T) {
	s := &Sink{Kind: KindConsole, Floor: severity.Info}
	assert.True(t, s.ToggleMuted())
	assert.True(t, s.Muted())
	assert.False(t, s.ToggleMuted())
	assert.False(t, s.Muted())
}

func TestJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sinks, err := Build(settings(dir, FormatJSON, severity.Info), WithClock(fixedClock))
	require.NoError(t, err)
	defer CloseAll(sinks)

	log := zap.New(Tee(sinks))
	log.Warn("disk low", zap.Int("free_mb", 12), zap.String("volume", "/data"), zap.Bool("critical", false))

	data, err := os.ReadFile(filepath.Join(dir, "info_2024-04-15.log"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "disk low", record["message"])
	assert.Equal(t, "warn", record["level"])
	assert.Equal(t, float64(12), record["free_mb"])
	assert.Equal(t, "/data", record["volume"])
	assert.Equal(t, false, record["critical"])
	assert.Contains(t, record, "timestamp")

	// Not an error: the error sink stays empty.
	_, err = os.Stat(filepath.Join(dir, "error_2024-04-15.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestReadableFormat(t *testing.T) {
	buf := &syncBuffer{}
	s := settings(t.TempDir(), FormatJSON, severity.Error)
	s.LogToConsole = true
	sinks, err := Build(s, WithConsoleOutput(buf))
	require.NoError(t, err)
	defer CloseAll(sinks)

	console := sinks[len(sinks)-1]
	console.encoder = newReadableEncoder(false)

	log := zap.New(console.Core())
	log.Error("payment failed", zap.String("order", "A-17"))
	log.Error("no metadata")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	ts, rest, ok := strings.Cut(lines[0], ": ")
	require.True(t, ok)
	_, err = time.ParseInLocation(ReadableTimeLayout, ts, time.Local)
	require.NoError(t, err, "timestamp %q", ts)
	assert.Equal(t, "[ error ] payment failed.\t[ {\"order\":\"A-17\"} ]", rest)
	assert.True(t, strings.HasSuffix(lines[1], "[ error ] no metadata.\t[ {} ]"))
}

func TestConsoleColorsLevel(t *testing.T) {
	buf := &syncBuffer{}
	s := settings(t.TempDir(), FormatReadable, severity.Silly)
	s.LogToConsole = true
	sinks, err := Build(s, WithConsoleOutput(buf))
	require.NoError(t, err)
	defer CloseAll(sinks)

	log := zap.New(sinks[len(sinks)-1].Core())
	log.Warn("careful")

	assert.Contains(t, buf.String(), "[ \033[33mwarn\033[39m ] careful.")
}

func TestReadableWithContextFields(t *testing.T) {
	buf := &syncBuffer{}
	s := settings(t.TempDir(), FormatReadable, severity.Info)
	s.LogToConsole = true
	sinks, err := Build(s, WithConsoleOutput(buf))
	require.NoError(t, err)
	defer CloseAll(sinks)

	console := sinks[len(sinks)-1]
	console.encoder = newReadableEncoder(false)
	log := zap.New(console.Core()).With(zap.String("service", "billing"))
	log.Info("started", zap.Int("port", 8080))

	assert.Contains(t, buf.String(), "[ info ] started.\t[ {\"service\":\"billing\",\"port\":8080} ]")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (failingWriter) Sync() error               { return nil }

func TestWriteFailureIsIsolatedAndObserved(t *testing.T) {
	obs := &TestObserver{}
	buf := &syncBuffer{}
	s := settings(t.TempDir(), FormatJSON, severity.Info)
	s.LogToConsole = true

	sinks, err := Build(s, WithConsoleOutput(buf), WithObserver(obs))
	require.NoError(t, err)
	defer CloseAll(sinks)

	// Break the primary JSON sink.
	sinks[0].out = failingWriter{}

	log := zap.New(Tee(sinks), zap.ErrorOutput(zapcore.AddSync(&syncBuffer{})))
	log.Info("still delivered")

	assert.Contains(t, buf.String(), "still delivered")

	writes := obs.Operations("write")
	require.Len(t, writes, 1)
	assert.Equal(t, "sink", writes[0].Component)
	assert.Equal(t, "json-file:info_%DATE%.log", writes[0].Resource)
	assert.EqualError(t, writes[0].Error, "disk full")
	assert.Equal(t, "info", writes[0].Metadata["level"])
}
