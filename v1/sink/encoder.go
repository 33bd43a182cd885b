package sink

import (
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/Aleph-Alpha/logsink/v1/severity"
)

// ReadableTimeLayout is the timestamp layout of readable and console lines.
const ReadableTimeLayout = "2006-01-02 15:04:05"

var bufferPool = buffer.NewPool()

// newJSONEncoder writes one object per line:
// {"timestamp":...,"level":...,"message":...,<metadata>}.
func newJSONEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(jsonConfig())
}

func jsonConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    severity.EncodeLevel,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// metadataConfig renders only the fields, as a bare JSON object without a
// trailing newline.
func metadataConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		SkipLineEnding: true,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
	}
}

// readableEncoder renders
//
//	<timestamp>: [ <level> ] <message>.\t[ <JSON metadata> ]
//
// The embedded encoder accumulates context fields added through With, so
// they show up in the metadata object like per-call fields do.
type readableEncoder struct {
	zapcore.Encoder
	colored bool
}

func newReadableEncoder(colored bool) zapcore.Encoder {
	return &readableEncoder{
		Encoder: zapcore.NewJSONEncoder(metadataConfig()),
		colored: colored,
	}
}

func (e *readableEncoder) Clone() zapcore.Encoder {
	return &readableEncoder{
		Encoder: e.Encoder.Clone(),
		colored: e.colored,
	}
}

func (e *readableEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	meta, err := e.Encoder.EncodeEntry(zapcore.Entry{}, fields)
	if err != nil {
		return nil, err
	}
	defer meta.Free()

	line := bufferPool.Get()
	line.AppendString(ent.Time.Format(ReadableTimeLayout))
	line.AppendString(": [ ")
	line.AppendString(e.levelName(ent.Level))
	line.AppendString(" ] ")
	line.AppendString(ent.Message)
	line.AppendString(".\t[ ")
	_, _ = line.Write(meta.Bytes())
	line.AppendString(" ]")
	line.AppendString(zapcore.DefaultLineEnding)
	return line, nil
}

func (e *readableEncoder) levelName(z zapcore.Level) string {
	level := severity.FromZap(z)
	if !e.colored {
		return level.String()
	}
	return colorize(level, level.String())
}
