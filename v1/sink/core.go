package sink

import (
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/Aleph-Alpha/logsink/v1/observability"
	"github.com/Aleph-Alpha/logsink/v1/severity"
)

// sinkCore wraps the zap core of one sink so that a failed write is reported
// to the observer and swallowed. Other sinks in the same tee still receive
// the event, and the logging call never sees the error.
type sinkCore struct {
	zapcore.Core
	sink *Sink
}

func (c *sinkCore) With(fields []zapcore.Field) zapcore.Core {
	return &sinkCore{
		Core: c.Core.With(fields),
		sink: c.sink,
	}
}

func (c *sinkCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *sinkCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	start := time.Now()
	if err := c.Core.Write(ent, fields); err != nil {
		c.sink.observeOperation("write", string(c.sink.Kind), time.Since(start), err, map[string]interface{}{
			"level":   severity.FromZap(ent.Level).String(),
			"message": ent.Message,
		})
	}
	return nil
}

// observeOperation notifies the observer about an operation if one is configured.
//
// Notes:
//   - resource: the sink name
//   - subResource: the sink kind
func (s *Sink) observeOperation(operation, subResource string, duration time.Duration, err error, metadata map[string]interface{}) {
	if s == nil || s.observer == nil {
		return
	}

	s.observer.ObserveOperation(observability.OperationContext{
		Component:   "sink",
		Operation:   operation,
		Resource:    s.Name(),
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Metadata:    metadata,
	})
}
