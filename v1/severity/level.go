package severity

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Level is one of the seven npm-style severities, ordered from most severe
// (Error) to least severe (Silly). The zero value is not a valid level and is
// used by callers to mean "not set".
type Level int8

const (
	Error Level = iota + 1
	Warn
	Info
	HTTP
	Verbose
	Debug
	Silly
)

var names = [...]string{
	Error:   "error",
	Warn:    "warn",
	Info:    "info",
	HTTP:    "http",
	Verbose: "verbose",
	Debug:   "debug",
	Silly:   "silly",
}

// Levels returns every valid level, most severe first.
func Levels() []Level {
	return []Level{Error, Warn, Info, HTTP, Verbose, Debug, Silly}
}

// Parse converts a level name into a Level. Matching is case-sensitive.
func Parse(s string) (Level, error) {
	for _, l := range Levels() {
		if names[l] == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("severity: unknown level %q", s)
}

// Valid reports whether l is one of the seven defined levels.
func (l Level) Valid() bool {
	return l >= Error && l <= Silly
}

func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", int8(l))
	}
	return names[l]
}

// Admits reports whether an event at level l passes a sink whose floor is
// floor, i.e. l is equal to or more severe than floor.
func (l Level) Admits(floor Level) bool {
	return l.Valid() && floor.Valid() && l <= floor
}

// ZapLevel maps l onto zap's level scale: error=2 down to silly=-4, so that
// zap's built-in Error, Warn and Info line up with ours.
func (l Level) ZapLevel() zapcore.Level {
	return zapcore.Level(3 - int8(l))
}

// FromZap is the inverse of ZapLevel. Levels above error (dpanic, panic,
// fatal) collapse onto Error and anything below silly onto Silly.
func FromZap(z zapcore.Level) Level {
	switch {
	case z >= zapcore.ErrorLevel:
		return Error
	case z <= Silly.ZapLevel():
		return Silly
	default:
		return Level(3 - int8(z))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("severity: cannot marshal invalid level %d", int8(l))
	}
	return []byte(names[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// EncodeLevel is a zapcore.LevelEncoder that writes the lowercase severity
// name instead of zap's own level names.
func EncodeLevel(z zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(FromZap(z).String())
}
