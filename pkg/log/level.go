package log

import (
	"errors"
	"fmt"
	"strings"
)

// Level represents the severity of a log entry.
type Level int

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
	Fatal
)

// ErrInvalidLevel is returned when parsing an unknown level name.
var ErrInvalidLevel = errors.New("invalid log level")

// levelByName also accepts the "warning" alias.
var levelByName = map[string]Level{
	"TRACE":   Trace,
	"DEBUG":   Debug,
	"INFO":    Info,
	"WARN":    Warn,
	"WARNING": Warn,
	"ERROR":   Error,
	"FATAL":   Fatal,
}

// String returns the upper-case level name, or UNKNOWN.
func (l Level) String() string {
	switch l {
	case Trace:
		return "TRACE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name case-insensitively, ignoring surrounding spaces.
// Unknown names return Info together with ErrInvalidLevel.
func ParseLevel(s string) (Level, error) {
	if l, ok := levelByName[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return Info, ErrInvalidLevel
}

// UnmarshalText lets YAML and env decoders read level names.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return fmt.Errorf("%w: %q", err, text)
	}
	*l = parsed
	return nil
}

// MarshalText writes the level name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Enables reports whether a logger at level l emits entries at target.
func (l Level) Enables(target Level) bool {
	return target >= l
}
