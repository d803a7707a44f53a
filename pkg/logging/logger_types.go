package logging

import (
	"io"
	"sync"
	"time"
)

// Level orders log severities; entries below a logger's level are
// dropped.
type Level int

const (
	// DebugLevel carries per-row and per-operation detail, normally off
	DebugLevel Level = iota
	// InfoLevel is the default: import results, graph mutations
	InfoLevel
	// WarnLevel marks recoverable problems, like rows that failed conversion
	WarnLevel
	// ErrorLevel marks failed imports and rejected operations
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel reads a level name, case-insensitively; unknown names
// fall back to INFO.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug":
		return DebugLevel
	case "INFO", "info":
		return InfoLevel
	case "WARN", "warn", "WARNING", "warning":
		return WarnLevel
	case "ERROR", "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Field is one key-value pair on a log entry. Constructors for the
// common keys (GraphID, NodeID, Rows, ...) live in logger_fields.go.
type Field struct {
	Key   string
	Value any
}

// Logger is the structured logging interface the importer, engine
// and commands share.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a child logger with the given fields pre-set
	With(fields ...Field) Logger
	SetLevel(level Level)
	GetLevel() Level
}

// JSONLogger implements Logger with one JSON object per line
type JSONLogger struct {
	writer io.Writer
	level  Level
	fields []Field
	mu     sync.Mutex
}

// LogEntry is the wire shape of one emitted line
type LogEntry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// NopLogger discards everything. Tests and the terminal UI use it to
// keep output clean.
type NopLogger struct{}

func (NopLogger) Debug(msg string, fields ...Field) {}
func (NopLogger) Info(msg string, fields ...Field)  {}
func (NopLogger) Warn(msg string, fields ...Field)  {}
func (NopLogger) Error(msg string, fields ...Field) {}
func (n NopLogger) With(fields ...Field) Logger     { return n }
func (NopLogger) SetLevel(level Level)              {}
func (NopLogger) GetLevel() Level                   { return InfoLevel }

// NewNopLogger returns a logger that discards all output
func NewNopLogger() Logger {
	return NopLogger{}
}

// TimedOperation pairs a log message with the elapsed time since
// StartTimer
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}
