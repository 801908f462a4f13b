package logging

import "time"

// Level is the severity of a log record.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the lowercase level name used in backend documents.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Record is the value assembled for every log call and handed to each active
// sink. Records are transient; nothing retains them after the emit returns.
type Record struct {
	Message   string
	Level     Level
	CallPath  string
	Timestamp time.Time
}

// Sink receives assembled log records. Write is synchronous: it returns once
// the record has been handed to the underlying destination, or failed. Each
// sink applies its own field mapping to the record.
type Sink interface {
	Write(rec *Record) error
}
