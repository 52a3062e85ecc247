package engine

import "time"

// Severity classifies a log entry.
type Severity string

const (
	// SeverityInfo marks configuration changes and scheduler activity.
	SeverityInfo Severity = "info"
	// SeveritySuccess marks accepted structural operations.
	SeveritySuccess Severity = "success"
	// SeverityError marks rejected operations (overflow, underflow).
	SeverityError Severity = "error"
)

// LogEntry is one line of the visible operation trace. Entries are
// append-only and never mutated; Seq is unique and increasing within a
// session (logical clock, not wall time).
type LogEntry struct {
	Seq      int64
	Time     time.Time
	Severity Severity
	Message  string
}
