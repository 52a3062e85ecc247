package engine

import "github.com/structsim/structsim/internal/structure"

// Event is the marker interface for session notifications delivered to
// observers. Concrete types: StepEvent, LogEvent, StateEvent.
type Event interface {
	isEvent()
}

// StepEvent announces that an operation phase is "executing" - the
// pseudocode-line highlight the presentation layer shows. Events for
// one operation arrive in execution order, separated by the session's
// step delay.
type StepEvent struct {
	Seq    int64
	Op     string
	Phase  structure.Phase
	Detail string
}

// LogEvent announces an appended log entry.
type LogEvent struct {
	Entry LogEntry
}

// StateEvent carries the full observable state after a mutation.
type StateEvent struct {
	State Snapshot
}

func (StepEvent) isEvent()  {}
func (LogEvent) isEvent()   {}
func (StateEvent) isEvent() {}

// Observer receives session events. Observers are called synchronously
// from the mutating goroutine, in subscription order; they must not
// call back into mutating session methods.
type Observer func(Event)

// Snapshot is the complete observable state of a session: buffer
// contents with positions, pointer values, busy/armed status, and the
// log. Slices are deep copies - a snapshot never aliases live state.
type Snapshot struct {
	SessionID string
	Kind      structure.Kind
	Mode      structure.Mode
	Capacity  int
	Length    int
	Slots     []structure.Slot
	Front     int
	Rear      int
	Busy      bool
	Armed     bool
	Log       []LogEntry
}
