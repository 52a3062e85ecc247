package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/google/uuid"

	"github.com/structsim/structsim/internal/structure"
)

// DefaultStepDelay paces the phase-by-phase highlight. Presentation
// only; zero compresses every operation to a single instant without
// changing outcomes.
const DefaultStepDelay = 350 * time.Millisecond

// DefaultCapacity is used when the caller does not pick one.
const DefaultCapacity = 8

// palette cycles per-element color tags in insertion order, so traces
// stay deterministic under a fixed ID generator.
var palette = []string{"red", "green", "yellow", "blue", "magenta", "cyan"}

// Session owns one simulated structure and everything observable about
// it: the buffer, the pointers, the busy/armed flags, and the
// append-only log.
//
// All mutations are serialized through the busy flag: a second mutating
// call while one is in flight gets ErrBusy immediately. Reads
// (Snapshot, Armed) are always accepted.
type Session struct {
	mu        sync.Mutex
	id        string
	st        structure.Structure
	mode      structure.Mode
	busy      bool
	armed     bool
	log       []LogEntry
	observers []Observer
	colorIdx  int

	stepDelay time.Duration
	clk       clock.Clock
	rng       *rand.Rand
	ids       structure.IDGenerator
	seq       *Clock
}

// Option configures a Session.
type Option func(*Session)

// WithMode sets the priority-queue ordering discipline.
func WithMode(m structure.Mode) Option {
	return func(s *Session) { s.mode = m }
}

// WithStepDelay overrides the per-phase pacing delay. Zero disables
// pacing entirely (the testing configuration).
func WithStepDelay(d time.Duration) Option {
	return func(s *Session) { s.stepDelay = d }
}

// WithClock injects the wall clock used for log timestamps.
// Tests pass clock.NewMockClock() to pin them.
func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clk = c }
}

// WithRand injects the random source used for coerced values, random
// fill sizes, and ring fill offsets.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithIDGenerator injects the element ID generator.
// Tests pass structure.NewSequenceGenerator() so trace IDs are stable.
func WithIDGenerator(g structure.IDGenerator) Option {
	return func(s *Session) { s.ids = g }
}

// WithSessionID fixes the session identifier (tests and journal replay).
func WithSessionID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithSequence resumes the logical clock after the last journaled seq,
// so a resumed session's entries never collide with persisted ones
// (the journal keeps the first write for a duplicate key).
func WithSequence(last int64) Option {
	return func(s *Session) { s.seq = NewClockAt(last) }
}

// NewSession creates a session around a freshly constructed variant.
func NewSession(kind structure.Kind, capacity int, opts ...Option) (*Session, error) {
	s := &Session{
		id:        uuid.Must(uuid.NewV7()).String(),
		mode:      structure.ModeMax,
		stepDelay: DefaultStepDelay,
		clk:       clock.C,
		ids:       structure.UUIDGenerator{},
		seq:       NewClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	st, err := structure.New(kind, capacity, s.mode)
	if err != nil {
		return nil, err
	}
	s.st = st
	return s, nil
}

// ID returns the session identifier used for journal correlation.
func (s *Session) ID() string { return s.id }

// Subscribe registers an observer for session events. Observers run
// synchronously on the mutating goroutine and must not call mutating
// session methods.
func (s *Session) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Insert creates an element and inserts it per the active variant's
// protocol. A nil value is coerced to a random integer in [0,100).
// Returns the stored element on success.
func (s *Session) Insert(value *int) (structure.Element, error) {
	if err := s.acquire(); err != nil {
		return structure.Element{}, err
	}
	defer s.release()

	s.mu.Lock()
	v := 0
	coerced := value == nil
	if coerced {
		v = s.rng.Intn(100)
	} else {
		v = *value
	}
	e := structure.Element{ID: s.ids.NewID(), Value: v, Color: s.nextColorLocked()}
	tr, err := s.st.Insert(e)
	s.mu.Unlock()

	if coerced {
		slog.Debug("no value entered, coerced to random", "value", v)
	}
	s.playTrace(tr)
	if err != nil {
		s.opFailed(err)
		return structure.Element{}, err
	}
	s.appendLog(SeveritySuccess, tr.Summary)
	s.emitState()
	return e, nil
}

// Remove takes the variant's removal candidate (top, front, or head).
func (s *Session) Remove() (structure.Element, error) {
	if err := s.acquire(); err != nil {
		return structure.Element{}, err
	}
	defer s.release()

	s.mu.Lock()
	e, tr, err := s.st.Remove()
	s.mu.Unlock()

	s.playTrace(tr)
	if err != nil {
		s.opFailed(err)
		return structure.Element{}, err
	}
	s.appendLog(SeveritySuccess, tr.Summary)
	s.emitState()
	return e, nil
}

// RandomFill populates the structure with a random count of
// random-valued elements in one shot, bypassing the per-step protocol.
// One summary log line is emitted. Rejected while busy or armed.
func (s *Session) RandomFill() (int, error) {
	if err := s.acquireIdle(); err != nil {
		return 0, err
	}
	defer s.release()

	s.mu.Lock()
	n := 1 + s.rng.Intn(s.st.Capacity())
	elems := make([]structure.Element, n)
	for i := range elems {
		elems[i] = structure.Element{
			ID:    s.ids.NewID(),
			Value: s.rng.Intn(100),
			Color: s.nextColorLocked(),
		}
	}
	offset := 0
	if s.st.Kind() == structure.KindCircularQueue {
		offset = s.rng.Intn(s.st.Capacity())
	}
	err := s.st.Fill(elems, offset)
	s.mu.Unlock()

	if err != nil {
		return 0, err
	}
	s.appendLog(SeveritySuccess, fmt.Sprintf("RANDOM-FILL: placed %d elements", n))
	s.emitState()
	return n, nil
}

// Reset clears the structure, the log, and the armed flag.
func (s *Session) Reset() error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	s.st.Reset()
	s.log = s.log[:0]
	s.armed = false
	kind, capacity := s.st.Kind(), s.st.Capacity()
	s.mu.Unlock()

	s.appendLog(SeverityInfo, fmt.Sprintf("RESET: %s cleared (capacity %d)", kind, capacity))
	s.emitState()
	return nil
}

// SetCapacity reinitializes the structure with a new capacity (4-16).
// Rejected only while busy; implies a full reset, which also disarms
// auto-play.
func (s *Session) SetCapacity(n int) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	st, err := structure.New(s.st.Kind(), n, s.mode)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.st = st
	s.log = s.log[:0]
	s.armed = false
	s.mu.Unlock()

	s.appendLog(SeverityInfo, fmt.Sprintf("CAPACITY: set to %d, structure reset", n))
	s.emitState()
	return nil
}

// SetPriorityMode switches the priority-queue ordering discipline.
// Rejected while busy and for non-priority variants; implies a full
// reset (the buffer cannot stay sorted across a discipline change),
// which also disarms auto-play.
func (s *Session) SetPriorityMode(m structure.Mode) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	if s.st.Kind() != structure.KindPriorityQueue {
		s.mu.Unlock()
		return ErrNotPriorityQueue
	}
	st, err := structure.New(structure.KindPriorityQueue, s.st.Capacity(), m)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.mode = m
	s.st = st
	s.log = s.log[:0]
	s.armed = false
	s.mu.Unlock()

	s.appendLog(SeverityInfo, fmt.Sprintf("MODE: priority mode set to %s, structure reset", m))
	s.emitState()
	return nil
}

// SelectKind switches the active variant, keeping the capacity.
// Rejected only while busy; implies a full reset, which also disarms
// auto-play.
func (s *Session) SelectKind(kind structure.Kind) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	st, err := structure.New(kind, s.st.Capacity(), s.mode)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.st = st
	s.log = s.log[:0]
	s.armed = false
	s.mu.Unlock()

	s.appendLog(SeverityInfo, fmt.Sprintf("STRUCTURE: switched to %s (capacity %d)", kind, st.Capacity()))
	s.emitState()
	return nil
}

// Arm enables auto-play. Idempotent: arming an armed session is a no-op.
func (s *Session) Arm() {
	s.mu.Lock()
	if s.armed {
		s.mu.Unlock()
		return
	}
	s.armed = true
	s.mu.Unlock()
	s.appendLog(SeverityInfo, "AUTO: armed")
	s.emitState()
}

// Disarm stops auto-play. Always accepted immediately, even while an
// operation is mid-delay; the in-flight operation still completes.
func (s *Session) Disarm() {
	s.mu.Lock()
	if !s.armed {
		s.mu.Unlock()
		return
	}
	s.armed = false
	s.mu.Unlock()
	s.appendLog(SeverityInfo, "AUTO: disarmed")
	s.emitState()
}

// Toggle flips the armed flag and returns the new state.
func (s *Session) Toggle() bool {
	if s.Armed() {
		s.Disarm()
		return false
	}
	s.Arm()
	return true
}

// Armed reports whether auto-play is enabled.
func (s *Session) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

// Snapshot returns a deep copy of the observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	front, rear := s.st.Pointers()
	live := s.st.Slots()
	slots := make([]structure.Slot, len(live))
	for i, sl := range live {
		slots[i] = structure.Slot{Index: sl.Index}
		if sl.Element != nil {
			e := *sl.Element
			slots[i].Element = &e
		}
	}
	return Snapshot{
		SessionID: s.id,
		Kind:      s.st.Kind(),
		Mode:      s.mode,
		Capacity:  s.st.Capacity(),
		Length:    s.st.Len(),
		Slots:     slots,
		Front:     front,
		Rear:      rear,
		Busy:      s.busy,
		Armed:     s.armed,
		Log:       slices.Clone(s.log),
	}
}

// acquire claims the busy flag or fails fast with ErrBusy.
func (s *Session) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

// acquireIdle additionally requires the scheduler to be disarmed.
// Only the bulk fill uses it; reconfiguration is gated on busy alone
// since its implied reset disarms anyway.
func (s *Session) acquireIdle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	if s.armed {
		return ErrAutoPlayActive
	}
	s.busy = true
	return nil
}

func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// opFailed records a rejected operation: error log line, disarm if
// auto-play was running (terminal for that run), state notification.
// Structure state is guaranteed unchanged by the variant contract.
func (s *Session) opFailed(err error) {
	s.appendLog(SeverityError, err.Error())
	s.mu.Lock()
	wasArmed := s.armed
	s.armed = false
	s.mu.Unlock()
	if wasArmed {
		s.appendLog(SeverityInfo, "AUTO: disarmed after error")
	}
	s.emitState()
}

// playTrace emits one StepEvent per executed phase, pacing them with
// the step delay. The busy flag stays held for the whole playback, so
// the delays are what makes "in flight" observable.
func (s *Session) playTrace(tr *structure.Trace) {
	for i, step := range tr.Steps {
		if i > 0 && s.stepDelay > 0 {
			time.Sleep(s.stepDelay)
		}
		s.emit(StepEvent{Seq: s.seq.Next(), Op: tr.Op, Phase: step.Phase, Detail: step.Detail})
	}
}

func (s *Session) appendLog(sev Severity, msg string) {
	entry := LogEntry{Seq: s.seq.Next(), Time: s.clk.Now(), Severity: sev, Message: msg}
	s.mu.Lock()
	s.log = append(s.log, entry)
	s.mu.Unlock()
	slog.Debug("log entry", "seq", entry.Seq, "severity", sev, "message", msg)
	s.emit(LogEvent{Entry: entry})
}

func (s *Session) emitState() {
	s.mu.Lock()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emit(StateEvent{State: snap})
}

func (s *Session) emit(ev Event) {
	s.mu.Lock()
	obs := slices.Clone(s.observers)
	s.mu.Unlock()
	for _, fn := range obs {
		fn(ev)
	}
}

func (s *Session) nextColorLocked() string {
	c := palette[s.colorIdx%len(palette)]
	s.colorIdx++
	return c
}
