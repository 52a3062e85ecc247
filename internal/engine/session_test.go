package engine

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structsim/structsim/internal/structure"
)

// newTestSession builds a fully deterministic session: zero step delay,
// sequential element IDs, mock wall clock, fixed random seed.
func newTestSession(t *testing.T, kind structure.Kind, capacity int, opts ...Option) *Session {
	t.Helper()
	base := []Option{
		WithStepDelay(0),
		WithIDGenerator(structure.NewSequenceGenerator()),
		WithClock(clock.NewMockClock()),
		WithRand(rand.New(rand.NewSource(1))),
		WithSessionID("test-session"),
	}
	s, err := NewSession(kind, capacity, append(base, opts...)...)
	require.NoError(t, err)
	return s
}

func intp(v int) *int { return &v }

func lastLog(s *Session) LogEntry {
	log := s.Snapshot().Log
	return log[len(log)-1]
}

func TestSession_InsertRemove(t *testing.T) {
	s := newTestSession(t, structure.KindStack, 4)

	e, err := s.Insert(intp(42))
	require.NoError(t, err)
	assert.Equal(t, 42, e.Value)
	assert.Equal(t, "e-1", e.ID)
	assert.Equal(t, "red", e.Color, "palette cycles in insertion order")

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Length)
	assert.Equal(t, SeveritySuccess, lastLog(s).Severity)
	assert.Equal(t, "PUSH(42) -> Top", lastLog(s).Message)

	got, err := s.Remove()
	require.NoError(t, err)
	assert.Equal(t, 42, got.Value)
	assert.Equal(t, "POP() -> 42", lastLog(s).Message)
	assert.Equal(t, 0, s.Snapshot().Length)
}

func TestSession_NilValueCoercedToRandom(t *testing.T) {
	s := newTestSession(t, structure.KindStack, 4)

	e, err := s.Insert(nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, e.Value, 0)
	assert.Less(t, e.Value, 100)
}

func TestSession_UnderflowLogsErrorAndPreservesState(t *testing.T) {
	s := newTestSession(t, structure.KindCircularQueue, 4)

	_, err := s.Remove()
	require.Error(t, err)
	assert.True(t, structure.IsUnderflow(err))

	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Length)
	assert.Equal(t, -1, snap.Front)
	assert.Equal(t, -1, snap.Rear)
	assert.Equal(t, SeverityError, lastLog(s).Severity)
	assert.False(t, snap.Busy, "busy flag released after a failed operation")
}

func TestSession_ErrorDuringAutoPlayDisarms(t *testing.T) {
	s := newTestSession(t, structure.KindStack, 4)
	s.Arm()
	require.True(t, s.Armed())

	_, err := s.Remove()
	require.Error(t, err)
	assert.False(t, s.Armed(), "underflow while armed is terminal for the run")
	assert.Equal(t, "AUTO: disarmed after error", lastLog(s).Message)
}

func TestSession_BusyFlagRejectsOverlap(t *testing.T) {
	s := newTestSession(t, structure.KindStack, 4, WithStepDelay(100*time.Millisecond))

	started := make(chan struct{})
	var once sync.Once
	s.Subscribe(func(ev Event) {
		if _, ok := ev.(StepEvent); ok {
			once.Do(func() { close(started) })
		}
	})

	done := make(chan error, 1)
	go func() {
		_, err := s.Insert(intp(1))
		done <- err
	}()

	<-started
	// The first insert is between phases of its delay sequence.
	_, err := s.Insert(intp(2))
	assert.ErrorIs(t, err, ErrBusy)
	_, err = s.RandomFill()
	assert.ErrorIs(t, err, ErrBusy)
	err = s.SetCapacity(8)
	assert.ErrorIs(t, err, ErrBusy)

	require.NoError(t, <-done, "in-flight operation always completes")
	assert.Equal(t, 1, s.Snapshot().Length)

	// Disarm-style toggles are accepted even mid-flight; here the
	// session is idle again and a second insert goes through.
	_, err = s.Insert(intp(2))
	assert.NoError(t, err)
}

func TestSession_RandomFill(t *testing.T) {
	for _, kind := range structure.Kinds {
		s := newTestSession(t, kind, 8)
		n, err := s.RandomFill()
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, n, s.Snapshot().Length, "kind %s", kind)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 8)
		assert.Equal(t, SeveritySuccess, lastLog(s).Severity)
	}
}

func TestSession_RandomFillPreSortedForPriority(t *testing.T) {
	s := newTestSession(t, structure.KindPriorityQueue, 8)
	_, err := s.RandomFill()
	require.NoError(t, err)

	var vals []int
	for _, slot := range s.Snapshot().Slots {
		if slot.Element != nil {
			vals = append(vals, slot.Element.Value)
		}
	}
	for i := 1; i < len(vals); i++ {
		assert.GreaterOrEqual(t, vals[i-1], vals[i], "max mode keeps the buffer sorted descending")
	}
}

func TestSession_RandomFillRejectedWhileArmed(t *testing.T) {
	s := newTestSession(t, structure.KindStack, 4)
	s.Arm()
	_, err := s.RandomFill()
	assert.ErrorIs(t, err, ErrAutoPlayActive)
}

func TestSession_ReconfigureWhileArmedDisarms(t *testing.T) {
	t.Run("capacity", func(t *testing.T) {
		s := newTestSession(t, structure.KindStack, 4)
		s.Arm()
		require.NoError(t, s.SetCapacity(6))
		assert.False(t, s.Armed())
		assert.Equal(t, 6, s.Snapshot().Capacity)
	})

	t.Run("mode", func(t *testing.T) {
		s := newTestSession(t, structure.KindPriorityQueue, 4)
		s.Arm()
		require.NoError(t, s.SetPriorityMode(structure.ModeMin))
		assert.False(t, s.Armed())
		assert.Equal(t, structure.ModeMin, s.Snapshot().Mode)
	})

	t.Run("kind", func(t *testing.T) {
		s := newTestSession(t, structure.KindStack, 4)
		s.Arm()
		require.NoError(t, s.SelectKind(structure.KindCircularQueue))
		assert.False(t, s.Armed())
		assert.Equal(t, structure.KindCircularQueue, s.Snapshot().Kind)
	})
}

func TestSession_ResetClearsEverything(t *testing.T) {
	s := newTestSession(t, structure.KindLinearQueue, 4)
	for i := 0; i < 3; i++ {
		_, err := s.Insert(intp(i))
		require.NoError(t, err)
	}
	s.Arm()

	require.NoError(t, s.Reset())
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Length)
	assert.Equal(t, -1, snap.Front)
	assert.Equal(t, -1, snap.Rear)
	assert.False(t, snap.Armed)
	require.Len(t, snap.Log, 1, "reset clears the log, then records itself")
	assert.Equal(t, SeverityInfo, snap.Log[0].Severity)
}

func TestSession_SetCapacityResizesAndResets(t *testing.T) {
	s := newTestSession(t, structure.KindStack, 4)
	_, err := s.Insert(intp(7))
	require.NoError(t, err)

	require.NoError(t, s.SetCapacity(12))
	snap := s.Snapshot()
	assert.Equal(t, 12, snap.Capacity)
	assert.Equal(t, 0, snap.Length, "resize clears all elements")
	assert.Len(t, snap.Slots, 12)

	assert.ErrorIs(t, s.SetCapacity(3), structure.ErrCapacity)
	assert.ErrorIs(t, s.SetCapacity(17), structure.ErrCapacity)
}

func TestSession_SetPriorityMode(t *testing.T) {
	s := newTestSession(t, structure.KindPriorityQueue, 4)
	_, err := s.Insert(intp(5))
	require.NoError(t, err)

	require.NoError(t, s.SetPriorityMode(structure.ModeMin))
	snap := s.Snapshot()
	assert.Equal(t, structure.ModeMin, snap.Mode)
	assert.Equal(t, 0, snap.Length, "mode switch clears the buffer")

	other := newTestSession(t, structure.KindStack, 4)
	assert.ErrorIs(t, other.SetPriorityMode(structure.ModeMin), ErrNotPriorityQueue)
}

func TestSession_SelectKindSwitchesVariant(t *testing.T) {
	s := newTestSession(t, structure.KindStack, 8)
	_, err := s.Insert(intp(1))
	require.NoError(t, err)

	require.NoError(t, s.SelectKind(structure.KindCircularQueue))
	snap := s.Snapshot()
	assert.Equal(t, structure.KindCircularQueue, snap.Kind)
	assert.Equal(t, 8, snap.Capacity)
	assert.Equal(t, 0, snap.Length)
}

func TestSession_ArmDisarmIdempotent(t *testing.T) {
	s := newTestSession(t, structure.KindStack, 4)

	s.Arm()
	logLen := len(s.Snapshot().Log)
	s.Arm()
	assert.Len(t, s.Snapshot().Log, logLen, "re-arming logs nothing")

	s.Disarm()
	logLen = len(s.Snapshot().Log)
	s.Disarm()
	assert.Len(t, s.Snapshot().Log, logLen, "re-disarming logs nothing")

	assert.True(t, s.Toggle())
	assert.False(t, s.Toggle())
}

func TestSession_ObserverEventOrder(t *testing.T) {
	s := newTestSession(t, structure.KindStack, 4)

	var events []Event
	s.Subscribe(func(ev Event) { events = append(events, ev) })

	_, err := s.Insert(intp(5))
	require.NoError(t, err)

	require.Len(t, events, 4)
	step1, ok := events[0].(StepEvent)
	require.True(t, ok)
	assert.Equal(t, structure.PhaseOverflowCheck, step1.Phase)
	step2, ok := events[1].(StepEvent)
	require.True(t, ok)
	assert.Equal(t, structure.PhaseInsert, step2.Phase)
	logEv, ok := events[2].(LogEvent)
	require.True(t, ok)
	assert.Equal(t, SeveritySuccess, logEv.Entry.Severity)
	stateEv, ok := events[3].(StateEvent)
	require.True(t, ok)
	assert.Equal(t, 1, stateEv.State.Length)

	assert.Less(t, step1.Seq, step2.Seq)
	assert.Less(t, step2.Seq, logEv.Entry.Seq)
}

func TestSession_SnapshotDoesNotAliasLiveState(t *testing.T) {
	s := newTestSession(t, structure.KindStack, 4)
	_, err := s.Insert(intp(1))
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.Slots[0].Element.Value = 999
	snap.Log[0] = LogEntry{}

	fresh := s.Snapshot()
	assert.Equal(t, 1, fresh.Slots[0].Element.Value)
	assert.NotEqual(t, LogEntry{}, fresh.Log[0])
}
