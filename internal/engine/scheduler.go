package engine

import (
	"context"
	"log/slog"
	"time"
)

// DefaultInterval is the auto-play cadence.
const DefaultInterval = 900 * time.Millisecond

// Scheduler is the auto-play timer: the only source of unsolicited
// operations. While the session is armed it fires one removal per
// interval, skipping a beat whenever an operation is still in flight
// (at most one in-flight operation, always). It disarms the session
// when the structure drains, and a failed removal disarms it through
// the session's own error path.
type Scheduler struct {
	session  *Session
	interval time.Duration
}

// NewScheduler creates a scheduler for the session. A zero interval
// fires back-to-back; tests use it together with a zero step delay.
func NewScheduler(session *Session, interval time.Duration) *Scheduler {
	return &Scheduler{session: session, interval: interval}
}

// Run fires at the configured cadence until the context is cancelled.
// The loop keeps running while disarmed so a later re-arm picks up
// without restarting anything.
func (sch *Scheduler) Run(ctx context.Context) error {
	slog.Debug("scheduler starting", "interval", sch.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Debug("scheduler stopping: context cancelled")
			return ctx.Err()
		case <-time.After(sch.interval):
		}
		sch.fire()
	}
}

// Drain arms the session and fires until it disarms itself (structure
// empty or removal failed) or the context is cancelled. Used by the
// scenario harness, where auto-play must finish synchronously.
func (sch *Scheduler) Drain(ctx context.Context) error {
	sch.session.Arm()
	for sch.session.Armed() {
		if err := ctx.Err(); err != nil {
			return err
		}
		sch.fire()
		if sch.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sch.interval):
			}
		}
	}
	return nil
}

// fire performs one scheduler beat.
func (sch *Scheduler) fire() {
	s := sch.session

	s.mu.Lock()
	armed, busy, empty := s.armed, s.busy, s.st.IsEmpty()
	s.mu.Unlock()

	switch {
	case !armed:
		return
	case busy:
		// Never start a step while the previous one's delay sequence
		// is pending; try again next beat.
		slog.Debug("scheduler skip: operation in flight")
		return
	case empty:
		s.mu.Lock()
		stillArmed := s.armed
		s.armed = false
		s.mu.Unlock()
		if stillArmed {
			s.appendLog(SeverityInfo, "AUTO: structure empty, auto-play complete")
			s.emitState()
		}
		return
	}

	// A race with a user-issued operation surfaces as ErrBusy here;
	// that beat is simply skipped. Overflow/underflow disarm via the
	// session's error path.
	if _, err := s.Remove(); err != nil {
		slog.Debug("scheduler step rejected", "error", err)
	}
}
