// Package engine owns the simulated data-structure session: the active
// structure variant, the busy gate, the append-only operation log, and
// the auto-play scheduler.
//
// ARCHITECTURE:
//
// Session is the single source of mutable state. Every structural
// operation (insert, remove, random fill, reset, reconfigure) is
// serialized through a busy flag: at most one structural mutation is in
// flight at any time, and a second caller gets ErrBusy instead of
// blocking. That flag is the sole concurrency-control rule here.
//
// Each operation emits, in order:
//   - one StepEvent per executed phase (the pseudocode highlight),
//     separated by the configured step delay,
//   - one LogEvent for the appended log entry,
//   - one StateEvent with the post-operation snapshot.
//
// The step delay is pure pacing for presentation. It carries no
// correctness meaning and is zero in tests, which makes every outcome
// identical with or without it.
//
// The Scheduler is the only source of unsolicited operations. Once
// armed it fires removals at a fixed cadence, skips a beat while an
// operation is in flight, and disarms itself when the structure drains
// or a removal fails. Disarming is always accepted immediately; it
// never aborts the in-flight operation.
//
// Log entries are stamped with a monotonic logical sequence number
// (Clock), never ordered by wall time. Wall timestamps come from an
// injected clock.Clock so tests can pin them.
package engine
