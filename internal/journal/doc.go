// Package journal persists the session operation log.
//
// The journal is strictly append-only: one row per log entry, keyed by
// (session_id, seq). Seq comes from the session's logical clock, so
// read-back order never depends on wall-clock timestamps. Duplicate
// appends are silently ignored (ON CONFLICT DO NOTHING), which makes
// re-running an observer over the same entries harmless.
//
// SQLite with WAL mode allows the trace command to read a journal while
// a simulation is still writing to it.
package journal
