package journal

import (
	"context"
	"fmt"
	"time"
)

// ReadSession returns all records of a session in seq order.
func (s *Store) ReadSession(ctx context.Context, sessionID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, seq, ts, severity, kind, message
		FROM log_entries
		WHERE session_id = ?
		ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", sessionID, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ReadAll returns every record in the journal, ordered by session then
// seq. Used by the trace command when no session filter is given.
func (s *Store) ReadAll(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, seq, ts, severity, kind, message
		FROM log_entries
		ORDER BY session_id, seq
	`)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Sessions lists the distinct session IDs present in the journal.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT session_id FROM log_entries ORDER BY session_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LastSeq returns the highest seq recorded for a session, or 0 when the
// session has no entries. Used to resume a session's logical clock.
func (s *Store) LastSeq(ctx context.Context, sessionID string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM log_entries WHERE session_id = ?
	`, sessionID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq for %s: %w", sessionID, err)
	}
	return seq, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecords(rows rowScanner) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		var ts string
		if err := rows.Scan(&r.SessionID, &r.Seq, &ts, &r.Severity, &r.Kind, &r.Message); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		r.Time = t
		records = append(records, r)
	}
	return records, rows.Err()
}
