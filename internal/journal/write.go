package journal

import (
	"context"
	"fmt"
	"time"
)

// Record is one persisted log entry.
type Record struct {
	SessionID string
	Seq       int64
	Time      time.Time
	Severity  string
	Kind      string
	Message   string
}

// Append inserts a record. Appending the same (session_id, seq) twice
// is silently ignored - duplicate delivery from an observer replay must
// not corrupt the journal.
func (s *Store) Append(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO log_entries (session_id, seq, ts, severity, kind, message)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, seq) DO NOTHING
	`,
		r.SessionID,
		r.Seq,
		r.Time.UTC().Format(time.RFC3339Nano),
		r.Severity,
		r.Kind,
		r.Message,
	)
	if err != nil {
		return fmt.Errorf("append log entry %s/%d: %w", r.SessionID, r.Seq, err)
	}
	return nil
}
