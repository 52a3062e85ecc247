package engine

import "sync/atomic"

// Clock is a monotonic logical clock for log and step ordering.
//
// Every log entry and step event is stamped with a strictly increasing
// seq number from this clock. Ordering is never derived from wall-clock
// timestamps; those exist only for display.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific sequence
// number. Used when resuming a persisted session journal.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
// Each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}
