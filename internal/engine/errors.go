package engine

import "errors"

var (
	// ErrBusy is returned when a structural operation is requested
	// while another one is still in flight. The caller retries after
	// the current operation releases the busy flag; nothing queues.
	ErrBusy = errors.New("an operation is already in flight")

	// ErrAutoPlayActive is returned by RandomFill while the scheduler
	// is armed: a bulk fill would fight the drain in progress.
	ErrAutoPlayActive = errors.New("auto-play is active")

	// ErrNotPriorityQueue is returned when a priority mode change is
	// requested for a non-priority variant.
	ErrNotPriorityQueue = errors.New("priority mode applies only to the priority-queue variant")
)
