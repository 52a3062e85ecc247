package structure

import (
	"fmt"
	"sort"
)

// PriorityQueue is the dense always-sorted variant. Insertion is a
// stable linear scan from index 0 - NOT a heap - so every comparison
// shows up in the Trace. The head (index 0) is always the current
// highest-priority element and the next Remove target.
//
// Tie-break is stable: a new element lands after existing equal values
// in both modes.
type PriorityQueue struct {
	capacity int
	mode     Mode
	items    []Element
}

// NewPriorityQueue creates an empty priority queue with the given
// capacity and ordering mode.
func NewPriorityQueue(capacity int, mode Mode) (*PriorityQueue, error) {
	if err := validCapacity(capacity); err != nil {
		return nil, err
	}
	if mode != ModeMax && mode != ModeMin {
		return nil, fmt.Errorf("unknown priority mode %q", mode)
	}
	return &PriorityQueue{
		capacity: capacity,
		mode:     mode,
		items:    make([]Element, 0, capacity),
	}, nil
}

func (q *PriorityQueue) Kind() Kind    { return KindPriorityQueue }
func (q *PriorityQueue) Capacity() int { return q.capacity }
func (q *PriorityQueue) Len() int      { return len(q.items) }
func (q *PriorityQueue) IsFull() bool  { return len(q.items) == q.capacity }
func (q *PriorityQueue) IsEmpty() bool { return len(q.items) == 0 }

// Mode returns the active ordering discipline.
func (q *PriorityQueue) Mode() Mode { return q.mode }

// Pointers returns (-1, -1): front/rear carry no meaning here.
func (q *PriorityQueue) Pointers() (int, int) { return -1, -1 }

func (q *PriorityQueue) Slots() []Slot {
	slots := make([]Slot, q.capacity)
	for i := range slots {
		slots[i].Index = i
	}
	for i := range q.items {
		slots[i].Element = &q.items[i]
	}
	return slots
}

// outranks reports whether value a belongs strictly before value b
// under the active mode. Equality never outranks, which is what makes
// insertion stable.
func (q *PriorityQueue) outranks(a, b int) bool {
	if q.mode == ModeMax {
		return a > b
	}
	return a < b
}

// Insert scans forward from index 0 for the first element the new
// value outranks and inserts there, keeping the sequence sorted.
func (q *PriorityQueue) Insert(e Element) (*Trace, error) {
	tr := &Trace{Op: "insert"}
	tr.step(PhaseOverflowCheck, "length %d == capacity %d? %s", len(q.items), q.capacity, yesNo(q.IsFull()))
	if q.IsFull() {
		return tr, overflowError(KindPriorityQueue, "priority queue is full (capacity %d)", q.capacity)
	}

	op := ">"
	if q.mode == ModeMin {
		op = "<"
	}
	pos := len(q.items)
	for i, cur := range q.items {
		wins := q.outranks(e.Value, cur.Value)
		tr.step(PhaseCompare, "%d %s %d at index %d? %s", e.Value, op, cur.Value, i, yesNo(wins))
		if wins {
			pos = i
			break
		}
	}

	q.items = append(q.items, Element{})
	copy(q.items[pos+1:], q.items[pos:])
	q.items[pos] = e
	tr.step(PhaseInsert, "stored %d at index %d", e.Value, pos)
	tr.Summary = fmt.Sprintf("INSERT(%d) -> index %d", e.Value, pos)
	return tr, nil
}

// Remove takes the head element at index 0.
func (q *PriorityQueue) Remove() (Element, *Trace, error) {
	tr := &Trace{Op: "remove"}
	tr.step(PhaseUnderflowCheck, "length %d == 0? %s", len(q.items), yesNo(q.IsEmpty()))
	if q.IsEmpty() {
		return Element{}, tr, underflowError(KindPriorityQueue, "priority queue is empty")
	}

	e := q.items[0]
	copy(q.items, q.items[1:])
	q.items = q.items[:len(q.items)-1]
	tr.step(PhaseRemove, "removed %d from index 0 (head)", e.Value)
	tr.Summary = fmt.Sprintf("REMOVE() -> %d", e.Value)
	return e, tr, nil
}

// Fill replaces the contents with elems sorted under the active mode.
// The stable sort preserves the relative order of equal values, same
// as repeated Insert calls would. Offset is ignored for dense variants.
func (q *PriorityQueue) Fill(elems []Element, _ int) error {
	if len(elems) > q.capacity {
		return overflowError(KindPriorityQueue, "fill of %d elements exceeds capacity %d", len(elems), q.capacity)
	}
	q.items = q.items[:0]
	q.items = append(q.items, elems...)
	sort.SliceStable(q.items, func(i, j int) bool {
		return q.outranks(q.items[i].Value, q.items[j].Value)
	})
	return nil
}

// Reset empties the queue. The mode is part of construction and
// survives a reset; switching modes means constructing a new instance.
func (q *PriorityQueue) Reset() {
	q.items = q.items[:0]
}
