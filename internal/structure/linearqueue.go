package structure

import "fmt"

// LinearQueue is the slotted FIFO variant with monotonically advancing
// front/rear pointers. Slots before front become permanently unusable
// until an explicit Reset - there is no compaction. Once rear reaches
// capacity-1 every further insertion overflows even when earlier slots
// are vacant; demonstrating that limitation (versus the circular queue,
// which reclaims slots) is what this variant is for.
type LinearQueue struct {
	capacity int
	slots    []*Element
	front    int // -1 until the first insertion
	rear     int // -1 until the first insertion; never wraps or retreats
}

// NewLinearQueue creates an empty linear queue with the given capacity.
func NewLinearQueue(capacity int) (*LinearQueue, error) {
	if err := validCapacity(capacity); err != nil {
		return nil, err
	}
	return &LinearQueue{
		capacity: capacity,
		slots:    make([]*Element, capacity),
		front:    -1,
		rear:     -1,
	}, nil
}

func (q *LinearQueue) Kind() Kind    { return KindLinearQueue }
func (q *LinearQueue) Capacity() int { return q.capacity }

// Len is the current logical occupancy (front..rear window).
func (q *LinearQueue) Len() int {
	if q.IsEmpty() {
		return 0
	}
	return q.rear - q.front + 1
}

// IsFull reports the linear fullness rule: rear parked at the last
// index. Vacated slots before front do not count as free space.
func (q *LinearQueue) IsFull() bool { return q.rear == q.capacity-1 }

func (q *LinearQueue) IsEmpty() bool { return q.front == -1 || q.front > q.rear }

func (q *LinearQueue) Pointers() (int, int) { return q.front, q.rear }

func (q *LinearQueue) Slots() []Slot {
	slots := make([]Slot, q.capacity)
	for i := range slots {
		slots[i] = Slot{Index: i, Element: q.slots[i]}
	}
	return slots
}

// Insert enqueues e at rear+1.
func (q *LinearQueue) Insert(e Element) (*Trace, error) {
	tr := &Trace{Op: "enqueue"}
	tr.step(PhaseOverflowCheck, "rear %d == capacity-1 (%d)? %s", q.rear, q.capacity-1, yesNo(q.IsFull()))
	if q.IsFull() {
		return tr, overflowError(KindLinearQueue, "linear queue is full (rear reached index %d; spent slots are not reused)", q.capacity-1)
	}

	if q.rear == -1 {
		q.front, q.rear = 0, 0
	} else {
		q.rear++
	}
	q.slots[q.rear] = &e
	tr.step(PhaseInsert, "stored %d at index %d (rear)", e.Value, q.rear)
	tr.Summary = fmt.Sprintf("ENQUEUE(%d) -> index %d", e.Value, q.rear)
	return tr, nil
}

// Remove dequeues the element at front. The slot is cleared but stays
// spent; front only ever advances.
func (q *LinearQueue) Remove() (Element, *Trace, error) {
	tr := &Trace{Op: "dequeue"}
	tr.step(PhaseUnderflowCheck, "front %d, rear %d -> empty? %s", q.front, q.rear, yesNo(q.IsEmpty()))
	if q.IsEmpty() {
		return Element{}, tr, underflowError(KindLinearQueue, "linear queue is empty")
	}

	e := *q.slots[q.front]
	q.slots[q.front] = nil
	q.front++
	tr.step(PhaseRemove, "cleared index %d, front -> %d", q.front-1, q.front)
	tr.Summary = fmt.Sprintf("DEQUEUE() -> %d", e.Value)
	return e, tr, nil
}

// Fill places elems contiguously from index 0. Offset is ignored: the
// linear queue always fills from the start.
func (q *LinearQueue) Fill(elems []Element, _ int) error {
	if len(elems) > q.capacity {
		return overflowError(KindLinearQueue, "fill of %d elements exceeds capacity %d", len(elems), q.capacity)
	}
	q.Reset()
	if len(elems) == 0 {
		return nil
	}
	for i := range elems {
		q.slots[i] = &elems[i]
	}
	q.front, q.rear = 0, len(elems)-1
	return nil
}

// Reset restores the pristine state, reclaiming spent slots.
func (q *LinearQueue) Reset() {
	for i := range q.slots {
		q.slots[i] = nil
	}
	q.front, q.rear = -1, -1
}
