package structure

import "fmt"

// CircularQueue is the ring-buffer variant: rear wraps to index 0 via
// modulo arithmetic and dequeued slots are reused. rear points at the
// last written slot and the -1 sentinel flags emptiness, so the full
// condition (rear+1) % capacity == front first holds at occupancy C:
// all C slots are usable, no sacrificed slot needed to tell full from
// empty.
//
// INVARIANT: front == -1 <=> rear == -1 <=> empty.
type CircularQueue struct {
	capacity int
	slots    []*Element
	front    int
	rear     int
}

// NewCircularQueue creates an empty circular queue with the given capacity.
func NewCircularQueue(capacity int) (*CircularQueue, error) {
	if err := validCapacity(capacity); err != nil {
		return nil, err
	}
	return &CircularQueue{
		capacity: capacity,
		slots:    make([]*Element, capacity),
		front:    -1,
		rear:     -1,
	}, nil
}

func (q *CircularQueue) Kind() Kind    { return KindCircularQueue }
func (q *CircularQueue) Capacity() int { return q.capacity }

func (q *CircularQueue) Len() int {
	if q.front == -1 {
		return 0
	}
	if q.rear >= q.front {
		return q.rear - q.front + 1
	}
	return q.capacity - q.front + q.rear + 1
}

// IsFull applies the ring fullness rule. The check runs against the
// occupied state only; an empty ring is never full.
func (q *CircularQueue) IsFull() bool {
	return q.front != -1 && (q.rear+1)%q.capacity == q.front
}

func (q *CircularQueue) IsEmpty() bool { return q.front == -1 }

func (q *CircularQueue) Pointers() (int, int) { return q.front, q.rear }

func (q *CircularQueue) Slots() []Slot {
	slots := make([]Slot, q.capacity)
	for i := range slots {
		slots[i] = Slot{Index: i, Element: q.slots[i]}
	}
	return slots
}

// Insert enqueues e at (rear+1) % capacity. The fullness check runs
// before the empty-case special handling.
func (q *CircularQueue) Insert(e Element) (*Trace, error) {
	tr := &Trace{Op: "enqueue"}
	tr.step(PhaseOverflowCheck, "(rear %d + 1) %% %d == front %d? %s", q.rear, q.capacity, q.front, yesNo(q.IsFull()))
	if q.IsFull() {
		return tr, overflowError(KindCircularQueue, "circular queue is full ((rear+1) %% %d == front)", q.capacity)
	}

	if q.front == -1 {
		q.front, q.rear = 0, 0
	} else {
		q.rear = (q.rear + 1) % q.capacity
	}
	q.slots[q.rear] = &e
	tr.step(PhaseInsert, "stored %d at index %d (rear)", e.Value, q.rear)
	tr.Summary = fmt.Sprintf("ENQUEUE(%d) -> index %d", e.Value, q.rear)
	return tr, nil
}

// Remove dequeues the element at front. Removing the last element
// resets both pointers to -1; otherwise front advances modulo capacity,
// freeing the slot for reuse.
func (q *CircularQueue) Remove() (Element, *Trace, error) {
	tr := &Trace{Op: "dequeue"}
	tr.step(PhaseUnderflowCheck, "front == -1? %s", yesNo(q.IsEmpty()))
	if q.IsEmpty() {
		return Element{}, tr, underflowError(KindCircularQueue, "circular queue is empty")
	}

	idx := q.front
	e := *q.slots[idx]
	q.slots[idx] = nil
	if q.front == q.rear {
		q.front, q.rear = -1, -1
		tr.step(PhaseRemove, "cleared index %d, last element removed, pointers reset", idx)
	} else {
		q.front = (q.front + 1) % q.capacity
		tr.step(PhaseRemove, "cleared index %d, front -> %d", idx, q.front)
	}
	tr.Summary = fmt.Sprintf("DEQUEUE() -> %d", e.Value)
	return e, tr, nil
}

// Fill places elems around the ring starting at offset, so a filled
// ring can demonstrate wrapping.
func (q *CircularQueue) Fill(elems []Element, offset int) error {
	if len(elems) > q.capacity {
		return overflowError(KindCircularQueue, "fill of %d elements exceeds capacity %d", len(elems), q.capacity)
	}
	q.Reset()
	if len(elems) == 0 {
		return nil
	}
	offset = ((offset % q.capacity) + q.capacity) % q.capacity
	for i := range elems {
		q.slots[(offset+i)%q.capacity] = &elems[i]
	}
	q.front = offset
	q.rear = (offset + len(elems) - 1) % q.capacity
	return nil
}

// Reset restores the empty state.
func (q *CircularQueue) Reset() {
	for i := range q.slots {
		q.slots[i] = nil
	}
	q.front, q.rear = -1, -1
}
