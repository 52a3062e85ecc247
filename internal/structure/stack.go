package structure

import "fmt"

// Stack is the dense LIFO variant. The last appended element is always
// the unique pop candidate; there is no ordering ambiguity.
type Stack struct {
	capacity int
	items    []Element
}

// NewStack creates an empty stack with the given capacity.
func NewStack(capacity int) (*Stack, error) {
	if err := validCapacity(capacity); err != nil {
		return nil, err
	}
	return &Stack{
		capacity: capacity,
		items:    make([]Element, 0, capacity),
	}, nil
}

func (s *Stack) Kind() Kind    { return KindStack }
func (s *Stack) Capacity() int { return s.capacity }
func (s *Stack) Len() int      { return len(s.items) }
func (s *Stack) IsFull() bool  { return len(s.items) == s.capacity }
func (s *Stack) IsEmpty() bool { return len(s.items) == 0 }

// Pointers returns (-1, -1): front/rear carry no meaning for a stack.
func (s *Stack) Pointers() (int, int) { return -1, -1 }

// Slots renders the stack bottom-up into a fixed capacity-length view.
func (s *Stack) Slots() []Slot {
	slots := make([]Slot, s.capacity)
	for i := range slots {
		slots[i].Index = i
	}
	for i := range s.items {
		slots[i].Element = &s.items[i]
	}
	return slots
}

// Insert pushes e on top of the stack.
func (s *Stack) Insert(e Element) (*Trace, error) {
	tr := &Trace{Op: "push"}
	tr.step(PhaseOverflowCheck, "length %d == capacity %d? %s", len(s.items), s.capacity, yesNo(s.IsFull()))
	if s.IsFull() {
		return tr, overflowError(KindStack, "stack is full (capacity %d)", s.capacity)
	}

	s.items = append(s.items, e)
	top := len(s.items) - 1
	tr.step(PhaseInsert, "stored %d at index %d (top)", e.Value, top)
	tr.Summary = fmt.Sprintf("PUSH(%d) -> Top", e.Value)
	return tr, nil
}

// Remove pops the top element.
func (s *Stack) Remove() (Element, *Trace, error) {
	tr := &Trace{Op: "pop"}
	tr.step(PhaseUnderflowCheck, "length %d == 0? %s", len(s.items), yesNo(s.IsEmpty()))
	if s.IsEmpty() {
		return Element{}, tr, underflowError(KindStack, "stack is empty")
	}

	top := len(s.items) - 1
	e := s.items[top]
	s.items = s.items[:top]
	tr.step(PhaseRemove, "removed %d from index %d (top)", e.Value, top)
	tr.Summary = fmt.Sprintf("POP() -> %d", e.Value)
	return e, tr, nil
}

// Fill replaces the contents with elems, bottom-up. Offset is ignored
// for dense variants.
func (s *Stack) Fill(elems []Element, _ int) error {
	if len(elems) > s.capacity {
		return overflowError(KindStack, "fill of %d elements exceeds capacity %d", len(elems), s.capacity)
	}
	s.items = s.items[:0]
	s.items = append(s.items, elems...)
	return nil
}

// Reset empties the stack.
func (s *Stack) Reset() {
	s.items = s.items[:0]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
