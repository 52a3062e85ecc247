package structure

import "fmt"

// Kind identifies a structure variant.
type Kind string

const (
	KindStack         Kind = "stack"
	KindLinearQueue   Kind = "linear-queue"
	KindCircularQueue Kind = "circular-queue"
	KindPriorityQueue Kind = "priority-queue"
)

// Kinds lists the supported variants in presentation order.
var Kinds = []Kind{KindStack, KindLinearQueue, KindCircularQueue, KindPriorityQueue}

// ParseKind resolves a user-entered variant name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown structure kind %q (must be one of %v)", s, Kinds)
}

// Mode selects the ordering discipline for the priority queue variant.
type Mode string

const (
	// ModeMax keeps the largest value at the head.
	ModeMax Mode = "max"
	// ModeMin keeps the smallest value at the head.
	ModeMin Mode = "min"
)

// ParseMode resolves a user-entered priority mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMax, ModeMin:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown priority mode %q (must be max or min)", s)
}

// Capacity bounds. Small on purpose: every slot must fit on screen.
const (
	MinCapacity = 4
	MaxCapacity = 16
)

func validCapacity(n int) error {
	if n < MinCapacity || n > MaxCapacity {
		return fmt.Errorf("%w (got %d)", ErrCapacity, n)
	}
	return nil
}

// Slot is one position of the fixed-size buffer as the presentation
// layer sees it. Element is nil for an empty slot.
type Slot struct {
	Index   int
	Element *Element
}

// Phase names a precondition or action step of an operation. These are
// the pseudocode lines the presentation layer highlights.
type Phase string

const (
	PhaseOverflowCheck  Phase = "overflow-check"
	PhaseUnderflowCheck Phase = "underflow-check"
	PhaseCompare        Phase = "compare"
	PhaseInsert         Phase = "insert"
	PhaseRemove         Phase = "remove"
)

// Step is one executed phase with a human-readable detail line.
type Step struct {
	Phase  Phase
	Detail string
}

// Trace records the phase sequence an operation executed, in order,
// plus a one-line summary for the log. Failed operations still return
// the trace of the checks they performed.
type Trace struct {
	Op      string
	Steps   []Step
	Summary string
}

func (t *Trace) step(p Phase, format string, args ...any) {
	t.Steps = append(t.Steps, Step{Phase: p, Detail: fmt.Sprintf(format, args...)})
}

// Structure is the shared operation protocol of the four variants.
//
// Insert and Remove are the only mutating operations; both return a
// Trace even on failure. Fill bypasses the per-step protocol and places
// a prepared batch directly (used by random fill). Reset restores the
// freshly-constructed state.
//
// Pointers returns (front, rear); both are -1 for the dense variants
// (stack, priority queue) where they carry no meaning, and for the
// slotted variants when empty in the variant's own convention.
type Structure interface {
	Kind() Kind
	Capacity() int
	Len() int
	IsFull() bool
	IsEmpty() bool
	Slots() []Slot
	Pointers() (front, rear int)
	Insert(e Element) (*Trace, error)
	Remove() (Element, *Trace, error)
	Fill(elems []Element, offset int) error
	Reset()
}

// New constructs a variant. Mode is consulted only by the priority
// queue; pass ModeMax otherwise.
func New(kind Kind, capacity int, mode Mode) (Structure, error) {
	if err := validCapacity(capacity); err != nil {
		return nil, err
	}
	switch kind {
	case KindStack:
		return NewStack(capacity)
	case KindLinearQueue:
		return NewLinearQueue(capacity)
	case KindCircularQueue:
		return NewCircularQueue(capacity)
	case KindPriorityQueue:
		return NewPriorityQueue(capacity, mode)
	default:
		return nil, fmt.Errorf("unknown structure kind %q", kind)
	}
}
