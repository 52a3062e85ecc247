package structure

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Element is a single stored value. Created on insertion, immutable
// once stored, destroyed on removal.
type Element struct {
	ID    string
	Value int
	Color string
}

// IDGenerator produces unique element identifiers.
// Implemented by UUIDGenerator (production) and SequenceGenerator (tests).
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates time-sortable UUIDv7 element IDs.
//
// UUIDv7 embeds a timestamp in the most significant bits, so element
// IDs sort by creation time - handy when inspecting a persisted log.
//
// Thread-safety: UUIDGenerator is stateless and safe for concurrent use.
type UUIDGenerator struct{}

// NewID creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDGenerator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator returns predictable IDs ("e-1", "e-2", ...) for
// deterministic test execution and golden trace comparison.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu sync.Mutex
	n  int
}

// NewSequenceGenerator creates a generator starting at "e-1".
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

// NewID returns the next sequential ID.
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("e-%d", g.n)
}
