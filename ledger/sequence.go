package ledger

import "sync/atomic"

// Sequence hands out globally unique, strictly increasing identifiers.
// Wait-free: a single atomic increment, no locks. Identifiers start at 1
// and are never reused, even after the record they named is deleted.
//
// The counter is 64 bits wide; wraparound would take 2^63 creates and is
// left unchecked.
type Sequence struct {
	counter atomic.Uint64
}

// NewSequence returns a Sequence whose first Next call yields 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next identifier.
func (s *Sequence) Next() uint64 {
	return s.counter.Add(1)
}

// Current returns the most recently issued identifier, or 0 if none.
func (s *Sequence) Current() uint64 {
	return s.counter.Load()
}
