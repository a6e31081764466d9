package controller

import "sync"

// Slot holds at most one value: an input draft or the single open edit
// form of a controller.
type Slot[V any] struct {
	mu  sync.Mutex
	v   V
	set bool
}

// Set replaces the held value.
func (s *Slot[V]) Set(v V) {
	s.mu.Lock()
	s.v = v
	s.set = true
	s.mu.Unlock()
}

// Get returns the held value and whether one is present.
func (s *Slot[V]) Get() (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v, s.set
}

// Value returns the held value or the zero value.
func (s *Slot[V]) Value() V {
	v, _ := s.Get()
	return v
}

// Clear empties the slot.
func (s *Slot[V]) Clear() {
	var zero V
	s.mu.Lock()
	s.v = zero
	s.set = false
	s.mu.Unlock()
}
