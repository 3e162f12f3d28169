package richgui

import "sync"

// Cleanable is implemented by stores that need frame-based cleanup.
// Each frame, stale entries (not accessed in the previous frame) are removed.
type Cleanable interface {
	Cleanup(currentFrame uint64)
}

// stateEntry wraps a state value with frame tracking for staleness detection.
type stateEntry[T any] struct {
	value     T
	lastFrame uint64
}

// FrameStore is a type-safe store for widget state that drops entries
// belonging to widgets that stopped being drawn.
//
// Stores are owned by a Context (see Context.RegisterStore), which advances
// them once per frame:
//
//	type myState struct{ open bool }
//	store := richgui.NewFrameStore[myState]()
//	ctx.RegisterStore(store)
//	st := store.Get(ctx.GetID("panel"), myState{})
type FrameStore[T any] struct {
	states map[ID]*stateEntry[T]
	frame  uint64
	mu     sync.RWMutex
}

// NewFrameStore creates an empty store.
func NewFrameStore[T any]() *FrameStore[T] {
	return &FrameStore[T]{
		states: make(map[ID]*stateEntry[T]),
	}
}

// Get retrieves state for the given ID, or creates it with defaultVal if not found.
// Returns a pointer to the state, allowing direct modification.
// The state is marked as used this frame.
func (s *FrameStore[T]) Get(id ID, defaultVal T) *T {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.states[id]; ok {
		entry.lastFrame = s.frame
		return &entry.value
	}
	entry := &stateEntry[T]{
		value:     defaultVal,
		lastFrame: s.frame,
	}
	s.states[id] = entry
	return &entry.value
}

// GetIfExists retrieves state only if it already exists.
// Does NOT create default state or mark as used.
func (s *FrameStore[T]) GetIfExists(id ID) *T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entry, ok := s.states[id]; ok {
		return &entry.value
	}
	return nil
}

// Set explicitly sets state for an ID and marks it as used this frame.
func (s *FrameStore[T]) Set(id ID, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.states[id]; ok {
		entry.value = value
		entry.lastFrame = s.frame
		return
	}
	s.states[id] = &stateEntry[T]{value: value, lastFrame: s.frame}
}

// Delete explicitly removes state for an ID.
func (s *FrameStore[T]) Delete(id ID) {
	s.mu.Lock()
	delete(s.states, id)
	s.mu.Unlock()
}

// Cleanup starts frame and removes entries not used in the previous one.
func (s *FrameStore[T]) Cleanup(frame uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frame = frame
	if frame == 0 {
		return
	}
	threshold := frame - 1
	for id, entry := range s.states {
		if entry.lastFrame < threshold {
			delete(s.states, id)
		}
	}
}

// Len returns the number of stored entries.
func (s *FrameStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}

// Clear removes all entries immediately.
func (s *FrameStore[T]) Clear() {
	s.mu.Lock()
	s.states = make(map[ID]*stateEntry[T])
	s.mu.Unlock()
}
