package richgui

// FocusRegistry tracks which keyboard group owns focus.
//
// In immediate mode widgets do not persist between frames, so every focusable
// widget registers its ID each frame. Registrations are double-buffered: Tab
// navigation walks the previous frame's order while the current frame builds a
// new one.
type FocusRegistry struct {
	prevItems []FocusItem
	items     []FocusItem

	current ID
	// atFrameStart is the focus owner when the frame began; DidFocus and
	// DidBlur compare against it.
	atFrameStart ID
	pending      ID
	hasPending   bool
	frame        uint64
}

// FocusItem is one registered focus group.
type FocusItem struct {
	ID   ID
	Name string
	Rect Rect
}

// NewFocusRegistry creates an empty registry.
func NewFocusRegistry() *FocusRegistry {
	return &FocusRegistry{
		prevItems: make([]FocusItem, 0, 16),
		items:     make([]FocusItem, 0, 16),
	}
}

// ResetForFrame swaps the registration buffers and applies a deferred focus request.
// Calling it twice with the same frame number is a no-op.
func (r *FocusRegistry) ResetForFrame(frame uint64) {
	if r.frame == frame && frame > 0 {
		return
	}
	r.frame = frame
	r.prevItems, r.items = r.items, r.prevItems
	r.items = r.items[:0]

	if r.hasPending {
		r.current = r.pending
		r.hasPending = false
	}
	if r.current != 0 && !r.registeredPrev(r.current) && len(r.prevItems) > 0 {
		focusLogger.Debug("focused group disappeared", "id", r.current)
		r.current = 0
	}
	r.atFrameStart = r.current
}

// BeginIteration rewinds the current frame's registrations before a
// same-frame re-run of the UI.
func (r *FocusRegistry) BeginIteration() {
	r.items = r.items[:0]
}

func (r *FocusRegistry) registeredPrev(id ID) bool {
	for _, it := range r.prevItems {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Register adds a focus group for this frame.
func (r *FocusRegistry) Register(id ID, name string, rect Rect) {
	r.items = append(r.items, FocusItem{ID: id, Name: name, Rect: rect})
}

// HasFocus reports whether id owns focus.
func (r *FocusRegistry) HasFocus(id ID) bool {
	return id != 0 && r.current == id
}

// DidFocus reports whether id gained focus during this frame.
func (r *FocusRegistry) DidFocus(id ID) bool {
	return r.HasFocus(id) && r.atFrameStart != id
}

// DidBlur reports whether id lost focus during this frame.
func (r *FocusRegistry) DidBlur(id ID) bool {
	return id != 0 && r.atFrameStart == id && r.current != id
}

// RequestFocus gives focus to id immediately.
func (r *FocusRegistry) RequestFocus(id ID) {
	if r.current != id {
		focusLogger.Debug("focus", "id", id)
	}
	r.current = id
	r.hasPending = false
}

// RequestFocusDeferred gives focus to id at the start of the next frame.
func (r *FocusRegistry) RequestFocusDeferred(id ID) {
	r.pending = id
	r.hasPending = true
}

// Blur removes focus from every group.
func (r *FocusRegistry) Blur() {
	r.RequestFocus(0)
}

// Focused returns the focused ID, or 0.
func (r *FocusRegistry) Focused() ID {
	return r.current
}

// FocusNext moves focus to the group registered after the focused one,
// wrapping around. Returns false when nothing is registered.
func (r *FocusRegistry) FocusNext() bool {
	return r.step(1)
}

// FocusPrev moves focus to the group registered before the focused one.
func (r *FocusRegistry) FocusPrev() bool {
	return r.step(-1)
}

func (r *FocusRegistry) step(delta int) bool {
	items := r.prevItems
	if len(items) == 0 {
		items = r.items
	}
	n := len(items)
	if n == 0 {
		return false
	}
	idx := -1
	for i, it := range items {
		if it.ID == r.current {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = (idx + delta + n) % n
	}
	r.RequestFocus(items[idx].ID)
	return true
}

// Items returns the previous frame's registrations, in order.
func (r *FocusRegistry) Items() []FocusItem {
	return r.prevItems
}
