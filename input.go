package richgui

import "runtime"

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyA
	KeyB
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
	KeyCount
)

// KeyAction distinguishes the phases of a key event.
type KeyAction int

const (
	KeyActionNone KeyAction = iota
	KeyActionPress
	KeyActionRepeat
	KeyActionRelease
)

// ModifierKey is a bit set of held modifier keys.
type ModifierKey uint8

const (
	ModShift ModifierKey = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// CommandMod is the platform "command" modifier used for shortcuts:
// Super on macOS, Ctrl elsewhere.
var CommandMod = commandModFor(runtime.GOOS)

func commandModFor(goos string) ModifierKey {
	if goos == "darwin" {
		return ModSuper
	}
	return ModCtrl
}

// KeyEvent is a single pending keyboard event.
// A zero KeyEvent means "no event"; handlers clear the event once they act on it.
type KeyEvent struct {
	Action KeyAction
	Key    Key
	Mods   ModifierKey
	Char   string // UTF-8 text produced by the event, if any
}

// IsZero reports whether the event is empty (never set or already consumed).
func (e KeyEvent) IsZero() bool {
	return e.Action == KeyActionNone && e.Key == KeyNone && e.Char == ""
}

// Pressed reports whether the event is a press or auto-repeat.
func (e KeyEvent) Pressed() bool {
	return e.Action == KeyActionPress || e.Action == KeyActionRepeat
}

// Has reports whether every modifier in m is held.
func (e KeyEvent) Has(m ModifierKey) bool {
	return e.Mods&m == m
}

// InputState is the per-frame input snapshot handed to the UI by the host.
type InputState struct {
	MouseX, MouseY float32

	mouseDown    [MouseButtonCount]bool
	mouseClicked [MouseButtonCount]bool // pressed this frame
	mouseUp      [MouseButtonCount]bool // released this frame
	clickCount   int                    // consecutive left clicks (2 = double click)

	MouseWheelX float32
	MouseWheelY float32

	// Key is the single pending keyboard event of this frame.
	Key KeyEvent

	// Mods mirrors the currently held modifiers (also valid for mouse events).
	Mods ModifierKey
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{}
}

// Reset clears per-frame events. Call at the start of each frame before collecting input.
func (s *InputState) Reset() {
	for i := range s.mouseClicked {
		s.mouseClicked[i] = false
	}
	for i := range s.mouseUp {
		s.mouseUp[i] = false
	}
	s.Key = KeyEvent{}
	s.MouseWheelX = 0
	s.MouseWheelY = 0
}

// SetMousePos sets the pointer position.
func (s *InputState) SetMousePos(x, y float32) {
	s.MouseX = x
	s.MouseY = y
}

// SetMouseButton sets a button state and derives click/release edges.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if button < 0 || button >= MouseButtonCount {
		return
	}

	wasDown := s.mouseDown[button]
	s.mouseDown[button] = down

	if down && !wasDown {
		s.mouseClicked[button] = true
	}
	if !down && wasDown {
		s.mouseUp[button] = true
	}
}

// SetClickCount records the consecutive click count reported by the platform.
func (s *InputState) SetClickCount(n int) {
	s.clickCount = n
}

// ClickCount returns the consecutive left click count (1 single, 2 double).
func (s *InputState) ClickCount() int {
	if s.clickCount == 0 && s.mouseClicked[MouseButtonLeft] {
		return 1
	}
	return s.clickCount
}

// SetMouseWheel sets the scroll delta.
func (s *InputState) SetMouseWheel(x, y float32) {
	s.MouseWheelX = x
	s.MouseWheelY = y
}

// PostKey stores the frame's pending key event. A later event in the same frame replaces it.
func (s *InputState) PostKey(ev KeyEvent) {
	s.Key = ev
}

// MouseDown returns true if a mouse button is currently held.
func (s *InputState) MouseDown(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseDown[button]
}

// MouseClicked returns true if a mouse button was pressed this frame.
func (s *InputState) MouseClicked(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseClicked[button]
}

// MouseReleased returns true if a mouse button was released this frame.
func (s *InputState) MouseReleased(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseUp[button]
}

// MousePos returns the pointer position.
func (s *InputState) MousePos() Vec2 {
	return Vec2{X: s.MouseX, Y: s.MouseY}
}

// KeyPressed reports whether the pending event is a press/repeat of key.
func (s *InputState) KeyPressed(key Key) bool {
	return s.Key.Key == key && s.Key.Pressed()
}

// ConsumeKey clears the pending key event.
func (s *InputState) ConsumeKey() {
	s.Key = KeyEvent{}
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	names := map[Key]string{
		KeyNone:      "--",
		KeyTab:       "Tab",
		KeyLeft:      "Left",
		KeyRight:     "Right",
		KeyUp:        "Up",
		KeyDown:      "Down",
		KeyPageUp:    "PgUp",
		KeyPageDown:  "PgDn",
		KeyHome:      "Home",
		KeyEnd:       "End",
		KeyInsert:    "Ins",
		KeyDelete:    "Del",
		KeyBackspace: "Backspace",
		KeySpace:     "Space",
		KeyEnter:     "Enter",
		KeyEscape:    "Esc",
		KeyA:         "A",
		KeyB:         "B",
		KeyC:         "C",
		KeyV:         "V",
		KeyX:         "X",
		KeyY:         "Y",
		KeyZ:         "Z",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "?"
}
