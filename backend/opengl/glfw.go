package opengl

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/richgui"
)

// GLFWInputAdapter adapts GLFW input to richgui.InputState.
//
// GLFW may deliver several key events per poll while a frame consumes one, so
// events are queued and handed out one per Update. Call Pending to learn
// whether another frame should run without waiting for new input.
type GLFWInputAdapter struct {
	window *glfw.Window
	input  *richgui.InputState
	queue  []richgui.KeyEvent

	// DoubleClickInterval is the longest gap between two presses that still
	// counts as a multi-click.
	DoubleClickInterval time.Duration

	lastClick  time.Time
	lastClickX float32
	lastClickY float32
	clickCount int
}

// NewGLFWInputAdapter creates a new GLFW input adapter.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window:              window,
		input:               richgui.NewInputState(),
		DoubleClickInterval: 300 * time.Millisecond,
	}

	// Setup callbacks
	window.SetKeyCallback(adapter.keyCallback)
	window.SetCharCallback(adapter.charCallback)
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetScrollCallback(adapter.scrollCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)

	return adapter
}

// Update prepares the input state for a new frame and hands out the next queued
// key event. Call it after glfw.PollEvents or glfw.WaitEvents.
func (a *GLFWInputAdapter) Update() *richgui.InputState {
	a.input.Reset()

	x, y := a.window.GetCursorPos()
	a.input.SetMousePos(float32(x), float32(y))
	a.input.Mods = a.currentMods()

	if len(a.queue) > 0 {
		a.input.PostKey(a.queue[0])
		a.queue = a.queue[1:]
	}
	return a.input
}

// Pending reports whether queued key events are waiting for a frame.
func (a *GLFWInputAdapter) Pending() bool {
	return len(a.queue) > 0
}

// Input returns the current input state.
func (a *GLFWInputAdapter) Input() *richgui.InputState {
	return a.input
}

func (a *GLFWInputAdapter) currentMods() richgui.ModifierKey {
	held := func(l, r glfw.Key) bool {
		return a.window.GetKey(l) == glfw.Press || a.window.GetKey(r) == glfw.Press
	}
	var m richgui.ModifierKey
	if held(glfw.KeyLeftShift, glfw.KeyRightShift) {
		m |= richgui.ModShift
	}
	if held(glfw.KeyLeftControl, glfw.KeyRightControl) {
		m |= richgui.ModCtrl
	}
	if held(glfw.KeyLeftAlt, glfw.KeyRightAlt) {
		m |= richgui.ModAlt
	}
	if held(glfw.KeyLeftSuper, glfw.KeyRightSuper) {
		m |= richgui.ModSuper
	}
	return m
}

func convertMods(mods glfw.ModifierKey) richgui.ModifierKey {
	var m richgui.ModifierKey
	if mods&glfw.ModShift != 0 {
		m |= richgui.ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= richgui.ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= richgui.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= richgui.ModSuper
	}
	return m
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	guiKey := glfwKeyToGUIKey(key)
	if guiKey == richgui.KeyNone {
		return
	}
	m := convertMods(mods)

	// Printable keys without a shortcut modifier arrive as text through the char callback.
	if isTextKey(guiKey) && m&(richgui.ModCtrl|richgui.ModSuper|richgui.ModAlt) == 0 {
		return
	}

	var ka richgui.KeyAction
	switch action {
	case glfw.Press:
		ka = richgui.KeyActionPress
	case glfw.Repeat:
		ka = richgui.KeyActionRepeat
	case glfw.Release:
		// Releases carry no editing meaning.
		return
	}
	a.queue = append(a.queue, richgui.KeyEvent{Action: ka, Key: guiKey, Mods: m})
}

func isTextKey(k richgui.Key) bool {
	switch k {
	case richgui.KeySpace, richgui.KeyA, richgui.KeyB, richgui.KeyC,
		richgui.KeyV, richgui.KeyX, richgui.KeyY, richgui.KeyZ:
		return true
	}
	return false
}

func (a *GLFWInputAdapter) charCallback(w *glfw.Window, char rune) {
	a.queue = append(a.queue, richgui.KeyEvent{
		Action: richgui.KeyActionPress,
		Mods:   a.currentMods(),
		Char:   string(char),
	})
}

func (a *GLFWInputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	guiButton := glfwMouseButtonToGUI(button)
	if guiButton < 0 {
		return
	}

	switch action {
	case glfw.Press:
		if guiButton == richgui.MouseButtonLeft {
			a.countClick()
		}
		a.input.SetMouseButton(guiButton, true)
	case glfw.Release:
		a.input.SetMouseButton(guiButton, false)
	}
}

func (a *GLFWInputAdapter) countClick() {
	now := time.Now()
	p := a.input.MousePos()
	dx, dy := p.X-a.lastClickX, p.Y-a.lastClickY
	if now.Sub(a.lastClick) <= a.DoubleClickInterval && dx*dx+dy*dy <= 16 {
		a.clickCount++
	} else {
		a.clickCount = 1
	}
	a.lastClick = now
	a.lastClickX, a.lastClickY = p.X, p.Y
	a.input.SetClickCount(a.clickCount)
}

func (a *GLFWInputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	a.input.SetMouseWheel(float32(xoff), float32(yoff))
}

func (a *GLFWInputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

// glfwKeyToGUIKey maps GLFW keys to GUI keys.
func glfwKeyToGUIKey(key glfw.Key) richgui.Key {
	switch key {
	case glfw.KeyTab:
		return richgui.KeyTab
	case glfw.KeyLeft:
		return richgui.KeyLeft
	case glfw.KeyRight:
		return richgui.KeyRight
	case glfw.KeyUp:
		return richgui.KeyUp
	case glfw.KeyDown:
		return richgui.KeyDown
	case glfw.KeyPageUp:
		return richgui.KeyPageUp
	case glfw.KeyPageDown:
		return richgui.KeyPageDown
	case glfw.KeyHome:
		return richgui.KeyHome
	case glfw.KeyEnd:
		return richgui.KeyEnd
	case glfw.KeyInsert:
		return richgui.KeyInsert
	case glfw.KeyDelete:
		return richgui.KeyDelete
	case glfw.KeyBackspace:
		return richgui.KeyBackspace
	case glfw.KeySpace:
		return richgui.KeySpace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return richgui.KeyEnter
	case glfw.KeyEscape:
		return richgui.KeyEscape
	case glfw.KeyA:
		return richgui.KeyA
	case glfw.KeyB:
		return richgui.KeyB
	case glfw.KeyC:
		return richgui.KeyC
	case glfw.KeyV:
		return richgui.KeyV
	case glfw.KeyX:
		return richgui.KeyX
	case glfw.KeyY:
		return richgui.KeyY
	case glfw.KeyZ:
		return richgui.KeyZ
	default:
		return richgui.KeyNone
	}
}

// glfwMouseButtonToGUI maps GLFW mouse buttons to GUI mouse buttons.
func glfwMouseButtonToGUI(button glfw.MouseButton) richgui.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return richgui.MouseButtonLeft
	case glfw.MouseButtonRight:
		return richgui.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return richgui.MouseButtonMiddle
	default:
		return -1
	}
}

// GLFWClipboard is a richgui.ClipboardProvider backed by the window system
// clipboard through GLFW. It must be used from the main thread.
type GLFWClipboard struct {
	Window *glfw.Window
}

// GetText returns the clipboard contents.
func (c GLFWClipboard) GetText() string {
	return c.Window.GetClipboardString()
}

// SetText replaces the clipboard contents.
func (c GLFWClipboard) SetText(s string) {
	c.Window.SetClipboardString(s)
}

// NewRedrawSignal returns a signal whose posts wake a blocking glfw.WaitEvents.
func NewRedrawSignal() *richgui.RedrawSignal {
	return richgui.NewRedrawSignal(glfw.PostEmptyEvent)
}
