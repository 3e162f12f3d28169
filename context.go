package richgui

// Context holds all state for UI rendering in a single frame.
// This is NOT context.Context - it's the explicit frame state threaded through
// every widget call: input snapshot, draw lists, focus, clipboard, text shaping,
// the context menu and the redraw signal. Nothing in this package keeps
// per-frame state in globals.
type Context struct {
	// Drawing output
	DrawList           *DrawList
	ForegroundDrawList *DrawList // For menus and other overlays (drawn on top)

	// Input (read-only during frame, except that handlers clear Input.Key)
	Input *InputState

	// Screen
	DisplaySize Vec2

	// Frame info
	FrameCount uint64
	DeltaTime  float32
	Time       float64 // seconds since the first frame
	Iteration  int     // same-frame re-run index, 0 for the first pass

	// Styling
	style      Style
	styleStack []Style

	// IDs
	idStack   []ID
	idCounter uint32 // Auto-increment for call-site IDs

	// Capabilities
	focus     *FocusRegistry
	clipboard ClipboardProvider
	shaper    TextShaper
	redraw    *RedrawSignal

	// Mouse capture: the widget currently dragging
	activeID ID

	// Context menu
	menu          *ContextMenu
	menuContribs  []menuContribution
	menuEvent     MenuEvent
	menuCaptured  bool // pointer is over an open menu this frame
	menuStyleSeen MenuStyle

	// Widget state stores, advanced once per frame
	stores    []Cleanable
	textEdits *FrameStore[textEditState]

	repaint   bool
	wantBlink bool

	// Input capture flags (output from GUI to application)
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

type menuContribution struct {
	rect  Rect
	build func(b *MenuBuilder)
}

// NewContext creates a frame context measuring text with shaper.
// A nil shaper falls back to NewMonoShaper.
func NewContext(shaper TextShaper) *Context {
	if shaper == nil {
		shaper = NewMonoShaper()
	}
	ctx := &Context{
		styleStack: make([]Style, 0, 8),
		idStack:    make([]ID, 0, 32),
		focus:      NewFocusRegistry(),
		shaper:     shaper,
		style:      DefaultStyle(),
		textEdits:  NewFrameStore[textEditState](),
	}
	ctx.menu = NewContextMenu(DefaultMenuView(shaper, ctx.style.Menu))
	ctx.menuStyleSeen = ctx.style.Menu
	ctx.RegisterStore(ctx.textEdits)
	return ctx
}

// Style returns the current style.
func (ctx *Context) Style() Style {
	return ctx.style
}

// SetStyle sets the base style.
func (ctx *Context) SetStyle(style Style) {
	ctx.style = style
	if style.Menu != ctx.menuStyleSeen {
		ctx.menu.SetView(DefaultMenuView(ctx.shaper, style.Menu))
		ctx.menuStyleSeen = style.Menu
	}
}

// PushStyle temporarily overrides the style.
func (ctx *Context) PushStyle(style Style) {
	ctx.styleStack = append(ctx.styleStack, ctx.style)
	ctx.style = style
}

// PopStyle restores the previous style.
func (ctx *Context) PopStyle() {
	n := len(ctx.styleStack)
	if n > 0 {
		ctx.style = ctx.styleStack[n-1]
		ctx.styleStack = ctx.styleStack[:n-1]
	}
}

// Focus returns the focus registry.
func (ctx *Context) Focus() *FocusRegistry { return ctx.focus }

// Shaper returns the text shaper.
func (ctx *Context) Shaper() TextShaper { return ctx.shaper }

// Clipboard returns the clipboard, or nil when none is configured.
func (ctx *Context) Clipboard() ClipboardProvider { return ctx.clipboard }

// SetClipboard installs the clipboard used by editors.
func (ctx *Context) SetClipboard(cp ClipboardProvider) { ctx.clipboard = cp }

// Redraw returns the redraw signal, or nil.
func (ctx *Context) Redraw() *RedrawSignal { return ctx.redraw }

// ContextMenu returns the context menu driven by this context.
func (ctx *Context) ContextMenu() *ContextMenu { return ctx.menu }

// MenuEvent returns what the context menu did this frame.
func (ctx *Context) MenuEvent() MenuEvent { return ctx.menuEvent }

// RegisterStore adds a widget state store to the per-frame cleanup.
func (ctx *Context) RegisterStore(s Cleanable) {
	ctx.stores = append(ctx.stores, s)
}

// RequestRepaint asks the frame loop to run the update closure again within
// the same frame, e.g. after state that was already drawn changed.
func (ctx *Context) RequestRepaint() {
	ctx.repaint = true
}

// RepaintRequested reports whether RequestRepaint was called in this pass.
func (ctx *Context) RepaintRequested() bool {
	return ctx.repaint
}

// beginFrame prepares the context for a new frame.
func (ctx *Context) beginFrame(input *InputState, displaySize Vec2, deltaTime float32) {
	ctx.FrameCount++
	ctx.Input = input
	ctx.DisplaySize = displaySize
	ctx.DeltaTime = deltaTime
	ctx.Time += float64(deltaTime)
	ctx.wantBlink = false
	ctx.menuEvent = MenuEvent{}
	ctx.menuCaptured = false

	for _, s := range ctx.stores {
		s.Cleanup(ctx.FrameCount)
	}
	ctx.focus.ResetForFrame(ctx.FrameCount)

	if ctx.Input == nil {
		return
	}

	if ctx.menu.IsOpen() {
		ctx.menuEvent = ctx.menu.Update(ctx.Input, displaySize)
		ctx.menuCaptured = (ctx.menu.IsOpen() && ctx.menu.ContainsPoint(ctx.Input.MousePos())) ||
			ctx.menuEvent.Kind != MenuEventNone
		if ctx.menuEvent.Kind != MenuEventNone {
			guiLogger.Debug("context menu", "event", ctx.menuEvent.Kind, "item", ctx.menuEvent.Text)
		}
	}

	if ctx.Input.KeyPressed(KeyTab) && !ctx.Input.Key.Has(CommandMod) {
		if ctx.Input.Key.Has(ModShift) {
			ctx.focus.FocusPrev()
		} else {
			ctx.focus.FocusNext()
		}
		ctx.Input.ConsumeKey()
	}
}

// beginIteration resets the state a same-frame re-run must rebuild.
func (ctx *Context) beginIteration(iteration int) {
	ctx.Iteration = iteration
	ctx.repaint = false
	ctx.styleStack = ctx.styleStack[:0]
	ctx.idStack = ctx.idStack[:0]
	ctx.idCounter = 0
	ctx.menuContribs = ctx.menuContribs[:0]
	ctx.WantCaptureMouse = ctx.menuCaptured
	ctx.WantCaptureKeyboard = false
	ctx.focus.BeginIteration()
	if ctx.DrawList != nil {
		ctx.DrawList.Clear()
	}
	if ctx.ForegroundDrawList != nil {
		ctx.ForegroundDrawList.Clear()
	}
}

// endFrame opens the context menu on a right click and draws it.
func (ctx *Context) endFrame() {
	in := ctx.Input
	if in != nil && in.MouseClicked(MouseButtonRight) && !ctx.menuCaptured {
		ctx.openContextMenu(in.MousePos(), in.MouseDown(MouseButtonRight))
	}
	if ctx.menu.IsOpen() && ctx.ForegroundDrawList != nil {
		ctx.menu.Layout(ctx.DisplaySize)
		ctx.menu.Draw(ctx.ForegroundDrawList)
	}
}

// ContributeContextMenu registers menu items offered when the user right-clicks
// inside rect this frame. Contributions are applied in call order, separated
// by a divider.
func (ctx *Context) ContributeContextMenu(rect Rect, build func(b *MenuBuilder)) {
	ctx.menuContribs = append(ctx.menuContribs, menuContribution{rect: rect, build: build})
}

func (ctx *Context) openContextMenu(p Vec2, held bool) {
	b := NewMenuBuilder()
	for _, c := range ctx.menuContribs {
		if !c.rect.Contains(p) {
			continue
		}
		b.Separator()
		c.build(b)
	}
	def := b.Build()
	if len(def.SubMenus[0].Items) == 0 {
		return
	}
	ctx.menu.Open(def, p.X, p.Y, held)
	ctx.menu.Layout(ctx.DisplaySize)
	ctx.menuCaptured = true
}

// IsHovered returns true if rect is under the mouse cursor and no menu covers it.
func (ctx *Context) IsHovered(rect Rect) bool {
	if ctx.Input == nil || ctx.menuCaptured {
		return false
	}
	return rect.Contains(ctx.Input.MousePos())
}

// IsClicked returns true if rect was clicked with button this frame.
func (ctx *Context) IsClicked(rect Rect, button MouseButton) bool {
	if !ctx.IsHovered(rect) {
		return false
	}
	clicked := ctx.Input.MouseClicked(button)
	if clicked && guiVerbose() {
		guiLogger.Debug("click", "rect", rect, "mouse", ctx.Input.MousePos(), "button", button)
	}
	return clicked
}

// SetActive captures the mouse for id (e.g. while drag-selecting).
func (ctx *Context) SetActive(id ID) { ctx.activeID = id }

// IsActive reports whether id holds the mouse capture.
func (ctx *Context) IsActive(id ID) bool { return id != 0 && ctx.activeID == id }

// ClearActive releases the mouse capture held by id.
func (ctx *Context) ClearActive(id ID) {
	if ctx.activeID == id {
		ctx.activeID = 0
	}
}
