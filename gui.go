package richgui

// MaxFrameIterations caps how often Frame re-runs the update closure when
// widgets keep requesting a repaint within the same frame.
const MaxFrameIterations = 4

// Renderer is the interface for rendering GUI draw data.
type Renderer interface {
	Render(dl *DrawList) error
	Resize(width, height int)
}

// GUI manages the immediate mode UI system.
type GUI struct {
	renderer Renderer
	style    Style
	ctx      *Context
	shaper   TextShaper
	glyphs   GlyphSource
	clip     ClipboardProvider
	redraw   *RedrawSignal
	blink    *BlinkTimer
}

// GUIOption configures a GUI instance.
type GUIOption func(*GUI)

// WithStyle sets the GUI style.
func WithStyle(style Style) GUIOption {
	return func(g *GUI) { g.style = style }
}

// WithShaper sets the text shaper used for measurement. Text is not drawn
// on the GPU unless a GlyphSource is also configured.
func WithShaper(s TextShaper) GUIOption {
	return func(g *GUI) { g.shaper = s }
}

// WithGlyphSource sets the shaper and the glyph rasteriser used by draw lists.
func WithGlyphSource(gs GlyphSource) GUIOption {
	return func(g *GUI) {
		g.glyphs = gs
		g.shaper = gs
	}
}

// WithClipboard sets the clipboard editors copy to and paste from.
func WithClipboard(cp ClipboardProvider) GUIOption {
	return func(g *GUI) { g.clip = cp }
}

// WithRedrawSignal sets the signal background work posts wake-ups to.
func WithRedrawSignal(s *RedrawSignal) GUIOption {
	return func(g *GUI) { g.redraw = s }
}

// WithBlinkTimer sets a timer that is enabled while a caret is visible.
func WithBlinkTimer(t *BlinkTimer) GUIOption {
	return func(g *GUI) { g.blink = t }
}

// New creates a new GUI instance. renderer may be nil for headless use,
// in which case Frame only builds the draw lists.
func New(renderer Renderer, opts ...GUIOption) *GUI {
	g := &GUI{
		renderer: renderer,
		style:    DefaultStyle(),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.ctx = NewContext(g.shaper)
	g.ctx.SetStyle(g.style)
	g.ctx.clipboard = g.clip
	g.ctx.redraw = g.redraw
	return g
}

// Frame runs one UI frame: it re-runs update until no repaint is requested
// (at most MaxFrameIterations times), then renders the last pass.
// It returns the number of passes that ran.
func (g *GUI) Frame(input *InputState, displaySize Vec2, deltaTime float32, update func(ctx *Context)) (int, error) {
	ctx := g.ctx
	ctx.DrawList = AcquireDrawList()
	ctx.ForegroundDrawList = AcquireDrawList()
	ctx.DrawList.Glyphs = g.glyphs
	ctx.ForegroundDrawList.Glyphs = g.glyphs
	defer g.release()

	cache, _ := g.glyphs.(GlyphCache)
	if cache != nil {
		cache.BeginFrame()
	}

	ctx.SetStyle(g.style)
	ctx.beginFrame(input, displaySize, deltaTime)

	passes := 0
	for passes < MaxFrameIterations {
		ctx.beginIteration(passes)
		update(ctx)
		passes++
		if !ctx.repaint {
			break
		}
	}
	if ctx.repaint {
		guiLogger.Debug("frame did not converge", "frame", ctx.FrameCount, "passes", passes)
	}
	ctx.endFrame()

	if g.blink != nil {
		g.blink.SetEnabled(ctx.wantBlink)
	}
	if g.redraw != nil {
		g.redraw.Consume()
	}

	err := g.render()
	if cache != nil && cache.EndFrame() {
		guiLogger.Debug("glyphs dropped, scheduling another frame", "frame", ctx.FrameCount)
		if g.redraw != nil {
			g.redraw.Post()
		}
	}
	return passes, err
}

func (g *GUI) render() error {
	if g.renderer == nil {
		return nil
	}
	if err := g.renderer.Render(g.ctx.DrawList); err != nil {
		return err
	}
	if len(g.ctx.ForegroundDrawList.VtxBuffer) > 0 {
		return g.renderer.Render(g.ctx.ForegroundDrawList)
	}
	return nil
}

func (g *GUI) release() {
	ReleaseDrawList(g.ctx.DrawList)
	ReleaseDrawList(g.ctx.ForegroundDrawList)
	g.ctx.DrawList = nil
	g.ctx.ForegroundDrawList = nil
}

// Context returns the GUI context.
func (g *GUI) Context() *Context {
	return g.ctx
}

// Style returns the current GUI style.
func (g *GUI) Style() Style {
	return g.style
}

// SetStyle sets the GUI style for subsequent frames.
func (g *GUI) SetStyle(style Style) {
	g.style = style
}

// Resize notifies the renderer of a display size change.
func (g *GUI) Resize(width, height int) {
	if g.renderer != nil {
		g.renderer.Resize(width, height)
	}
}
