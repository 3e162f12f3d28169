// Example opens a window with a rich text editor, a single-line title field
// and a right-click context menu.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Flags:
//
//	-style theme.toml   load colors and sizes (see richgui.LoadStyle)
//	-snapshot out.png   render one frame on the CPU and exit, no window needed
//	-v                  debug logging
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/richgui"
	"github.com/go-theft-auto/richgui/backend/opengl"
	"github.com/go-theft-auto/richgui/backend/raster"
	"github.com/go-theft-auto/richgui/backend/xfont"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "richgui example"

	// Entity IDs understood by drawEntity.
	entityChip = 1
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	stylePath := flag.String("style", "", "TOML style file")
	snapshot := flag.String("snapshot", "", "render one frame to this PNG and exit")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	richgui.SetVerbose(*verbose)

	style := richgui.DefaultStyle()
	if *stylePath != "" {
		var err error
		style, err = richgui.LoadStyle(*stylePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	var err error
	if *snapshot != "" {
		err = runSnapshot(*snapshot, style)
	} else {
		err = run(style)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// document holds the application state edited by the UI.
type document struct {
	title *richgui.TextEditModel
	body  *richgui.TextEditModel
	dark  bool
}

func newDocument(style richgui.Style) *document {
	d := &document{
		title: richgui.NewTextEditModel(),
		body:  richgui.NewTextEditModel(),
		dark:  true,
	}
	d.title.Lines[0].Style = style.TextStyle
	d.body.Lines[0].Style = style.TextStyle
	d.body.SetTextContent("Rich text with bold runs,\nentities like [chip] inline,\nand a context menu on right click.")
	d.body.ApplyStyle(richgui.Selection{ALine: 0, AIndex: 15, BLine: 0, BIndex: 19},
		richgui.StyleCommand{Kind: richgui.StyleBold, Bold: true})
	d.body.ApplyStyle(richgui.Selection{ALine: 2, AIndex: 6, BLine: 2, BIndex: 18},
		richgui.StyleCommand{Kind: richgui.StyleSize, Size: style.TextStyle.Size + 6})
	d.body.CreateEntity(1, 14, 20, entityChip)
	return d
}

func measureEntity(id int, s richgui.TextStyle) (float32, float32) {
	return s.Size * 2.5, s.Size
}

func drawEntity(c richgui.Canvas, id int, s richgui.TextStyle, size richgui.Vec2) {
	c.BeginPath()
	c.RoundedRect(richgui.Rect{W: size.X, H: size.Y}, size.Y/2)
	c.Fill(richgui.LinearGradient(0, 0, size.X, 0,
		richgui.RGBA(80, 140, 220, 255), richgui.RGBA(140, 80, 220, 255)))
	c.Text(richgui.FontBold, s.Size*0.7, size.Y/2, size.Y*0.75, richgui.ColorWhite, "chip")
}

// ui builds the whole interface. It is called once per frame pass.
func (d *document) ui(ctx *richgui.Context) {
	ds := ctx.DisplaySize
	ctx.TextEdit("title", richgui.Rect{X: 20, Y: 20, W: ds.X - 40, H: 36}, d.title,
		richgui.SingleLine(), richgui.WithPlaceholder("Untitled"))

	ctx.TextEdit("body", richgui.Rect{X: 20, Y: 72, W: ds.X - 40, H: ds.Y - 92}, d.body,
		richgui.WithEntities(measureEntity, drawEntity))

	ctx.ContributeContextMenu(richgui.Rect{W: ds.X, H: ds.Y}, func(b *richgui.MenuBuilder) {
		b.BeginSubMenu("Theme").
			CheckedItem("Dark", d.dark, func() { d.dark = true }).
			CheckedItem("Light", !d.dark, func() { d.dark = false }).
			EndSubMenu()
	})
}

func (d *document) style(base richgui.Style) richgui.Style {
	if d.dark {
		return base
	}
	light := richgui.LightStyle()
	light.TextStyle.Size = base.TextStyle.Size
	return light
}

func run(style richgui.Style) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("gui renderer: %w", err)
	}
	defer renderer.Delete()

	shaper, err := xfont.NewShaper(renderer.UploadAlpha)
	if err != nil {
		return fmt.Errorf("font shaper: %w", err)
	}
	defer shaper.Close()

	input := opengl.NewGLFWInputAdapter(window)
	input.DoubleClickInterval = time.Duration(style.DoubleClickInterval * float32(time.Second))

	redraw := opengl.NewRedrawSignal()
	blink := richgui.NewBlinkTimer(redraw, time.Duration(style.CaretBlinkPeriod*float32(time.Second)/2))
	if style.CaretBlinkPeriod > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		blink.Start(ctx)
		defer blink.Stop()
	}

	ui := richgui.New(renderer,
		richgui.WithStyle(style),
		richgui.WithGlyphSource(shaper),
		richgui.WithClipboard(richgui.SystemClipboard{}),
		richgui.WithRedrawSignal(redraw),
		richgui.WithBlinkTimer(blink),
	)

	doc := newDocument(style)
	last := time.Now()

	for !window.ShouldClose() {
		// Sleep until input or a redraw post arrives, unless queued keys are waiting.
		if input.Pending() {
			glfw.PollEvents()
		} else {
			glfw.WaitEvents()
		}
		in := input.Update()

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		w, h := window.GetFramebufferSize()
		ui.Resize(w, h)
		gl.Viewport(0, 0, int32(w), int32(h))
		bg := ui.Style().EditorBgColor
		r, g, b, _ := richgui.UnpackRGBA(bg)
		gl.ClearColor(float32(r)/255*0.8, float32(g)/255*0.8, float32(b)/255*0.8, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		ui.SetStyle(doc.style(style))
		displaySize := richgui.Vec2{X: float32(w), Y: float32(h)}
		if _, err := ui.Frame(in, displaySize, dt, doc.ui); err != nil {
			return fmt.Errorf("gui render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}

// runSnapshot renders the editor and an open context menu without a window.
func runSnapshot(path string, style richgui.Style) error {
	shaper, err := xfont.NewShaper(nil)
	if err != nil {
		return fmt.Errorf("font shaper: %w", err)
	}
	defer shaper.Close()

	canvas, err := raster.NewCanvas(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	canvas.Clear(style.EditorBgColor)

	doc := newDocument(style)
	doc.body.SetSelection(richgui.Selection{ALine: 0, AIndex: 5, BLine: 2, BIndex: 3})

	m := richgui.MeasureTextEdit(doc.body, shaper, measureEntity)
	richgui.DrawTextEdit(canvas, doc.body, m, richgui.TextRenderOptions{
		Origin:         richgui.Vec2{X: 20, Y: 20},
		SelectionColor: style.SelectionColor,
		DrawSelection:  true,
		DrawEntity:     drawEntity,
	})

	menu := richgui.NewContextMenu(richgui.DefaultMenuView(shaper, style.Menu))
	b := richgui.NewMenuBuilder().
		Item("Cut", func() {}).
		Item("Copy", func() {}).
		Disabled("Paste").
		Separator().
		BeginSubMenu("Theme").
		CheckedItem("Dark", true, func() {}).
		CheckedItem("Light", false, func() {}).
		EndSubMenu()
	screen := richgui.Vec2{X: windowWidth, Y: windowHeight}
	menu.Open(b.Build(), 300, 200, false)
	menu.Layout(screen)

	// Hover the submenu item so the second level opens.
	in := richgui.NewInputState()
	stack := menu.Stack()
	if len(stack) > 0 && len(stack[0].Rows) > 0 {
		last := stack[0].Rows[len(stack[0].Rows)-1]
		in.SetMousePos(last.X+last.W/2, last.Y+last.H/2)
	}
	menu.Update(in, screen)
	menu.Layout(screen)
	menu.Draw(canvas)

	return canvas.SavePNG(path)
}
