/*
Package richgui provides an immediate-mode rich text editor and context menu
system, designed as idiomatic Go with a dedicated Context type.

# Overview

The UI is rebuilt every frame. Editors keep their document in a TextEditModel
owned by the application; the widget only keeps layout caches keyed by its ID.
A frame may run the update closure several times (see MaxFrameIterations) when
a widget changes state that was already drawn, so what is rendered always
matches the model.

# Quick Start

	renderer, _ := opengl.NewRenderer(1280, 720)
	shaper, _ := xfont.NewShaper(renderer.UploadAlpha)
	ui := richgui.New(renderer, richgui.WithGlyphSource(shaper))

	model := richgui.NewTextEditModel()
	model.SetTextContent("Hello, world")

	for !window.ShouldClose() {
	    input := adapter.Poll()
	    ui.Frame(input, richgui.Vec2{X: 1280, Y: 720}, dt, func(ctx *richgui.Context) {
	        ctx.TextEdit("doc", richgui.Rect{X: 20, Y: 20, W: 600, H: 300}, model)
	    })
	    window.SwapBuffers()
	}

# Text Model

A TextEditModel is a list of Lines, each a list of Characters. A Character is
either one UTF-8 codepoint or an entity: an opaque run of bytes drawn by the
application (see WithEntities). Positions are (line, character index) pairs; the
selection is an anchor (A) and a caret (B), and is normalized before any edit.
Every structural edit bumps VersionCount.

# Keyboard Shortcuts Reference

Cmd is Super on macOS and Ctrl elsewhere (see CommandMod).

Navigation:

	Left / Right     Move one character, wrapping across lines
	Cmd+Left/Right   Move one word
	Up / Down        Move one line, keeping the desired column
	Cmd+Up/Down      Jump to the first / last line
	Home / End       Start / end of line
	Cmd+Home/End     Start / end of document

Holding Shift with any of the above extends the selection.

Editing:

	Enter            Split the line (ignored by SingleLine editors)
	Backspace        Delete the previous character or the selection
	Delete           Delete the next character or the selection
	Cmd+A            Select all
	Cmd+C / X / V    Copy / cut / paste
	Cmd+B            Toggle bold on the selection

# Context Menu

Widgets add items for the area under the pointer with ContributeContextMenu.
A right click opens the menu built from every contribution whose rectangle
contains the pointer. Submenus open beside their parent item and flip to the
other side when they do not fit on screen.

# Backends

backend/opengl renders DrawLists with OpenGL 4.1 and adapts GLFW input.
backend/xfont shapes and rasterises text with golang.org/x/image/font/opentype.
backend/raster implements Canvas on github.com/fogleman/gg for offscreen
snapshots.
*/
package richgui
