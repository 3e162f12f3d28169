package richgui

import "math"

// textEditState is the per-editor state kept across frames.
type textEditState struct {
	cache      TextMeasureCache
	dragging   bool
	blinkStart float64 // ctx.Time of the last caret move; the caret is solid right after it
}

// TextEdit draws a rich text editor for model inside rect and handles its input.
// It returns true if the buffer content changed during this call.
//
// The editor takes focus when clicked. While focused it consumes keyboard events
// and drives the caret blink. A double click selects the word under the pointer,
// a shift-click extends the selection and dragging selects a range. Right-clicking
// offers Cut, Copy, Paste, Select All and Bold through the context menu.
//
// Options: ReadOnly, SingleLine, WithDisabled, WithPlaceholder, WithEntities and
// NoContextMenu.
func (ctx *Context) TextEdit(label string, rect Rect, model *TextEditModel, opts ...Option) bool {
	o := applyOptions(opts)
	readonly := GetOpt(o, OptReadOnly)
	single := GetOpt(o, OptSingleLine)
	disabled := GetOpt(o, OptDisabled)
	measureEntity := GetOpt(o, OptEntityMeasure)

	id := ctx.GetID(label)
	st := ctx.textEdits.Get(id, textEditState{})
	if !disabled {
		ctx.focus.Register(id, label, rect)
	}

	style := ctx.style
	pad := style.EditorPadding
	origin := Vec2{X: rect.X + pad, Y: rect.Y + pad}

	versionBefore := model.VersionCount
	selBefore := model.Selection

	if !disabled && ctx.Input != nil {
		ctx.textEditMouse(id, st, rect, origin, model, measureEntity)
	}

	focused := ctx.focus.HasFocus(id)
	if focused && !disabled && ctx.Input != nil {
		key := &ctx.Input.Key
		if !(single && key.Key == KeyEnter) {
			model.ApplyKeyboardInput(key, ctx.clipboard, readonly)
		}
		if single && len(model.Lines) > 1 {
			model.RemoveLineBreaks()
		}
		ctx.WantCaptureKeyboard = true
	}

	changed := model.VersionCount != versionBefore
	if changed || model.Selection != selBefore {
		st.blinkStart = ctx.Time
	}
	if changed {
		if guiVerbose() {
			editLogger.Debug("edited", "label", label, "version", model.VersionCount)
		}
		ctx.RequestRepaint()
	}

	if ctx.IsHovered(rect) {
		ctx.WantCaptureMouse = true
	}

	m := st.cache.Get(model, ctx.shaper, measureEntity)
	if ctx.DrawList != nil {
		ctx.drawTextEdit(st, rect, origin, model, m, o, focused && !disabled)
	}

	if !disabled && !GetOpt(o, OptNoContextMenu) {
		ctx.contributeEditMenu(id, rect, model, readonly)
	}
	return changed
}

func (ctx *Context) textEditMouse(id ID, st *textEditState, rect Rect, origin Vec2, model *TextEditModel, measureEntity EntityMeasureFunc) {
	in := ctx.Input
	local := in.MousePos().Sub(origin)

	switch {
	case ctx.IsClicked(rect, MouseButtonLeft):
		m := st.cache.Get(model, ctx.shaper, measureEntity)
		line, index := LocateSelectionPoint(m, local.X, local.Y)
		wasFocused := ctx.focus.HasFocus(id)
		ctx.focus.RequestFocus(id)

		switch {
		case in.ClickCount() >= 2:
			from, to := model.WordAt(line, index)
			model.SetSelection(Selection{ALine: line, AIndex: from, BLine: line, BIndex: to, DesiredIndex: to})
			st.dragging = false
			ctx.ClearActive(id)
			return
		case in.Mods&ModShift != 0 && wasFocused:
			sel := model.Selection
			sel.BLine, sel.BIndex, sel.DesiredIndex = line, index, index
			model.SetSelection(sel)
		default:
			model.SetSelection(Caret(line, index))
		}
		st.dragging = true
		ctx.SetActive(id)

	case st.dragging && ctx.IsActive(id):
		if !in.MouseDown(MouseButtonLeft) {
			st.dragging = false
			ctx.ClearActive(id)
			return
		}
		m := st.cache.Get(model, ctx.shaper, measureEntity)
		line, index := LocateSelectionPoint(m, local.X, local.Y)
		if line != model.Selection.BLine || index != model.Selection.BIndex {
			sel := model.Selection
			sel.BLine, sel.BIndex, sel.DesiredIndex = line, index, index
			model.SetSelection(sel)
		}

	case ctx.IsClicked(rect, MouseButtonRight):
		ctx.focus.RequestFocus(id)

	case in.MouseClicked(MouseButtonLeft) && !ctx.menuCaptured && ctx.focus.HasFocus(id):
		// Pressed somewhere else.
		ctx.focus.Blur()
	}
}

func (ctx *Context) drawTextEdit(st *textEditState, rect Rect, origin Vec2, model *TextEditModel, m TextMeasurements, o options, focused bool) {
	style := ctx.style
	dl := ctx.DrawList

	bg, border := style.EditorBgColor, style.EditorBorderColor
	if focused {
		bg, border = style.EditorFocusedBg, style.FocusColor
	}
	dl.BeginPath()
	dl.RoundedRect(rect, style.EditorRounding)
	dl.Fill(SolidPaint(bg))
	dl.BeginPath()
	dl.RoundedRect(rect, style.EditorRounding)
	dl.Stroke(SolidPaint(border), 1)

	dl.Save()
	defer dl.Restore()
	dl.IntersectScissor(rect)

	if placeholder := GetOpt(o, OptPlaceholder); placeholder != "" && isEmptyModel(model) && len(m.Lines) > 0 {
		lm := m.Lines[0]
		ts := model.Lines[0].Style
		dl.Text(model.FontFor(ts), ts.Size, origin.X, origin.Y+lm.Y+lm.Baseline, style.TextMutedColor, placeholder)
	}

	selColor := style.SelectionBlurred
	if focused {
		selColor = style.SelectionColor
	}
	showCaret := false
	if focused {
		period := float64(style.CaretBlinkPeriod)
		showCaret = period <= 0 || math.Mod(ctx.Time-st.blinkStart, period) < period/2
		if period > 0 {
			ctx.wantBlink = true
		}
	}

	DrawTextEdit(dl, model, m, TextRenderOptions{
		Origin:         origin,
		SelectionColor: selColor,
		CaretColor:     style.CaretColor,
		CaretWidth:     style.CaretWidth,
		ShowCaret:      showCaret,
		DrawSelection:  true,
		DrawEntity:     GetOpt(o, OptEntityDraw),
	})
}

func isEmptyModel(model *TextEditModel) bool {
	return len(model.Lines) == 1 && model.Lines[0].Len() == 0
}

func (ctx *Context) contributeEditMenu(id ID, rect Rect, model *TextEditModel, readonly bool) {
	clip := ctx.clipboard
	focus := ctx.focus
	ctx.ContributeContextMenu(rect, func(b *MenuBuilder) {
		hasSel := model.HasSelection()
		var cut, copyFn, paste, bold func()
		if hasSel && clip != nil {
			copyFn = func() { model.Copy(clip) }
			if !readonly {
				cut = func() { model.Cut(clip) }
			}
		}
		if !readonly && clip != nil {
			paste = func() { model.Paste(clip) }
		}
		if !readonly && hasSel {
			bold = func() { model.ToggleBold() }
		}
		b.Item("Cut", cut).
			Item("Copy", copyFn).
			Item("Paste", paste).
			Separator().
			Item("Select All", func() {
				focus.RequestFocus(id)
				model.SelectAll()
			}).
			Separator().
			CheckedItem("Bold", model.SelectionStyle().Bold, bold)
	})
}
