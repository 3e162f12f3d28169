package richgui

// EntityDrawFunc draws an entity character. The canvas is translated to the
// entity's top-left corner and scissored to size.
type EntityDrawFunc func(c Canvas, entityID int, style TextStyle, size Vec2)

// TextRenderOptions controls DrawTextEdit.
type TextRenderOptions struct {
	Origin         Vec2 // top-left of the text area
	SelectionColor uint32
	CaretColor     uint32
	CaretWidth     float32
	ShowCaret      bool
	// DrawSelection is false for unfocused editors.
	DrawSelection bool
	DrawEntity    EntityDrawFunc
}

// DrawTextEdit renders model using measurements m: selection highlight first,
// then glyph runs and entities, then the caret.
func DrawTextEdit(c Canvas, model *TextEditModel, m TextMeasurements, opts TextRenderOptions) {
	c.Save()
	defer c.Restore()
	c.Translate(opts.Origin.X, opts.Origin.Y)

	if opts.DrawSelection && model.HasSelection() {
		drawSelection(c, model.Selection, m, opts.SelectionColor)
	}

	for ln := range model.Lines {
		if ln >= len(m.Lines) {
			break
		}
		drawLine(c, model, &model.Lines[ln], &m.Lines[ln], opts)
	}

	if opts.ShowCaret && !model.HasSelection() {
		x, y, h := CaretPosition(m, model.Selection.BLine, model.Selection.BIndex)
		w := opts.CaretWidth
		if w <= 0 {
			w = 1
		}
		c.BeginPath()
		c.Rect(Rect{X: x, Y: y, W: w, H: h})
		c.Fill(SolidPaint(opts.CaretColor))
	}
}

func drawLine(c Canvas, model *TextEditModel, line *Line, lm *LineMeasure, opts TextRenderOptions) {
	chars := line.Characters
	for i := 0; i < len(chars); {
		ch := chars[i]
		cm := lm.Characters[i]
		if ch.IsEntity() {
			if opts.DrawEntity != nil {
				c.Save()
				c.Translate(cm.X, cm.Y)
				c.IntersectScissor(Rect{W: cm.Width, H: cm.Height})
				opts.DrawEntity(c, ch.EntityID, ch.Style, Vec2{X: cm.Width, Y: cm.Height})
				c.Restore()
			}
			i++
			continue
		}
		j := i + 1
		for j < len(chars) && !chars[j].IsEntity() && chars[j].Style == ch.Style {
			j++
		}
		last := chars[j-1]
		run := string(line.text[ch.Index : last.Index+last.NumBytes])
		c.Text(model.FontFor(ch.Style), ch.Style.Size, cm.X, lm.Y+lm.Baseline, ch.Style.Color, run)
		i = j
	}
}

// selectionShape classifies how a selection is painted.
type selectionShape int

const (
	shapeNone selectionShape = iota
	shapeSingleLine
	shapeBroken
	shapeEnvelope
)

func classifySelection(sel Selection, m TextMeasurements) (selectionShape, float32, float32) {
	if sel.IsEmpty() {
		return shapeNone, 0, 0
	}
	minLine, minIndex, maxLine, maxIndex := sel.Normalized()
	x0, _, _ := CaretPosition(m, minLine, minIndex)
	x1, _, _ := CaretPosition(m, maxLine, maxIndex)
	switch {
	case minLine == maxLine:
		return shapeSingleLine, x0, x1
	case maxLine == minLine+1 && x0 > x1:
		return shapeBroken, x0, x1
	default:
		return shapeEnvelope, x0, x1
	}
}

func drawSelection(c Canvas, sel Selection, m TextMeasurements, color uint32) {
	shape, x0, x1 := classifySelection(sel, m)
	if shape == shapeNone {
		return
	}
	minLine, _, maxLine, _ := sel.Normalized()
	if minLine >= len(m.Lines) || maxLine >= len(m.Lines) {
		return
	}
	first, last := m.Lines[minLine], m.Lines[maxLine]
	right := m.Width
	paint := SolidPaint(color)

	c.BeginPath()
	switch shape {
	case shapeSingleLine:
		c.Rect(Rect{X: x0, Y: first.Y, W: x1 - x0, H: first.Height})
	case shapeBroken:
		c.Rect(Rect{X: x0, Y: first.Y, W: right - x0, H: first.Height})
		c.Rect(Rect{X: 0, Y: last.Y, W: x1, H: last.Height})
	case shapeEnvelope:
		top0, bot0 := first.Y, first.Y+first.Height
		topL, botL := last.Y, last.Y+last.Height
		c.MoveTo(x0, top0)
		c.LineTo(right, top0)
		c.LineTo(right, topL)
		c.LineTo(x1, topL)
		c.LineTo(x1, botL)
		c.LineTo(0, botL)
		c.LineTo(0, bot0)
		c.LineTo(x0, bot0)
		c.ClosePath()
	}
	c.Fill(paint)
}
