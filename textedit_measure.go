package richgui

// CharacterMeasure is the laid-out box of one Character.
// X and Y are relative to the text area's top-left corner.
type CharacterMeasure struct {
	X          float32
	Y          float32
	Width      float32
	MaxX       float32
	Height     float32
	LineHeight float32
	Ascender   float32
}

// LineMeasure holds the shared vertical metrics of one line.
type LineMeasure struct {
	Y           float32
	Width       float32
	Height      float32
	LineHeight  float32
	MaxAscender float32
	Baseline    float32 // offset from Y
	Characters  []CharacterMeasure
}

// TextMeasurements is the layout of a whole TextEditModel.
type TextMeasurements struct {
	Width   float32
	Height  float32
	Lines   []LineMeasure
	Version uint64
}

// EntityMeasureFunc returns the size of an entity character.
type EntityMeasureFunc func(entityID int, style TextStyle) (w, h float32)

// MeasureTextEdit lays out every character of model.
//
// Characters are shaped in segments of equal (Bold, Size); entities are sized by
// measureEntity. The baseline of a line is only known once every character on it
// has been seen, so vertical placement happens in a second pass.
func MeasureTextEdit(model *TextEditModel, shaper TextShaper, measureEntity EntityMeasureFunc) TextMeasurements {
	out := TextMeasurements{
		Lines:   make([]LineMeasure, len(model.Lines)),
		Version: model.VersionCount,
	}
	y := float32(0)
	for ln := range model.Lines {
		lm := measureLine(model, &model.Lines[ln], shaper, measureEntity)
		lm.Y = y
		placeLine(&lm, &model.Lines[ln])
		y += lm.Height
		out.Width = maxf(out.Width, lm.Width)
		out.Lines[ln] = lm
	}
	out.Height = y
	return out
}

func measureLine(model *TextEditModel, line *Line, shaper TextShaper, measureEntity EntityMeasureFunc) LineMeasure {
	lm := LineMeasure{Characters: make([]CharacterMeasure, line.Len())}
	chars := line.Characters

	hasText := false
	for _, c := range chars {
		if !c.IsEntity() {
			hasText = true
			break
		}
	}
	if !hasText {
		fm := shaper.Metrics(model.FontFor(line.Style), line.Style.Size)
		lm.Height = fm.LineHeight
		lm.LineHeight = fm.LineHeight
		lm.MaxAscender = fm.Ascender
	}

	x := float32(0)
	for i := 0; i < len(chars); {
		c := chars[i]
		if c.IsEntity() {
			var w, h float32
			if measureEntity != nil {
				w, h = measureEntity(c.EntityID, c.Style)
			}
			lm.Characters[i] = CharacterMeasure{X: x, Width: w, MaxX: x + w, Height: h}
			lm.Height = maxf(lm.Height, h)
			x += w
			i++
			continue
		}

		j := i + 1
		for j < len(chars) && !chars[j].IsEntity() &&
			chars[j].Style.Bold == c.Style.Bold && chars[j].Style.Size == c.Style.Size {
			j++
		}
		x = measureSegment(model, line, i, j, x, shaper, &lm)
		i = j
	}
	lm.Width = x
	return lm
}

// measureSegment shapes characters [from, to) starting at pen position x and
// returns the pen position after the segment.
func measureSegment(model *TextEditModel, line *Line, from, to int, x float32, shaper TextShaper, lm *LineMeasure) float32 {
	style := line.Characters[from].Style
	font := model.FontFor(style)
	fm := shaper.Metrics(font, style.Size)

	segStart := line.Characters[from].Index
	last := line.Characters[to-1]
	seg := string(line.text[segStart : last.Index+last.NumBytes])
	glyphs := shaper.GlyphPositions(font, style.Size, x, seg)

	g := 0
	pen := x
	for i := from; i < to; i++ {
		c := line.Characters[i]
		start := c.Index - segStart
		end := start + c.NumBytes
		for g < len(glyphs) && glyphs[g].Index < start {
			g++
		}
		cx, maxX := pen, pen
		first := true
		for g < len(glyphs) && glyphs[g].Index < end {
			if first {
				cx = glyphs[g].X
				first = false
			}
			maxX = maxf(maxX, glyphs[g].MaxX)
			g++
		}
		lm.Characters[i] = CharacterMeasure{
			X:          cx,
			Width:      maxX - cx,
			MaxX:       maxX,
			Height:     fm.LineHeight,
			LineHeight: fm.LineHeight,
			Ascender:   fm.Ascender,
		}
		pen = maxX
	}

	lm.Height = maxf(lm.Height, fm.LineHeight)
	lm.LineHeight = maxf(lm.LineHeight, fm.LineHeight)
	lm.MaxAscender = maxf(lm.MaxAscender, fm.Ascender)
	return pen
}

// placeLine computes the shared baseline and each character's y.
func placeLine(lm *LineMeasure, line *Line) {
	lm.Baseline = (lm.Height-lm.LineHeight)/2 + lm.MaxAscender
	for i := range lm.Characters {
		cm := &lm.Characters[i]
		switch {
		case !line.Characters[i].IsEntity():
			cm.Y = lm.Y + lm.Baseline - cm.Ascender
		case cm.Height > lm.MaxAscender:
			cm.Y = lm.Y + (lm.Height-cm.Height)/2
		default:
			cm.Y = lm.Y + lm.Baseline - cm.Height
		}
	}
}

// LocateSelectionPoint maps a point in text-area coordinates to the nearest
// character boundary. Points above or below all lines clamp to the first or last line.
func LocateSelectionPoint(m TextMeasurements, x, y float32) (line, index int) {
	if len(m.Lines) == 0 {
		return 0, 0
	}
	line = len(m.Lines) - 1
	for i, lm := range m.Lines {
		if y < lm.Y+lm.Height {
			line = i
			break
		}
	}
	for i, cm := range m.Lines[line].Characters {
		if x < (cm.X+cm.MaxX)/2 {
			return line, i
		}
	}
	return line, len(m.Lines[line].Characters)
}

// CaretPosition returns the x of the boundary before character index and the
// vertical extent of its line.
func CaretPosition(m TextMeasurements, line, index int) (x, y, h float32) {
	if line < 0 || line >= len(m.Lines) {
		return 0, 0, 0
	}
	lm := m.Lines[line]
	switch {
	case index < len(lm.Characters):
		x = lm.Characters[max(index, 0)].X
	case len(lm.Characters) > 0:
		x = lm.Characters[len(lm.Characters)-1].MaxX
	}
	return x, lm.Y, lm.Height
}

// TextMeasureCache re-measures a model only when its VersionCount changes.
type TextMeasureCache struct {
	model   *TextEditModel
	version uint64
	valid   bool
	m       TextMeasurements
}

// Get returns the measurements of model, recomputing them if stale.
func (c *TextMeasureCache) Get(model *TextEditModel, shaper TextShaper, measureEntity EntityMeasureFunc) TextMeasurements {
	if c.valid && c.model == model && c.version == model.VersionCount {
		return c.m
	}
	c.m = MeasureTextEdit(model, shaper, measureEntity)
	c.model = model
	c.version = model.VersionCount
	c.valid = true
	if guiVerbose() {
		editLogger.Debug("remeasured", "version", c.version, "lines", len(c.m.Lines))
	}
	return c.m
}

// Invalidate forces the next Get to re-measure (e.g. after a font change).
func (c *TextMeasureCache) Invalidate() {
	c.valid = false
}
