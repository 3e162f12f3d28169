package richgui

// Font names understood by the shapers in this module.
const (
	FontRegular = "regular"
	FontBold    = "bold"
)

// FontMetrics are the vertical metrics of a font at one size.
// Descender is negative (below the baseline).
type FontMetrics struct {
	Ascender   float32
	Descender  float32
	LineHeight float32
}

// GlyphPosition is the horizontal placement of one decoded rune.
// Index is the byte offset of the rune inside the shaped string; X is the pen
// position, MinX/MaxX the logical extent used for hit-testing.
type GlyphPosition struct {
	Index int
	X     float32
	MinX  float32
	MaxX  float32
}

// TextShaper is the text-shaping capability the editor measures with.
//
// Implementations must be pure with respect to their inputs: measuring the same
// string twice yields the same positions. backend/xfont provides the real
// implementation; MonoShaper is a fixed-advance stand-in for tests and headless use.
type TextShaper interface {
	// Metrics returns ascender, descender and line height for font at size.
	Metrics(font string, size float32) FontMetrics

	// GlyphPositions shapes text starting at pen position x and returns one
	// entry per rune, in byte order.
	GlyphPositions(font string, size float32, x float32, text string) []GlyphPosition

	// TextBounds returns the bounding box of text drawn with its baseline at y=0.
	TextBounds(font string, size float32, text string) Rect
}

// GlyphQuad represents a single character's rendering quad.
type GlyphQuad struct {
	X0, Y0 float32 // Screen coordinates (top-left)
	X1, Y1 float32 // Screen coordinates (bottom-right)
	U0, V0 float32 // Texture coordinates (top-left)
	U1, V1 float32 // Texture coordinates (bottom-right)
}

// GlyphSource is a TextShaper that can also produce textured quads for a GPU
// renderer. x, y is the pen position on the baseline.
type GlyphSource interface {
	TextShaper
	GlyphQuads(font string, size float32, x, y float32, text string) (textureID uint32, quads []GlyphQuad)
}

// GlyphCache is implemented by glyph sources whose texture can fill up.
// Entries are only recycled in BeginFrame, so quads handed out during a frame
// stay valid until it is rendered. EndFrame reports whether glyphs were
// dropped; the GUI then schedules another frame.
type GlyphCache interface {
	BeginFrame()
	EndFrame() (dropped bool)
}

// MonoShaper is a fixed-advance shaper. All values are given for a 16px font
// and scale linearly with the requested size.
type MonoShaper struct {
	Advance    float32
	BoldExtra  float32 // added to Advance for the bold font
	Ascender   float32
	Descender  float32
	LineHeight float32
}

// NewMonoShaper returns a MonoShaper with 8px advances and a 20px line at 16px.
func NewMonoShaper() *MonoShaper {
	return &MonoShaper{Advance: 8, BoldExtra: 1, Ascender: 12, Descender: -4, LineHeight: 20}
}

func (s *MonoShaper) scale(size float32) float32 {
	if size <= 0 {
		return 1
	}
	return size / 16
}

func (s *MonoShaper) advance(font string, size float32) float32 {
	adv := s.Advance
	if font == FontBold {
		adv += s.BoldExtra
	}
	return adv * s.scale(size)
}

// Metrics implements TextShaper.
func (s *MonoShaper) Metrics(font string, size float32) FontMetrics {
	k := s.scale(size)
	return FontMetrics{Ascender: s.Ascender * k, Descender: s.Descender * k, LineHeight: s.LineHeight * k}
}

// GlyphPositions implements TextShaper.
func (s *MonoShaper) GlyphPositions(font string, size float32, x float32, text string) []GlyphPosition {
	adv := s.advance(font, size)
	out := make([]GlyphPosition, 0, len(text))
	for i := range text {
		out = append(out, GlyphPosition{Index: i, X: x, MinX: x, MaxX: x + adv})
		x += adv
	}
	return out
}

// TextBounds implements TextShaper.
func (s *MonoShaper) TextBounds(font string, size float32, text string) Rect {
	n := 0
	for range text {
		n++
	}
	m := s.Metrics(font, size)
	return Rect{X: 0, Y: -m.Ascender, W: float32(n) * s.advance(font, size), H: m.Ascender - m.Descender}
}
