// Package xfont shapes and rasterises text for richgui with
// golang.org/x/image/font/opentype. The Go fonts are registered as
// richgui.FontRegular and richgui.FontBold.
package xfont

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/go-theft-auto/richgui"
)

var logger = richgui.NewLogger("xfont")

// Uploader creates (tex == 0) or replaces an alpha-only GPU texture and returns
// its ID. opengl.Renderer.UploadAlpha has this signature.
type Uploader func(tex uint32, width, height int, pix []byte) uint32

type faceKey struct {
	name string
	size int // 26.6 fixed point
}

// Shaper implements richgui.GlyphSource. It is not safe for concurrent use;
// call it from the UI goroutine only.
type Shaper struct {
	fonts   map[string]*opentype.Font
	faces   map[faceKey]font.Face
	upload  Uploader
	atlas   *atlas
	dropped bool // the atlas filled up this frame
}

var _ richgui.GlyphCache = (*Shaper)(nil)

// NewShaper parses the built-in fonts. upload may be nil, in which case the
// shaper only measures and GlyphQuads returns nothing.
func NewShaper(upload Uploader) (*Shaper, error) {
	s := &Shaper{
		fonts:  make(map[string]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
		upload: upload,
		atlas:  newAtlas(atlasSize, atlasSize),
	}
	if err := s.AddFont(richgui.FontRegular, goregular.TTF); err != nil {
		return nil, err
	}
	if err := s.AddFont(richgui.FontBold, gobold.TTF); err != nil {
		return nil, err
	}
	return s, nil
}

// AddFont registers (or replaces) a TrueType/OpenType font under name.
func (s *Shaper) AddFont(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse font %q: %w", name, err)
	}
	s.fonts[name] = f
	for k, face := range s.faces {
		if k.name == name {
			face.Close()
			delete(s.faces, k)
		}
	}
	s.atlas.reset()
	return nil
}

// Face returns the cached face for name at size. Unknown names fall back to
// the regular font.
func (s *Shaper) Face(name string, size float32) font.Face {
	if size <= 0 {
		size = 16
	}
	key := faceKey{name: name, size: int(math.Round(float64(size) * 64))}
	if face, ok := s.faces[key]; ok {
		return face
	}
	f, ok := s.fonts[name]
	if !ok {
		f = s.fonts[richgui.FontRegular]
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		logger.Warn("failed to create face", "font", name, "size", size, "err", err)
		return nil
	}
	s.faces[key] = face
	return face
}

func toFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// Metrics implements richgui.TextShaper.
func (s *Shaper) Metrics(name string, size float32) richgui.FontMetrics {
	face := s.Face(name, size)
	if face == nil {
		return richgui.FontMetrics{}
	}
	m := face.Metrics()
	return richgui.FontMetrics{
		Ascender:   toFloat(m.Ascent),
		Descender:  -toFloat(m.Descent),
		LineHeight: toFloat(m.Height),
	}
}

// GlyphPositions implements richgui.TextShaper. Kerning is applied between
// consecutive runes; invalid UTF-8 bytes shape as U+FFFD.
func (s *Shaper) GlyphPositions(name string, size float32, x float32, text string) []richgui.GlyphPosition {
	face := s.Face(name, size)
	out := make([]richgui.GlyphPosition, 0, len(text))
	if face == nil {
		return out
	}
	prev := rune(-1)
	for i, r := range text {
		if prev >= 0 {
			x += toFloat(face.Kern(prev, r))
		}
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv, _ = face.GlyphAdvance('\uFFFD')
		}
		w := toFloat(adv)
		out = append(out, richgui.GlyphPosition{Index: i, X: x, MinX: x, MaxX: x + w})
		x += w
		prev = r
	}
	return out
}

// TextBounds implements richgui.TextShaper. The box is the logical extent:
// advance width by ascent plus descent.
func (s *Shaper) TextBounds(name string, size float32, text string) richgui.Rect {
	face := s.Face(name, size)
	if face == nil {
		return richgui.Rect{}
	}
	m := face.Metrics()
	return richgui.Rect{
		Y: -toFloat(m.Ascent),
		W: toFloat(font.MeasureString(face, text)),
		H: toFloat(m.Ascent + m.Descent),
	}
}

// BeginFrame implements richgui.GlyphCache. An atlas that filled up during the
// previous frame is cleared here.
func (s *Shaper) BeginFrame() {
	if s.dropped {
		s.atlas.reset()
		s.dropped = false
	}
}

// EndFrame implements richgui.GlyphCache.
func (s *Shaper) EndFrame() bool { return s.dropped }

// GlyphQuads implements richgui.GlyphSource. Glyphs are rasterised into a
// shared atlas on first use; the atlas is re-uploaded when it changed.
// When the atlas is full the remaining glyphs are left out until BeginFrame.
func (s *Shaper) GlyphQuads(name string, size float32, x, y float32, text string) (uint32, []richgui.GlyphQuad) {
	if s.upload == nil {
		return 0, nil
	}
	face := s.Face(name, size)
	if face == nil {
		return 0, nil
	}
	key := faceKey{name: name, size: int(math.Round(float64(size) * 64))}

	positions := s.GlyphPositions(name, size, x, text)
	quads := make([]richgui.GlyphQuad, 0, len(positions))
	for _, p := range positions {
		r, _ := decodeAt(text, p.Index)
		g, ok := s.atlas.glyph(face, key, r)
		if !ok {
			if !s.dropped {
				logger.Warn("glyph atlas full, dropping glyphs until the next frame", "glyphs", len(s.atlas.glyphs))
			}
			s.dropped = true
			continue
		}
		if g.w == 0 || g.h == 0 {
			continue
		}
		x0 := float32(math.Round(float64(p.X))) + float32(g.offX)
		y0 := float32(math.Round(float64(y))) + float32(g.offY)
		quads = append(quads, richgui.GlyphQuad{
			X0: x0, Y0: y0,
			X1: x0 + float32(g.w), Y1: y0 + float32(g.h),
			U0: g.u0, V0: g.v0, U1: g.u1, V1: g.v1,
		})
	}

	if s.atlas.dirty || s.atlas.tex == 0 {
		s.atlas.tex = s.upload(s.atlas.tex, s.atlas.img.Rect.Dx(), s.atlas.img.Rect.Dy(), s.atlas.img.Pix)
		s.atlas.dirty = false
	}
	return s.atlas.tex, quads
}

// Close releases the cached faces.
func (s *Shaper) Close() error {
	for k, face := range s.faces {
		face.Close()
		delete(s.faces, k)
	}
	return nil
}
