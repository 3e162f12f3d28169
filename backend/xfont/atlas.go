package xfont

import (
	"image"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	atlasSize    = 1024
	glyphPadding = 1
)

type glyphKey struct {
	face faceKey
	r    rune
}

// atlasGlyph is a rasterised glyph: its offset from the pen position on the
// baseline and its texture coordinates.
type atlasGlyph struct {
	offX, offY     int
	w, h           int
	u0, v0, u1, v1 float32
}

// atlas packs glyph masks into one alpha image using shelves.
type atlas struct {
	img    *image.Alpha
	glyphs map[glyphKey]atlasGlyph
	tex    uint32
	dirty  bool

	// current shelf
	x, y, rowH int
}

func newAtlas(w, h int) *atlas {
	return &atlas{
		img:    image.NewAlpha(image.Rect(0, 0, w, h)),
		glyphs: make(map[glyphKey]atlasGlyph),
	}
}

func (a *atlas) reset() {
	clear(a.img.Pix)
	clear(a.glyphs)
	a.x, a.y, a.rowH = 0, 0, 0
	a.dirty = true
}

// glyph returns the atlas entry for r, rasterising it if needed.
// It returns false when the atlas has no room left.
func (a *atlas) glyph(face font.Face, fk faceKey, r rune) (atlasGlyph, bool) {
	key := glyphKey{face: fk, r: r}
	if g, ok := a.glyphs[key]; ok {
		return g, true
	}

	dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		dr, mask, maskp, _, ok = face.Glyph(fixed.Point26_6{}, utf8.RuneError)
		if !ok {
			a.glyphs[key] = atlasGlyph{}
			return atlasGlyph{}, true
		}
	}
	w, h := dr.Dx(), dr.Dy()
	if w == 0 || h == 0 {
		g := atlasGlyph{offX: dr.Min.X, offY: dr.Min.Y}
		a.glyphs[key] = g
		return g, true
	}

	bw, bh := a.img.Rect.Dx(), a.img.Rect.Dy()
	if a.x+w+glyphPadding > bw {
		a.x = 0
		a.y += a.rowH + glyphPadding
		a.rowH = 0
	}
	if a.y+h > bh || w > bw {
		return atlasGlyph{}, false
	}

	dst := image.Rect(a.x, a.y, a.x+w, a.y+h)
	draw.Draw(a.img, dst, mask, maskp, draw.Src)

	g := atlasGlyph{
		offX: dr.Min.X,
		offY: dr.Min.Y,
		w:    w,
		h:    h,
		u0:   float32(dst.Min.X) / float32(bw),
		v0:   float32(dst.Min.Y) / float32(bh),
		u1:   float32(dst.Max.X) / float32(bw),
		v1:   float32(dst.Max.Y) / float32(bh),
	}
	a.glyphs[key] = g
	a.x += w + glyphPadding
	a.rowH = max(a.rowH, h)
	a.dirty = true
	return g, true
}

func decodeAt(s string, i int) (rune, int) {
	if i < 0 || i >= len(s) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s[i:])
}
