package xfont_test

import (
	"testing"

	"github.com/go-theft-auto/richgui"
	"github.com/go-theft-auto/richgui/backend/xfont"
)

func newShaper(t *testing.T, up xfont.Uploader) *xfont.Shaper {
	t.Helper()
	s, err := xfont.NewShaper(up)
	if err != nil {
		t.Fatalf("NewShaper() returned error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMetrics(t *testing.T) {
	s := newShaper(t, nil)
	m := s.Metrics(richgui.FontRegular, 16)
	if m.Ascender <= 0 {
		t.Errorf("Expected positive ascender, got %v", m.Ascender)
	}
	if m.Descender >= 0 {
		t.Errorf("Expected negative descender, got %v", m.Descender)
	}
	if m.LineHeight < m.Ascender-m.Descender-1 {
		t.Errorf("Expected line height to cover ascender and descender, got %v", m.LineHeight)
	}

	big := s.Metrics(richgui.FontRegular, 32)
	if big.Ascender <= m.Ascender {
		t.Errorf("Expected 32px ascender > 16px ascender, got %v <= %v", big.Ascender, m.Ascender)
	}
}

func TestGlyphPositionsByteIndices(t *testing.T) {
	s := newShaper(t, nil)
	pos := s.GlyphPositions(richgui.FontRegular, 16, 10, "aé b")
	want := []int{0, 1, 3, 4}
	if len(pos) != len(want) {
		t.Fatalf("Expected %d positions, got %d", len(want), len(pos))
	}
	for i, p := range pos {
		if p.Index != want[i] {
			t.Errorf("Expected index %d at %d, got %d", want[i], i, p.Index)
		}
	}
	if pos[0].X != 10 {
		t.Errorf("Expected first glyph at pen x 10, got %v", pos[0].X)
	}
	for i := 1; i < len(pos); i++ {
		if pos[i].X < pos[i-1].X {
			t.Errorf("Expected non-decreasing X, got %v after %v", pos[i].X, pos[i-1].X)
		}
	}
	if pos[0].MaxX <= pos[0].MinX {
		t.Errorf("Expected 'a' to have a positive advance, got %v..%v", pos[0].MinX, pos[0].MaxX)
	}
}

func TestTextBoundsMatchesPositions(t *testing.T) {
	s := newShaper(t, nil)
	text := "hello"
	pos := s.GlyphPositions(richgui.FontBold, 20, 0, text)
	b := s.TextBounds(richgui.FontBold, 20, text)
	last := pos[len(pos)-1].MaxX
	if diff := b.W - last; diff > 0.5 || diff < -0.5 {
		t.Errorf("Expected bounds width %v to match last glyph end %v", b.W, last)
	}
	if b.Y >= 0 {
		t.Errorf("Expected bounds to start above the baseline, got %v", b.Y)
	}
}

func TestFaceCache(t *testing.T) {
	s := newShaper(t, nil)
	a := s.Face(richgui.FontRegular, 14)
	b := s.Face(richgui.FontRegular, 14)
	if a != b {
		t.Error("Expected the same face for the same font and size")
	}
	if s.Face("missing", 14) == nil {
		t.Error("Expected unknown fonts to fall back to the regular font")
	}
}

func TestGlyphQuads(t *testing.T) {
	uploads := 0
	up := func(tex uint32, w, h int, pix []byte) uint32 {
		uploads++
		if len(pix) != w*h {
			t.Errorf("Expected %d bytes of alpha, got %d", w*h, len(pix))
		}
		if tex == 0 {
			return 7
		}
		return tex
	}
	s := newShaper(t, up)

	tex, quads := s.GlyphQuads(richgui.FontRegular, 16, 0, 20, "a b")
	if tex != 7 {
		t.Errorf("Expected texture 7, got %d", tex)
	}
	if len(quads) != 2 {
		t.Fatalf("Expected 2 quads (space has no ink), got %d", len(quads))
	}
	if quads[1].X0 <= quads[0].X0 {
		t.Errorf("Expected 'b' right of 'a', got %v <= %v", quads[1].X0, quads[0].X0)
	}
	if quads[0].Y1 > 20+1 || quads[0].Y0 >= 20 {
		t.Errorf("Expected 'a' to sit on the baseline at 20, got %v..%v", quads[0].Y0, quads[0].Y1)
	}
	if uploads != 1 {
		t.Errorf("Expected 1 upload, got %d", uploads)
	}

	s.GlyphQuads(richgui.FontRegular, 16, 0, 40, "ab")
	if uploads != 1 {
		t.Errorf("Expected cached glyphs not to re-upload, got %d uploads", uploads)
	}
}

func TestGlyphQuadsWithoutUploader(t *testing.T) {
	s := newShaper(t, nil)
	tex, quads := s.GlyphQuads(richgui.FontRegular, 16, 0, 0, "abc")
	if tex != 0 || quads != nil {
		t.Errorf("Expected no quads without an uploader, got %d, %v", tex, quads)
	}
}
