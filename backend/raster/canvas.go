// Package raster implements richgui.Canvas on the CPU with github.com/fogleman/gg,
// for snapshots and headless rendering.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-theft-auto/richgui"
)

type faceKey struct {
	name string
	size float32
}

// Canvas draws onto an RGBA image.
//
// gg keeps the clip mask across Pop, so scissors are tracked here in device
// space and rebuilt whenever Restore leaves fewer of them active.
type Canvas struct {
	dc    *gg.Context
	fonts map[string]*truetype.Font
	faces map[faceKey]font.Face

	clips  []richgui.Rect // device space
	depths []int          // len(clips) at each Save
}

var _ richgui.Canvas = (*Canvas)(nil)

// NewCanvas creates a transparent canvas of the given size with the Go fonts
// registered as richgui.FontRegular and richgui.FontBold.
func NewCanvas(width, height int) (*Canvas, error) {
	c := &Canvas{
		dc:    gg.NewContext(width, height),
		fonts: make(map[string]*truetype.Font),
		faces: make(map[faceKey]font.Face),
	}
	if err := c.AddFont(richgui.FontRegular, goregular.TTF); err != nil {
		return nil, err
	}
	if err := c.AddFont(richgui.FontBold, gobold.TTF); err != nil {
		return nil, err
	}
	return c, nil
}

// AddFont registers a TrueType font under name.
func (c *Canvas) AddFont(name string, ttf []byte) error {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("failed to parse font %q: %w", name, err)
	}
	c.fonts[name] = f
	for k := range c.faces {
		if k.name == name {
			delete(c.faces, k)
		}
	}
	return nil
}

func (c *Canvas) face(name string, size float32) font.Face {
	key := faceKey{name: name, size: size}
	if f, ok := c.faces[key]; ok {
		return f
	}
	tt, ok := c.fonts[name]
	if !ok {
		tt = c.fonts[richgui.FontRegular]
	}
	f := truetype.NewFace(tt, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[key] = f
	return f
}

func toColor(c uint32) color.NRGBA {
	r, g, b, a := richgui.UnpackRGBA(c)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func (c *Canvas) pattern(p richgui.Paint) gg.Pattern {
	if !p.Gradient {
		return gg.NewSolidPattern(toColor(p.Color))
	}
	g := gg.NewLinearGradient(float64(p.X0), float64(p.Y0), float64(p.X1), float64(p.Y1))
	g.AddColorStop(0, toColor(p.Color))
	g.AddColorStop(1, toColor(p.Color2))
	return g
}

// Clear fills the whole image with col, ignoring the clip.
func (c *Canvas) Clear(col uint32) {
	c.dc.SetColor(toColor(col))
	c.dc.Clear()
}

// Image returns the backing image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the image to path.
func (c *Canvas) SavePNG(path string) error {
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Save implements richgui.Canvas.
func (c *Canvas) Save() {
	c.dc.Push()
	c.depths = append(c.depths, len(c.clips))
}

// Restore implements richgui.Canvas. Dropping a scissor discards the current path.
func (c *Canvas) Restore() {
	if len(c.depths) == 0 {
		return
	}
	c.dc.Pop()
	depth := c.depths[len(c.depths)-1]
	c.depths = c.depths[:len(c.depths)-1]
	if depth == len(c.clips) {
		return
	}
	c.clips = c.clips[:depth]
	c.rebuildClip()
}

func (c *Canvas) rebuildClip() {
	c.dc.ResetClip()
	if len(c.clips) == 0 {
		return
	}
	c.dc.Push()
	c.dc.Identity()
	for _, r := range c.clips {
		c.dc.ClearPath()
		c.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
		c.dc.Clip()
	}
	c.dc.Pop()
}

// Translate implements richgui.Canvas.
func (c *Canvas) Translate(dx, dy float32) { c.dc.Translate(float64(dx), float64(dy)) }

// IntersectScissor implements richgui.Canvas. It discards the current path.
func (c *Canvas) IntersectScissor(r richgui.Rect) {
	x0, y0 := c.dc.TransformPoint(float64(r.X), float64(r.Y))
	x1, y1 := c.dc.TransformPoint(float64(r.X+r.W), float64(r.Y+r.H))
	c.clips = append(c.clips, richgui.Rect{
		X: float32(math.Min(x0, x1)),
		Y: float32(math.Min(y0, y1)),
		W: float32(math.Abs(x1 - x0)),
		H: float32(math.Abs(y1 - y0)),
	})
	c.dc.ClearPath()
	c.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
	c.dc.Clip()
}

// BeginPath implements richgui.Canvas.
func (c *Canvas) BeginPath() { c.dc.ClearPath() }

// MoveTo implements richgui.Canvas.
func (c *Canvas) MoveTo(x, y float32) { c.dc.MoveTo(float64(x), float64(y)) }

// LineTo implements richgui.Canvas.
func (c *Canvas) LineTo(x, y float32) { c.dc.LineTo(float64(x), float64(y)) }

// BezierTo implements richgui.Canvas.
func (c *Canvas) BezierTo(c1x, c1y, c2x, c2y, x, y float32) {
	c.dc.CubicTo(float64(c1x), float64(c1y), float64(c2x), float64(c2y), float64(x), float64(y))
}

// Arc implements richgui.Canvas.
func (c *Canvas) Arc(cx, cy, radius, a0, a1 float32) {
	c.dc.DrawArc(float64(cx), float64(cy), float64(radius), float64(a0), float64(a1))
}

// Rect implements richgui.Canvas.
func (c *Canvas) Rect(r richgui.Rect) {
	c.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
}

// RoundedRect implements richgui.Canvas.
func (c *Canvas) RoundedRect(r richgui.Rect, radius float32) {
	radius = float32(math.Min(float64(radius), math.Min(float64(r.W), float64(r.H))/2))
	if radius <= 0 {
		c.Rect(r)
		return
	}
	c.dc.DrawRoundedRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H), float64(radius))
}

// ClosePath implements richgui.Canvas.
func (c *Canvas) ClosePath() { c.dc.ClosePath() }

// Fill implements richgui.Canvas.
func (c *Canvas) Fill(p richgui.Paint) {
	if !p.Visible() {
		return
	}
	c.dc.SetFillStyle(c.pattern(p))
	c.dc.FillPreserve()
}

// Stroke implements richgui.Canvas.
func (c *Canvas) Stroke(p richgui.Paint, width float32) {
	if !p.Visible() || width <= 0 {
		return
	}
	c.dc.SetStrokeStyle(c.pattern(p))
	c.dc.SetLineWidth(float64(width))
	c.dc.StrokePreserve()
}

// Text implements richgui.Canvas.
func (c *Canvas) Text(fontName string, size float32, x, y float32, col uint32, s string) {
	if s == "" {
		return
	}
	c.dc.SetFontFace(c.face(fontName, size))
	c.dc.SetColor(toColor(col))
	c.dc.DrawString(s, float64(x), float64(y))
}
