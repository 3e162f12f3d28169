package richgui

// Canvas is the vector drawing surface widgets render onto.
//
// It follows the usual save/restore model: Save pushes the current translation
// and scissor, Restore pops them. Paths are built with BeginPath and the path
// commands; Fill and Stroke paint the current path without clearing it. Text is
// drawn with its baseline at y.
//
// *DrawList implements Canvas for the GPU path; backend/raster implements it on
// the CPU for snapshots.
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float32)
	// IntersectScissor narrows the clip region to r (in current coordinates).
	IntersectScissor(r Rect)

	BeginPath()
	MoveTo(x, y float32)
	LineTo(x, y float32)
	BezierTo(c1x, c1y, c2x, c2y, x, y float32)
	Arc(cx, cy, radius, a0, a1 float32)
	Rect(r Rect)
	RoundedRect(r Rect, radius float32)
	ClosePath()
	Fill(p Paint)
	Stroke(p Paint, width float32)

	Text(font string, size float32, x, y float32, color uint32, s string)
}

// Paint is a solid color or a two-stop linear gradient.
type Paint struct {
	Color uint32

	Gradient bool
	Color2   uint32
	X0, Y0   float32
	X1, Y1   float32
}

// SolidPaint returns a single-color paint.
func SolidPaint(c uint32) Paint {
	return Paint{Color: c}
}

// LinearGradient returns a paint blending from c0 at (x0, y0) to c1 at (x1, y1).
func LinearGradient(x0, y0, x1, y1 float32, c0, c1 uint32) Paint {
	return Paint{Color: c0, Gradient: true, Color2: c1, X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// ColorAt returns the paint color at a point.
func (p Paint) ColorAt(x, y float32) uint32 {
	if !p.Gradient {
		return p.Color
	}
	dx, dy := p.X1-p.X0, p.Y1-p.Y0
	d := dx*dx + dy*dy
	if d == 0 {
		return p.Color
	}
	t := clampf(((x-p.X0)*dx+(y-p.Y0)*dy)/d, 0, 1)
	return lerpColor(p.Color, p.Color2, t)
}

// Visible reports whether any part of the paint has non-zero alpha.
func (p Paint) Visible() bool {
	if p.Color&0xFF000000 != 0 {
		return true
	}
	return p.Gradient && p.Color2&0xFF000000 != 0
}

func lerpColor(a, b uint32, t float32) uint32 {
	ar, ag, ab, aa := UnpackRGBA(a)
	br, bg, bb, ba := UnpackRGBA(b)
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return RGBA(mix(ar, br), mix(ag, bg), mix(ab, bb), mix(aa, ba))
}
