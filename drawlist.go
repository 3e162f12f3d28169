package richgui

import (
	"math"
	"sync"
)

// drawListPool provides efficient reuse of DrawList buffers.
// This avoids allocations on every frame, which is critical for
// immediate-mode UI where we rebuild the entire draw list each frame.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 1024),
			IdxBuffer: make([]uint16, 0, 2048),
			CmdBuffer: make([]DrawCmd, 0, 16),
			clipStack: make([][4]float32, 0, 8),
		}
	},
}

// AcquireDrawList gets a DrawList from the pool.
// Call ReleaseDrawList when done to return it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		dl.Glyphs = nil
		drawListPool.Put(dl)
	}
}

// maxCmdVertices is the most vertices one command can address with uint16 indices.
const maxCmdVertices = 1 << 16

// DrawList accumulates draw commands for a frame.
// It batches primitives by texture to minimize GPU state changes,
// and implements Canvas by flattening paths into triangles.
type DrawList struct {
	CmdBuffer []DrawCmd // Draw commands
	VtxBuffer []Vertex  // Vertex data
	IdxBuffer []uint16  // Index data

	// Glyphs rasterises text for Canvas.Text. Text is skipped when nil.
	Glyphs GlyphSource

	clipStack    [][4]float32 // Clip rectangle stack
	currentClip  [4]float32   // Current clip rectangle
	textureID    uint32       // Current texture for batching
	cmdOffset    uint32       // Vertex offset for current command
	idxCmdOffset uint32       // Index offset for current command

	// Canvas state
	tx, ty float32
	states []canvasState
	path   []subpath
}

type canvasState struct {
	tx, ty float32
	clip   [4]float32
}

type subpath struct {
	pts    []Vec2
	closed bool
}

var noClip = [4]float32{-1e9, -1e9, 1e9, 1e9}

// Clear resets the DrawList for a new frame.
// Retains allocated capacity to avoid reallocations.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.currentClip = noClip
	dl.textureID = 0
	dl.cmdOffset = 0
	dl.idxCmdOffset = 0
	dl.tx, dl.ty = 0, 0
	dl.states = dl.states[:0]
	dl.path = dl.path[:0]
}

// PushClipRect pushes a new clip rectangle onto the stack.
// All subsequent primitives will be clipped to this rectangle.
func (dl *DrawList) PushClipRect(x1, y1, x2, y2 float32) {
	dl.clipStack = append(dl.clipStack, dl.currentClip)
	dl.currentClip = [4]float32{x1, y1, x2, y2}
	dl.splitDraw() // Force new command with new clip rect
}

// PopClipRect pops the clip rectangle stack.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n > 0 {
		dl.currentClip = dl.clipStack[n-1]
		dl.clipStack = dl.clipStack[:n-1]
		dl.splitDraw() // Force new command with restored clip rect
	}
}

// ClipRect returns the current clip rectangle as x1, y1, x2, y2.
func (dl *DrawList) ClipRect() [4]float32 {
	return dl.currentClip
}

// SetTexture sets the current texture for subsequent primitives.
func (dl *DrawList) SetTexture(textureID uint32) {
	if dl.textureID != textureID {
		dl.textureID = textureID
		dl.splitDraw()
	}
}

// splitDraw finalizes the current command and starts a new one.
func (dl *DrawList) splitDraw() {
	// Finalize current command if it has any indices
	if len(dl.CmdBuffer) > 0 {
		lastCmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		lastCmd.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}

	// Start new command
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:     dl.currentClip,
		TextureID:    dl.textureID,
		VertexOffset: uint32(len(dl.VtxBuffer)),
		IndexOffset:  uint32(len(dl.IdxBuffer)),
	})
	dl.cmdOffset = uint32(len(dl.VtxBuffer))
	dl.idxCmdOffset = uint32(len(dl.IdxBuffer))
}

// addVertices adds vertices and returns the starting index.
// A new command is started when the current one cannot address them.
func (dl *DrawList) addVertices(verts ...Vertex) uint16 {
	if len(dl.CmdBuffer) == 0 || len(dl.VtxBuffer)-int(dl.cmdOffset)+len(verts) > maxCmdVertices {
		dl.splitDraw()
	}
	startIdx := uint16(len(dl.VtxBuffer) - int(dl.cmdOffset))
	dl.VtxBuffer = append(dl.VtxBuffer, verts...)
	return startIdx
}

// addIndices adds indices (relative to current command's vertex offset).
func (dl *DrawList) addIndices(indices ...uint16) {
	dl.IdxBuffer = append(dl.IdxBuffer, indices...)
}

// AddRect draws a filled rectangle.
func (dl *DrawList) AddRect(x, y, w, h float32, color uint32) {
	if color&0xFF000000 == 0 { // Skip fully transparent
		return
	}

	idx := dl.addVertices(
		Vertex{Pos: [2]float32{x, y}, Color: color},
		Vertex{Pos: [2]float32{x + w, y}, Color: color},
		Vertex{Pos: [2]float32{x + w, y + h}, Color: color},
		Vertex{Pos: [2]float32{x, y + h}, Color: color},
	)

	dl.addIndices(idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddLine draws a line between two points.
// Uses a quad to create thickness.
func (dl *DrawList) AddLine(x1, y1, x2, y2 float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}

	// Calculate perpendicular direction for thickness
	dx := x2 - x1
	dy := y2 - y1
	inv := float32(1.0)
	if dx != 0 || dy != 0 {
		inv = 1.0 / sqrtf(dx*dx+dy*dy)
	}

	// Normal perpendicular to line
	nx := -dy * inv * thickness * 0.5
	ny := dx * inv * thickness * 0.5

	idx := dl.addVertices(
		Vertex{Pos: [2]float32{x1 + nx, y1 + ny}, Color: color},
		Vertex{Pos: [2]float32{x2 + nx, y2 + ny}, Color: color},
		Vertex{Pos: [2]float32{x2 - nx, y2 - ny}, Color: color},
		Vertex{Pos: [2]float32{x1 - nx, y1 - ny}, Color: color},
	)

	dl.addIndices(idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddTriangle draws a filled triangle.
func (dl *DrawList) AddTriangle(x1, y1, x2, y2, x3, y3 float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}

	idx := dl.addVertices(
		Vertex{Pos: [2]float32{x1, y1}, Color: color},
		Vertex{Pos: [2]float32{x2, y2}, Color: color},
		Vertex{Pos: [2]float32{x3, y3}, Color: color},
	)

	dl.addIndices(idx, idx+1, idx+2)
}

// AddGlyphQuads draws a slice of glyph quads with the specified color.
func (dl *DrawList) AddGlyphQuads(quads []GlyphQuad, color uint32) {
	if color&0xFF000000 == 0 || len(quads) == 0 {
		return
	}

	for _, q := range quads {
		vtxIdx := dl.addVertices(
			Vertex{Pos: [2]float32{q.X0, q.Y0}, TexCoord: [2]float32{q.U0, q.V0}, Color: color},
			Vertex{Pos: [2]float32{q.X1, q.Y0}, TexCoord: [2]float32{q.U1, q.V0}, Color: color},
			Vertex{Pos: [2]float32{q.X1, q.Y1}, TexCoord: [2]float32{q.U1, q.V1}, Color: color},
			Vertex{Pos: [2]float32{q.X0, q.Y1}, TexCoord: [2]float32{q.U0, q.V1}, Color: color},
		)
		dl.addIndices(vtxIdx, vtxIdx+1, vtxIdx+2, vtxIdx, vtxIdx+2, vtxIdx+3)
	}
}

// Finalize prepares the DrawList for rendering.
// Must be called after all primitives are added.
func (dl *DrawList) Finalize() {
	// Finalize the last command
	if len(dl.CmdBuffer) > 0 {
		lastCmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		lastCmd.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}

	// Remove empty commands
	filtered := dl.CmdBuffer[:0]
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount > 0 {
			filtered = append(filtered, cmd)
		}
	}
	dl.CmdBuffer = filtered
}

// Save implements Canvas.
func (dl *DrawList) Save() {
	dl.states = append(dl.states, canvasState{tx: dl.tx, ty: dl.ty, clip: dl.currentClip})
}

// Restore implements Canvas.
func (dl *DrawList) Restore() {
	n := len(dl.states)
	if n == 0 {
		return
	}
	s := dl.states[n-1]
	dl.states = dl.states[:n-1]
	dl.tx, dl.ty = s.tx, s.ty
	if s.clip != dl.currentClip {
		dl.currentClip = s.clip
		dl.splitDraw()
	}
}

// Translate implements Canvas.
func (dl *DrawList) Translate(dx, dy float32) {
	dl.tx += dx
	dl.ty += dy
}

// IntersectScissor implements Canvas.
func (dl *DrawList) IntersectScissor(r Rect) {
	c := dl.currentClip
	nc := [4]float32{
		maxf(c[0], r.X+dl.tx),
		maxf(c[1], r.Y+dl.ty),
		minf(c[2], r.X+r.W+dl.tx),
		minf(c[3], r.Y+r.H+dl.ty),
	}
	if nc[2] < nc[0] {
		nc[2] = nc[0]
	}
	if nc[3] < nc[1] {
		nc[3] = nc[1]
	}
	if nc != dl.currentClip {
		dl.currentClip = nc
		dl.splitDraw()
	}
}

// BeginPath implements Canvas.
func (dl *DrawList) BeginPath() {
	dl.path = dl.path[:0]
}

func (dl *DrawList) current() *subpath {
	if len(dl.path) == 0 || dl.path[len(dl.path)-1].closed {
		dl.path = append(dl.path, subpath{})
	}
	return &dl.path[len(dl.path)-1]
}

func (dl *DrawList) lastPoint() (Vec2, bool) {
	if len(dl.path) == 0 {
		return Vec2{}, false
	}
	sp := &dl.path[len(dl.path)-1]
	if sp.closed || len(sp.pts) == 0 {
		return Vec2{}, false
	}
	return sp.pts[len(sp.pts)-1], true
}

// MoveTo implements Canvas.
func (dl *DrawList) MoveTo(x, y float32) {
	dl.path = append(dl.path, subpath{pts: []Vec2{{X: x + dl.tx, Y: y + dl.ty}}})
}

// LineTo implements Canvas.
func (dl *DrawList) LineTo(x, y float32) {
	sp := dl.current()
	p := Vec2{X: x + dl.tx, Y: y + dl.ty}
	if n := len(sp.pts); n > 0 && sp.pts[n-1] == p {
		return
	}
	sp.pts = append(sp.pts, p)
}

const curveSegments = 12

// BezierTo implements Canvas.
func (dl *DrawList) BezierTo(c1x, c1y, c2x, c2y, x, y float32) {
	p0, ok := dl.lastPoint()
	if !ok {
		dl.MoveTo(c1x, c1y)
		p0 = Vec2{X: c1x + dl.tx, Y: c1y + dl.ty}
	}
	p0 = p0.Sub(Vec2{X: dl.tx, Y: dl.ty})
	for i := 1; i <= curveSegments; i++ {
		t := float32(i) / curveSegments
		u := 1 - t
		bx := u*u*u*p0.X + 3*u*u*t*c1x + 3*u*t*t*c2x + t*t*t*x
		by := u*u*u*p0.Y + 3*u*u*t*c1y + 3*u*t*t*c2y + t*t*t*y
		dl.LineTo(bx, by)
	}
}

// Arc implements Canvas. Angles are in radians, clockwise on screen.
func (dl *DrawList) Arc(cx, cy, radius, a0, a1 float32) {
	da := a1 - a0
	n := int(math.Ceil(math.Abs(float64(da)) / (math.Pi / 8)))
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		a := float64(a0 + da*float32(i)/float32(n))
		x := cx + radius*float32(math.Cos(a))
		y := cy + radius*float32(math.Sin(a))
		if _, ok := dl.lastPoint(); !ok && i == 0 {
			dl.MoveTo(x, y)
			continue
		}
		dl.LineTo(x, y)
	}
}

// Rect implements Canvas.
func (dl *DrawList) Rect(r Rect) {
	dl.MoveTo(r.X, r.Y)
	dl.LineTo(r.X+r.W, r.Y)
	dl.LineTo(r.X+r.W, r.Y+r.H)
	dl.LineTo(r.X, r.Y+r.H)
	dl.ClosePath()
}

// RoundedRect implements Canvas.
func (dl *DrawList) RoundedRect(r Rect, radius float32) {
	radius = minf(radius, minf(r.W, r.H)/2)
	if radius <= 0 {
		dl.Rect(r)
		return
	}
	const halfPi = math.Pi / 2
	dl.MoveTo(r.X+radius, r.Y)
	dl.Arc(r.X+r.W-radius, r.Y+radius, radius, -halfPi, 0)
	dl.Arc(r.X+r.W-radius, r.Y+r.H-radius, radius, 0, halfPi)
	dl.Arc(r.X+radius, r.Y+r.H-radius, radius, halfPi, math.Pi)
	dl.Arc(r.X+radius, r.Y+radius, radius, math.Pi, 3*halfPi)
	dl.ClosePath()
}

// ClosePath implements Canvas.
func (dl *DrawList) ClosePath() {
	if len(dl.path) > 0 {
		sp := &dl.path[len(dl.path)-1]
		if n := len(sp.pts); n > 1 && sp.pts[0] == sp.pts[n-1] {
			sp.pts = sp.pts[:n-1]
		}
		sp.closed = true
	}
}

// Fill implements Canvas. Each subpath is filled as a simple polygon.
func (dl *DrawList) Fill(p Paint) {
	if !p.Visible() {
		return
	}
	for _, sp := range dl.path {
		if len(sp.pts) < 3 {
			continue
		}
		tris := triangulate(sp.pts)
		if len(tris) == 0 {
			continue
		}
		verts := make([]Vertex, len(sp.pts))
		for i, pt := range sp.pts {
			verts[i] = Vertex{Pos: [2]float32{pt.X, pt.Y}, Color: p.ColorAt(pt.X, pt.Y)}
		}
		base := dl.addVertices(verts...)
		for _, t := range tris {
			dl.addIndices(base + uint16(t))
		}
	}
}

// Stroke implements Canvas.
func (dl *DrawList) Stroke(p Paint, width float32) {
	if !p.Visible() {
		return
	}
	for _, sp := range dl.path {
		n := len(sp.pts)
		for i := 0; i+1 < n; i++ {
			a, b := sp.pts[i], sp.pts[i+1]
			dl.AddLine(a.X, a.Y, b.X, b.Y, p.ColorAt(a.X, a.Y), width)
		}
		if sp.closed && n > 2 {
			a, b := sp.pts[n-1], sp.pts[0]
			dl.AddLine(a.X, a.Y, b.X, b.Y, p.ColorAt(a.X, a.Y), width)
		}
	}
}

// Text implements Canvas.
func (dl *DrawList) Text(font string, size float32, x, y float32, color uint32, s string) {
	if dl.Glyphs == nil || s == "" || color&0xFF000000 == 0 {
		return
	}
	tex, quads := dl.Glyphs.GlyphQuads(font, size, x+dl.tx, y+dl.ty, s)
	prev := dl.textureID
	dl.SetTexture(tex)
	dl.AddGlyphQuads(quads, color)
	dl.SetTexture(prev)
}

// triangulate ear-clips a simple polygon and returns triangle indices into pts.
func triangulate(pts []Vec2) []int {
	n := len(pts)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	area := float32(0)
	for i := range pts {
		j := (i + 1) % n
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	for i := range idx {
		if area >= 0 {
			idx[i] = i
		} else {
			idx[i] = n - 1 - i
		}
	}

	out := make([]int, 0, (n-2)*3)
	for guard := 0; len(idx) > 3 && guard < n*n; guard++ {
		clipped := false
		for i := range idx {
			m := len(idx)
			ip, ic, in := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
			a, b, c := pts[ip], pts[ic], pts[in]
			cr := cross(a, b, c)
			if cr == 0 {
				// Degenerate vertex, drop it.
				idx = append(idx[:i], idx[i+1:]...)
				clipped = true
				break
			}
			if cr < 0 || anyInside(pts, idx, ip, ic, in) {
				continue
			}
			out = append(out, ip, ic, in)
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			break
		}
	}
	if len(idx) >= 3 {
		// Fan whatever is left (only reached for self-intersecting input).
		for i := 1; i+1 < len(idx); i++ {
			if cross(pts[idx[0]], pts[idx[i]], pts[idx[i+1]]) != 0 {
				out = append(out, idx[0], idx[i], idx[i+1])
			}
		}
	}
	return out
}

func cross(a, b, c Vec2) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func anyInside(pts []Vec2, idx []int, ia, ib, ic int) bool {
	a, b, c := pts[ia], pts[ib], pts[ic]
	for _, k := range idx {
		if k == ia || k == ib || k == ic {
			continue
		}
		p := pts[k]
		if p == a || p == b || p == c {
			continue
		}
		if cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0 {
			return true
		}
	}
	return false
}

func sqrtf(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}
