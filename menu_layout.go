package richgui

import "math"

// MenuDirection is the horizontal growth direction of a menu from its anchor.
type MenuDirection int

const (
	LeftToRight MenuDirection = iota
	RightToLeft
)

func (d MenuDirection) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// Anchor is a candidate position for a menu plus the direction it grows in.
type Anchor struct {
	Direction MenuDirection
	X, Y      float32
}

// space returns the horizontal room available from the anchor.
func (a Anchor) space(screen Vec2) float32 {
	if a.Direction == RightToLeft {
		return a.X
	}
	return screen.X - a.X
}

// MenuLayout is the natural size of a menu and the rows of its items,
// relative to the menu's top-left corner.
type MenuLayout struct {
	Size Vec2
	Rows []Rect
}

// OpenedMenu is one level of the open menu stack.
type OpenedMenu struct {
	MenuIndex    int
	SelectedItem int // -1 when nothing is hovered
	Anchors      [2]Anchor
	Anchor       Anchor // the chosen candidate
	Bounds       Rect
	Rows         []Rect // absolute item rows
}

// MenuView is the pluggable look and geometry of a menu.
type MenuView struct {
	// Layout measures menu given the larger of the two available widths.
	Layout func(def *MenuDefinition, menu int, available float32) MenuLayout
	// ItemAnchors returns the candidate anchors for the child of item, preferred first.
	ItemAnchors func(m *OpenedMenu, item int) [2]Anchor
	// HitTest returns the item under p, or -1.
	HitTest func(def *MenuDefinition, m *OpenedMenu, p Vec2) int
	// Render draws one menu level.
	Render func(c Canvas, def *MenuDefinition, m *OpenedMenu)
}

// RootAnchors returns the anchor pair of a menu invoked at (x, y).
func RootAnchors(x, y float32) [2]Anchor {
	return [2]Anchor{{Direction: LeftToRight, X: x, Y: y}, {Direction: RightToLeft, X: x, Y: y}}
}

// chooseAnchor picks the first candidate with room for width, else the roomier one.
func chooseAnchor(screen Vec2, anchors [2]Anchor, width float32) Anchor {
	sa, sb := anchors[0].space(screen), anchors[1].space(screen)
	switch {
	case sa >= width:
		return anchors[0]
	case sb >= width:
		return anchors[1]
	case sa >= sb:
		return anchors[0]
	default:
		return anchors[1]
	}
}

// layoutMenu positions one menu level from its candidate anchors.
func layoutMenu(screen Vec2, def *MenuDefinition, view MenuView, m *OpenedMenu) {
	sa, sb := m.Anchors[0].space(screen), m.Anchors[1].space(screen)
	lay := view.Layout(def, m.MenuIndex, maxf(sa, sb))
	w, h := lay.Size.X, lay.Size.Y

	a := chooseAnchor(screen, m.Anchors, w)
	x := a.X
	if a.Direction == RightToLeft {
		x -= w
	}
	y := a.Y
	if y+h > screen.Y {
		y = screen.Y - h
	}
	if y < 0 {
		y = 0
	}

	m.Anchor = a
	m.Bounds = Rect{X: x, Y: y, W: w, H: h}
	m.Rows = m.Rows[:0]
	for _, r := range lay.Rows {
		m.Rows = append(m.Rows, Rect{X: r.X + x, Y: r.Y + y, W: r.W, H: r.H})
	}
}

// LayoutMenuStack lays out every open level top-down. The root keeps its own
// anchors; each deeper level is anchored off its parent's selected row.
func LayoutMenuStack(screen Vec2, def *MenuDefinition, view MenuView, stack []OpenedMenu) {
	for i := range stack {
		if i > 0 {
			parent := &stack[i-1]
			if parent.SelectedItem >= 0 && parent.SelectedItem < len(parent.Rows) {
				stack[i].Anchors = view.ItemAnchors(parent, parent.SelectedItem)
			}
		}
		layoutMenu(screen, def, view, &stack[i])
	}
}

// DefaultMenuView returns the standard text menu look, measured with shaper.
func DefaultMenuView(shaper TextShaper, style MenuStyle) MenuView {
	rowHeight := func(it MenuItem) float32 {
		if it.Separator {
			return style.SeparatorHeight
		}
		return style.ItemHeight
	}
	return MenuView{
		Layout: func(def *MenuDefinition, menu int, available float32) MenuLayout {
			items := def.SubMenus[menu].Items
			textW := float32(0)
			for _, it := range items {
				if !it.Separator {
					textW = maxf(textW, shaper.TextBounds(FontRegular, style.FontSize, it.Text).W)
				}
			}
			w := maxf(style.MinWidth, style.CheckWidth+textW+style.ArrowWidth+2*style.PaddingX)
			w = float32(math.Ceil(float64(w)))
			rows := make([]Rect, len(items))
			y := style.PaddingY
			for i, it := range items {
				h := rowHeight(it)
				rows[i] = Rect{X: 0, Y: y, W: w, H: h}
				y += h
			}
			return MenuLayout{Size: Vec2{X: w, Y: y + style.PaddingY}, Rows: rows}
		},

		ItemAnchors: func(m *OpenedMenu, item int) [2]Anchor {
			row := m.Rows[item]
			y := row.Y - style.PaddingY
			ltr := Anchor{Direction: LeftToRight, X: m.Bounds.Right(), Y: y}
			rtl := Anchor{Direction: RightToLeft, X: m.Bounds.X, Y: y}
			if m.Anchor.Direction == RightToLeft {
				return [2]Anchor{rtl, ltr}
			}
			return [2]Anchor{ltr, rtl}
		},

		HitTest: func(def *MenuDefinition, m *OpenedMenu, p Vec2) int {
			for i, r := range m.Rows {
				if r.Contains(p) {
					return i
				}
			}
			return -1
		},

		Render: func(c Canvas, def *MenuDefinition, m *OpenedMenu) {
			b := m.Bounds
			c.BeginPath()
			c.RoundedRect(b, style.Rounding)
			c.Fill(SolidPaint(style.BgColor))
			c.Stroke(SolidPaint(style.BorderColor), 1)

			fm := shaper.Metrics(FontRegular, style.FontSize)
			for i, it := range def.SubMenus[m.MenuIndex].Items {
				r := m.Rows[i]
				if it.Separator {
					y := r.Y + r.H/2
					c.BeginPath()
					c.MoveTo(r.X+style.PaddingX, y)
					c.LineTo(r.Right()-style.PaddingX, y)
					c.Stroke(SolidPaint(style.SeparatorColor), 1)
					continue
				}
				if i == m.SelectedItem && it.Enabled() {
					c.BeginPath()
					c.Rect(Rect{X: r.X + 2, Y: r.Y, W: r.W - 4, H: r.H})
					c.Fill(SolidPaint(style.HoverColor))
				}
				color := style.TextColor
				if !it.Enabled() {
					color = style.TextDisabledColor
				}
				if it.Checked {
					cx := r.X + style.PaddingX
					cy := r.Y + r.H/2
					c.BeginPath()
					c.MoveTo(cx, cy)
					c.LineTo(cx+3, cy+3)
					c.LineTo(cx+9, cy-4)
					c.Stroke(SolidPaint(color), 1.5)
				}
				baseline := r.Y + (r.H-fm.LineHeight)/2 + fm.Ascender
				c.Text(FontRegular, style.FontSize, r.X+style.PaddingX+style.CheckWidth, baseline, color, it.Text)
				if it.HasSubMenu() {
					ax := r.Right() - style.PaddingX - 4
					ay := r.Y + r.H/2
					c.BeginPath()
					c.MoveTo(ax, ay-4)
					c.LineTo(ax+4, ay)
					c.LineTo(ax, ay+4)
					c.ClosePath()
					c.Fill(SolidPaint(color))
				}
			}
		},
	}
}
