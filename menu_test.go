package richgui

import "testing"

const testMenuWidth = 50

// fixedMenuView lays every menu out testMenuWidth wide with 20px rows.
func fixedMenuView() MenuView {
	return MenuView{
		Layout: func(def *MenuDefinition, menu int, available float32) MenuLayout {
			items := def.SubMenus[menu].Items
			rows := make([]Rect, len(items))
			for i := range items {
				rows[i] = Rect{Y: float32(i) * 20, W: testMenuWidth, H: 20}
			}
			return MenuLayout{Size: Vec2{X: testMenuWidth, Y: float32(len(items)) * 20}, Rows: rows}
		},
		ItemAnchors: func(m *OpenedMenu, item int) [2]Anchor {
			y := m.Rows[item].Y
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
		Render: func(Canvas, *MenuDefinition, *OpenedMenu) {},
	}
}

func TestMenuBuilder(t *testing.T) {
	called := 0
	def := NewMenuBuilder().
		Separator().
		Item("Cut", func() { called++ }).
		Separator().
		Separator().
		Disabled("Paste").
		BeginSubMenu("More").
		ItemID("Export", 42).
		EndSubMenu().
		Separator().
		Build()

	root := def.SubMenus[0].Items
	if len(root) != 4 {
		t.Fatalf("Expected 4 root items, got %d: %+v", len(root), root)
	}
	if root[0].Text != "Cut" || !root[1].Separator || root[2].Text != "Paste" || root[3].Text != "More" {
		t.Errorf("Unexpected root items: %+v", root)
	}
	if !root[0].Enabled() || root[2].Enabled() || root[1].Enabled() {
		t.Error("Expected Cut enabled, Paste and the separator disabled")
	}
	if !root[3].HasSubMenu() || root[3].SubMenuIndex != 1 {
		t.Errorf("Expected More to open submenu 1, got %d", root[3].SubMenuIndex)
	}
	if it, ok := def.Item(1, 0); !ok || it.ActionIndex != 42 {
		t.Errorf("Expected Export with id 42, got %+v", it)
	}
	if _, ok := def.Item(3, 0); ok {
		t.Error("Expected an out-of-range menu to report false")
	}

	def.invoke(root[0])
	if called != 1 {
		t.Errorf("Expected the callback to run once, got %d", called)
	}
}

func TestMenuBuilderUnbalanced(t *testing.T) {
	def := NewMenuBuilder().BeginSubMenu("Open").Item("x", func() {}).Build()
	if len(def.SubMenus) != 2 || len(def.SubMenus[1].Items) != 1 {
		t.Errorf("Expected open submenus to be closed by Build, got %+v", def.SubMenus)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected EndSubMenu on the root to panic")
		}
	}()
	NewMenuBuilder().EndSubMenu()
}

func TestMenuAnchorDirection(t *testing.T) {
	def := NewMenuBuilder().Item("a", func() {}).Build()
	screen := Vec2{X: 100, Y: 100}

	tests := []struct {
		x     float32
		dir   MenuDirection
		left  float32
		label string
	}{
		{10, LeftToRight, 10, "room on the right"},
		{95, RightToLeft, 45, "flips near the right edge"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			m := OpenedMenu{SelectedItem: -1, Anchors: RootAnchors(tt.x, 10)}
			layoutMenu(screen, def, fixedMenuView(), &m)
			if m.Anchor.Direction != tt.dir {
				t.Errorf("Expected direction %v, got %v", tt.dir, m.Anchor.Direction)
			}
			if m.Bounds.X != tt.left {
				t.Errorf("Expected left edge %v, got %v", tt.left, m.Bounds.X)
			}
		})
	}
}

func TestMenuAnchorNoRoom(t *testing.T) {
	anchors := RootAnchors(30, 0)
	if a := chooseAnchor(Vec2{X: 60, Y: 60}, anchors, 50); a.Direction != LeftToRight {
		t.Errorf("Expected the preferred anchor on a tie, got %v", a.Direction)
	}
	anchors = RootAnchors(40, 0)
	if a := chooseAnchor(Vec2{X: 60, Y: 60}, anchors, 50); a.Direction != RightToLeft {
		t.Errorf("Expected the roomier anchor, got %v", a.Direction)
	}
}

func TestMenuClampedVertically(t *testing.T) {
	def := NewMenuBuilder().Item("a", func() {}).Item("b", func() {}).Build()
	m := OpenedMenu{SelectedItem: -1, Anchors: RootAnchors(10, 90)}
	layoutMenu(Vec2{X: 100, Y: 100}, def, fixedMenuView(), &m)
	if m.Bounds.Y != 60 {
		t.Errorf("Expected the menu pushed up to 60, got %v", m.Bounds.Y)
	}
	if m.Rows[1].Y != 80 {
		t.Errorf("Expected absolute rows to follow, got %v", m.Rows[1].Y)
	}
}

func TestChildAnchorsFollowParentDirection(t *testing.T) {
	view := fixedMenuView()
	parent := OpenedMenu{
		Anchor: Anchor{Direction: RightToLeft},
		Bounds: Rect{X: 40, Y: 0, W: 50, H: 40},
		Rows:   []Rect{{X: 40, Y: 0, W: 50, H: 20}, {X: 40, Y: 20, W: 50, H: 20}},
	}
	a := view.ItemAnchors(&parent, 1)
	if a[0].Direction != RightToLeft || a[0].X != 40 || a[0].Y != 20 {
		t.Errorf("Expected the child to prefer opening leftwards at (40, 20), got %+v", a[0])
	}
}

func TestDefaultMenuViewLayout(t *testing.T) {
	style := MenuStyle{FontSize: 16, ItemHeight: 20, SeparatorHeight: 6, PaddingX: 5, PaddingY: 4, CheckWidth: 10, ArrowWidth: 10}
	view := DefaultMenuView(NewMonoShaper(), style)
	def := NewMenuBuilder().Item("abcd", func() {}).Separator().Item("ab", nil).Build()

	lay := view.Layout(def, 0, 1000)
	// check + widest text + arrow + padding
	if lay.Size.X != 62 {
		t.Errorf("Expected width 62, got %v", lay.Size.X)
	}
	if lay.Size.Y != 4+20+6+20+4 {
		t.Errorf("Expected height 54, got %v", lay.Size.Y)
	}
	if lay.Rows[2].Y != 30 {
		t.Errorf("Expected the third row at 30, got %v", lay.Rows[2].Y)
	}

	style.MinWidth = 120
	view = DefaultMenuView(NewMonoShaper(), style)
	if got := view.Layout(def, 0, 1000).Size.X; got != 120 {
		t.Errorf("Expected MinWidth 120, got %v", got)
	}
}

// menuFrame applies one frame of pointer input to the menu.
func menuFrame(cm *ContextMenu, in *InputState, x, y float32, button MouseButton, down bool) MenuEvent {
	in.Reset()
	in.SetMousePos(x, y)
	in.SetMouseButton(button, down)
	return cm.Update(in, Vec2{X: 200, Y: 200})
}

func openTestMenu(def *MenuDefinition, held bool) *ContextMenu {
	cm := NewContextMenu(fixedMenuView())
	cm.Open(def, 10, 10, held)
	return cm
}

func TestMenuOpeningPressIgnored(t *testing.T) {
	def := NewMenuBuilder().Item("a", func() {}).Item("b", func() {}).Build()
	cm := openTestMenu(def, true)
	in := NewInputState()

	if ev := menuFrame(cm, in, 10, 10, MouseButtonRight, true); ev.Kind != MenuEventNone {
		t.Errorf("Expected the opening press to be ignored, got %v", ev.Kind)
	}
	// Releasing in place does not pick the item under the pointer.
	if ev := menuFrame(cm, in, 11, 11, MouseButtonRight, false); ev.Kind != MenuEventNone {
		t.Errorf("Expected no event on an undragged release, got %v", ev.Kind)
	}
	if !cm.IsOpen() {
		t.Error("Expected the menu to stay open")
	}
}

func TestMenuDragRelease(t *testing.T) {
	clicked := ""
	def := NewMenuBuilder().
		Item("a", func() { clicked = "a" }).
		Item("b", func() { clicked = "b" }).
		Build()
	cm := openTestMenu(def, true)
	in := NewInputState()

	menuFrame(cm, in, 10, 10, MouseButtonRight, true)
	menuFrame(cm, in, 30, 35, MouseButtonRight, true)
	ev := menuFrame(cm, in, 30, 35, MouseButtonRight, false)
	if ev.Kind != MenuEventItemClick || ev.Item != 1 || ev.Text != "b" {
		t.Errorf("Expected a click on item 1, got %+v", ev)
	}
	if clicked != "b" {
		t.Errorf("Expected callback b to run, got %q", clicked)
	}
	if cm.IsOpen() {
		t.Error("Expected the menu to close after activation")
	}
}

func TestMenuClickInside(t *testing.T) {
	def := NewMenuBuilder().Item("a", nil).ItemID("b", 9).Build()
	cm := openTestMenu(def, false)
	in := NewInputState()

	menuFrame(cm, in, 0, 0, MouseButtonLeft, false)
	menuFrame(cm, in, 30, 20, MouseButtonLeft, true)
	if ev := menuFrame(cm, in, 30, 20, MouseButtonLeft, false); ev.Kind != MenuEventNone {
		t.Errorf("Expected a disabled item to do nothing, got %+v", ev)
	}
	if !cm.IsOpen() {
		t.Fatal("Expected the menu to stay open")
	}

	menuFrame(cm, in, 30, 35, MouseButtonLeft, true)
	ev := menuFrame(cm, in, 30, 35, MouseButtonLeft, false)
	if ev.Kind != MenuEventItemClick || ev.ID != 9 {
		t.Errorf("Expected a click reporting id 9, got %+v", ev)
	}
}

func TestMenuDismiss(t *testing.T) {
	def := NewMenuBuilder().Item("a", func() {}).Build()

	cm := openTestMenu(def, false)
	in := NewInputState()
	menuFrame(cm, in, 0, 0, MouseButtonLeft, false)
	if ev := menuFrame(cm, in, 150, 150, MouseButtonLeft, true); ev.Kind != MenuEventDismiss {
		t.Errorf("Expected an outside press to dismiss, got %v", ev.Kind)
	}
	if cm.IsOpen() {
		t.Error("Expected the menu closed")
	}

	cm = openTestMenu(def, false)
	in.Reset()
	in.SetMouseButton(MouseButtonLeft, false)
	in.PostKey(KeyEvent{Action: KeyActionPress, Key: KeyEscape})
	if ev := cm.Update(in, Vec2{X: 200, Y: 200}); ev.Kind != MenuEventDismiss {
		t.Errorf("Expected Escape to dismiss, got %v", ev.Kind)
	}
	if !in.Key.IsZero() {
		t.Error("Expected Escape to be consumed")
	}
}

func TestMenuPressOnFirstFrame(t *testing.T) {
	def := NewMenuBuilder().Item("a", func() {}).Item("b", func() {}).Build()

	cm := openTestMenu(def, false)
	in := NewInputState()
	if ev := menuFrame(cm, in, 150, 150, MouseButtonLeft, true); ev.Kind != MenuEventDismiss {
		t.Errorf("Expected a press outside on the first frame to dismiss, got %v", ev.Kind)
	}

	clicked := false
	def = NewMenuBuilder().Item("a", func() { clicked = true }).Build()
	cm = openTestMenu(def, false)
	in = NewInputState()
	menuFrame(cm, in, 30, 20, MouseButtonLeft, true)
	if ev := menuFrame(cm, in, 30, 20, MouseButtonLeft, false); ev.Kind != MenuEventItemClick {
		t.Errorf("Expected a click on the first frame to activate, got %v", ev.Kind)
	}
	if !clicked {
		t.Error("Expected the item callback to run")
	}
}

func TestSubMenu(t *testing.T) {
	picked := false
	def := NewMenuBuilder().
		Item("a", func() {}).
		BeginSubMenu("More").
		Item("x", func() { picked = true }).
		Disabled("y").
		EndSubMenu().
		Build()
	cm := openTestMenu(def, false)
	in := NewInputState()

	menuFrame(cm, in, 30, 40, MouseButtonLeft, false)
	stack := cm.Stack()
	if len(stack) != 2 {
		t.Fatalf("Expected hovering More to open a second level, got %d levels", len(stack))
	}
	if stack[1].Bounds.X != 60 || stack[1].Bounds.Y != 30 {
		t.Errorf("Expected the submenu at (60, 30), got %+v", stack[1].Bounds)
	}

	// Back on a plain root item closes the submenu.
	menuFrame(cm, in, 30, 20, MouseButtonLeft, false)
	if len(cm.Stack()) != 1 {
		t.Errorf("Expected the submenu closed, got %d levels", len(cm.Stack()))
	}

	menuFrame(cm, in, 30, 40, MouseButtonLeft, false)
	menuFrame(cm, in, 80, 40, MouseButtonLeft, true)
	ev := menuFrame(cm, in, 80, 40, MouseButtonLeft, false)
	if ev.Kind != MenuEventItemClick || ev.Menu != 1 || !picked {
		t.Errorf("Expected the submenu item to run, got %+v (picked %v)", ev, picked)
	}
}

func TestSubMenuParentNotActivated(t *testing.T) {
	def := NewMenuBuilder().BeginSubMenu("More").Item("x", func() {}).EndSubMenu().Build()
	cm := openTestMenu(def, false)
	in := NewInputState()
	menuFrame(cm, in, 0, 0, MouseButtonLeft, false)
	menuFrame(cm, in, 30, 20, MouseButtonLeft, true)
	if ev := menuFrame(cm, in, 30, 20, MouseButtonLeft, false); ev.Kind != MenuEventNone {
		t.Errorf("Expected clicking a submenu parent to do nothing, got %v", ev.Kind)
	}
	if !cm.IsOpen() {
		t.Error("Expected the menu to stay open")
	}
}

func TestOpenEmptyMenu(t *testing.T) {
	cm := NewContextMenu(fixedMenuView())
	cm.Open(NewMenuBuilder().Build(), 0, 0, false)
	if cm.IsOpen() {
		t.Error("Expected an empty menu not to open")
	}
}
