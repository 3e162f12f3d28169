package richgui

// MenuEventKind identifies what happened to a ContextMenu during Update.
type MenuEventKind int

const (
	MenuEventNone MenuEventKind = iota
	MenuEventItemClick
	MenuEventDismiss
)

func (k MenuEventKind) String() string {
	switch k {
	case MenuEventItemClick:
		return "item-click"
	case MenuEventDismiss:
		return "dismiss"
	default:
		return "none"
	}
}

// MenuEvent is the result of one ContextMenu.Update.
type MenuEvent struct {
	Kind MenuEventKind
	Menu int
	Item int
	// ID is the external id of the clicked item (ActionIndex > 0), else 0.
	ID   int
	Text string
}

// dragThreshold is how far the pointer must travel from the opening press before
// releasing that press over an item activates it.
const dragThreshold = 4

// ContextMenu drives a stack of open menus from per-frame input.
//
// The opening press may be held, dragged onto an item and released to pick it
// in one gesture. Any later press outside every open level dismisses the menu.
type ContextMenu struct {
	view  MenuView
	def   *MenuDefinition
	stack []OpenedMenu

	origin       Vec2
	firstPress   bool // the press that opened the menu is still held
	pressInside  bool
	hoveredLevel int
}

// NewContextMenu creates a closed menu drawn and measured by view.
func NewContextMenu(view MenuView) *ContextMenu {
	return &ContextMenu{view: view, hoveredLevel: -1}
}

// SetView replaces the menu's view (e.g. after a style change).
func (cm *ContextMenu) SetView(view MenuView) {
	cm.view = view
}

// Open shows def with its root anchored at (x, y). pressHeld tells whether the
// opening button is still down.
func (cm *ContextMenu) Open(def *MenuDefinition, x, y float32, pressHeld bool) {
	if def == nil || len(def.SubMenus) == 0 || len(def.SubMenus[0].Items) == 0 {
		return
	}
	cm.def = def
	cm.stack = append(cm.stack[:0], OpenedMenu{
		MenuIndex:    0,
		SelectedItem: -1,
		Anchors:      RootAnchors(x, y),
	})
	cm.origin = Vec2{X: x, Y: y}
	cm.firstPress = pressHeld
	cm.pressInside = false
	cm.hoveredLevel = -1
	menuLogger.Debug("menu opened", "x", x, "y", y, "items", len(def.SubMenus[0].Items))
}

// Close hides the menu.
func (cm *ContextMenu) Close() {
	cm.stack = cm.stack[:0]
	cm.def = nil
	cm.firstPress = false
	cm.pressInside = false
	cm.hoveredLevel = -1
}

// IsOpen reports whether any level is open.
func (cm *ContextMenu) IsOpen() bool { return len(cm.stack) > 0 }

// Stack returns the open levels, root first. The slice is owned by the menu.
func (cm *ContextMenu) Stack() []OpenedMenu { return cm.stack }

// Definition returns the open menu tree, or nil.
func (cm *ContextMenu) Definition() *MenuDefinition { return cm.def }

// Layout re-lays out the open stack for a screen of the given size.
func (cm *ContextMenu) Layout(screen Vec2) {
	if cm.IsOpen() {
		LayoutMenuStack(screen, cm.def, cm.view, cm.stack)
	}
}

// hit returns the deepest level containing p and the item under p there.
func (cm *ContextMenu) hit(p Vec2) (level, item int) {
	for i := len(cm.stack) - 1; i >= 0; i-- {
		if cm.stack[i].Bounds.Contains(p) {
			return i, cm.view.HitTest(cm.def, &cm.stack[i], p)
		}
	}
	return -1, -1
}

// ContainsPoint reports whether p is over any open level.
func (cm *ContextMenu) ContainsPoint(p Vec2) bool {
	level, _ := cm.hit(p)
	return level >= 0
}

// Update advances the menu state machine by one frame.
func (cm *ContextMenu) Update(in *InputState, screen Vec2) MenuEvent {
	if !cm.IsOpen() {
		return MenuEvent{}
	}
	cm.Layout(screen)

	if in.KeyPressed(KeyEscape) {
		in.ConsumeKey()
		cm.Close()
		menuLogger.Debug("menu dismissed", "reason", "escape")
		return MenuEvent{Kind: MenuEventDismiss}
	}

	p := in.MousePos()
	level, item := cm.hit(p)
	cm.hoveredLevel = level
	if level >= 0 {
		cm.hover(screen, level, item)
	}

	pressed := in.MouseClicked(MouseButtonLeft) || in.MouseClicked(MouseButtonRight)
	released := in.MouseReleased(MouseButtonLeft) || in.MouseReleased(MouseButtonRight)
	// While the opening button is held, a press edge can only be that press.
	if pressed && !cm.firstPress {
		if level < 0 {
			cm.Close()
			menuLogger.Debug("menu dismissed", "reason", "outside click")
			return MenuEvent{Kind: MenuEventDismiss}
		}
		cm.pressInside = true
	}

	if released {
		first := cm.firstPress
		inside := cm.pressInside
		cm.firstPress = false
		cm.pressInside = false

		dragged := first && (absf(p.X-cm.origin.X) > dragThreshold || absf(p.Y-cm.origin.Y) > dragThreshold)
		if level >= 0 && item >= 0 && (inside || dragged) {
			return cm.activate(level, item)
		}
	}
	return MenuEvent{}
}

// hover updates the selection of level and opens or closes its child level.
func (cm *ContextMenu) hover(screen Vec2, level, item int) {
	m := &cm.stack[level]
	it, ok := cm.def.Item(m.MenuIndex, item)
	if !ok || !it.Enabled() {
		m.SelectedItem = -1
		cm.stack = cm.stack[:level+1]
		return
	}
	m.SelectedItem = item
	if !it.HasSubMenu() {
		cm.stack = cm.stack[:level+1]
		return
	}
	if level+1 < len(cm.stack) && cm.stack[level+1].MenuIndex == it.SubMenuIndex {
		return
	}
	cm.stack = append(cm.stack[:level+1], OpenedMenu{
		MenuIndex:    it.SubMenuIndex,
		SelectedItem: -1,
		Anchors:      cm.view.ItemAnchors(m, item),
	})
	layoutMenu(screen, cm.def, cm.view, &cm.stack[level+1])
}

// activate fires the item's action. Submenu parents and disabled items do nothing.
func (cm *ContextMenu) activate(level, item int) MenuEvent {
	menu := cm.stack[level].MenuIndex
	it, ok := cm.def.Item(menu, item)
	if !ok || !it.Enabled() || it.HasSubMenu() {
		return MenuEvent{}
	}
	ev := MenuEvent{Kind: MenuEventItemClick, Menu: menu, Item: item, Text: it.Text}
	if it.ActionIndex > 0 {
		ev.ID = it.ActionIndex
	}
	def := cm.def
	cm.Close()
	def.invoke(it)
	menuLogger.Debug("menu item clicked", "menu", menu, "item", item, "text", it.Text)
	return ev
}

// Draw renders every open level, root first.
func (cm *ContextMenu) Draw(c Canvas) {
	for i := range cm.stack {
		cm.view.Render(c, cm.def, &cm.stack[i])
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
