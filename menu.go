package richgui

import "fmt"

// NoSubMenu marks a MenuItem without a child menu.
const NoSubMenu = -1

// MenuItem is one row of a SubMenu.
//
// ActionIndex encodes what activating the item does: 0 means disabled, a negative
// value -(i+1) runs callback i of the definition, a positive value is an
// external id reported back in the MenuEvent.
type MenuItem struct {
	Separator    bool
	Checked      bool
	Text         string
	ActionIndex  int
	SubMenuIndex int
}

// HasSubMenu reports whether hovering the item opens a child menu.
func (it MenuItem) HasSubMenu() bool { return it.SubMenuIndex != NoSubMenu }

// Enabled reports whether the item can be hovered and activated.
func (it MenuItem) Enabled() bool {
	return !it.Separator && (it.ActionIndex != 0 || it.HasSubMenu())
}

// SubMenu is an ordered list of items.
type SubMenu struct {
	Items []MenuItem
}

// MenuDefinition is a finalized menu tree. SubMenus[0] is the root.
type MenuDefinition struct {
	SubMenus  []SubMenu
	Callbacks []func()
}

// Item returns item i of menu, or false when out of range.
func (d *MenuDefinition) Item(menu, i int) (MenuItem, bool) {
	if d == nil || menu < 0 || menu >= len(d.SubMenus) {
		return MenuItem{}, false
	}
	items := d.SubMenus[menu].Items
	if i < 0 || i >= len(items) {
		return MenuItem{}, false
	}
	return items[i], true
}

// invoke runs the callback bound to it, if any.
func (d *MenuDefinition) invoke(it MenuItem) {
	if it.ActionIndex >= 0 {
		return
	}
	i := -(it.ActionIndex + 1)
	if i < len(d.Callbacks) && d.Callbacks[i] != nil {
		d.Callbacks[i]()
	}
}

// MenuBuilder collects menu contributions into a MenuDefinition.
// Items go into the innermost open submenu.
type MenuBuilder struct {
	def   MenuDefinition
	stack []int
}

// NewMenuBuilder returns a builder with an empty root menu.
func NewMenuBuilder() *MenuBuilder {
	return &MenuBuilder{
		def:   MenuDefinition{SubMenus: []SubMenu{{}}},
		stack: []int{0},
	}
}

func (b *MenuBuilder) add(it MenuItem) *MenuBuilder {
	cur := b.stack[len(b.stack)-1]
	b.def.SubMenus[cur].Items = append(b.def.SubMenus[cur].Items, it)
	return b
}

// Len returns the number of items in the innermost open menu.
func (b *MenuBuilder) Len() int {
	return len(b.def.SubMenus[b.stack[len(b.stack)-1]].Items)
}

// Item adds an item that runs fn when clicked. A nil fn adds a disabled item.
func (b *MenuBuilder) Item(text string, fn func()) *MenuBuilder {
	return b.CheckedItem(text, false, fn)
}

// CheckedItem adds an item with a check mark state.
func (b *MenuBuilder) CheckedItem(text string, checked bool, fn func()) *MenuBuilder {
	action := 0
	if fn != nil {
		b.def.Callbacks = append(b.def.Callbacks, fn)
		action = -len(b.def.Callbacks)
	}
	return b.add(MenuItem{Text: text, Checked: checked, ActionIndex: action, SubMenuIndex: NoSubMenu})
}

// ItemID adds an item reporting id in the ItemClick event. id must be positive.
func (b *MenuBuilder) ItemID(text string, id int) *MenuBuilder {
	if id <= 0 {
		panic(fmt.Sprintf("richgui: menu item id must be positive, got %d", id))
	}
	return b.add(MenuItem{Text: text, ActionIndex: id, SubMenuIndex: NoSubMenu})
}

// Disabled adds a greyed-out item.
func (b *MenuBuilder) Disabled(text string) *MenuBuilder {
	return b.add(MenuItem{Text: text, SubMenuIndex: NoSubMenu})
}

// Separator adds a divider line. Leading and doubled separators are dropped.
func (b *MenuBuilder) Separator() *MenuBuilder {
	items := b.def.SubMenus[b.stack[len(b.stack)-1]].Items
	if len(items) == 0 || items[len(items)-1].Separator {
		return b
	}
	return b.add(MenuItem{Separator: true, SubMenuIndex: NoSubMenu})
}

// BeginSubMenu adds an item opening a new child menu; subsequent items go into
// it until EndSubMenu.
func (b *MenuBuilder) BeginSubMenu(text string) *MenuBuilder {
	b.def.SubMenus = append(b.def.SubMenus, SubMenu{})
	idx := len(b.def.SubMenus) - 1
	b.add(MenuItem{Text: text, SubMenuIndex: idx})
	b.stack = append(b.stack, idx)
	return b
}

// EndSubMenu closes the innermost child menu.
func (b *MenuBuilder) EndSubMenu() *MenuBuilder {
	if len(b.stack) == 1 {
		panic("richgui: EndSubMenu without BeginSubMenu")
	}
	b.stack = b.stack[:len(b.stack)-1]
	return b
}

// Build finalizes the menu. Unclosed submenus are closed and trailing
// separators removed.
func (b *MenuBuilder) Build() *MenuDefinition {
	if len(b.stack) > 1 {
		menuLogger.Warn("menu built with open submenus", "open", len(b.stack)-1)
		b.stack = b.stack[:1]
	}
	for i := range b.def.SubMenus {
		items := b.def.SubMenus[i].Items
		for len(items) > 0 && items[len(items)-1].Separator {
			items = items[:len(items)-1]
		}
		b.def.SubMenus[i].Items = items
	}
	def := b.def
	return &def
}
