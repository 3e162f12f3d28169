package richgui

// Spacing constants for consistent layout.
const (
	SpaceNone float32 = 0
	SpaceXS   float32 = 2
	SpaceSM   float32 = 4
	SpaceMD   float32 = 8
	SpaceLG   float32 = 12
	SpaceXL   float32 = 16
)

// Style defines the visual appearance of editors and menus.
// Colors are packed 0xAABBGGRR (see RGBA); in TOML write them as hex integers.
type Style struct {
	// Editor
	TextStyle           TextStyle `toml:"text"`
	TextMutedColor      uint32    `toml:"text_muted_color"`
	EditorBgColor       uint32    `toml:"editor_bg_color"`
	EditorFocusedBg     uint32    `toml:"editor_focused_bg"`
	EditorBorderColor   uint32    `toml:"editor_border_color"`
	FocusColor          uint32    `toml:"focus_color"`
	SelectionColor      uint32    `toml:"selection_color"`
	SelectionBlurred    uint32    `toml:"selection_blurred_color"`
	CaretColor          uint32    `toml:"caret_color"`
	CaretWidth          float32   `toml:"caret_width"`
	CaretBlinkPeriod    float32   `toml:"caret_blink_period"` // seconds per on/off cycle, 0 disables blinking
	EditorPadding       float32   `toml:"editor_padding"`
	EditorRounding      float32   `toml:"editor_rounding"`
	DoubleClickInterval float32   `toml:"double_click_interval"`

	// Menus
	Menu MenuStyle `toml:"menu"`
}

// MenuStyle is the appearance of popup menus drawn by DefaultMenuView.
type MenuStyle struct {
	FontSize          float32 `toml:"font_size"`
	BgColor           uint32  `toml:"bg_color"`
	BorderColor       uint32  `toml:"border_color"`
	HoverColor        uint32  `toml:"hover_color"`
	TextColor         uint32  `toml:"text_color"`
	TextDisabledColor uint32  `toml:"text_disabled_color"`
	SeparatorColor    uint32  `toml:"separator_color"`
	ItemHeight        float32 `toml:"item_height"`
	SeparatorHeight   float32 `toml:"separator_height"`
	PaddingX          float32 `toml:"padding_x"`
	PaddingY          float32 `toml:"padding_y"`
	CheckWidth        float32 `toml:"check_width"`
	ArrowWidth        float32 `toml:"arrow_width"`
	MinWidth          float32 `toml:"min_width"`
	Rounding          float32 `toml:"rounding"`
}

// DefaultStyle returns the default (dark) style.
func DefaultStyle() Style {
	return Style{
		TextStyle:           TextStyle{Size: 16, Color: RGBA(230, 230, 230, 255)},
		TextMutedColor:      RGBA(130, 130, 130, 255),
		EditorBgColor:       RGBA(30, 30, 30, 255),
		EditorFocusedBg:     RGBA(40, 40, 50, 255),
		EditorBorderColor:   RGBA(100, 100, 100, 255),
		FocusColor:          RGBA(80, 140, 220, 255),
		SelectionColor:      RGBA(50, 100, 150, 255),
		SelectionBlurred:    RGBA(70, 70, 70, 255),
		CaretColor:          ColorWhite,
		CaretWidth:          1,
		CaretBlinkPeriod:    1.0,
		EditorPadding:       SpaceSM,
		EditorRounding:      SpaceXS,
		DoubleClickInterval: 0.3,
		Menu: MenuStyle{
			FontSize:          14,
			BgColor:           RGBA(35, 35, 38, 245),
			BorderColor:       RGBA(80, 80, 80, 255),
			HoverColor:        RGBA(50, 100, 150, 255),
			TextColor:         RGBA(230, 230, 230, 255),
			TextDisabledColor: ColorGray,
			SeparatorColor:    RGBA(80, 80, 80, 255),
			ItemHeight:        22,
			SeparatorHeight:   SpaceMD,
			PaddingX:          SpaceMD,
			PaddingY:          SpaceSM,
			CheckWidth:        SpaceXL,
			ArrowWidth:        SpaceLG,
			MinWidth:          120,
			Rounding:          SpaceSM,
		},
	}
}

// DarkStyle is an alias for DefaultStyle.
func DarkStyle() Style {
	return DefaultStyle()
}

// LightStyle returns a light color scheme.
func LightStyle() Style {
	s := DefaultStyle()
	s.TextStyle.Color = ColorBlack
	s.TextMutedColor = RGBA(120, 120, 120, 255)
	s.EditorBgColor = RGBA(250, 250, 250, 255)
	s.EditorFocusedBg = ColorWhite
	s.EditorBorderColor = RGBA(180, 180, 180, 255)
	s.SelectionColor = RGBA(170, 200, 240, 255)
	s.SelectionBlurred = RGBA(215, 215, 215, 255)
	s.CaretColor = ColorBlack

	s.Menu.BgColor = RGBA(245, 245, 245, 250)
	s.Menu.BorderColor = RGBA(180, 180, 180, 255)
	s.Menu.HoverColor = RGBA(170, 200, 240, 255)
	s.Menu.TextColor = ColorBlack
	s.Menu.SeparatorColor = RGBA(200, 200, 200, 255)
	return s
}
