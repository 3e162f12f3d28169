package richgui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseStyleOverlaysDefaults(t *testing.T) {
	data := []byte(`
caret_width = 3.0
selection_color = 0xFF0000FF

[text]
bold = true

[menu]
item_height = 30.0
`)
	s, err := ParseStyle(data)
	if err != nil {
		t.Fatalf("ParseStyle() returned error: %v", err)
	}
	def := DefaultStyle()
	if s.CaretWidth != 3 || s.SelectionColor != 0xFF0000FF {
		t.Errorf("Expected overridden caret width and selection color, got %v %#x", s.CaretWidth, s.SelectionColor)
	}
	if !s.TextStyle.Bold || s.TextStyle.Size != def.TextStyle.Size {
		t.Errorf("Expected bold text at the default size, got %+v", s.TextStyle)
	}
	if s.Menu.ItemHeight != 30 || s.Menu.PaddingX != def.Menu.PaddingX {
		t.Errorf("Expected only item_height overridden, got %+v", s.Menu)
	}
	if s.EditorBgColor != def.EditorBgColor {
		t.Error("Expected absent keys to keep their defaults")
	}
}

func TestParseStyleInvalid(t *testing.T) {
	if _, err := ParseStyle([]byte("caret_width = [")); err == nil {
		t.Error("Expected an error for malformed TOML")
	}
}

func TestLoadStyleMissingFile(t *testing.T) {
	s, err := LoadStyle(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Expected no error for a missing file, got %v", err)
	}
	if s != DefaultStyle() {
		t.Error("Expected the default style")
	}
}

func TestLoadStyleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.toml")
	if err := os.WriteFile(path, []byte("editor_padding = 12.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("LoadStyle() returned error: %v", err)
	}
	if s.EditorPadding != 12 {
		t.Errorf("Expected editor padding 12, got %v", s.EditorPadding)
	}

	if err := os.WriteFile(path, []byte("editor_padding = 'wide'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStyle(path); err == nil {
		t.Error("Expected a type error to be reported")
	}
}

func TestMarshalStyle(t *testing.T) {
	data, err := MarshalStyle(LightStyle())
	if err != nil {
		t.Fatalf("MarshalStyle() returned error: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected TOML output")
	}
}
