package richgui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ParseStyle overlays TOML data on DefaultStyle. Keys absent from data keep
// their default values.
func ParseStyle(data []byte) (Style, error) {
	style := DefaultStyle()
	if err := toml.Unmarshal(data, &style); err != nil {
		return DefaultStyle(), fmt.Errorf("parse style: %w", err)
	}
	return style, nil
}

// LoadStyle reads a TOML style file. A missing file yields DefaultStyle and no error.
func LoadStyle(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		guiLogger.Debug("style file not found, using defaults", "path", path)
		return DefaultStyle(), nil
	}
	if err != nil {
		return DefaultStyle(), fmt.Errorf("read style %s: %w", path, err)
	}
	style, err := ParseStyle(data)
	if err != nil {
		return DefaultStyle(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return style, nil
}

// MarshalStyle encodes a style as TOML, e.g. to write a starter config file.
func MarshalStyle(s Style) ([]byte, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal style: %w", err)
	}
	return data, nil
}
