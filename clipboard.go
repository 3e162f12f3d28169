package richgui

import (
	"sync"

	"github.com/atotto/clipboard"
)

// ClipboardProvider abstracts clipboard access for the editor.
// The edit model never talks to a clipboard transport directly; the host injects
// one through the Context (see WithClipboard).
type ClipboardProvider interface {
	// GetText retrieves text from the clipboard.
	// Returns empty string if clipboard is empty or contains non-text data.
	GetText() string

	// SetText copies text to the clipboard.
	SetText(text string)
}

// SystemClipboard is a ClipboardProvider backed by the OS clipboard.
// Transport errors are logged and otherwise ignored.
type SystemClipboard struct{}

// GetText implements ClipboardProvider.
func (SystemClipboard) GetText() string {
	s, err := clipboard.ReadAll()
	if err != nil {
		guiLogger.Warn("clipboard read failed", "err", err)
		return ""
	}
	return s
}

// SetText implements ClipboardProvider.
func (SystemClipboard) SetText(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		guiLogger.Warn("clipboard write failed", "err", err)
	}
}

// MemoryClipboard is an in-process clipboard for tests and headless hosts.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// GetText implements ClipboardProvider.
func (c *MemoryClipboard) GetText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// SetText implements ClipboardProvider.
func (c *MemoryClipboard) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
}
