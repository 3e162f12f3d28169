package richgui

import (
	"log/slog"
	"os"
)

// guiLogLevel controls the level shared by every package logger.
// Default is LevelInfo, which suppresses Debug messages.
var guiLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging for all components.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		guiLogLevel.Set(slog.LevelDebug)
	} else {
		guiLogLevel.Set(slog.LevelInfo)
	}
}

func guiVerbose() bool {
	return guiLogLevel.Level() <= slog.LevelDebug
}

func newLogger(component string) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: guiLogLevel})
	return slog.New(h).With("component", component)
}

var (
	guiLogger   = newLogger("gui")
	editLogger  = newLogger("textedit")
	menuLogger  = newLogger("menu")
	focusLogger = newLogger("focus")
)

// NewLogger returns a logger for a backend component that follows SetVerbose.
func NewLogger(component string) *slog.Logger {
	return newLogger(component)
}
