package terminal

import (
	"errors"
	"io"
	"os"
)

// ErrNotTerminal is returned when interactive output is required but unavailable
var ErrNotTerminal = errors.New("stdout is not a TTY")

// Fallback dimensions when the window size cannot be queried
const (
	FallbackWidth  = 80
	FallbackHeight = 20
)

// RequireTerminal returns ErrNotTerminal unless f is a terminal
func RequireTerminal(f *os.File) error {
	if !IsTerminal(f) {
		return ErrNotTerminal
	}
	return nil
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Output.End cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiCursorShow)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}

// HardReset issues RIS after EmergencyReset, clearing the screen
func HardReset(w io.Writer) {
	EmergencyReset(w)
	w.Write(csiRIS)
}
