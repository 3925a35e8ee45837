package terminal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNonTerminalFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("Expected regular file not to be a terminal")
	}
	if err := RequireTerminal(f); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Expected ErrNotTerminal, got %v", err)
	}
	if w, h := Size(f); w != FallbackWidth || h != FallbackHeight {
		t.Errorf("Expected fallback %dx%d, got %dx%d", FallbackWidth, FallbackHeight, w, h)
	}
}

func TestColorModeNamesParse(t *testing.T) {
	for _, name := range ColorModeNames() {
		if _, err := ParseColorMode(name); err != nil {
			t.Errorf("Expected %q to parse, got %v", name, err)
		}
	}
}
