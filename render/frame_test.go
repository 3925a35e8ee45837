package render

import (
	"bufio"
	"strings"
	"testing"

	"github.com/lixenwraith/asciiplay/terminal"
)

func TestNewFrameShape(t *testing.T) {
	f := NewFrame(4, 3, false)
	cols, rows := f.Size()
	if cols != 4 || rows != 3 {
		t.Fatalf("Expected 4x3, got %dx%d", cols, rows)
	}
	if err := f.Validate(4, 3); err != nil {
		t.Errorf("Expected valid frame, got %v", err)
	}
	if err := f.Validate(5, 3); err == nil {
		t.Error("Expected width mismatch error")
	}

	// Rows must not alias each other through append
	f.Rows[0] = append(f.Rows[0], Plain('x'))
	if f.Rows[1][0].Rune != 0 {
		t.Error("Expected row append not to clobber next row")
	}
}

func TestWriteANSIPlain(t *testing.T) {
	f := NewFrame(3, 2, false)
	for y, line := range []string{"ab ", "c@#"} {
		for x, r := range []rune(line) {
			f.Rows[y][x] = Plain(r)
		}
	}

	if got := f.String(); got != "ab \nc@#\n" {
		t.Errorf("Unexpected encoding %q", got)
	}
	if got := f.Text(); got != "ab \nc@#\n" {
		t.Errorf("Unexpected text %q", got)
	}
}

func TestWriteANSICoalescesColor(t *testing.T) {
	red := terminal.RGB{R: 255}
	blue := terminal.RGB{B: 255}

	f := NewFrame(3, 2, true)
	f.Rows[0][0] = Tinted('█', red)
	f.Rows[0][1] = Tinted('█', red)
	f.Rows[0][2] = Tinted('█', blue)
	f.Rows[1][0] = Reset(' ')
	f.Rows[1][1] = Reset(' ')
	f.Rows[1][2] = Tinted('▓', blue)

	want := "\x1b[38;2;255;0;0m██" +
		"\x1b[38;2;0;0;255m█\n" +
		"\x1b[0m  " +
		"\x1b[38;2;0;0;255m▓\n" +
		"\x1b[0m"

	if got := f.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestWriteANSILeadingResetEmitted(t *testing.T) {
	f := NewFrame(1, 1, true)
	f.Rows[0][0] = Reset(' ')

	if got := f.String(); got != "\x1b[0m \n\x1b[0m" {
		t.Errorf("Expected leading reset, got %q", got)
	}
}

func TestWriteANSI256(t *testing.T) {
	f := NewFrame(1, 1, true)
	f.Rows[0][0] = Tinted('█', terminal.RGB{G: 255})

	var sb strings.Builder
	w := bufio.NewWriter(&sb)
	f.WriteANSI(w, terminal.ColorMode256)
	w.Flush()

	if got := sb.String(); got != "\x1b[38;5;46m█\n\x1b[0m" {
		t.Errorf("Expected 256-color encoding, got %q", got)
	}
}
