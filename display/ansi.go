// Package display presents rendered frames on a terminal.
//
// ANSI writes escape sequences straight to stdout. Screen goes through tcell,
// which owns the terminal and diffs successive frames.
package display

import (
	"github.com/lixenwraith/asciiplay/render"
	"github.com/lixenwraith/asciiplay/terminal"
)

// ANSI overwrites frames in place through a buffered escape-sequence writer
type ANSI struct {
	out *terminal.Output
}

// NewANSI wraps out; color directives follow out's color mode
func NewANSI(out *terminal.Output) *ANSI {
	return &ANSI{out: out}
}

// Begin hides the cursor and clears the screen
func (a *ANSI) Begin() error {
	return a.out.Begin()
}

// WriteFrame homes the cursor and writes one frame, then the overlay line if any
func (a *ANSI) WriteFrame(f *render.Frame, overlay string) error {
	a.out.Home()
	w := a.out.Buffer()
	f.WriteANSI(w, a.out.ColorMode())
	if overlay != "" {
		w.WriteString(overlay)
		terminal.WriteEraseLine(w)
	}
	return a.out.Flush()
}

func (a *ANSI) Flush() error {
	return a.out.Flush()
}

// End restores cursor and wrapping
func (a *ANSI) End() error {
	return a.out.End()
}
