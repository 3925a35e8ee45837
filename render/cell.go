// Package render holds the immutable text frames produced by pixel converters and their ANSI encoding.
package render

import (
	"github.com/lixenwraith/asciiplay/terminal"
)

// Style is the color directive attached to a cell
type Style uint8

const (
	StylePlain      Style = iota // Glyph only
	StyleForeground              // Glyph tinted with Fg
	StyleReset                   // Color reset, then glyph
)

// Cell is a single styled glyph
type Cell struct {
	Rune  rune
	Fg    terminal.RGB
	Style Style
}

// Plain returns an unstyled cell
func Plain(r rune) Cell {
	return Cell{Rune: r}
}

// Tinted returns a cell with a foreground color directive
func Tinted(r rune, fg terminal.RGB) Cell {
	return Cell{Rune: r, Fg: fg, Style: StyleForeground}
}

// Reset returns a cell that clears color before its glyph
func Reset(r rune) Cell {
	return Cell{Rune: r, Style: StyleReset}
}
