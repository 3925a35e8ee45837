package render

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/lixenwraith/asciiplay/terminal"
)

// Frame is a grid of styled glyphs, rows of equal width
// Built once by a converter, then handed off and never mutated
type Frame struct {
	Rows    [][]Cell
	Colored bool // Encoding ends with a reset directive
}

// NewFrame allocates a cols x rows frame backed by a single cell slice
func NewFrame(cols, rows int, colored bool) *Frame {
	backing := make([]Cell, cols*rows)
	grid := make([][]Cell, rows)
	for y := range grid {
		grid[y] = backing[y*cols : (y+1)*cols : (y+1)*cols]
	}
	return &Frame{Rows: grid, Colored: colored}
}

// Size returns frame dimensions in cells
func (f *Frame) Size() (cols, rows int) {
	if len(f.Rows) == 0 {
		return 0, 0
	}
	return len(f.Rows[0]), len(f.Rows)
}

// Text returns the glyphs without any directives, one line per row
func (f *Frame) Text() string {
	var sb strings.Builder
	for _, row := range f.Rows {
		for _, c := range row {
			sb.WriteRune(c.Rune)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String encodes the frame as true-color ANSI text
func (f *Frame) String() string {
	var sb strings.Builder
	w := bufio.NewWriter(&sb)
	f.WriteANSI(w, terminal.ColorModeTrueColor)
	w.Flush()
	return sb.String()
}

// colorState tracks the terminal foreground between cells
type colorState uint8

const (
	colorUnknown colorState = iota
	colorDefault
	colorSet
)

// WriteANSI encodes the frame, each row followed by a newline
// Color directives are emitted only when the foreground changes
func (f *Frame) WriteANSI(w *bufio.Writer, mode terminal.ColorMode) {
	state := colorUnknown
	var lastFg terminal.RGB

	for _, row := range f.Rows {
		for _, c := range row {
			switch c.Style {
			case StyleForeground:
				if state != colorSet || c.Fg != lastFg {
					terminal.WriteForeground(w, c.Fg, mode)
					lastFg = c.Fg
					state = colorSet
				}
			case StyleReset:
				if state != colorDefault {
					terminal.WriteReset(w)
					state = colorDefault
				}
			}

			r := c.Rune
			if r == 0 {
				r = ' '
			}
			if r < 0x80 {
				w.WriteByte(byte(r))
			} else {
				w.WriteRune(r)
			}
		}
		w.WriteByte('\n')
	}

	if f.Colored {
		terminal.WriteReset(w)
	}
}

// Validate checks that every row has the same width and the grid matches cols x rows
func (f *Frame) Validate(cols, rows int) error {
	if len(f.Rows) != rows {
		return fmt.Errorf("render: frame has %d rows, expected %d", len(f.Rows), rows)
	}
	for y, row := range f.Rows {
		if len(row) != cols {
			return fmt.Errorf("render: row %d has %d cells, expected %d", y, len(row), cols)
		}
	}
	return nil
}
