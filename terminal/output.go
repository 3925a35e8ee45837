package terminal

import (
	"bufio"
	"io"
	"sync"
)

// outputBufferSize fits a full-screen true-color frame without intermediate flushes
const outputBufferSize = 131072 // 128KB

// Output manages buffered in-place terminal output
type Output struct {
	out       io.Writer
	writer    *bufio.Writer
	colorMode ColorMode

	mu     sync.Mutex
	active bool
}

// NewOutput creates an output writing to out
func NewOutput(out io.Writer, colorMode ColorMode) *Output {
	return &Output{
		out:       out,
		writer:    bufio.NewWriterSize(out, outputBufferSize),
		colorMode: colorMode,
	}
}

// ColorMode returns the color capability frames are encoded for
func (o *Output) ColorMode() ColorMode {
	return o.colorMode
}

// Buffer exposes the underlying buffered writer for frame encoding
func (o *Output) Buffer() *bufio.Writer {
	return o.writer
}

// Begin hides the cursor, disables auto-wrap and clears the screen
func (o *Output) Begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.active {
		return nil
	}

	w := o.writer
	w.Write(csiCursorHide)
	w.Write(csiAutoWrapOff)
	w.Write(csiSGR0)
	w.Write(csiClear)
	o.active = true
	return w.Flush()
}

// End restores attributes, auto-wrap and cursor. Safe to call multiple times
func (o *Output) End() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.active {
		return nil
	}

	w := o.writer
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiCursorShow)
	w.WriteByte('\n')
	o.active = false
	return w.Flush()
}

// Home positions the cursor at the origin
func (o *Output) Home() {
	o.writer.Write(csiHome)
}

// MoveCursor positions cursor (0-indexed)
func (o *Output) MoveCursor(x, y int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	WriteCursorPos(o.writer, x, y)
}

// WriteString writes text at the current cursor position
func (o *Output) WriteString(s string) {
	o.writer.WriteString(s)
}

// Flush writes buffered output to the terminal
func (o *Output) Flush() error {
	return o.writer.Flush()
}
