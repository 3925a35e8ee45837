package display

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/asciiplay/core"
	"github.com/lixenwraith/asciiplay/render"
	"github.com/lixenwraith/asciiplay/terminal"
)

// Screen presents frames through a tcell screen
type Screen struct {
	screen tcell.Screen
}

// NewScreen wraps s; s is initialized by Begin
func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// RGBToTcell converts RGB to tcell.Color
func RGBToTcell(c terminal.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// cellStyle maps a cell's directive onto a tcell style
func cellStyle(c render.Cell) tcell.Style {
	if c.Style == render.StyleForeground {
		return tcell.StyleDefault.Foreground(RGBToTcell(c.Fg))
	}
	return tcell.StyleDefault
}

// Begin initializes the screen and hides the cursor
func (d *Screen) Begin() error {
	if err := d.screen.Init(); err != nil {
		return err
	}
	core.RegisterCleanup(d.screen.Fini)
	d.screen.HideCursor()
	d.screen.Clear()
	return nil
}

// WriteFrame draws f at the origin and the overlay on the row below it
func (d *Screen) WriteFrame(f *render.Frame, overlay string) error {
	d.screen.Clear()
	for y, row := range f.Rows {
		for x, c := range row {
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			d.screen.SetContent(x, y, r, nil, cellStyle(c))
		}
	}
	if overlay != "" {
		x := 0
		for _, r := range overlay {
			d.screen.SetContent(x, len(f.Rows), r, nil, tcell.StyleDefault)
			x++
		}
	}
	d.screen.Show()
	return nil
}

func (d *Screen) Flush() error {
	d.screen.Show()
	return nil
}

// WatchQuit calls quit on Ctrl-C, Escape or q
// tcell runs the terminal raw, so SIGINT never arrives while it owns the screen
func (d *Screen) WatchQuit(quit func()) {
	core.Go(func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			if key, ok := ev.(*tcell.EventKey); ok {
				if key.Key() == tcell.KeyCtrlC || key.Key() == tcell.KeyEscape || key.Rune() == 'q' {
					quit()
					return
				}
			}
		}
	})
}

// End releases the terminal
func (d *Screen) End() error {
	d.screen.Fini()
	core.RegisterCleanup(nil)
	return nil
}
