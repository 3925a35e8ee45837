package convert

import (
	"fmt"

	"github.com/lixenwraith/asciiplay/glyph"
	"github.com/lixenwraith/asciiplay/layout"
	"github.com/lixenwraith/asciiplay/raster"
	"github.com/lixenwraith/asciiplay/render"
	"github.com/lixenwraith/asciiplay/terminal"
)

var alphaRamp = glyph.NewRamp(glyph.DensityRamp)

// trueColor passes pixel colors through as foreground directives
// The channel permutation is fixed at construction
type trueColor struct {
	alpha      bool
	ri, gi, bi int
}

func newTrueColor(order raster.ChannelOrder, alpha bool) trueColor {
	tc := trueColor{alpha: alpha, ri: 0, gi: 1, bi: 2}
	if order == raster.OrderBGR {
		tc.ri, tc.bi = 2, 0
	}
	return tc
}

func (t trueColor) Kind() Kind {
	if t.alpha {
		return TrueColorRGBA
	}
	return TrueColorRGB
}

func (trueColor) Variant() layout.Variant { return layout.VariantCell }

func (t trueColor) Convert(f raster.Frame, spec layout.Spec) *render.Frame {
	kind := t.Kind()
	checkFrame(kind, f, spec)
	checkChannels(kind, f, kind.Channels())
	if spec.Cols != f.Width || spec.Rows != f.Height {
		panic(fmt.Sprintf("convert: %s layout %s is not one pixel per cell", kind, spec))
	}

	out := render.NewFrame(spec.Cols, spec.Rows, true)
	ch := f.Channels
	for y, row := range out.Rows {
		px := f.Pix[y*f.Stride():]
		for x := range row {
			p := px[x*ch : x*ch+ch]
			fg := terminal.RGB{R: p[t.ri], G: p[t.gi], B: p[t.bi]}

			if !t.alpha {
				row[x] = render.Tinted(glyph.Solid, fg)
				continue
			}

			a := p[3]
			if a <= glyph.AlphaThreshold {
				row[x] = render.Reset(' ')
				continue
			}
			row[x] = render.Tinted(alphaRamp.Glyph(a), fg)
		}
	}
	return out
}
