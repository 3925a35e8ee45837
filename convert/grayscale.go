package convert

import (
	"fmt"

	"github.com/lixenwraith/asciiplay/glyph"
	"github.com/lixenwraith/asciiplay/layout"
	"github.com/lixenwraith/asciiplay/raster"
	"github.com/lixenwraith/asciiplay/render"
)

var grayRamp = glyph.NewRamp(glyph.GrayscaleRamp)

// grayscale maps each pixel's intensity onto the luminance ramp
type grayscale struct{}

func (grayscale) Kind() Kind              { return Grayscale }
func (grayscale) Variant() layout.Variant { return layout.VariantCell }

func (g grayscale) Convert(f raster.Frame, spec layout.Spec) *render.Frame {
	checkFrame(Grayscale, f, spec)
	checkChannels(Grayscale, f, 1, 3, 4)
	if spec.Cols != f.Width || spec.Rows != f.Height {
		panic(fmt.Sprintf("convert: grayscale layout %s is not one pixel per cell", spec))
	}

	out := render.NewFrame(spec.Cols, spec.Rows, false)
	ch := f.Channels
	for y, row := range out.Rows {
		px := f.Pix[y*f.Stride():]
		for x := range row {
			var v uint8
			if ch == 1 {
				v = px[x]
			} else {
				// Alpha does not contribute to luminance
				p := px[x*ch:]
				v = glyph.Intensity(p[0], p[1], p[2])
			}
			row[x] = render.Plain(grayRamp.Glyph(v))
		}
	}
	return out
}
