package convert

import (
	"fmt"

	"github.com/lixenwraith/asciiplay/glyph"
	"github.com/lixenwraith/asciiplay/layout"
	"github.com/lixenwraith/asciiplay/raster"
	"github.com/lixenwraith/asciiplay/render"
)

// quadrant packs 2x2 pixel groups into block-quadrant glyphs
type quadrant struct{}

func (quadrant) Kind() Kind              { return Quadrant }
func (quadrant) Variant() layout.Variant { return layout.VariantQuadrant }

// Convert runs in two bulk passes
// Pass 1 thresholds the frame into a zero-padded bit plane of even size
// Pass 2 folds each 2x2 group into a 4-bit key
func (q quadrant) Convert(f raster.Frame, spec layout.Spec) *render.Frame {
	checkFrame(Quadrant, f, spec)
	checkChannels(Quadrant, f, 1, 3, 4)
	if (f.Width+1)/2 != spec.Cols || (f.Height+1)/2 != spec.Rows {
		panic(fmt.Sprintf("convert: quadrant layout %s does not cover %dx%d px in 2x2 groups", spec, f.Width, f.Height))
	}

	planeW := spec.Cols * 2
	plane := darkPlane(f, planeW, spec.Rows*2)

	out := render.NewFrame(spec.Cols, spec.Rows, false)
	for y, row := range out.Rows {
		top := plane[(2*y)*planeW:]
		bottom := plane[(2*y+1)*planeW:]
		for x := range row {
			key := top[2*x]<<3 | top[2*x+1]<<2 | bottom[2*x]<<1 | bottom[2*x+1]
			row[x] = render.Plain(glyph.Quadrant.Lookup(int(key)))
		}
	}
	return out
}

// darkPlane returns one byte per sample, 1 when dark
// Samples outside the frame stay 0 (not dark)
func darkPlane(f raster.Frame, w, h int) []uint8 {
	plane := make([]uint8, w*h)
	ch := f.Channels
	for y := 0; y < f.Height; y++ {
		src := f.Pix[y*f.Stride() : (y+1)*f.Stride()]
		dst := plane[y*w : y*w+f.Width]
		if ch == 1 {
			for x, v := range src {
				if glyph.Dark(v) {
					dst[x] = 1
				}
			}
			continue
		}
		for x := range dst {
			p := src[x*ch:]
			if glyph.Dark(glyph.Intensity(p[0], p[1], p[2])) {
				dst[x] = 1
			}
		}
	}
	return plane
}
