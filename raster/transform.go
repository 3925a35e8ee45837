package raster

import (
	"image"

	"github.com/disintegration/gift"
)

// TransformOptions selects the optional post-resize steps
type TransformOptions struct {
	Grayscale bool // Reduce to one luminance channel
	Mirror    bool // Flip horizontally right after resize
}

// Transform resizes frames to a fixed target and applies the optional steps
// The filter chain is built once per stream
type Transform struct {
	width  int
	height int
	opts   TransformOptions
	filter *gift.GIFT
}

// NewTransform builds the filter chain for a width x height target
func NewTransform(width, height int, opts TransformOptions) *Transform {
	g := gift.New(gift.Resize(width, height, gift.LinearResampling))
	if opts.Mirror {
		g.Add(gift.FlipHorizontal())
	}
	if opts.Grayscale {
		g.Add(gift.Grayscale())
	}

	return &Transform{
		width:  width,
		height: height,
		opts:   opts,
		filter: g,
	}
}

// Size returns the output dimensions
func (t *Transform) Size() (int, int) {
	return t.width, t.height
}

// Apply runs the chain on f and returns a new frame
// Channel count and order are preserved unless grayscale is enabled
func (t *Transform) Apply(f Frame) Frame {
	return t.ApplyImage(f.Image(), f.Channels, f.Order)
}

// ApplyImage runs the chain on a decoded image and extracts the requested layout
func (t *Transform) ApplyImage(src image.Image, channels int, order ChannelOrder) Frame {
	rect := t.filter.Bounds(src.Bounds())

	if t.opts.Grayscale || channels == 1 {
		dst := image.NewGray(rect)
		t.filter.Draw(dst, src)
		return FromImage(dst, 1, order)
	}

	dst := image.NewNRGBA(rect)
	t.filter.Draw(dst, src)
	return FromImage(dst, channels, order)
}
