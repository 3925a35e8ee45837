// Package convert turns resized pixel frames into rendered text frames.
//
// Converters form a closed set selected once per stream. Each one is stateless,
// so a single instance may convert independent frames concurrently.
package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/asciiplay/layout"
	"github.com/lixenwraith/asciiplay/raster"
	"github.com/lixenwraith/asciiplay/render"
)

// ErrUnknownConverter is returned by Resolve for names outside the converter set
var ErrUnknownConverter = errors.New("convert: unknown converter")

// Kind identifies a converter variant
type Kind uint8

const (
	Grayscale Kind = iota
	Quadrant
	TrueColorRGB
	TrueColorRGBA
)

// String returns human-readable kind name
func (k Kind) String() string {
	switch k {
	case Grayscale:
		return "grayscale"
	case Quadrant:
		return "quadrant"
	case TrueColorRGB:
		return "truecolor-rgb"
	case TrueColorRGBA:
		return "truecolor-rgba"
	default:
		return "unknown"
	}
}

// Variant returns the layout variant the kind consumes
func (k Kind) Variant() layout.Variant {
	if k == Quadrant {
		return layout.VariantQuadrant
	}
	return layout.VariantCell
}

// Channels returns the channel count the resize step should produce for the kind
func (k Kind) Channels() int {
	switch k {
	case TrueColorRGB:
		return 3
	case TrueColorRGBA:
		return 4
	default:
		return 1
	}
}

// Converter maps one raster frame onto one rendered frame
// Frame pixel size must match the layout; mismatch panics
type Converter interface {
	Convert(f raster.Frame, spec layout.Spec) *render.Frame
	Kind() Kind
	Variant() layout.Variant
}

// New returns the converter for kind
// order tells color converters how the source bytes are laid out
func New(kind Kind, order raster.ChannelOrder) Converter {
	switch kind {
	case Grayscale:
		return grayscale{}
	case Quadrant:
		return quadrant{}
	case TrueColorRGB:
		return newTrueColor(order, false)
	case TrueColorRGBA:
		return newTrueColor(order, true)
	default:
		panic(fmt.Sprintf("convert: invalid kind %d", kind))
	}
}

// Resolve maps a converter name and the source channel count to a kind
// Color names pick the alpha variant when the source carries alpha
func Resolve(name string, channels int) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "grayscale", "gray":
		return Grayscale, nil
	case "4blackwhite", "quadrant":
		return Quadrant, nil
	case "rgba", "truecolor", "color":
		if channels == 4 {
			return TrueColorRGBA, nil
		}
		return TrueColorRGB, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownConverter, name)
	}
}

// Names lists accepted converter names for help output
func Names() []string {
	return []string{"grayscale", "4blackwhite", "quadrant", "rgba", "truecolor"}
}

// checkFrame panics when f does not have the pixel size the layout expects
func checkFrame(kind Kind, f raster.Frame, spec layout.Spec) {
	if f.Width != spec.PixelWidth || f.Height != spec.PixelHeight {
		panic(fmt.Sprintf("convert: %s frame is %dx%d, layout expects %dx%d",
			kind, f.Width, f.Height, spec.PixelWidth, spec.PixelHeight))
	}
	if len(f.Pix) != f.Width*f.Height*f.Channels {
		panic(fmt.Sprintf("convert: %s frame buffer is %d bytes, expected %d",
			kind, len(f.Pix), f.Width*f.Height*f.Channels))
	}
}

// checkChannels panics when f has a channel count outside accepted
func checkChannels(kind Kind, f raster.Frame, accepted ...int) {
	for _, c := range accepted {
		if f.Channels == c {
			return
		}
	}
	panic(fmt.Sprintf("convert: %s cannot consume %d-channel frames", kind, f.Channels))
}
