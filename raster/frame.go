// Package raster holds raw pixel frames and the resize/convert primitive that prepares them for glyph conversion.
package raster

import (
	"fmt"
	"image"
	"image/draw"
)

// ChannelOrder is the byte order of color channels in a frame
type ChannelOrder uint8

const (
	OrderRGB ChannelOrder = iota
	OrderBGR
)

// String returns human-readable order name
func (o ChannelOrder) String() string {
	if o == OrderBGR {
		return "BGR"
	}
	return "RGB"
}

// Frame is a row-major pixel buffer
// Channels is 1 (luminance), 3 (color) or 4 (color + alpha, alpha last)
type Frame struct {
	Width    int
	Height   int
	Channels int
	Order    ChannelOrder
	Pix      []byte
}

// NewFrame allocates a zeroed frame
func NewFrame(width, height, channels int, order ChannelOrder) Frame {
	return Frame{
		Width:    width,
		Height:   height,
		Channels: channels,
		Order:    order,
		Pix:      make([]byte, width*height*channels),
	}
}

// Stride returns bytes per row
func (f Frame) Stride() int {
	return f.Width * f.Channels
}

// At returns the channel bytes of pixel (x, y)
func (f Frame) At(x, y int) []byte {
	i := (y*f.Width + x) * f.Channels
	return f.Pix[i : i+f.Channels]
}

// Validate checks buffer length against dimensions
func (f Frame) Validate() error {
	switch f.Channels {
	case 1, 3, 4:
	default:
		return fmt.Errorf("raster: unsupported channel count %d", f.Channels)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("raster: invalid size %dx%d", f.Width, f.Height)
	}
	if len(f.Pix) != f.Width*f.Height*f.Channels {
		return fmt.Errorf("raster: buffer length %d does not match %dx%dx%d", len(f.Pix), f.Width, f.Height, f.Channels)
	}
	return nil
}

// RGB returns the pixel's color channels in canonical RGB order
func (f Frame) RGB(x, y int) (r, g, b uint8) {
	px := f.At(x, y)
	if f.Channels == 1 {
		return px[0], px[0], px[0]
	}
	if f.Order == OrderBGR {
		return px[2], px[1], px[0]
	}
	return px[0], px[1], px[2]
}

// Image wraps the frame as an image.Image for filtering
// Color channels are permuted to RGB, alpha is non-premultiplied
func (f Frame) Image() image.Image {
	rect := image.Rect(0, 0, f.Width, f.Height)

	if f.Channels == 1 {
		return &image.Gray{Pix: f.Pix, Stride: f.Width, Rect: rect}
	}

	dst := image.NewNRGBA(rect)
	n := f.Width * f.Height
	for i := 0; i < n; i++ {
		src := f.Pix[i*f.Channels : i*f.Channels+f.Channels]
		d := dst.Pix[i*4 : i*4+4]
		if f.Order == OrderBGR {
			d[0], d[1], d[2] = src[2], src[1], src[0]
		} else {
			d[0], d[1], d[2] = src[0], src[1], src[2]
		}
		if f.Channels == 4 {
			d[3] = src[3]
		} else {
			d[3] = 0xff
		}
	}
	return dst
}

// FromImage extracts a frame with the requested channel layout from img
// channels == 1 yields luminance, 3 drops alpha, 4 keeps non-premultiplied alpha
func FromImage(img image.Image, channels int, order ChannelOrder) Frame {
	b := img.Bounds()
	f := NewFrame(b.Dx(), b.Dy(), channels, order)

	if channels == 1 {
		gray, ok := img.(*image.Gray)
		if !ok || gray.Rect.Min != (image.Point{}) {
			gray = image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
			draw.Draw(gray, gray.Rect, img, b.Min, draw.Src)
		}
		for y := 0; y < f.Height; y++ {
			copy(f.Pix[y*f.Width:(y+1)*f.Width], gray.Pix[y*gray.Stride:y*gray.Stride+f.Width])
		}
		return f
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Rect, img, b.Min, draw.Src)
	}

	for y := 0; y < f.Height; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < f.Width; x++ {
			s := row[x*4 : x*4+4]
			d := f.Pix[(y*f.Width+x)*channels:]
			if order == OrderBGR {
				d[0], d[1], d[2] = s[2], s[1], s[0]
			} else {
				d[0], d[1], d[2] = s[0], s[1], s[2]
			}
			if channels == 4 {
				d[3] = s[3]
			}
		}
	}
	return f
}

// HasAlpha reports whether any pixel of img is not fully opaque
func HasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}
