package capture

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"sync"

	"github.com/lixenwraith/asciiplay/raster"
)

// minGIFDelay is the delay applied to frames that declare none, in 1/100 s
const minGIFDelay = 10

// GIFSource plays an animated GIF once, compositing frames per their disposal method
type GIFSource struct {
	g        *gif.GIF
	channels int
	rate     float64

	mu     sync.Mutex
	canvas *image.RGBA
	next   int
}

// OpenGIF decodes every frame of the GIF at path
func OpenGIF(path string) (*GIFSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	defer f.Close()
	return NewGIFSource(f)
}

// NewGIFSource decodes a GIF stream
func NewGIFSource(r io.Reader) (*GIFSource, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode gif: %v", ErrOpen, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("%w: gif has no frames", ErrOpen)
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}

	return &GIFSource{
		g:        g,
		channels: gifChannels(g),
		rate:     gifRate(g),
		canvas:   image.NewRGBA(image.Rect(0, 0, w, h)),
	}, nil
}

// gifChannels returns 4 when any frame can leave transparent pixels
func gifChannels(g *gif.GIF) int {
	for i, frame := range g.Image {
		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalBackground {
			return 4
		}
		for _, c := range frame.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
	}
	return 3
}

// gifRate derives frames per second from the average frame delay
func gifRate(g *gif.GIF) float64 {
	total := 0
	for i := range g.Image {
		d := 0
		if i < len(g.Delay) {
			d = g.Delay[i]
		}
		if d <= 1 {
			d = minGIFDelay
		}
		total += d
	}
	return 100 * float64(len(g.Image)) / float64(total)
}

// composite draws frame i onto the canvas and applies its disposal afterwards
// emit receives the canvas between drawing and disposal
func (s *GIFSource) composite(i int, emit func(*image.RGBA)) {
	frame := s.g.Image[i]
	disposal := byte(0)
	if i < len(s.g.Disposal) {
		disposal = s.g.Disposal[i]
	}

	var saved *image.RGBA
	if disposal == gif.DisposalPrevious {
		saved = image.NewRGBA(s.canvas.Rect)
		copy(saved.Pix, s.canvas.Pix)
	}

	draw.Draw(s.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	if emit != nil {
		emit(s.canvas)
	}

	switch disposal {
	case gif.DisposalBackground:
		draw.Draw(s.canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		s.canvas = saved
	}
}

func (s *GIFSource) ReadFrame() (raster.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.g.Image) {
		return raster.Frame{}, io.EOF
	}

	var out raster.Frame
	s.composite(s.next, func(canvas *image.RGBA) {
		out = raster.FromImage(canvas, s.channels, raster.OrderRGB)
	})
	s.next++
	return out, nil
}

// SeekForward composites the skipped frames so disposal state stays correct
func (s *GIFSource) SeekForward(n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	skipped := 0
	for ; skipped < n && s.next < len(s.g.Image); skipped++ {
		s.composite(s.next, nil)
		s.next++
	}
	return skipped, nil
}

func (s *GIFSource) FrameRate() float64         { return s.rate }
func (s *GIFSource) FrameCount() int            { return len(s.g.Image) }
func (s *GIFSource) Channels() int              { return s.channels }
func (s *GIFSource) Order() raster.ChannelOrder { return raster.OrderRGB }
func (s *GIFSource) Seekable() bool             { return true }
func (s *GIFSource) Close() error               { return nil }

func (s *GIFSource) Size() (w, h int) {
	return s.canvas.Rect.Dx(), s.canvas.Rect.Dy()
}
