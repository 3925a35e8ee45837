package capture

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lixenwraith/asciiplay/raster"
)

// ImageSource yields a single decoded still image
type ImageSource struct {
	img      image.Image
	channels int

	mu   sync.Mutex
	done bool
}

// OpenImage decodes the still image at path
func OpenImage(path string) (*ImageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: decode %v", ErrOpen, path, err)
	}
	return NewImageSource(img), nil
}

// NewImageSource wraps an already decoded image
func NewImageSource(img image.Image) *ImageSource {
	channels := 3
	if raster.HasAlpha(img) {
		channels = 4
	}
	return &ImageSource{img: img, channels: channels}
}

// Image returns the decoded image
func (s *ImageSource) Image() image.Image {
	return s.img
}

func (s *ImageSource) ReadFrame() (raster.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return raster.Frame{}, io.EOF
	}
	s.done = true
	return raster.FromImage(s.img, s.channels, raster.OrderRGB), nil
}

func (s *ImageSource) FrameRate() float64           { return 0 }
func (s *ImageSource) FrameCount() int              { return 1 }
func (s *ImageSource) Channels() int                { return s.channels }
func (s *ImageSource) Order() raster.ChannelOrder   { return raster.OrderRGB }
func (s *ImageSource) Seekable() bool               { return false }
func (s *ImageSource) SeekForward(int) (int, error) { return 0, ErrNotSeekable }
func (s *ImageSource) Close() error                 { return nil }

func (s *ImageSource) Size() (w, h int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}
