// Package capture opens image, GIF, video and webcam sources and yields raw frames.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/lixenwraith/asciiplay/raster"
)

var (
	// ErrOpen wraps every failure to open a capture target
	ErrOpen = errors.New("cannot open capture")

	// ErrNotSeekable is returned by SeekForward on live or single-frame sources
	ErrNotSeekable = errors.New("capture: source is not seekable")
)

// Source is an open frame stream
// ReadFrame and SeekForward may be called from different goroutines
type Source interface {
	// ReadFrame returns the next frame or io.EOF
	// The returned frame is owned by the caller
	ReadFrame() (raster.Frame, error)

	FrameRate() float64 // Frames per second, 0 when unknown
	FrameCount() int    // Total frames, -1 when unknown
	Size() (w, h int)
	Channels() int
	Order() raster.ChannelOrder

	Seekable() bool
	// SeekForward discards up to n frames and returns how many were skipped
	// Fewer than n means the stream ended
	SeekForward(n int) (int, error)

	Close() error
}

// Options tune how targets are opened
type Options struct {
	FFmpegPath  string       // Empty searches PATH
	FFprobePath string       // Empty searches PATH
	Logger      hclog.Logger // nil discards
}

// Kind classifies a capture target
type Kind uint8

const (
	KindVideo Kind = iota
	KindDevice
	KindGIF
	KindImage
)

// String returns human-readable kind name
func (k Kind) String() string {
	switch k {
	case KindDevice:
		return "device"
	case KindGIF:
		return "gif"
	case KindImage:
		return "image"
	default:
		return "video"
	}
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".bmp": true, ".webp": true, ".tif": true, ".tiff": true,
}

// Classify decides how target would be opened
// A bare non-negative integer names a webcam device
func Classify(target string) Kind {
	if n, err := strconv.Atoi(target); err == nil && n >= 0 {
		return KindDevice
	}
	ext := strings.ToLower(filepath.Ext(target))
	switch {
	case ext == ".gif":
		return KindGIF
	case imageExts[ext]:
		return KindImage
	default:
		return KindVideo
	}
}

// IsDevice reports whether target names a webcam
func IsDevice(target string) bool {
	return Classify(target) == KindDevice
}

// Open opens target according to its kind
func Open(ctx context.Context, target string, opts Options) (Source, error) {
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	logger := opts.Logger.Named("capture")

	kind := Classify(target)
	logger.Debug("opening capture", "target", target, "kind", kind)

	if kind != KindDevice && !isURL(target) {
		if _, err := os.Stat(target); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpen, err)
		}
	}

	var (
		src Source
		err error
	)
	switch kind {
	case KindImage:
		src, err = OpenImage(target)
	case KindGIF:
		src, err = OpenGIF(target)
	case KindDevice:
		index, _ := strconv.Atoi(target)
		src, err = OpenDevice(ctx, index, opts, logger)
	default:
		src, err = OpenVideo(ctx, target, opts, logger)
	}
	if err != nil {
		if errors.Is(err, ErrOpen) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, target, err)
	}
	return src, nil
}

func isURL(target string) bool {
	i := strings.Index(target, "://")
	return i > 0 && !strings.ContainsAny(target[:i], "/\\.")
}
