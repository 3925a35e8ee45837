package capture

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"

	"github.com/lixenwraith/asciiplay/raster"
)

// rawReader slices a packed rawvideo byte stream into frames
type rawReader struct {
	r        io.Reader
	width    int
	height   int
	channels int
	order    raster.ChannelOrder
}

func (rr *rawReader) frameSize() int64 {
	return int64(rr.width * rr.height * rr.channels)
}

// read returns the next whole frame; a truncated trailing frame counts as end of stream
func (rr *rawReader) read() (raster.Frame, error) {
	f := raster.NewFrame(rr.width, rr.height, rr.channels, rr.order)
	if _, err := io.ReadFull(rr.r, f.Pix); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return raster.Frame{}, io.EOF
		}
		return raster.Frame{}, err
	}
	return f, nil
}

// skip discards n frames, stopping quietly at end of stream
// Only whole frames count as skipped
func (rr *rawReader) skip(n int) (int, error) {
	written, err := io.CopyN(io.Discard, rr.r, int64(n)*rr.frameSize())
	skipped := int(written / rr.frameSize())
	if errors.Is(err, io.EOF) {
		return skipped, nil
	}
	return skipped, err
}

// FFmpegSource decodes video through an ffmpeg subprocess emitting bgr24 rawvideo
type FFmpegSource struct {
	info     streamInfo
	seekable bool
	logger   hclog.Logger

	cmd    *exec.Cmd
	stdout io.ReadCloser
	cancel context.CancelFunc

	mu     sync.Mutex
	raw    *rawReader
	closed atomic.Bool
}

// OpenVideo starts decoding a video file or URL
func OpenVideo(ctx context.Context, input string, opts Options, logger hclog.Logger) (*FFmpegSource, error) {
	return openFFmpeg(ctx, nil, input, true, opts, logger)
}

// OpenDevice starts capturing from webcam index
func OpenDevice(ctx context.Context, index int, opts Options, logger hclog.Logger) (*FFmpegSource, error) {
	format, input, err := deviceInput(index)
	if err != nil {
		return nil, err
	}
	return openFFmpeg(ctx, []string{"-f", format}, input, false, opts, logger)
}

func openFFmpeg(ctx context.Context, inputArgs []string, input string, seekable bool, opts Options, logger hclog.Logger) (*FFmpegSource, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	tools, err := DetectTools(opts)
	if err != nil {
		return nil, err
	}

	info, err := probe(ctx, tools.FFprobe, inputArgs, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, input, err)
	}
	logger.Debug("probed stream", "input", input, "width", info.Width, "height", info.Height,
		"fps", info.Rate, "frames", info.Frames)

	args := []string{"-nostdin", "-hide_banner", "-loglevel", "error"}
	args = append(args, inputArgs...)
	args = append(args, "-i", input, "-an", "-sn", "-f", "rawvideo", "-pix_fmt", "bgr24", "pipe:1")

	cctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(cctx, tools.FFmpeg, args...)
	cmd.Stderr = decoderLog(logger)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, input, err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, input, err)
	}
	logger.Debug("ffmpeg started", "pid", cmd.Process.Pid)

	frameBytes := info.Width * info.Height * 3
	return &FFmpegSource{
		info:     info,
		seekable: seekable,
		logger:   logger,
		cmd:      cmd,
		stdout:   stdout,
		cancel:   cancel,
		raw: &rawReader{
			r:        bufio.NewReaderSize(stdout, 2*frameBytes),
			width:    info.Width,
			height:   info.Height,
			channels: 3,
			order:    raster.OrderBGR,
		},
	}, nil
}

// decoderLog forwards ffmpeg stderr lines to logger at debug level
func decoderLog(logger hclog.Logger) io.Writer {
	return logger.StandardWriter(&hclog.StandardLoggerOptions{ForceLevel: hclog.Debug})
}

func (s *FFmpegSource) ReadFrame() (raster.Frame, error) {
	if s.closed.Load() {
		return raster.Frame{}, io.EOF
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.read()
}

// SeekForward reads and discards n frames from the decoder
func (s *FFmpegSource) SeekForward(n int) (int, error) {
	if !s.seekable {
		return 0, ErrNotSeekable
	}
	if n <= 0 || s.closed.Load() {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.skip(n)
}

func (s *FFmpegSource) FrameRate() float64         { return s.info.Rate }
func (s *FFmpegSource) FrameCount() int            { return s.info.Frames }
func (s *FFmpegSource) Channels() int              { return 3 }
func (s *FFmpegSource) Order() raster.ChannelOrder { return raster.OrderBGR }
func (s *FFmpegSource) Seekable() bool             { return s.seekable }

func (s *FFmpegSource) Size() (w, h int) {
	return s.info.Width, s.info.Height
}

// Close stops the decoder and reaps it
// A reader blocked in ReadFrame is released with an error
func (s *FFmpegSource) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.cancel()
	s.stdout.Close()
	err := s.cmd.Wait()
	s.logger.Debug("ffmpeg exited", "error", err)

	// Killed by our own cancel
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}
