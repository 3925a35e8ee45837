package pipeline

import (
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/lixenwraith/asciiplay/convert"
	"github.com/lixenwraith/asciiplay/layout"
	"github.com/lixenwraith/asciiplay/raster"
	"github.com/lixenwraith/asciiplay/status"
)

// FrameReader yields raw frames until io.EOF
type FrameReader interface {
	ReadFrame() (raster.Frame, error)
}

// Producer reads, resizes and converts frames in arrival order and queues them
type Producer struct {
	source    FrameReader
	transform *raster.Transform
	converter convert.Converter
	spec      layout.Spec
	queue     *Queue
	logger    hclog.Logger

	frames    *atomic.Int64
	convertNs *atomic.Int64
	depth     *atomic.Int64
}

// ProducerConfig bundles the stream collaborators
type ProducerConfig struct {
	Source    FrameReader
	Transform *raster.Transform
	Converter convert.Converter
	Spec      layout.Spec
	Queue     *Queue
	Logger    hclog.Logger     // nil discards
	Metrics   *status.Registry // nil allocates a private registry
}

// NewProducer wires a producer from cfg
func NewProducer(cfg ProducerConfig) *Producer {
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = status.NewRegistry()
	}

	if w, h := cfg.Transform.Size(); w != cfg.Spec.PixelWidth || h != cfg.Spec.PixelHeight {
		panic("pipeline: transform target does not match layout")
	}

	return &Producer{
		source:    cfg.Source,
		transform: cfg.Transform,
		converter: cfg.Converter,
		spec:      cfg.Spec,
		queue:     cfg.Queue,
		logger:    logger.Named("producer"),
		frames:    metrics.Ints.Get(status.ProducerFrames),
		convertNs: metrics.Ints.Get(status.ProducerConvertNs),
		depth:     metrics.Ints.Get(status.QueueDepth),
	}
}

// Run produces until the source ends, then finishes the queue
// A read error mid-stream ends the stream like EOF
func (p *Producer) Run() {
	defer p.queue.Finish()

	for {
		raw, err := p.source.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				p.logger.Debug("end of stream", "frames", p.frames.Load())
			} else {
				p.logger.Warn("frame read failed, ending stream", "frames", p.frames.Load(), "error", err)
			}
			return
		}

		start := time.Now()
		frame := p.converter.Convert(p.transform.Apply(raw), p.spec)
		p.convertNs.Store(int64(time.Since(start)))

		if err := p.queue.Push(frame); err != nil {
			p.logger.Error("queue rejected frame", "error", err)
			return
		}
		p.frames.Add(1)
		p.depth.Store(int64(p.queue.Len()))
	}
}
