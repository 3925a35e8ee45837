// Package player paces rendered frames onto the terminal at the source frame rate.
//
// The scheduler consumes frames from the pipeline, writes each one in place, sleeps
// until the frame's presentation time and, when playback falls behind by more than
// the configured slack, seeks the capture source forward to catch up.
package player

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/lixenwraith/asciiplay/render"
	"github.com/lixenwraith/asciiplay/status"
)

const (
	// DefaultFPS is used when the source does not report a usable rate
	DefaultFPS = 30.0

	// DefaultSlack is how far behind schedule playback may run before dropping frames
	DefaultSlack = 100 * time.Millisecond
)

// FrameSource yields frames in order; ok is false at end of stream
type FrameSource interface {
	PopContext(ctx context.Context) (f *render.Frame, ok bool, err error)
}

// FrameWriter presents one frame at the terminal origin
type FrameWriter interface {
	WriteFrame(f *render.Frame, overlay string) error
	Flush() error
}

// Seeker advances the capture read position
type Seeker interface {
	Seekable() bool
	SeekForward(n int) (int, error)
}

// Config controls pacing
type Config struct {
	SourceFPS  float64       // <= 0 uses DefaultFPS
	FrameCount int           // Total source frames, <= 0 when unknown
	DropFrames bool          // Seek forward when behind
	ShowFPS    bool          // Pass the diagnostic overlay to the writer
	Slack      time.Duration // 0 uses DefaultSlack, negative disables the margin

	Clock   Clock            // nil uses SystemClock
	Logger  hclog.Logger     // nil discards
	Metrics *status.Registry // nil allocates a private registry
}

// Scheduler is the playback consumer
type Scheduler struct {
	frames FrameSource
	writer FrameWriter
	seeker Seeker

	fps    float64
	period time.Duration
	cfg    Config
	clock  Clock
	logger hclog.Logger

	state atomic.Uint32
	ps    PlaybackState

	mState   *status.AtomicString
	mEmitted *atomic.Int64
	mDropped *atomic.Int64
	mFPS     *status.AtomicFloat
}

// New creates a scheduler; seeker may be nil when the source cannot seek
func New(frames FrameSource, writer FrameWriter, seeker Seeker, cfg Config) *Scheduler {
	fps := cfg.SourceFPS
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		fps = DefaultFPS
	}
	switch {
	case cfg.Slack == 0:
		cfg.Slack = DefaultSlack
	case cfg.Slack < 0:
		cfg.Slack = 0
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = status.NewRegistry()
	}

	s := &Scheduler{
		frames:   frames,
		writer:   writer,
		seeker:   seeker,
		fps:      fps,
		period:   time.Duration(float64(time.Second) / fps),
		cfg:      cfg,
		clock:    cfg.Clock,
		logger:   cfg.Logger.Named("player"),
		mState:   cfg.Metrics.Strings.Get(status.PlayerState),
		mEmitted: cfg.Metrics.Ints.Get(status.PlayerEmitted),
		mDropped: cfg.Metrics.Ints.Get(status.PlayerDropped),
		mFPS:     cfg.Metrics.Floats.Get(status.PlayerFPS),
	}
	s.setState(StatePriming)
	return s
}

// Period returns the nominal frame duration
func (s *Scheduler) Period() time.Duration {
	return s.period
}

// State returns the current phase; safe from any goroutine
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Stats returns the playback bookkeeping
// Only consistent once Run has returned
func (s *Scheduler) Stats() PlaybackState {
	return s.ps
}

func (s *Scheduler) setState(st State) {
	s.state.Store(uint32(st))
	s.mState.Set(st.String())
}

// Run consumes frames until end of stream or ctx is done
// End of stream returns nil; cancellation returns ctx.Err()
func (s *Scheduler) Run(ctx context.Context) error {
	defer s.setState(StateStopped)

	for {
		f, ok, err := s.frames.PopContext(ctx)
		if err != nil {
			return err
		}
		if !ok {
			s.setState(StateDraining)
			s.logger.Debug("end of stream", "emitted", s.ps.FramesEmitted, "dropped", s.ps.Dropped)
			return s.writer.Flush()
		}

		if err := s.step(ctx, f); err != nil {
			return err
		}
	}
}

// step presents one frame then paces or drops
func (s *Scheduler) step(ctx context.Context, f *render.Frame) error {
	now := s.clock.Now()
	if s.State() == StatePriming {
		s.ps.Start = now
		s.ps.Last = now
		s.setState(StatePlaying)
	} else {
		s.ps.tick(now.Sub(s.ps.Last))
		s.ps.Last = now
		s.mFPS.Set(s.ps.MeasuredFPS)
	}

	overlay := ""
	if s.cfg.ShowFPS {
		overlay = s.ps.overlay(s.fps, s.period, s.cfg.FrameCount)
	}
	if err := s.writer.WriteFrame(f, overlay); err != nil {
		return err
	}

	s.ps.FramesEmitted++
	s.ps.Consumed++
	s.mEmitted.Store(int64(s.ps.FramesEmitted))

	after := s.clock.Now()
	s.ps.LastCost = after.Sub(now)

	target := time.Duration(s.ps.FramesEmitted) * s.period
	actual := after.Sub(s.ps.Start)

	if target > actual {
		return s.clock.Sleep(ctx, target-actual)
	}
	if actual-target > s.cfg.Slack {
		s.catchUp(actual)
	}
	return nil
}

// catchUp moves the source position to where the wall clock says playback should be
func (s *Scheduler) catchUp(actual time.Duration) {
	lag := int(math.Round(float64(actual)/float64(s.period))) - s.ps.FramesEmitted
	if lag <= 0 {
		return
	}

	if s.cfg.DropFrames && s.seeker != nil && s.seeker.Seekable() {
		skipped, err := s.seeker.SeekForward(lag)
		if err != nil {
			s.logger.Warn("seek failed, rebasing schedule", "lag", lag, "error", err)
		}
		if skipped > 0 {
			s.ps.Dropped += skipped
			s.mDropped.Store(int64(s.ps.Dropped))
			s.logger.Debug("dropped frames", "lag", lag, "skipped", skipped, "total", s.ps.Dropped)
		}
	}

	// Schedule moves forward either way, only skipped frames count as dropped
	s.ps.FramesEmitted += lag
	s.mEmitted.Store(int64(s.ps.FramesEmitted))
}
