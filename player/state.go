package player

import (
	"fmt"
	"time"
)

// State is the scheduler lifecycle phase
type State uint32

const (
	StatePriming  State = iota // Waiting for the first frame
	StatePlaying               // Pacing frames
	StateDraining              // End of stream seen, flushing output
	StateStopped               // Terminal
)

// String returns human-readable state name
func (s State) String() string {
	switch s {
	case StatePriming:
		return "priming"
	case StatePlaying:
		return "playing"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// PlaybackState is the timing bookkeeping of one stream
// Owned by the scheduler goroutine
type PlaybackState struct {
	Start         time.Time     // First frame consumed
	Last          time.Time     // Previous iteration
	FramesEmitted int           // Source position, including dropped frames
	Consumed      int           // Frames actually written
	Dropped       int           // Frames skipped by seeking
	MeasuredFPS   float64       // Written frames per second over the last full window
	LastCost      time.Duration // Time spent emitting the last frame

	windowFrames  int
	windowElapsed time.Duration
}

// measureWindow is the FPS averaging window
const measureWindow = time.Second

// tick folds one iteration delta into the FPS window
func (p *PlaybackState) tick(delta time.Duration) {
	p.windowFrames++
	p.windowElapsed += delta
	if p.windowElapsed >= measureWindow {
		p.MeasuredFPS = float64(p.windowFrames) / p.windowElapsed.Seconds()
		p.windowFrames = 0
		p.windowElapsed = 0
	}
}

// overlay formats the FPS diagnostic line
func (p *PlaybackState) overlay(sourceFPS float64, period time.Duration, frameCount int) string {
	total := "?"
	if frameCount > 0 {
		total = fmt.Sprint(frameCount)
	}
	cost := 100 * float64(p.LastCost) / float64(period)
	return fmt.Sprintf("fps %5.1f/%.1f  load %3.0f%%  frame %d/%s  dropped %d",
		p.MeasuredFPS, sourceFPS, cost, p.FramesEmitted, total, p.Dropped)
}
