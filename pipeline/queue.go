// Package pipeline connects the frame producer to the playback consumer through a bounded FIFO.
package pipeline

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/lixenwraith/asciiplay/render"
)

// DefaultCapacity bounds how far the producer may run ahead of playback
const DefaultCapacity = 60

// ErrClosed is returned by Push after Finish
var ErrClosed = errors.New("pipeline: queue finished")

// Queue is a single-producer single-consumer bounded frame queue
// Push and Finish belong to the producer goroutine, Pop to the consumer
type Queue struct {
	ch       chan *render.Frame
	finished atomic.Bool
}

// NewQueue creates a queue; capacity <= 0 uses DefaultCapacity
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{ch: make(chan *render.Frame, capacity)}
}

// Push enqueues f, blocking while the queue is full
func (q *Queue) Push(f *render.Frame) error {
	if f == nil {
		panic("pipeline: nil frame")
	}
	if q.finished.Load() {
		return ErrClosed
	}
	q.ch <- f
	return nil
}

// Finish marks end of stream; frames already queued are still delivered
// Calling it more than once has no effect
func (q *Queue) Finish() {
	if q.finished.CompareAndSwap(false, true) {
		close(q.ch)
	}
}

// Pop dequeues the next frame, blocking while the queue is empty
// ok is false once every frame before the end-of-stream mark was consumed
func (q *Queue) Pop() (f *render.Frame, ok bool) {
	f, ok = <-q.ch
	return f, ok
}

// PopContext is Pop that also returns when ctx is done
func (q *Queue) PopContext(ctx context.Context) (*render.Frame, bool, error) {
	select {
	case f, ok := <-q.ch:
		return f, ok, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Len returns the number of queued frames
func (q *Queue) Len() int {
	return len(q.ch)
}

// Cap returns the queue capacity
func (q *Queue) Cap() int {
	return cap(q.ch)
}
