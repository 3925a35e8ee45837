package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/lixenwraith/asciiplay/convert"
	"github.com/lixenwraith/asciiplay/layout"
	"github.com/lixenwraith/asciiplay/raster"
	"github.com/lixenwraith/asciiplay/render"
	"github.com/lixenwraith/asciiplay/status"
)

func TestQueueFIFOAndSentinel(t *testing.T) {
	q := NewQueue(0)
	if q.Cap() != DefaultCapacity {
		t.Fatalf("Expected capacity %d, got %d", DefaultCapacity, q.Cap())
	}

	a, b, c := render.NewFrame(1, 1, false), render.NewFrame(1, 1, false), render.NewFrame(1, 1, false)
	for _, f := range []*render.Frame{a, b, c} {
		if err := q.Push(f); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
	}
	q.Finish()
	q.Finish()

	if err := q.Push(render.NewFrame(1, 1, false)); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed after Finish, got %v", err)
	}

	for i, want := range []*render.Frame{a, b, c} {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop %d: unexpected end of stream", i)
		}
		if got != want {
			t.Errorf("Pop %d: frames out of order", i)
		}
	}

	for i := 0; i < 2; i++ {
		if f, ok := q.Pop(); ok || f != nil {
			t.Errorf("Expected end of stream, got frame %v", f)
		}
	}
}

func TestQueueBackpressure(t *testing.T) {
	q := NewQueue(2)
	q.Push(render.NewFrame(1, 1, false))
	q.Push(render.NewFrame(1, 1, false))

	pushed := make(chan struct{})
	go func() {
		q.Push(render.NewFrame(1, 1, false))
		close(pushed)
	}()

	select {
	case <-pushed:
		t.Fatal("Expected Push to block on full queue")
	case <-time.After(30 * time.Millisecond):
	}

	q.Pop()

	select {
	case <-pushed:
	case <-time.After(time.Second):
		t.Fatal("Expected Push to resume after Pop")
	}
	if q.Len() != 2 {
		t.Errorf("Expected 2 queued frames, got %d", q.Len())
	}
}

// sliceReader replays frames then returns err (io.EOF when nil)
type sliceReader struct {
	frames []raster.Frame
	err    error
}

func (r *sliceReader) ReadFrame() (raster.Frame, error) {
	if len(r.frames) == 0 {
		if r.err != nil {
			return raster.Frame{}, r.err
		}
		return raster.Frame{}, io.EOF
	}
	f := r.frames[0]
	r.frames = r.frames[1:]
	return f, nil
}

func solidFrame(w, h int, v byte) raster.Frame {
	f := raster.NewFrame(w, h, 3, raster.OrderBGR)
	for i := range f.Pix {
		f.Pix[i] = v
	}
	return f
}

func newTestProducer(t *testing.T, reader FrameReader, q *Queue, metrics *status.Registry) *Producer {
	t.Helper()
	spec, err := layout.Plan(16, 8, 8, 8, 0, layout.VariantCell)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	return NewProducer(ProducerConfig{
		Source:    reader,
		Transform: raster.NewTransform(spec.PixelWidth, spec.PixelHeight, raster.TransformOptions{Grayscale: true}),
		Converter: convert.New(convert.Grayscale, raster.OrderBGR),
		Spec:      spec,
		Queue:     q,
		Metrics:   metrics,
	})
}

func TestProducerOrderAndEndOfStream(t *testing.T) {
	reader := &sliceReader{frames: []raster.Frame{
		solidFrame(16, 8, 0),
		solidFrame(16, 8, 255),
		solidFrame(16, 8, 0),
	}}
	q := NewQueue(DefaultCapacity)
	metrics := status.NewRegistry()

	newTestProducer(t, reader, q, metrics).Run()

	wantGlyph := []rune{' ', '@', ' '}
	for i, want := range wantGlyph {
		f, ok := q.Pop()
		if !ok {
			t.Fatalf("Frame %d: unexpected end of stream", i)
		}
		if got := f.Rows[0][0].Rune; got != want {
			t.Errorf("Frame %d: expected %q, got %q", i, want, got)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("Expected end of stream after three frames")
	}
	if got := metrics.Ints.Get(status.ProducerFrames).Load(); got != 3 {
		t.Errorf("Expected 3 produced frames, got %d", got)
	}
}

func TestProducerReadErrorEndsStream(t *testing.T) {
	reader := &sliceReader{
		frames: []raster.Frame{solidFrame(16, 8, 255)},
		err:    errors.New("broken pipe"),
	}
	q := NewQueue(DefaultCapacity)

	newTestProducer(t, reader, q, nil).Run()

	if _, ok := q.Pop(); !ok {
		t.Fatal("Expected the frame read before the error")
	}
	if _, ok := q.Pop(); ok {
		t.Error("Expected read error to end the stream")
	}
}

func TestProducerBoundedAhead(t *testing.T) {
	frames := make([]raster.Frame, 10)
	for i := range frames {
		frames[i] = solidFrame(16, 8, 128)
	}
	q := NewQueue(4)
	p := newTestProducer(t, &sliceReader{frames: frames}, q, nil)
	done := make(chan struct{})
	go func() {
		p.Run()
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	if q.Len() > 4 {
		t.Errorf("Expected at most 4 queued frames, got %d", q.Len())
	}

	n := 0
	for {
		if _, ok := q.Pop(); !ok {
			break
		}
		n++
	}
	<-done
	if n != 10 {
		t.Errorf("Expected 10 frames, got %d", n)
	}
}

func TestQueuePopContextCancel(t *testing.T) {
	q := NewQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, ok, err := q.PopContext(ctx); ok || !errors.Is(err, context.Canceled) {
		t.Errorf("Expected cancellation, got ok=%v err=%v", ok, err)
	}

	q.Push(render.NewFrame(1, 1, false))
	if f, ok, err := q.PopContext(context.Background()); !ok || err != nil || f == nil {
		t.Errorf("Expected queued frame, got ok=%v err=%v", ok, err)
	}
}
