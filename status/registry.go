package status

import (
	"strconv"
	"sync/atomic"
)

// Metric keys written during playback
const (
	ProducerFrames    = "producer.frames"     // Frames converted and queued
	ProducerConvertNs = "producer.convert_ns" // Last resize+convert duration
	PlayerState       = "player.state"
	PlayerEmitted     = "player.emitted"
	PlayerDropped     = "player.dropped"
	PlayerFPS         = "player.fps"
	QueueDepth        = "queue.depth"
)

// Registry groups metrics by value type
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Snapshot flattens all metrics into alternating key/value pairs
// Suitable for hclog's variadic arguments
func (r *Registry) Snapshot() []any {
	out := make([]any, 0, 2*(r.Ints.Count()+r.Floats.Count()+r.Strings.Count()))
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, k, v.Load())
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out = append(out, k, strconv.FormatFloat(v.Get(), 'f', 2, 64))
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		out = append(out, k, v.Get())
	})
	return out
}
