package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 stored as bits
// Zero value is 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// AtomicString holds a short label such as the playback state
// Zero value is the empty string
type AtomicString struct {
	ptr atomic.Pointer[string]
}

func (s *AtomicString) Set(val string) {
	s.ptr.Store(&val)
}

func (s *AtomicString) Get() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
