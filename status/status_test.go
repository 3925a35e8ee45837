package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapGetCaches(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	a := m.Get("x")
	a.Add(3)
	if b := m.Get("x"); b != a || b.Load() != 3 {
		t.Errorf("Expected cached pointer with value 3, got %d", b.Load())
	}
	if _, ok := m.Lookup("y"); ok {
		t.Error("Expected Lookup not to create missing key")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 metric, got %d", m.Count())
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Get(ProducerFrames).Add(1)
			}
		}()
	}
	wg.Wait()

	if got := m.Get(ProducerFrames).Load(); got != 1600 {
		t.Errorf("Expected 1600, got %d", got)
	}
}

func TestSnapshotOrder(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(PlayerEmitted).Store(30)
	r.Ints.Get(PlayerDropped).Store(2)
	r.Floats.Get(PlayerFPS).Set(29.5)
	r.Strings.Get(PlayerState).Set("stopped")

	got := r.Snapshot()
	want := []any{
		PlayerDropped, int64(2),
		PlayerEmitted, int64(30),
		PlayerFPS, "29.50",
		PlayerState, "stopped",
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d entries, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entry %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
