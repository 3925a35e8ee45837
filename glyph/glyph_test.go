package glyph

import (
	"testing"
)

func TestQuadrantTableBijection(t *testing.T) {
	seen := make(map[rune]int, 16)
	for key := 0; key < 16; key++ {
		r := Quadrant.Lookup(key)
		if prev, ok := seen[r]; ok {
			t.Errorf("Keys %d and %d map to the same glyph %q", prev, key, r)
		}
		seen[r] = key
	}

	if len(seen) != 16 {
		t.Errorf("Expected 16 distinct glyphs, got %d", len(seen))
	}
	if Quadrant.Lookup(0) != ' ' {
		t.Errorf("Expected key 0 to be space, got %q", Quadrant.Lookup(0))
	}
	if Quadrant.Lookup(15) != '█' {
		t.Errorf("Expected key 15 to be full block, got %q", Quadrant.Lookup(15))
	}
}

func TestQuadrantKeyPacking(t *testing.T) {
	tests := []struct {
		name           string
		tl, tr, bl, br bool
		want           rune
	}{
		{"Empty", false, false, false, false, ' '},
		{"TopLeft", true, false, false, false, '▘'},
		{"TopRight", false, true, false, false, '▝'},
		{"BottomLeft", false, false, true, false, '▖'},
		{"BottomRight", false, false, false, true, '▗'},
		{"UpperHalf", true, true, false, false, '▀'},
		{"LowerHalf", false, false, true, true, '▄'},
		{"LeftHalf", true, false, true, false, '▌'},
		{"RightHalf", false, true, false, true, '▐'},
		{"Diagonal", true, false, false, true, '▚'},
		{"AntiDiagonal", false, true, true, false, '▞'},
		{"Full", true, true, true, true, '█'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := QuadrantKey(tt.tl, tt.tr, tt.bl, tt.br)
			if got := Quadrant.Lookup(int(key)); got != tt.want {
				t.Errorf("Expected %q for key %04b, got %q", tt.want, key, got)
			}
		})
	}
}

func TestLookupOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for out-of-range key")
		}
	}()
	Quadrant.Lookup(16)
}

func TestRampIndexBounds(t *testing.T) {
	for _, n := range []int{1, 2, 8, 10, 17, 64} {
		prev := -1
		for i := 0; i <= 255; i++ {
			idx := RampIndex(uint8(i), n)
			if idx < 0 || idx > n-1 {
				t.Fatalf("n=%d intensity=%d: index %d out of [0,%d]", n, i, idx, n-1)
			}
			if idx < prev {
				t.Fatalf("n=%d intensity=%d: index decreased from %d to %d", n, i, prev, idx)
			}
			prev = idx
		}
		if RampIndex(0, n) != 0 {
			t.Errorf("n=%d: expected intensity 0 to map to 0, got %d", n, RampIndex(0, n))
		}
		if RampIndex(255, n) != n-1 {
			t.Errorf("n=%d: expected intensity 255 to map to %d, got %d", n, n-1, RampIndex(255, n))
		}
	}
}

func TestRampGlyphs(t *testing.T) {
	r := NewRamp(GrayscaleRamp)

	if r.Len() != 8 {
		t.Fatalf("Expected 8 entries, got %d", r.Len())
	}
	if got := r.Glyph(0); got != ' ' {
		t.Errorf("Expected space for black, got %q", got)
	}
	if got := r.Glyph(255); got != '@' {
		t.Errorf("Expected '@' for white, got %q", got)
	}
	// round(128*8/255) - 1 = 3
	if got := r.Index(128); got != 3 {
		t.Errorf("Expected index 3 for mid gray, got %d", got)
	}

	d := NewRamp(DensityRamp)
	if d.Last() != Solid {
		t.Errorf("Expected density ramp to end in solid block, got %q", d.Last())
	}
}

func TestIntensity(t *testing.T) {
	if got := Intensity(30, 60, 90); got != 60 {
		t.Errorf("Expected 60, got %d", got)
	}
	if got := Intensity(200); got != 200 {
		t.Errorf("Expected 200, got %d", got)
	}
	if got := Intensity(); got != 0 {
		t.Errorf("Expected 0 for no channels, got %d", got)
	}
}

func TestDark(t *testing.T) {
	if !Dark(99) {
		t.Error("Expected 99 to be dark")
	}
	if Dark(100) {
		t.Error("Expected 100 to not be dark")
	}
}
