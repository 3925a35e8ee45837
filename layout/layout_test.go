package layout

import (
	"errors"
	"math"
	"testing"
)

func TestPlanHD(t *testing.T) {
	for _, v := range []Variant{VariantCell, VariantQuadrant} {
		t.Run(v.String(), func(t *testing.T) {
			spec, err := Plan(1920, 1080, 80, 20, 0, v)
			if err != nil {
				t.Fatalf("Plan failed: %v", err)
			}

			if spec.Cols > 80 {
				t.Errorf("Expected cols <= 80, got %d", spec.Cols)
			}
			if spec.Rows > 20 {
				t.Errorf("Expected rows <= 20, got %d", spec.Rows)
			}

			want := (1080.0 / 1920.0) * SymbolRatio
			got := float64(spec.PixelHeight) / float64(spec.PixelWidth)
			// One pixel of rounding in either dimension
			tol := 1.5 / float64(spec.PixelWidth)
			if math.Abs(got-want) > tol {
				t.Errorf("Expected pixel ratio %.4f, got %.4f", want, got)
			}
		})
	}
}

func TestPlanExactValues(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		maxC, maxR int
		forced     int
		v          Variant
		want       Spec
	}{
		{
			name: "CellWidthBound",
			srcW: 1920, srcH: 1080, maxC: 80, maxR: 20,
			v:    VariantCell,
			want: Spec{Cols: 80, Rows: 19, PixelWidth: 80, PixelHeight: 19, Variant: VariantCell},
		},
		{
			name: "QuadrantWidthBound",
			srcW: 1920, srcH: 1080, maxC: 80, maxR: 20,
			v:    VariantQuadrant,
			want: Spec{Cols: 80, Rows: 19, PixelWidth: 160, PixelHeight: 38, Variant: VariantQuadrant},
		},
		{
			// 640x480: ph = round(0.75*80*0.42) = 25 > 10 -> 10, pw = round(10/0.75/0.42) = 32
			name: "CellHeightClamp",
			srcW: 640, srcH: 480, maxC: 80, maxR: 10,
			v:    VariantCell,
			want: Spec{Cols: 32, Rows: 10, PixelWidth: 32, PixelHeight: 10, Variant: VariantCell},
		},
		{
			name: "SmallSourceKeepsWidth",
			srcW: 40, srcH: 40, maxC: 80, maxR: 50,
			v:    VariantCell,
			want: Spec{Cols: 40, Rows: 17, PixelWidth: 40, PixelHeight: 17, Variant: VariantCell},
		},
		{
			name: "ForcedWidth",
			srcW: 40, srcH: 40, maxC: 80, maxR: 50,
			forced: 100,
			v:      VariantCell,
			want:   Spec{Cols: 100, Rows: 42, PixelWidth: 100, PixelHeight: 42, Variant: VariantCell},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plan(tt.srcW, tt.srcH, tt.maxC, tt.maxR, tt.forced, tt.v)
			if err != nil {
				t.Fatalf("Plan failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestPlanQuadrantAlwaysEven(t *testing.T) {
	sources := [][2]int{{1920, 1080}, {1280, 720}, {641, 479}, {333, 777}, {17, 5}, {5, 17}, {1000, 1}}
	for _, src := range sources {
		for maxC := 1; maxC <= 120; maxC += 7 {
			for maxR := 1; maxR <= 60; maxR += 5 {
				spec, err := Plan(src[0], src[1], maxC, maxR, 0, VariantQuadrant)
				if err != nil {
					t.Fatalf("Plan(%v, %d, %d) failed: %v", src, maxC, maxR, err)
				}
				if spec.PixelWidth%2 != 0 || spec.PixelHeight%2 != 0 {
					t.Fatalf("Plan(%v, %d, %d): odd pixel dimensions %dx%d", src, maxC, maxR, spec.PixelWidth, spec.PixelHeight)
				}
				if spec.PixelWidth != spec.Cols*2 || spec.PixelHeight != spec.Rows*2 {
					t.Fatalf("Plan(%v, %d, %d): pixel size does not match grid: %+v", src, maxC, maxR, spec)
				}
				if spec.Cols < 1 || spec.Rows < 1 {
					t.Fatalf("Plan(%v, %d, %d): empty grid %+v", src, maxC, maxR, spec)
				}
			}
		}
	}
}

func TestPlanTallerCapNeverShrinksCols(t *testing.T) {
	for _, v := range []Variant{VariantCell, VariantQuadrant} {
		for maxR := 1; maxR <= 100; maxR++ {
			a, err := Plan(1920, 1080, 120, maxR, 0, v)
			if err != nil {
				t.Fatal(err)
			}
			b, err := Plan(1920, 1080, 120, maxR*2, 0, v)
			if err != nil {
				t.Fatal(err)
			}
			if b.Cols < a.Cols {
				t.Errorf("%s maxRows %d -> %d: cols decreased %d -> %d", v, maxR, maxR*2, a.Cols, b.Cols)
			}
		}
	}
}

func TestPlanDeterministic(t *testing.T) {
	a, _ := Plan(1280, 720, 100, 30, 0, VariantQuadrant)
	b, _ := Plan(1280, 720, 100, 30, 0, VariantQuadrant)
	if a != b {
		t.Errorf("Expected identical plans, got %+v and %+v", a, b)
	}
}

func TestPlanInvalid(t *testing.T) {
	cases := [][4]int{{0, 10, 80, 20}, {10, 0, 80, 20}, {10, 10, 0, 20}, {10, 10, 80, 0}, {-1, 10, 80, 20}}
	for _, c := range cases {
		_, err := Plan(c[0], c[1], c[2], c[3], 0, VariantCell)
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Plan(%v): expected ErrInvalidDimensions, got %v", c, err)
		}
	}
}
