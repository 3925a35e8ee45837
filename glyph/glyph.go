// Package glyph holds the static lookup tables that map quantized pixel data to display runes.
package glyph

import (
	"fmt"
	"math"
)

const (
	// MidShade is the threshold below which a sample counts as dark for quadrant packing
	MidShade = 100

	// AlphaThreshold is the alpha value at or below which a pixel renders as transparent
	AlphaThreshold = 10
)

// Ramps ordered by increasing visual density
const (
	GrayscaleRamp = " .°*oO#@"
	DensityRamp   = " ·∘◦•●░▒▓█"
)

// Solid is the glyph used for fully opaque true-color cells
const Solid = '█'

// Table maps a small integer key to a single rune
// Immutable after construction
type Table struct {
	runes []rune
}

// NewTable builds a table from an ordered rune sequence
func NewTable(chars string) Table {
	runes := []rune(chars)
	if len(runes) == 0 {
		panic("glyph: empty table")
	}
	return Table{runes: runes}
}

// Len returns the number of keys in the table
func (t Table) Len() int {
	return len(t.runes)
}

// Lookup returns the rune for key
// Out-of-range keys are a caller bug
func (t Table) Lookup(key int) rune {
	if key < 0 || key >= len(t.runes) {
		panic(fmt.Sprintf("glyph: key %d out of range [0,%d)", key, len(t.runes)))
	}
	return t.runes[key]
}

// Last returns the densest rune in the table
func (t Table) Last() rune {
	return t.runes[len(t.runes)-1]
}

// Ramp is a luminance ramp indexed by quantized intensity
type Ramp struct {
	Table
	index [256]uint8
}

// NewRamp builds a ramp and precomputes the index for every 8-bit intensity
func NewRamp(chars string) *Ramp {
	r := &Ramp{Table: NewTable(chars)}
	for i := 0; i < 256; i++ {
		r.index[i] = uint8(RampIndex(uint8(i), r.Len()))
	}
	return r
}

// Index returns the ramp position for an intensity
func (r *Ramp) Index(intensity uint8) int {
	return int(r.index[intensity])
}

// Glyph returns the ramp rune for an intensity
func (r *Ramp) Glyph(intensity uint8) rune {
	return r.runes[r.index[intensity]]
}

// RampIndex quantizes intensity onto a ramp of n entries
// round(intensity*n/255) - 1, saturated into [0, n-1]
func RampIndex(intensity uint8, n int) int {
	idx := int(math.Round(float64(intensity)*float64(n)/255)) - 1
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

// Intensity averages channel values into a single 0-255 intensity
func Intensity(channels ...uint8) uint8 {
	if len(channels) == 0 {
		return 0
	}
	sum := 0
	for _, c := range channels {
		sum += int(c)
	}
	return uint8(sum / len(channels))
}
