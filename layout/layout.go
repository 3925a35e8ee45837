// Package layout computes the character grid and pixel target for a stream.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// SymbolRatio compensates for terminal cells being taller than wide
const SymbolRatio = 0.42

// ErrInvalidDimensions is returned when source dimensions or caps are not positive
var ErrInvalidDimensions = errors.New("layout: invalid dimensions")

// Variant selects how many pixels each character cell covers
type Variant uint8

const (
	VariantCell     Variant = iota // 1x1 pixel per cell
	VariantQuadrant                // 2x2 pixels per cell
)

// String returns human-readable variant name
func (v Variant) String() string {
	switch v {
	case VariantCell:
		return "cell"
	case VariantQuadrant:
		return "quadrant"
	default:
		return "unknown"
	}
}

// SubCells returns pixels per cell horizontally and vertically
func (v Variant) SubCells() (cols, rows int) {
	if v == VariantQuadrant {
		return 2, 2
	}
	return 1, 1
}

// Spec is the immutable layout of one stream
type Spec struct {
	Cols        int // Terminal columns
	Rows        int // Terminal rows
	PixelWidth  int // Resize target width
	PixelHeight int // Resize target height
	Variant     Variant
}

// String returns compact description for logging
func (s Spec) String() string {
	return fmt.Sprintf("%dx%d cells (%dx%d px, %s)", s.Cols, s.Rows, s.PixelWidth, s.PixelHeight, s.Variant)
}

// Plan computes the layout for a source of srcW x srcH pixels
// forcedCols > 0 overrides the column count even when the source is narrower
func Plan(srcW, srcH, maxCols, maxRows, forcedCols int, v Variant) (Spec, error) {
	if srcW <= 0 || srcH <= 0 || maxCols <= 0 || maxRows <= 0 {
		return Spec{}, fmt.Errorf("%w: source %dx%d, max %dx%d", ErrInvalidDimensions, srcW, srcH, maxCols, maxRows)
	}

	subCols, subRows := v.SubCells()
	aspect := float64(srcH) / float64(srcW)

	cols := min(srcW, maxCols)
	if forcedCols > 0 {
		cols = forcedCols
	}

	pixelWidth := cols * subCols
	pixelHeight := int(math.Round(aspect * float64(pixelWidth) * SymbolRatio))

	if limit := maxRows * subRows; pixelHeight > limit {
		pixelHeight = limit
		pixelWidth = int(math.Round(float64(pixelHeight) / aspect / SymbolRatio))
	}

	if v == VariantQuadrant {
		pixelWidth &^= 1
		pixelHeight &^= 1
	}

	// At least one full cell in each direction
	pixelWidth = max(pixelWidth, subCols)
	pixelHeight = max(pixelHeight, subRows)

	cols = pixelWidth / subCols
	rows := pixelHeight / subRows

	return Spec{
		Cols:        cols,
		Rows:        rows,
		PixelWidth:  cols * subCols,
		PixelHeight: rows * subRows,
		Variant:     v,
	}, nil
}
