package glyph

// Quadrant bit positions, MSB-first in row-major order
const (
	BitTopLeft     uint8 = 1 << 3
	BitTopRight    uint8 = 1 << 2
	BitBottomLeft  uint8 = 1 << 1
	BitBottomRight uint8 = 1 << 0
)

// QuadrantChars maps 4-bit dark patterns to Unicode quadrant characters
// Bit order: 3=TL, 2=TR, 1=BL, 0=BR (1 = dark)
var QuadrantChars = [16]rune{
	' ', // 0000 - empty
	'▗', // 0001 - lower-right
	'▖', // 0010 - lower-left
	'▄', // 0011 - lower half
	'▝', // 0100 - upper-right
	'▐', // 0101 - right half
	'▞', // 0110 - anti-diagonal
	'▟', // 0111 - TR + BL + BR
	'▘', // 1000 - upper-left
	'▚', // 1001 - diagonal
	'▌', // 1010 - left half
	'▙', // 1011 - TL + BL + BR
	'▀', // 1100 - upper half
	'▜', // 1101 - TL + TR + BR
	'▛', // 1110 - TL + TR + BL
	'█', // 1111 - full block
}

// Quadrant is the 16-entry block table
var Quadrant = NewTable(string(QuadrantChars[:]))

// QuadrantKey packs four dark flags into a table key
func QuadrantKey(tl, tr, bl, br bool) uint8 {
	var key uint8
	if tl {
		key |= BitTopLeft
	}
	if tr {
		key |= BitTopRight
	}
	if bl {
		key |= BitBottomLeft
	}
	if br {
		key |= BitBottomRight
	}
	return key
}

// Dark reports whether a sample is below the mid-shade threshold
func Dark(v uint8) bool {
	return v < MidShade
}
