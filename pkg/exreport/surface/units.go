package surface

import "math"

const (
	// DefaultColumnWidth is the width of an untouched column in characters.
	DefaultColumnWidth = 9.140625
	// MaxRowHeight is the largest row height Excel accepts, in points.
	MaxRowHeight = 409.0

	maxDigitWidth = 7.0
	cellPadding   = 5.0
)

// ColumnWidthToPixels converts a column width in characters to pixels using
// the default font's maximum digit width.
func ColumnWidthToPixels(width float64) int {
	if width <= 0 {
		return 0
	}
	return int(math.Ceil(width*maxDigitWidth + cellPadding))
}

// PixelsToPoints converts a pixel length at 96 DPI to points.
func PixelsToPoints(px int) float64 {
	return float64(px) * 72 / 96
}
