package synth

import (
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/ukaji3/exreport-go/pkg/exreport/models"
	"github.com/ukaji3/exreport-go/pkg/exreport/surface"
)

const (
	widthPadding = 2.8
	widthScale   = 1.2
)

// DisplayText returns the canonical text of a value as it appears in a cell.
func DisplayText(v models.Value) string {
	switch t := v.(type) {
	case models.String:
		return string(t)
	case models.Number:
		return strconv.FormatFloat(float64(t), 'f', -1, 64)
	case models.Bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}

// EstimateWidth returns the display width of a column holding header and
// values: (longest text + 2.8) * 1.2, measured in character cells.
func EstimateWidth(header string, values []models.Value) float64 {
	n := runewidth.StringWidth(header)
	for _, v := range values {
		n = max(n, runewidth.StringWidth(DisplayText(v)))
	}
	return (float64(n) + widthPadding) * widthScale
}

// clampWidth keeps a width inside what the xlsx format accepts.
func clampWidth(w float64) float64 {
	return min(w, surface.MaxColumnWidth)
}
