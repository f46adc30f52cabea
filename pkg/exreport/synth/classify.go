package synth

import (
	"github.com/ukaji3/exreport-go/pkg/exreport/models"
	"github.com/ukaji3/exreport-go/pkg/exreport/surface"
)

// Classify maps a document value to the cell written for it. Strings, numbers
// and booleans keep their type; null, objects and arrays become an empty
// string cell. Nested structures are never flattened.
func Classify(v models.Value) surface.CellValue {
	switch t := v.(type) {
	case models.String:
		return surface.StringCell(string(t))
	case models.Number:
		return surface.NumberCell(float64(t))
	case models.Bool:
		return surface.BoolCell(bool(t))
	case models.Null, *models.Object, models.Array, nil:
		return surface.StringCell("")
	}
	return surface.StringCell("")
}

// WriteValue writes exactly one cell for v at pos.
func WriteValue(s surface.Surface, pos surface.Cell, v models.Value, style surface.StyleID) error {
	return s.WriteCell(pos, Classify(v), style)
}
