package exreport

import (
	"fmt"

	"github.com/ukaji3/exreport-go/pkg/exreport/models"
)

// FromDocument builds a workbook from a schema-less document. A top-level
// array becomes one sheet of rows. A top-level object whose members are all
// arrays becomes one sheet per member, in member order. Columns are inferred.
func FromDocument(v models.Value, opts Options) (*models.Workbook, error) {
	wb := &models.Workbook{Orientation: opts.Orientation}
	switch t := v.(type) {
	case models.Array:
		wb.Sheets = []models.Sheet{{Name: opts.sheetName(), Rows: models.Rows(t)}}
	case *models.Object:
		if t.Len() == 0 {
			return nil, fmt.Errorf("%w: document is an empty object", ErrConfigViolation)
		}
		for _, e := range t.Entries() {
			rows, ok := e.Value.(models.Array)
			if !ok {
				return nil, fmt.Errorf("%w: member %q is %s, want array", ErrConfigViolation, e.Key, e.Value.Kind())
			}
			wb.Sheets = append(wb.Sheets, models.Sheet{Name: e.Key, Rows: models.Rows(rows)})
		}
	case nil:
		return nil, fmt.Errorf("%w: document is empty", ErrConfigViolation)
	default:
		return nil, fmt.Errorf("%w: document is %s, want array or object", ErrConfigViolation, t.Kind())
	}
	return wb, nil
}
