package synth

import (
	"sort"

	"github.com/tiendc/go-deepcopy"
	"github.com/ukaji3/exreport-go/pkg/exreport/models"
)

// ColumnSource decides the columns of a table and lines rows up with them.
// One source is chosen per table and used for every row.
type ColumnSource interface {
	// Columns returns the resolved schema.
	Columns() []models.ColumnSpec
	// Cells returns the values of row in column order. Keyed rows missing a
	// column yield Null; positional rows are returned as they are.
	Cells(row models.Value) []models.Value
	// Inferred reports whether the schema was derived from the rows.
	Inferred() bool
}

// ResolveColumns picks the explicit schema when specs is non-empty and header
// inference otherwise.
func ResolveColumns(specs []models.ColumnSpec, rows models.Rows) (ColumnSource, error) {
	if len(specs) > 0 {
		var cols []models.ColumnSpec
		if err := deepcopy.Copy(&cols, specs); err != nil {
			return nil, err
		}
		for i := range cols {
			if cols[i].Type == "" {
				cols[i].Type = models.ColumnString
			}
		}
		return explicitColumns{specs: cols}, nil
	}
	headers := InferHeaders(rows)
	cols := make([]models.ColumnSpec, len(headers))
	for i, h := range headers {
		cols[i] = models.ColumnSpec{Name: h, Type: inferType(h, rows)}
	}
	return inferredColumns{specs: cols}, nil
}

// InferHeaders returns the sorted union of member names across keyed rows.
// Positional and scalar rows contribute nothing.
func InferHeaders(rows models.Rows) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		obj, ok := row.(*models.Object)
		if !ok {
			continue
		}
		for _, k := range obj.Keys() {
			seen[k] = struct{}{}
		}
	}
	headers := make([]string, 0, len(seen))
	for k := range seen {
		headers = append(headers, k)
	}
	sort.Strings(headers)
	return headers
}

// inferType reports ColumnNumber when every present value of key is numeric.
func inferType(key string, rows models.Rows) models.ColumnType {
	found := false
	for _, row := range rows {
		obj, ok := row.(*models.Object)
		if !ok {
			continue
		}
		v, ok := obj.Get(key)
		if !ok {
			continue
		}
		switch v.(type) {
		case models.Number:
			found = true
		case models.Null:
		default:
			return models.ColumnString
		}
	}
	if found {
		return models.ColumnNumber
	}
	return models.ColumnString
}

type explicitColumns struct {
	specs []models.ColumnSpec
}

func (c explicitColumns) Columns() []models.ColumnSpec { return c.specs }
func (c explicitColumns) Inferred() bool               { return false }

func (c explicitColumns) Cells(row models.Value) []models.Value {
	return alignRow(c.specs, row)
}

type inferredColumns struct {
	specs []models.ColumnSpec
}

func (c inferredColumns) Columns() []models.ColumnSpec { return c.specs }
func (c inferredColumns) Inferred() bool               { return true }

func (c inferredColumns) Cells(row models.Value) []models.Value {
	return alignRow(c.specs, row)
}

func alignRow(specs []models.ColumnSpec, row models.Value) []models.Value {
	switch t := row.(type) {
	case *models.Object:
		cells := make([]models.Value, len(specs))
		for i, spec := range specs {
			v, ok := t.Get(spec.Name)
			if !ok {
				v = models.Null{}
			}
			cells[i] = v
		}
		return cells
	case models.Array:
		cells := make([]models.Value, len(t))
		copy(cells, t)
		return cells
	case nil, models.Null:
		return nil
	default:
		return []models.Value{row}
	}
}
