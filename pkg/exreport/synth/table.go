package synth

import (
	"fmt"

	"github.com/ukaji3/exreport-go/pkg/exreport/layout"
	"github.com/ukaji3/exreport-go/pkg/exreport/models"
	"github.com/ukaji3/exreport-go/pkg/exreport/surface"
	"github.com/xuri/excelize/v2"
)

const (
	defaultTableStyle = "TableStyleMedium2"
	totalsLabel       = "Total"
	// subtotalSum is the SUBTOTAL function number for SUM ignoring hidden rows.
	subtotalSum = 109
)

// TablePlan is a validated table ready to be rendered.
type TablePlan struct {
	Index       int                 `json:"index" yaml:"index"`
	Name        string              `json:"name" yaml:"name"`
	Columns     []models.ColumnSpec `json:"columns" yaml:"columns"`
	Body        [][]models.Value    `json:"-" yaml:"-"`
	Width       int                 `json:"width" yaml:"width"`
	Height      int                 `json:"height" yaml:"height"`
	Orientation models.Orientation  `json:"orientation" yaml:"orientation"`
	Totals      bool                `json:"totals,omitempty" yaml:"totals,omitempty"`
	Style       string              `json:"style" yaml:"style"`
	Inferred    bool                `json:"inferred,omitempty" yaml:"inferred,omitempty"`
}

// Extent returns the columns and rows the table itself covers: header plus
// body, transposed for vertical tables.
func (t *TablePlan) Extent() (cols, rows int) {
	if t.Orientation == models.Vertical {
		return t.Height + 1, t.Width
	}
	return t.Width, t.Height + 1
}

// Footprint returns the space reserved on the sheet, including the spacing
// row below the table.
func (t *TablePlan) Footprint() layout.Footprint {
	cols, rows := t.Extent()
	return layout.Footprint{Width: cols, Height: rows + 1}
}

// hasTotals reports whether a totals row is written.
func (t *TablePlan) hasTotals() bool {
	return t.Totals && t.Orientation == models.Horizontal && t.Height > 0
}

// Headers returns the header text of each column, padded to Width.
func (t *TablePlan) Headers() []string {
	out := make([]string, t.Width)
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// PrepareTable resolves the columns of spec, lines the body up with them and
// checks it against the declared dimensions. No surface is touched.
func PrepareTable(index int, spec models.TableSpec, def models.Orientation, names *tableNames) (*TablePlan, error) {
	orientation := spec.Orientation
	if orientation == "" {
		orientation = def
	}
	orientation, err := models.ParseOrientation(string(orientation))
	if err != nil {
		return nil, configf("%v", err)
	}
	if spec.Width < 0 || spec.Height < 0 {
		return nil, schemaf("negative declared size %dx%d", spec.Width, spec.Height)
	}

	src, err := ResolveColumns(spec.Columns, spec.Rows)
	if err != nil {
		return nil, err
	}
	cols := src.Columns()
	seen := make(map[string]bool, len(cols))
	for i, c := range cols {
		key := foldName(c.Name)
		if seen[key] {
			return nil, configf("duplicate column name %q", c.Name)
		}
		seen[key] = true
		typ, err := models.ParseColumnType(string(c.Type))
		if err != nil {
			return nil, configf("column %q: %v", c.Name, err)
		}
		cols[i].Type = typ
		if err := checkFormat(c.Format); err != nil {
			return nil, err
		}
		if err := checkFormula(c.Formula); err != nil {
			return nil, err
		}
	}

	body := make([][]models.Value, len(spec.Rows))
	widest := len(cols)
	for i, row := range spec.Rows {
		body[i] = src.Cells(row)
		widest = max(widest, len(body[i]))
	}

	width, height := spec.Width, spec.Height
	if width == 0 {
		width = widest
	}
	if height == 0 {
		height = len(body)
	}

	if width == 0 {
		return nil, schemaf("table has no columns")
	}
	if len(cols) > width {
		return nil, schemaf("%d columns exceed declared width %d", len(cols), width)
	}
	if len(body) > height {
		return nil, schemaf("body has %d rows, declared height is %d", len(body), height)
	}
	for i, cells := range body {
		if len(cells) > width {
			return nil, schemaf("row %d has %d cells, declared width is %d", i, len(cells), width)
		}
	}

	style := spec.Style
	if style == "" {
		style = defaultTableStyle
	}
	return &TablePlan{
		Index:       index,
		Name:        names.assign(spec.Name),
		Columns:     cols,
		Body:        body,
		Width:       width,
		Height:      height,
		Orientation: orientation,
		Totals:      spec.Totals,
		Style:       style,
		Inferred:    src.Inferred(),
	}, nil
}

// PreparedColumn is the per-render record of one column of a table.
type PreparedColumn struct {
	Index int
	Style surface.StyleID
	Kind  models.ColumnType
}

// tableWriter renders tables onto one sheet and tracks the widths applied to
// each sheet column so tables sharing a column keep the widest.
type tableWriter struct {
	s       surface.Surface
	styles  Styles
	widths  map[int]float64
	formats map[string]surface.StyleID
}

func newTableWriter(s surface.Surface, styles Styles) *tableWriter {
	return &tableWriter{
		s:       s,
		styles:  styles,
		widths:  make(map[int]float64),
		formats: make(map[string]surface.StyleID),
	}
}

// RenderTable writes t with its top-left cell at origin and returns the
// prepared columns. The caller must have validated t with PrepareTable.
func RenderTable(s surface.Surface, t *TablePlan, origin surface.Cell, styles Styles) ([]PreparedColumn, error) {
	return newTableWriter(s, styles).render(t, origin)
}

func (w *tableWriter) render(t *TablePlan, origin surface.Cell) ([]PreparedColumn, error) {
	prepared, err := w.prepareColumns(t, origin)
	if err != nil {
		return nil, err
	}
	if t.Orientation == models.Vertical {
		err = w.renderVertical(t, origin, prepared)
	} else {
		err = w.renderHorizontal(t, origin, prepared)
	}
	if err != nil {
		return nil, err
	}
	return prepared, nil
}

func (w *tableWriter) prepareColumns(t *TablePlan, origin surface.Cell) ([]PreparedColumn, error) {
	prepared := make([]PreparedColumn, t.Width)
	for i := range prepared {
		pc := PreparedColumn{Index: origin.Col + i, Kind: models.ColumnString}
		if t.Orientation == models.Vertical {
			pc.Index = origin.Col
		}
		if i < len(t.Columns) {
			spec := t.Columns[i]
			pc.Kind = spec.Type
			if spec.Format != "" {
				id, err := w.formatStyle(spec.Format)
				if err != nil {
					return nil, err
				}
				pc.Style = id
			}
		}
		prepared[i] = pc
	}
	return prepared, nil
}

func (w *tableWriter) formatStyle(format string) (surface.StyleID, error) {
	if id, ok := w.formats[format]; ok {
		return id, nil
	}
	id, err := w.s.DefineStyle(surface.Style{NumberFormat: format})
	if err != nil {
		return 0, surfaceErr("define style", err)
	}
	w.formats[format] = id
	return id, nil
}

func (w *tableWriter) writeBodyCell(t *TablePlan, pos surface.Cell, field, record int, pc PreparedColumn) error {
	if field < len(t.Columns) && t.Columns[field].Formula != "" {
		formula := expandFormula(t.Columns[field].Formula, pos.Row+1)
		if err := w.s.WriteFormula(pos, formula, pc.Style); err != nil {
			return surfaceErr("write formula", err)
		}
		return nil
	}
	var v models.Value = models.Null{}
	if row := t.Body[record]; field < len(row) {
		v = row[field]
	}
	if err := WriteValue(w.s, pos, v, pc.Style); err != nil {
		return surfaceErr("write cell", err)
	}
	return nil
}

func (w *tableWriter) renderHorizontal(t *TablePlan, origin surface.Cell, prepared []PreparedColumn) error {
	headers := t.Headers()
	for i, h := range headers {
		pos := surface.Cell{Row: origin.Row, Col: origin.Col + i}
		if err := w.s.WriteHeader(pos, h, w.styles.Header); err != nil {
			return surfaceErr("write header", err)
		}
	}
	for r := range t.Body {
		for i, pc := range prepared {
			pos := surface.Cell{Row: origin.Row + 1 + r, Col: pc.Index}
			if err := w.writeBodyCell(t, pos, i, r, pc); err != nil {
				return err
			}
		}
	}

	area := models.Area{R1: origin.Row, C1: origin.Col, R2: origin.Row + t.Height, C2: origin.Col + t.Width - 1}
	if err := w.s.DeclareTable(area, surface.TableOptions{
		Name:       t.Name,
		Style:      t.Style,
		HeaderRow:  true,
		RowStripes: true,
	}); err != nil {
		return surfaceErr("declare table", err)
	}
	if t.hasTotals() {
		if err := w.writeTotals(t, origin, prepared); err != nil {
			return err
		}
	}

	for i, pc := range prepared {
		values := make([]models.Value, 0, len(t.Body)+1)
		for _, row := range t.Body {
			if i < len(row) {
				values = append(values, row[i])
			}
		}
		if t.hasTotals() && i == labelColumn(prepared) {
			values = append(values, models.String(totalsLabel))
		}
		if err := w.applyWidth(pc.Index, EstimateWidth(headers[i], values)); err != nil {
			return err
		}
	}
	return nil
}

// labelColumn returns the first column that is not a number column, or -1.
func labelColumn(prepared []PreparedColumn) int {
	for i, pc := range prepared {
		if pc.Kind != models.ColumnNumber {
			return i
		}
	}
	return -1
}

// writeTotals fills the spacing row below the body: a label in the first
// non-number column and a SUBTOTAL over each number column.
func (w *tableWriter) writeTotals(t *TablePlan, origin surface.Cell, prepared []PreparedColumn) error {
	row := origin.Row + t.Height + 1
	first, last := origin.Row+2, origin.Row+t.Height+1
	label := labelColumn(prepared)
	for i, pc := range prepared {
		pos := surface.Cell{Row: row, Col: pc.Index}
		switch {
		case pc.Kind == models.ColumnNumber:
			top, err := excelize.CoordinatesToCellName(pc.Index+1, first)
			if err != nil {
				return surfaceErr("write totals", err)
			}
			bottom, err := excelize.CoordinatesToCellName(pc.Index+1, last)
			if err != nil {
				return surfaceErr("write totals", err)
			}
			formula := fmt.Sprintf("SUBTOTAL(%d,%s:%s)", subtotalSum, top, bottom)
			if err := w.s.WriteFormula(pos, formula, w.styles.Totals); err != nil {
				return surfaceErr("write totals", err)
			}
		case i == label:
			if err := w.s.WriteCell(pos, surface.StringCell(totalsLabel), w.styles.Totals); err != nil {
				return surfaceErr("write totals", err)
			}
		}
	}
	return nil
}

func (w *tableWriter) renderVertical(t *TablePlan, origin surface.Cell, prepared []PreparedColumn) error {
	headers := t.Headers()
	for i, h := range headers {
		pos := surface.Cell{Row: origin.Row + i, Col: origin.Col}
		if err := w.s.WriteHeader(pos, h, w.styles.Header); err != nil {
			return surfaceErr("write header", err)
		}
	}
	for r := range t.Body {
		for i, pc := range prepared {
			pos := surface.Cell{Row: origin.Row + i, Col: origin.Col + 1 + r}
			if err := w.writeBodyCell(t, pos, i, r, pc); err != nil {
				return err
			}
		}
	}

	area := models.Area{R1: origin.Row, C1: origin.Col, R2: origin.Row + t.Width - 1, C2: origin.Col + t.Height}
	if err := w.s.DeclareTable(area, surface.TableOptions{
		Name:        t.Name,
		Style:       t.Style,
		FirstColumn: true,
	}); err != nil {
		return surfaceErr("declare table", err)
	}

	if err := w.applyWidth(origin.Col, EstimateWidth("", stringValues(headers))); err != nil {
		return err
	}
	for r, row := range t.Body {
		if err := w.applyWidth(origin.Col+1+r, EstimateWidth("", row)); err != nil {
			return err
		}
	}
	return nil
}

// applyWidth sets a column width unless a wider one was already applied.
func (w *tableWriter) applyWidth(col int, width float64) error {
	width = clampWidth(width)
	if width <= w.widths[col] {
		return nil
	}
	if err := w.s.SetColumnWidth(col, width); err != nil {
		return surfaceErr("set column width", err)
	}
	w.widths[col] = width
	return nil
}

func stringValues(ss []string) []models.Value {
	out := make([]models.Value, len(ss))
	for i, s := range ss {
		out[i] = models.String(s)
	}
	return out
}
