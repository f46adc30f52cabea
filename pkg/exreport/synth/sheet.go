package synth

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tiendc/go-deepcopy"
	"github.com/ukaji3/exreport-go/pkg/exreport/layout"
	"github.com/ukaji3/exreport-go/pkg/exreport/models"
	"github.com/ukaji3/exreport-go/pkg/exreport/surface"
)

// Fixed presentation styles.
var (
	HeaderStyle = surface.Style{
		Bold:         true,
		FontSize:     11,
		FillColor:    "D9E1F2",
		BorderBottom: true,
		VAlign:       "center",
	}
	TitleStyle = surface.Style{
		Bold:     true,
		FontSize: 14,
		HAlign:   "left",
		VAlign:   "center",
	}
	TotalsStyle = surface.Style{
		Bold: true,
	}
)

// Styles holds the handles of the fixed styles on one surface.
type Styles struct {
	Header surface.StyleID
	Title  surface.StyleID
	Totals surface.StyleID
}

// DefineStyles registers the fixed styles with s.
func DefineStyles(s surface.Surface) (Styles, error) {
	var st Styles
	var err error
	if st.Header, err = s.DefineStyle(HeaderStyle); err != nil {
		return st, surfaceErr("define header style", err)
	}
	if st.Title, err = s.DefineStyle(TitleStyle); err != nil {
		return st, surfaceErr("define title style", err)
	}
	if st.Totals, err = s.DefineStyle(TotalsStyle); err != nil {
		return st, surfaceErr("define totals style", err)
	}
	return st, nil
}

// SheetPlan is a validated sheet with every table placed.
type SheetPlan struct {
	Index      int                `json:"index" yaml:"index"`
	Name       string             `json:"name" yaml:"name"`
	Protected  bool               `json:"protected,omitempty" yaml:"protected,omitempty"`
	Password   string             `json:"-" yaml:"-"`
	Title      *models.TitleBand  `json:"title,omitempty" yaml:"title,omitempty"`
	ContentTop int                `json:"content_top" yaml:"content_top"`
	Tables     []*TablePlan       `json:"tables" yaml:"tables"`
	Placements []layout.Placement `json:"placements" yaml:"placements"`
	Occupied   *models.Area       `json:"occupied,omitempty" yaml:"occupied,omitempty"`
	Freeze     surface.Cell       `json:"freeze" yaml:"freeze"`
	Warnings   []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// titleSpan returns the merged title area: row 0 across every data column.
func (p *SheetPlan) titleSpan() models.Area {
	cols, _ := layout.Bounds(p.Placements)
	return models.Area{R1: 0, C1: 0, R2: 0, C2: max(cols, 1) - 1}
}

// Planner validates sheets of one workbook. Table names are unique across
// every sheet it plans.
type Planner struct {
	Orientation models.Orientation
	Layout      layout.Params

	names *tableNames
	seen  map[string]int
}

// NewPlanner returns a Planner for one workbook.
func NewPlanner(orientation models.Orientation, params layout.Params) *Planner {
	return &Planner{
		Orientation: orientation,
		Layout:      params,
		names:       newTableNames(),
		seen:        make(map[string]int),
	}
}

// PlanSheet validates sheet and computes its layout. The sheet is read only.
func (p *Planner) PlanSheet(index int, sheet models.Sheet) (*SheetPlan, error) {
	name := sheet.Name
	if name == "" {
		name = fmt.Sprintf("Sheet%d", index+1)
	}
	if err := checkSheetName(name); err != nil {
		return nil, err
	}
	key := foldName(name)
	if prev, ok := p.seen[key]; ok {
		return nil, configf("sheet name %q is already used by sheet %d", name, prev)
	}
	p.seen[key] = index

	if sheet.Protection.Enabled && sheet.Protection.Password == "" {
		return nil, configf("protection is enabled without a password")
	}

	plan := &SheetPlan{
		Index:     index,
		Name:      name,
		Protected: sheet.Protection.Enabled,
		Password:  sheet.Protection.Password,
	}
	if sheet.Title != nil {
		var title models.TitleBand
		if err := deepcopy.Copy(&title, *sheet.Title); err != nil {
			return nil, configf("title band: %v", err)
		}
		plan.Title = &title
	}

	specs := sheet.Tables
	if len(sheet.Columns) > 0 || len(sheet.Rows) > 0 {
		listing := models.TableSpec{Columns: sheet.Columns, Rows: sheet.Rows}
		specs = append([]models.TableSpec{listing}, sheet.Tables...)
	}

	fps := make([]layout.Footprint, 0, len(specs))
	for i, spec := range specs {
		t, err := PrepareTable(i, spec, p.Orientation, p.names)
		if err != nil {
			return nil, &TableError{Table: i, Err: err}
		}
		plan.Tables = append(plan.Tables, t)
		fps = append(fps, t.Footprint())
		if t.Inferred && len(spec.Rows) > 0 && len(t.Columns) == 0 {
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("table %d: no keyed rows, headers left empty", i))
		}
	}

	if sheet.Title != nil {
		if len(plan.Tables) == 0 {
			return nil, configf("title band needs at least one column")
		}
		if img := sheet.Title.Image; img != nil && len(img.Data) == 0 {
			return nil, configf("title image %q has no data", img.Path)
		}
		plan.ContentTop = 1
	}

	plan.Placements = layout.PackFrom(layout.Cursor{Row: plan.ContentTop}, fps, p.Layout)
	plan.Occupied = occupied(plan)
	plan.Freeze = freezeCell(plan)
	if plan.Occupied != nil && !surface.AreaValid(*plan.Occupied) {
		return nil, configf("sheet content %+v exceeds the addressable sheet", *plan.Occupied)
	}
	return plan, nil
}

// occupied returns the area covered by the title band and every table
// including its totals row, or nil for an empty sheet.
func occupied(p *SheetPlan) *models.Area {
	var area *models.Area
	add := func(a models.Area) {
		if area == nil {
			area = &a
			return
		}
		u := area.Union(a)
		area = &u
	}
	if p.Title != nil {
		add(p.titleSpan())
	}
	for i, t := range p.Tables {
		pl := p.Placements[i]
		cols, rows := t.Extent()
		if t.hasTotals() {
			rows++
		}
		add(models.Area{R1: pl.Row, C1: pl.Col, R2: pl.Row + rows - 1, C2: pl.Col + cols - 1})
	}
	return area
}

// freezeCell returns the panes to freeze: the rows through the header row of
// the first band when it holds a horizontal table, and the header column when
// the first table is vertical.
func freezeCell(p *SheetPlan) surface.Cell {
	var c surface.Cell
	for i, t := range p.Tables {
		if p.Placements[i].Band > 0 {
			break
		}
		if t.Orientation == models.Horizontal {
			c.Row = p.ContentTop + 1
		} else if i == 0 {
			c.Col = 1
			c.Row = max(c.Row, p.ContentTop)
		}
	}
	return c
}

// SheetOptions controls the optional passes of RenderSheet.
type SheetOptions struct {
	AutoFit   bool
	PrintArea bool
	Logger    zerolog.Logger
}

// RenderedSheet records the columns prepared for each table of a sheet, in
// plan order.
type RenderedSheet struct {
	Name    string
	Columns [][]PreparedColumn
}

// Formatted returns the number of columns that carry a number format.
func (r *RenderedSheet) Formatted() int {
	n := 0
	for _, cols := range r.Columns {
		for _, pc := range cols {
			if pc.Style != 0 {
				n++
			}
		}
	}
	return n
}

// RenderSheet runs the presentation pipeline of one planned sheet against s:
// name, protection, title band, tables, frozen panes, watermark image, print
// area and autofit, in that order.
func RenderSheet(s surface.Surface, plan *SheetPlan, opts SheetOptions) (*RenderedSheet, error) {
	log := opts.Logger.With().Int("sheet", plan.Index).Str("name", plan.Name).Logger()

	if err := s.SetName(plan.Name); err != nil {
		return nil, surfaceErr("set name", err)
	}
	if plan.Protected {
		if err := s.Protect(plan.Password); err != nil {
			return nil, surfaceErr("protect", err)
		}
	}
	styles, err := DefineStyles(s)
	if err != nil {
		return nil, err
	}

	if plan.Title != nil {
		if err := writeTitle(s, plan, styles); err != nil {
			return nil, err
		}
	}

	out := &RenderedSheet{Name: plan.Name, Columns: make([][]PreparedColumn, 0, len(plan.Tables))}
	w := newTableWriter(s, styles)
	for i, t := range plan.Tables {
		pl := plan.Placements[i]
		log.Debug().
			Int("table", i).
			Str("table_name", t.Name).
			Int("band", pl.Band).
			Int("row", pl.Row).
			Int("col", pl.Col).
			Msg("placing table")
		prepared, err := w.render(t, surface.Cell{Row: pl.Row, Col: pl.Col})
		if err != nil {
			return nil, &TableError{Table: i, Err: err}
		}
		out.Columns = append(out.Columns, prepared)
	}

	if plan.Freeze.Row > 0 || plan.Freeze.Col > 0 {
		if err := s.FreezePanes(plan.Freeze.Row, plan.Freeze.Col); err != nil {
			return nil, surfaceErr("freeze panes", err)
		}
	}

	if plan.Title != nil && plan.Title.Image != nil {
		span := plan.titleSpan()
		if err := s.EmbedImage(surface.Cell{}, *plan.Title.Image, surface.ImageOptions{
			Span:         span,
			AlignRight:   true,
			FitRowHeight: true,
		}); err != nil {
			return nil, surfaceErr("embed image", err)
		}
	}

	if opts.PrintArea && plan.Occupied != nil {
		if err := s.SetPrintArea(*plan.Occupied); err != nil {
			return nil, surfaceErr("set print area", err)
		}
	}
	if opts.AutoFit {
		if err := s.AutoFit(); err != nil {
			return nil, surfaceErr("autofit", err)
		}
	}

	log.Info().Int("tables", len(plan.Tables)).Msg("sheet rendered")
	return out, nil
}

func writeTitle(s surface.Surface, plan *SheetPlan, styles Styles) error {
	span := plan.titleSpan()
	if err := s.WriteCell(surface.Cell{}, surface.StringCell(plan.Title.Text), styles.Title); err != nil {
		return surfaceErr("write title", err)
	}
	if span.Cols() < 2 {
		return nil
	}
	if err := s.Merge(span, styles.Title); err != nil {
		return surfaceErr("merge title", err)
	}
	return nil
}

// TableIndex returns the index of the table an error was reported for, or -1.
func TableIndex(err error) int {
	var te *TableError
	if errors.As(err, &te) {
		return te.Table
	}
	return -1
}
