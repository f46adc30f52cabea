package synth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exreport-go/pkg/exreport/layout"
	"github.com/ukaji3/exreport-go/pkg/exreport/models"
	"github.com/ukaji3/exreport-go/pkg/exreport/surface"
)

func prepare(t *testing.T, spec models.TableSpec) *TablePlan {
	t.Helper()
	plan, err := PrepareTable(0, spec, models.Horizontal, newTableNames())
	require.NoError(t, err)
	return plan
}

func TestPrepareTableDerivesSize(t *testing.T) {
	t.Parallel()
	plan := prepare(t, models.TableSpec{Rows: models.Rows{obj("a", 1), obj("b", 2), obj("c", 3)}})

	assert.Equal(t, 3, plan.Width)
	assert.Equal(t, 3, plan.Height)
	assert.Equal(t, "Table1", plan.Name)
	assert.Equal(t, defaultTableStyle, plan.Style)
	assert.True(t, plan.Inferred)
	assert.Equal(t, layout.Footprint{Width: 3, Height: 5}, plan.Footprint())
}

func TestPrepareTableVerticalFootprint(t *testing.T) {
	t.Parallel()
	plan := prepare(t, models.TableSpec{
		Orientation: models.Vertical,
		Columns:     []models.ColumnSpec{{Name: "k"}, {Name: "v"}},
		Rows:        models.Rows{row("a", 1)},
		Height:      4,
	})

	cols, rows := plan.Extent()
	assert.Equal(t, 5, cols)
	assert.Equal(t, 2, rows)
	assert.Equal(t, layout.Footprint{Width: 5, Height: 3}, plan.Footprint())
}

func TestPrepareTableViolations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		spec models.TableSpec
		want error
	}{
		{
			name: "more rows than declared height",
			spec: models.TableSpec{Width: 1, Height: 3, Rows: models.Rows{row(1), row(2), row(3), row(4), row(5)}},
			want: ErrSchemaViolation,
		},
		{
			name: "row wider than declared width",
			spec: models.TableSpec{Width: 2, Rows: models.Rows{row(1, 2, 3)}},
			want: ErrSchemaViolation,
		},
		{
			name: "more columns than declared width",
			spec: models.TableSpec{Width: 1, Columns: []models.ColumnSpec{{Name: "a"}, {Name: "b"}}},
			want: ErrSchemaViolation,
		},
		{
			name: "no columns at all",
			spec: models.TableSpec{},
			want: ErrSchemaViolation,
		},
		{
			name: "negative size",
			spec: models.TableSpec{Width: -1, Rows: models.Rows{row(1)}},
			want: ErrSchemaViolation,
		},
		{
			name: "unknown column type",
			spec: models.TableSpec{Columns: []models.ColumnSpec{{Name: "a", Type: "date"}}},
			want: ErrConfigViolation,
		},
		{
			name: "unknown orientation",
			spec: models.TableSpec{Orientation: "diagonal", Rows: models.Rows{row(1)}},
			want: ErrConfigViolation,
		},
		{
			name: "duplicate column names",
			spec: models.TableSpec{Columns: []models.ColumnSpec{{Name: "amount"}, {Name: "Amount"}}},
			want: ErrConfigViolation,
		},
		{
			name: "unbalanced formula",
			spec: models.TableSpec{Columns: []models.ColumnSpec{{Name: "a", Formula: "SUM(A{row}"}}},
			want: ErrConfigViolation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrepareTable(0, tt.spec, models.Horizontal, newTableNames())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPrepareTableNormalisesColumnTypes(t *testing.T) {
	t.Parallel()
	plan := prepare(t, models.TableSpec{Columns: []models.ColumnSpec{{Name: "n", Type: "Numeric"}}})

	assert.Equal(t, models.ColumnNumber, plan.Columns[0].Type)
}

func TestRenderTableHorizontal(t *testing.T) {
	t.Parallel()
	plan := prepare(t, models.TableSpec{
		Name:    "Orders",
		Columns: []models.ColumnSpec{{Name: "item"}, {Name: "qty", Type: models.ColumnNumber, Format: "#,##0"}},
		Rows:    models.Rows{obj("item", "pen", "qty", 3), obj("qty", 12, "item", "Alexandria")},
		Height:  3,
	})
	rec := surface.NewRecorder()
	styles := Styles{Header: 1}
	origin := surface.Cell{Row: 2, Col: 4}

	prepared, err := RenderTable(rec, plan, origin, styles)
	require.NoError(t, err)

	require.Len(t, prepared, 2)
	assert.Equal(t, 4, prepared[0].Index)
	assert.Equal(t, 5, prepared[1].Index)
	assert.Equal(t, models.ColumnNumber, prepared[1].Kind)
	numFmt, ok := rec.StyleOf(prepared[1].Style)
	require.True(t, ok)
	assert.Equal(t, "#,##0", numFmt.NumberFormat)

	assert.Equal(t, surface.Recorded{Value: surface.StringCell("item"), Header: true, Style: 1}, rec.Cells[surface.Cell{Row: 2, Col: 4}])
	assert.Equal(t, surface.StringCell("pen"), rec.Cells[surface.Cell{Row: 3, Col: 4}].Value)
	assert.Equal(t, surface.NumberCell(12), rec.Cells[surface.Cell{Row: 4, Col: 5}].Value)
	assert.Equal(t, prepared[1].Style, rec.Cells[surface.Cell{Row: 4, Col: 5}].Style)
	_, wrote := rec.Cells[surface.Cell{Row: 5, Col: 4}]
	assert.False(t, wrote, "declared but empty rows are not written")

	require.Len(t, rec.Tables, 1)
	assert.Equal(t, models.Area{R1: 2, C1: 4, R2: 5, C2: 5}, rec.Tables[0].Area)
	assert.Equal(t, "Orders", rec.Tables[0].Table.Name)
	assert.True(t, rec.Tables[0].Table.HeaderRow)

	assert.InDelta(t, 15.36, rec.Widths[4], 1e-9)
	assert.InDelta(t, (3+2.8)*1.2, rec.Widths[5], 1e-9)
}

func TestRenderTableStaysInFootprint(t *testing.T) {
	t.Parallel()
	specs := []models.TableSpec{
		{Rows: models.Rows{obj("a", 1, "b", 2)}, Width: 4, Height: 6, Totals: true},
		{Rows: models.Rows{row(1, 2, 3)}, Orientation: models.Vertical, Height: 2},
		{Columns: []models.ColumnSpec{{Name: "x", Formula: "=A{row}*2"}}, Rows: models.Rows{row(), row()}},
	}
	for i, spec := range specs {
		plan := prepare(t, spec)
		rec := surface.NewRecorder()
		origin := surface.Cell{Row: 5, Col: 3}

		_, err := RenderTable(rec, plan, origin, Styles{})
		require.NoError(t, err)

		fp := plan.Footprint()
		reserved := models.Area{R1: origin.Row, C1: origin.Col, R2: origin.Row + fp.Height - 1, C2: origin.Col + fp.Width - 1}
		for pos := range rec.Cells {
			assert.True(t, reserved.Contains(pos.Row, pos.Col), "table %d wrote %+v outside %+v", i, pos, reserved)
		}
		for col := range rec.Widths {
			assert.True(t, col >= reserved.C1 && col <= reserved.C2, "table %d sized column %d", i, col)
		}
	}
}

func TestRenderTableTotals(t *testing.T) {
	t.Parallel()
	plan := prepare(t, models.TableSpec{
		Columns: []models.ColumnSpec{{Name: "item"}, {Name: "qty", Type: models.ColumnNumber}},
		Rows:    models.Rows{row("a", 1), row("b", 2)},
		Totals:  true,
	})
	rec := surface.NewRecorder()

	_, err := RenderTable(rec, plan, surface.Cell{}, Styles{Totals: 9})
	require.NoError(t, err)

	assert.Equal(t, surface.Recorded{Value: surface.StringCell("Total"), Style: 9}, rec.Cells[surface.Cell{Row: 3, Col: 0}])
	assert.Equal(t, surface.Recorded{Formula: "SUBTOTAL(109,B2:B3)", Style: 9}, rec.Cells[surface.Cell{Row: 3, Col: 1}])
	assert.Equal(t, models.Area{R1: 0, C1: 0, R2: 2, C2: 1}, rec.Tables[0].Area)
}

func TestRenderTableTotalsLabelSkipsNumberColumns(t *testing.T) {
	t.Parallel()
	plan := prepare(t, models.TableSpec{
		Columns: []models.ColumnSpec{
			{Name: "id", Type: models.ColumnNumber},
			{Name: "item"},
			{Name: "qty", Type: models.ColumnNumber},
		},
		Rows:   models.Rows{row(1, "a", 3), row(2, "b", 4)},
		Totals: true,
	})
	rec := surface.NewRecorder()

	_, err := RenderTable(rec, plan, surface.Cell{Col: 2}, Styles{Totals: 9})
	require.NoError(t, err)

	assert.Equal(t, surface.Recorded{Formula: "SUBTOTAL(109,C2:C3)", Style: 9}, rec.Cells[surface.Cell{Row: 3, Col: 2}])
	assert.Equal(t, surface.Recorded{Value: surface.StringCell("Total"), Style: 9}, rec.Cells[surface.Cell{Row: 3, Col: 3}])
	assert.Equal(t, surface.Recorded{Formula: "SUBTOTAL(109,E2:E3)", Style: 9}, rec.Cells[surface.Cell{Row: 3, Col: 4}])
}

func TestRenderTableTotalsAllNumbers(t *testing.T) {
	t.Parallel()
	plan := prepare(t, models.TableSpec{
		Columns: []models.ColumnSpec{{Name: "a", Type: models.ColumnNumber}, {Name: "b", Type: models.ColumnNumber}},
		Rows:    models.Rows{row(1, 2)},
		Totals:  true,
	})
	rec := surface.NewRecorder()

	_, err := RenderTable(rec, plan, surface.Cell{}, Styles{})
	require.NoError(t, err)

	assert.Equal(t, "SUBTOTAL(109,A2:A2)", rec.Cells[surface.Cell{Row: 2, Col: 0}].Formula)
	assert.Equal(t, "SUBTOTAL(109,B2:B2)", rec.Cells[surface.Cell{Row: 2, Col: 1}].Formula)
}

func TestRenderTableFormulaColumn(t *testing.T) {
	t.Parallel()
	plan := prepare(t, models.TableSpec{
		Columns: []models.ColumnSpec{{Name: "qty", Type: models.ColumnNumber}, {Name: "double", Formula: "A{row}*2"}},
		Rows:    models.Rows{obj("qty", 1), obj("qty", 2)},
	})
	rec := surface.NewRecorder()

	_, err := RenderTable(rec, plan, surface.Cell{Row: 10}, Styles{})
	require.NoError(t, err)

	assert.Equal(t, "A12*2", rec.Cells[surface.Cell{Row: 11, Col: 1}].Formula)
	assert.Equal(t, "A13*2", rec.Cells[surface.Cell{Row: 12, Col: 1}].Formula)
}

func TestRenderTableVertical(t *testing.T) {
	t.Parallel()
	plan := prepare(t, models.TableSpec{
		Orientation: models.Vertical,
		Columns:     []models.ColumnSpec{{Name: "name"}, {Name: "age", Type: models.ColumnNumber}},
		Rows:        models.Rows{obj("name", "Ann", "age", 31), obj("name", "Bob", "age", 40)},
	})
	rec := surface.NewRecorder()

	_, err := RenderTable(rec, plan, surface.Cell{Row: 1, Col: 2}, Styles{Header: 4})
	require.NoError(t, err)

	assert.True(t, rec.Cells[surface.Cell{Row: 1, Col: 2}].Header)
	assert.True(t, rec.Cells[surface.Cell{Row: 2, Col: 2}].Header)
	assert.Equal(t, surface.StringCell("Ann"), rec.Cells[surface.Cell{Row: 1, Col: 3}].Value)
	assert.Equal(t, surface.NumberCell(40), rec.Cells[surface.Cell{Row: 2, Col: 4}].Value)

	require.Len(t, rec.Tables, 1)
	assert.Equal(t, models.Area{R1: 1, C1: 2, R2: 2, C2: 4}, rec.Tables[0].Area)
	assert.False(t, rec.Tables[0].Table.HeaderRow)
	assert.True(t, rec.Tables[0].Table.FirstColumn)
	assert.Contains(t, rec.Widths, 2)
	assert.Contains(t, rec.Widths, 4)
}

func TestRenderTableSurfaceFailure(t *testing.T) {
	t.Parallel()
	sinkErr := errors.New("disk full")
	for _, op := range []string{"WriteHeader", "WriteCell", "DeclareTable", "SetColumnWidth", "DefineStyle"} {
		t.Run(op, func(t *testing.T) {
			plan := prepare(t, models.TableSpec{
				Columns: []models.ColumnSpec{{Name: "n", Format: "0.00"}},
				Rows:    models.Rows{row(1)},
			})
			rec := surface.NewRecorder()
			rec.FailOn, rec.Err = op, sinkErr

			_, err := RenderTable(rec, plan, surface.Cell{}, Styles{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSurface)
			assert.ErrorIs(t, err, sinkErr)
		})
	}
}

func TestTableWriterKeepsWidestWidth(t *testing.T) {
	t.Parallel()
	rec := surface.NewRecorder()
	w := newTableWriter(rec, Styles{})

	require.NoError(t, w.applyWidth(0, 20))
	require.NoError(t, w.applyWidth(0, 10))
	require.NoError(t, w.applyWidth(0, 300))

	assert.Equal(t, 255.0, rec.Widths[0])
	assert.Len(t, rec.Ops, 2)
}
