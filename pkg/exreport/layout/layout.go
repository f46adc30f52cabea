// Package layout places independent tables onto a sheet of bounded width.
//
// Tables are packed greedily into horizontal bands in input order. A band is
// closed when the next table would reach past the column budget; the next band
// starts below the tallest table of the closed band. Tables are never
// reordered.
package layout

const (
	// DefaultColumnBudget is the highest column index a table may occupy
	// unless it is the first table of its band.
	DefaultColumnBudget = 10
	// DefaultTableGap is the number of empty columns between tables of a band.
	DefaultTableGap = 3
	// DefaultBandGap is the number of empty rows between bands.
	DefaultBandGap = 2
)

// Params holds packing parameters.
type Params struct {
	ColumnBudget int `json:"column_budget" yaml:"column_budget"`
	TableGap     int `json:"table_gap" yaml:"table_gap"`
	BandGap      int `json:"band_gap" yaml:"band_gap"`
}

// DefaultParams returns the engine-wide packing constants.
func DefaultParams() Params {
	return Params{
		ColumnBudget: DefaultColumnBudget,
		TableGap:     DefaultTableGap,
		BandGap:      DefaultBandGap,
	}
}

// Footprint is the space a table reserves: its column count and its row count
// including the spacing row below it.
type Footprint struct {
	Width  int
	Height int
}

// Placement is the top-left cell assigned to one table.
type Placement struct {
	// Index is the position of the table in the input list.
	Index int `json:"index" yaml:"index"`
	// Band is the 0-based band number.
	Band int `json:"band" yaml:"band"`
	// Row is the 0-based top row.
	Row int `json:"row" yaml:"row"`
	// Col is the 0-based left column.
	Col int `json:"col" yaml:"col"`
	// Width and Height repeat the footprint that was reserved.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// LastCol returns the right-most column the placement occupies.
func (p Placement) LastCol() int { return p.Col + p.Width - 1 }

// LastRow returns the bottom-most row the placement reserves.
func (p Placement) LastRow() int { return p.Row + p.Height - 1 }

// Cursor is the packing state of one sheet. The zero value is the start of
// an empty sheet.
type Cursor struct {
	Col        int
	Row        int
	BandHeight int
	Band       int
}

// Step places one table and returns its placement together with the cursor
// for the next table. The receiver is not modified.
func (c Cursor) Step(fp Footprint, p Params) (Placement, Cursor) {
	// The first table of a band never wraps; this also keeps a table wider
	// than the budget at column 0 of its own band.
	if c.Col > 0 && c.Col+fp.Width-1 > p.ColumnBudget {
		c.Row += c.BandHeight + p.BandGap
		c.Col = 0
		c.BandHeight = fp.Height
		c.Band++
	} else {
		c.BandHeight = max(c.BandHeight, fp.Height)
	}

	placed := Placement{
		Band:   c.Band,
		Row:    c.Row,
		Col:    c.Col,
		Width:  fp.Width,
		Height: fp.Height,
	}
	c.Col += fp.Width + p.TableGap
	return placed, c
}

// Pack places every footprint in order, starting at the zero cursor.
func Pack(fps []Footprint, p Params) []Placement {
	return PackFrom(Cursor{}, fps, p)
}

// PackFrom places every footprint in order, starting at cursor c.
func PackFrom(c Cursor, fps []Footprint, p Params) []Placement {
	out := make([]Placement, 0, len(fps))
	for i, fp := range fps {
		var placed Placement
		placed, c = c.Step(fp, p)
		placed.Index = i
		out = append(out, placed)
	}
	return out
}

// Bounds returns the number of columns and rows spanned by placements, not
// counting the spacing row of the bottom band.
func Bounds(ps []Placement) (cols, rows int) {
	for _, p := range ps {
		cols = max(cols, p.Col+p.Width)
		rows = max(rows, p.Row+p.Height-1)
	}
	return cols, rows
}
