package surface

import (
	"fmt"

	"github.com/ukaji3/exreport-go/pkg/exreport/models"
)

// Op is one call made against a Recorder.
type Op struct {
	Name  string
	Cell  Cell
	Area  models.Area
	Value CellValue
	Text  string
	Style StyleID
	Width float64
	Table TableOptions
	Image ImageOptions
	Rows  int
	Cols  int
}

// Recorded is the last content written to a cell.
type Recorded struct {
	Value   CellValue
	Formula string
	Header  bool
	Style   StyleID
}

// Recorder is an in-memory Surface that keeps every call in order.
type Recorder struct {
	Name      string
	Password  string
	Ops       []Op
	Cells     map[Cell]Recorded
	Widths    map[int]float64
	Styles    []Style
	Tables    []Op
	Merges    []models.Area
	Images    []Op
	Frozen    *Cell
	PrintArea *models.Area
	AutoFits  int

	// FailOn makes the named operation return Err.
	FailOn string
	Err    error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Cells:  make(map[Cell]Recorded),
		Widths: make(map[int]float64),
	}
}

func (r *Recorder) record(op Op) error {
	if r.FailOn == op.Name {
		if r.Err != nil {
			return r.Err
		}
		return fmt.Errorf("%s rejected", op.Name)
	}
	r.Ops = append(r.Ops, op)
	return nil
}

func (r *Recorder) checkCell(c Cell) error {
	if !c.Valid() {
		return fmt.Errorf("%w: row %d col %d", ErrOutOfBounds, c.Row, c.Col)
	}
	return nil
}

func (r *Recorder) checkArea(a models.Area) error {
	if !AreaValid(a) {
		return fmt.Errorf("%w: %+v", ErrOutOfBounds, a)
	}
	return nil
}

// OpNames returns the names of recorded calls in order.
func (r *Recorder) OpNames() []string {
	names := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		names[i] = op.Name
	}
	return names
}

func (r *Recorder) SetName(name string) error {
	if err := r.record(Op{Name: "SetName", Text: name}); err != nil {
		return err
	}
	r.Name = name
	return nil
}

func (r *Recorder) Protect(password string) error {
	if err := r.record(Op{Name: "Protect", Text: password}); err != nil {
		return err
	}
	r.Password = password
	return nil
}

func (r *Recorder) DefineStyle(st Style) (StyleID, error) {
	if err := r.record(Op{Name: "DefineStyle"}); err != nil {
		return 0, err
	}
	r.Styles = append(r.Styles, st)
	return StyleID(len(r.Styles)), nil
}

// StyleOf returns the style registered under id.
func (r *Recorder) StyleOf(id StyleID) (Style, bool) {
	if id <= 0 || int(id) > len(r.Styles) {
		return Style{}, false
	}
	return r.Styles[id-1], true
}

func (r *Recorder) WriteHeader(pos Cell, text string, style StyleID) error {
	if err := r.checkCell(pos); err != nil {
		return err
	}
	if err := r.record(Op{Name: "WriteHeader", Cell: pos, Text: text, Style: style}); err != nil {
		return err
	}
	r.Cells[pos] = Recorded{Value: StringCell(text), Header: true, Style: style}
	return nil
}

func (r *Recorder) WriteCell(pos Cell, v CellValue, style StyleID) error {
	if err := r.checkCell(pos); err != nil {
		return err
	}
	if err := r.record(Op{Name: "WriteCell", Cell: pos, Value: v, Style: style}); err != nil {
		return err
	}
	r.Cells[pos] = Recorded{Value: v, Style: style}
	return nil
}

func (r *Recorder) WriteFormula(pos Cell, formula string, style StyleID) error {
	if err := r.checkCell(pos); err != nil {
		return err
	}
	if err := r.record(Op{Name: "WriteFormula", Cell: pos, Text: formula, Style: style}); err != nil {
		return err
	}
	r.Cells[pos] = Recorded{Formula: formula, Style: style}
	return nil
}

func (r *Recorder) DeclareTable(area models.Area, opts TableOptions) error {
	if err := r.checkArea(area); err != nil {
		return err
	}
	op := Op{Name: "DeclareTable", Area: area, Table: opts}
	if err := r.record(op); err != nil {
		return err
	}
	r.Tables = append(r.Tables, op)
	return nil
}

func (r *Recorder) SetColumnWidth(col int, width float64) error {
	if err := r.checkCell(Cell{Col: col}); err != nil {
		return err
	}
	if width < 0 || width > MaxColumnWidth {
		return fmt.Errorf("column width %v out of range", width)
	}
	if err := r.record(Op{Name: "SetColumnWidth", Cell: Cell{Col: col}, Width: width}); err != nil {
		return err
	}
	r.Widths[col] = width
	return nil
}

func (r *Recorder) FreezePanes(rows, cols int) error {
	if err := r.checkCell(Cell{Row: rows, Col: cols}); err != nil {
		return err
	}
	if err := r.record(Op{Name: "FreezePanes", Rows: rows, Cols: cols}); err != nil {
		return err
	}
	r.Frozen = &Cell{Row: rows, Col: cols}
	return nil
}

func (r *Recorder) Merge(area models.Area, style StyleID) error {
	if err := r.checkArea(area); err != nil {
		return err
	}
	if err := r.record(Op{Name: "Merge", Area: area, Style: style}); err != nil {
		return err
	}
	r.Merges = append(r.Merges, area)
	return nil
}

func (r *Recorder) EmbedImage(pos Cell, img models.Image, opts ImageOptions) error {
	if err := r.checkCell(pos); err != nil {
		return err
	}
	op := Op{Name: "EmbedImage", Cell: pos, Text: img.Extension, Image: opts}
	if err := r.record(op); err != nil {
		return err
	}
	r.Images = append(r.Images, op)
	return nil
}

func (r *Recorder) SetPrintArea(area models.Area) error {
	if err := r.checkArea(area); err != nil {
		return err
	}
	if err := r.record(Op{Name: "SetPrintArea", Area: area}); err != nil {
		return err
	}
	r.PrintArea = &area
	return nil
}

func (r *Recorder) AutoFit() error {
	if err := r.record(Op{Name: "AutoFit"}); err != nil {
		return err
	}
	r.AutoFits++
	return nil
}

// RecorderBook is a Factory of Recorders.
type RecorderBook struct {
	Sheets []*Recorder

	// Prepare, when set, is applied to every new Recorder.
	Prepare func(index int, r *Recorder)
}

// NewSurface returns a fresh Recorder and keeps it in Sheets.
func (b *RecorderBook) NewSurface(index int) (Surface, error) {
	r := NewRecorder()
	if b.Prepare != nil {
		b.Prepare(index, r)
	}
	b.Sheets = append(b.Sheets, r)
	return r, nil
}
