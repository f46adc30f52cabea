// Package surface defines the worksheet sink the report engine writes to,
// with an excelize-backed implementation and an in-memory recorder.
package surface

import (
	"errors"
	"strconv"

	"github.com/ukaji3/exreport-go/pkg/exreport/models"
)

// Addressable sheet limits of the xlsx format.
const (
	MaxRows        = 1048576
	MaxCols        = 16384
	MaxColumnWidth = 255
)

// ErrOutOfBounds is returned when a position lies outside the addressable sheet.
var ErrOutOfBounds = errors.New("position outside addressable sheet bounds")

// Cell is a 0-based sheet position.
type Cell struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Valid reports whether the cell is addressable.
func (c Cell) Valid() bool {
	return c.Row >= 0 && c.Row < MaxRows && c.Col >= 0 && c.Col < MaxCols
}

// AreaValid reports whether both corners of a are addressable and ordered.
func AreaValid(a models.Area) bool {
	return Cell{a.R1, a.C1}.Valid() && Cell{a.R2, a.C2}.Valid() && a.R1 <= a.R2 && a.C1 <= a.C2
}

// CellKind is the type of a written cell.
type CellKind int

const (
	CellString CellKind = iota
	CellNumber
	CellBool
)

func (k CellKind) String() string {
	switch k {
	case CellString:
		return "string"
	case CellNumber:
		return "number"
	case CellBool:
		return "bool"
	}
	return "cellkind(" + strconv.Itoa(int(k)) + ")"
}

// CellValue is a typed scalar ready to be written.
type CellValue struct {
	Kind CellKind
	Str  string
	Num  float64
	Bool bool
}

// StringCell returns a text cell value.
func StringCell(s string) CellValue { return CellValue{Kind: CellString, Str: s} }

// NumberCell returns a numeric cell value.
func NumberCell(f float64) CellValue { return CellValue{Kind: CellNumber, Num: f} }

// BoolCell returns a boolean cell value.
func BoolCell(b bool) CellValue { return CellValue{Kind: CellBool, Bool: b} }

// Interface returns the Go value held by v.
func (v CellValue) Interface() interface{} {
	switch v.Kind {
	case CellNumber:
		return v.Num
	case CellBool:
		return v.Bool
	default:
		return v.Str
	}
}

// StyleID is a handle returned by DefineStyle. Zero is the default style.
type StyleID int

// Style is the subset of cell formatting the engine uses.
type Style struct {
	Bold         bool
	FontSize     float64
	FillColor    string // "RRGGBB"
	BorderBottom bool
	NumberFormat string
	HAlign       string // left|center|right
	VAlign       string // top|center|bottom
	WrapText     bool
}

// TableOptions configures a declared table region.
type TableOptions struct {
	Name        string
	Style       string
	HeaderRow   bool
	FirstColumn bool
	RowStripes  bool
}

// ImageOptions configures an embedded picture.
type ImageOptions struct {
	// Span is the merged area the picture is anchored to.
	Span models.Area
	// AlignRight pushes the picture against the right edge of Span.
	AlignRight bool
	// FitRowHeight grows the anchor row so the picture fits.
	FitRowHeight bool
}

// Surface is one worksheet of the output document. Positions are 0-based.
type Surface interface {
	SetName(name string) error
	Protect(password string) error
	DefineStyle(st Style) (StyleID, error)
	WriteHeader(pos Cell, text string, style StyleID) error
	WriteCell(pos Cell, v CellValue, style StyleID) error
	WriteFormula(pos Cell, formula string, style StyleID) error
	DeclareTable(area models.Area, opts TableOptions) error
	SetColumnWidth(col int, width float64) error
	// FreezePanes keeps the given number of leading rows and columns visible.
	FreezePanes(rows, cols int) error
	Merge(area models.Area, style StyleID) error
	EmbedImage(pos Cell, img models.Image, opts ImageOptions) error
	SetPrintArea(area models.Area) error
	AutoFit() error
}

// Factory hands out one Surface per output sheet.
type Factory interface {
	NewSurface(index int) (Surface, error)
}
