// Package exreport renders structured data documents into formatted,
// multi-sheet xlsx reports.
package exreport

import (
	"github.com/rs/zerolog"
	"github.com/ukaji3/exreport-go/pkg/exreport/layout"
	"github.com/ukaji3/exreport-go/pkg/exreport/models"
)

// DefaultSheetName names the sheet built from a top-level array document.
const DefaultSheetName = "Sheet1"

// Options configures rendering behavior.
type Options struct {
	// Orientation is the default table orientation. A workbook's own
	// orientation takes precedence.
	Orientation models.Orientation
	// Layout holds the packing parameters. The zero value means the defaults.
	Layout layout.Params
	// AutoFit requests a final content-based autofit pass on every sheet.
	// If nil, defaults to true.
	AutoFit *bool
	// PrintArea sets each sheet's print area to its occupied range.
	// If nil, defaults to true.
	PrintArea *bool
	// SheetName names the sheet built from a top-level array document.
	SheetName string
	// Logger receives progress events. If nil, nothing is logged.
	Logger *zerolog.Logger
}

// DefaultOptions returns default rendering options.
func DefaultOptions() Options {
	return Options{
		Orientation: models.Horizontal,
		Layout:      layout.DefaultParams(),
		SheetName:   DefaultSheetName,
	}
}

// ShouldAutoFit returns whether to run the autofit pass.
func (o Options) ShouldAutoFit() bool {
	if o.AutoFit != nil {
		return *o.AutoFit
	}
	return true
}

// ShouldSetPrintArea returns whether to set print areas.
func (o Options) ShouldSetPrintArea() bool {
	if o.PrintArea != nil {
		return *o.PrintArea
	}
	return true
}

// LayoutParams returns the packing parameters in effect.
func (o Options) LayoutParams() layout.Params {
	if o.Layout == (layout.Params{}) {
		return layout.DefaultParams()
	}
	return o.Layout
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return zerolog.Nop()
}

func (o Options) sheetName() string {
	if o.SheetName != "" {
		return o.SheetName
	}
	return DefaultSheetName
}
