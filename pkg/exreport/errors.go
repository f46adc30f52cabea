package exreport

import (
	"errors"
	"fmt"

	"github.com/ukaji3/exreport-go/pkg/exreport/synth"
)

// ErrSchemaViolation indicates table data that disagrees with its declared shape.
var ErrSchemaViolation = synth.ErrSchemaViolation

// ErrConfigViolation indicates a workbook configuration that cannot be rendered.
var ErrConfigViolation = synth.ErrConfigViolation

// ErrSurface indicates a write rejected by the output workbook.
var ErrSurface = synth.ErrSurface

// ErrNoSheets indicates a workbook without any sheet.
var ErrNoSheets = fmt.Errorf("%w: workbook has no sheets", ErrConfigViolation)

// RenderError represents a failure while planning or rendering one sheet.
type RenderError struct {
	SheetIndex int
	SheetName  string
	TableIndex int    // -1 when the failure is not tied to a table
	Component  string // "schema", "config", "surface"
	Err        error
}

func (e *RenderError) Error() string {
	if e.TableIndex >= 0 {
		return fmt.Sprintf("render error in sheet %d %q, table %d (%s): %v", e.SheetIndex, e.SheetName, e.TableIndex, e.Component, e.Err)
	}
	return fmt.Sprintf("render error in sheet %d %q (%s): %v", e.SheetIndex, e.SheetName, e.Component, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a new RenderError, reading the table index and the
// violated component from err.
func NewRenderError(sheetIndex int, sheetName string, err error) *RenderError {
	return &RenderError{
		SheetIndex: sheetIndex,
		SheetName:  sheetName,
		TableIndex: synth.TableIndex(err),
		Component:  component(err),
		Err:        err,
	}
}

func component(err error) string {
	switch {
	case errors.Is(err, ErrSchemaViolation):
		return "schema"
	case errors.Is(err, ErrConfigViolation):
		return "config"
	default:
		return "surface"
	}
}
