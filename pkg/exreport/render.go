package exreport

import (
	"fmt"
	"io"

	"github.com/ukaji3/exreport-go/pkg/exreport/models"
	"github.com/ukaji3/exreport-go/pkg/exreport/surface"
	"github.com/ukaji3/exreport-go/pkg/exreport/synth"
)

// WorkbookPlan is a fully validated workbook with every table placed.
type WorkbookPlan struct {
	Sheets []*synth.SheetPlan `json:"sheets" yaml:"sheets"`
}

// Plan validates the whole workbook and computes the layout of every sheet.
// Nothing is written; a workbook that plans without error only fails to
// render on a surface failure.
func Plan(wb *models.Workbook, opts Options) (*WorkbookPlan, error) {
	if wb == nil || len(wb.Sheets) == 0 {
		return nil, ErrNoSheets
	}

	orientation := wb.Orientation
	if orientation == "" {
		orientation = opts.Orientation
	}
	planner := synth.NewPlanner(orientation, opts.LayoutParams())

	plan := &WorkbookPlan{Sheets: make([]*synth.SheetPlan, 0, len(wb.Sheets))}
	for i, sheet := range wb.Sheets {
		sp, err := planner.PlanSheet(i, sheet)
		if err != nil {
			return nil, NewRenderError(i, sheet.Name, err)
		}
		plan.Sheets = append(plan.Sheets, sp)
	}
	return plan, nil
}

// Render plans wb and writes every sheet to a surface obtained from factory.
// Configuration and schema violations are reported before the first surface
// is requested.
func Render(wb *models.Workbook, factory surface.Factory, opts Options) error {
	plan, err := Plan(wb, opts)
	if err != nil {
		return err
	}
	return RenderPlan(plan, factory, opts)
}

// RenderPlan writes an already validated plan.
func RenderPlan(plan *WorkbookPlan, factory surface.Factory, opts Options) error {
	log := opts.logger()
	sheetOpts := synth.SheetOptions{
		AutoFit:   opts.ShouldAutoFit(),
		PrintArea: opts.ShouldSetPrintArea(),
		Logger:    log,
	}

	for _, sp := range plan.Sheets {
		s, err := factory.NewSurface(sp.Index)
		if err != nil {
			return NewRenderError(sp.Index, sp.Name, fmt.Errorf("%w: new sheet: %w", ErrSurface, err))
		}
		for _, w := range sp.Warnings {
			log.Warn().Int("sheet", sp.Index).Str("name", sp.Name).Msg(w)
		}
		rendered, err := synth.RenderSheet(s, sp, sheetOpts)
		if err != nil {
			return NewRenderError(sp.Index, sp.Name, err)
		}
		log.Debug().Int("sheet", sp.Index).Int("formatted_columns", rendered.Formatted()).Msg("columns prepared")
	}

	log.Info().Int("sheets", len(plan.Sheets)).Msg("workbook rendered")
	return nil
}

// RenderFile renders wb into a new xlsx file at path. Nothing is written when
// rendering fails.
func RenderFile(wb *models.Workbook, path string, opts Options) error {
	book := surface.NewBook()
	defer book.Close()

	if err := Render(wb, book, opts); err != nil {
		return err
	}
	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// RenderTo renders wb as xlsx into w.
func RenderTo(wb *models.Workbook, w io.Writer, opts Options) error {
	book := surface.NewBook()
	defer book.Close()

	if err := Render(wb, book, opts); err != nil {
		return err
	}
	return book.Write(w)
}
