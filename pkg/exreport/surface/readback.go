package surface

import (
	"strconv"
	"strings"

	"github.com/ukaji3/exreport-go/pkg/exreport/models"
	"github.com/xuri/excelize/v2"
)

const printAreaName = "_xlnm.Print_Area"

// ReadWorkbook reads every sheet of a written workbook back into cell rows.
func ReadWorkbook(f *excelize.File) ([]models.SheetCells, error) {
	var out []models.SheetCells
	for _, name := range f.GetSheetList() {
		rows, err := ReadCells(f, name)
		if err != nil {
			return nil, err
		}
		out = append(out, models.SheetCells{
			Name:      name,
			Rows:      rows,
			PrintArea: ReadPrintArea(f, name),
		})
	}
	return out, nil
}

// ReadCells returns the non-empty rows of a sheet. Values are read raw, so
// number formats do not change what comes back.
func ReadCells(f *excelize.File, sheetName string) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for rowIdx, row := range rows {
		cells := make(map[string]interface{})
		for colIdx, text := range row {
			if text == "" {
				continue
			}
			v, err := typedValue(f, sheetName, colIdx, rowIdx, text)
			if err != nil {
				return nil, err
			}
			cells[strconv.Itoa(colIdx+1)] = v
		}
		if len(cells) > 0 {
			result = append(result, models.CellRow{R: rowIdx + 1, C: cells})
		}
	}
	return result, nil
}

// typedValue converts the raw value of one cell. Booleans are stored as 1
// and 0, so their cell type decides.
func typedValue(f *excelize.File, sheetName string, colIdx, rowIdx int, raw string) (interface{}, error) {
	if raw == "1" || raw == "0" {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
		if err != nil {
			return nil, err
		}
		typ, err := f.GetCellType(sheetName, cell)
		if err != nil {
			return nil, err
		}
		if typ == excelize.CellTypeBool {
			return raw == "1", nil
		}
	}
	return parseValue(raw), nil
}

// parseValue restores the type of a displayed cell value: int64 for
// integers, float64 for decimals, bool for TRUE/FALSE, otherwise the string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch s {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return s
}

// ReadPrintArea returns the first print area scoped to sheetName, or nil.
func ReadPrintArea(f *excelize.File, sheetName string) *models.Area {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) || dn.Scope != sheetName {
			continue
		}
		ref := dn.RefersTo
		if idx := strings.LastIndex(ref, "!"); idx >= 0 {
			ref = ref[idx+1:]
		}
		// Only the first range of a multi-range print area is reported.
		ref, _, _ = strings.Cut(ref, ",")
		if a := parseRangeToArea(ref); a != nil {
			return a
		}
	}
	return nil
}

// parseRangeToArea parses a range such as $A$1:$D$10 into a 0-based Area.
func parseRangeToArea(rangeStr string) *models.Area {
	rangeStr = strings.ReplaceAll(strings.TrimSpace(rangeStr), "$", "")

	start, end, ok := strings.Cut(rangeStr, ":")
	if !ok {
		end = start
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return nil
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return nil
	}

	return &models.Area{
		R1: startRow - 1,
		C1: startCol - 1,
		R2: endRow - 1,
		C2: endCol - 1,
	}
}
