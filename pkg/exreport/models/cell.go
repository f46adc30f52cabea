package models

// CellRow is one row of cells read back from a written sheet.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r" yaml:"r"`
	// C maps column index (1-based, as string) to cell value.
	C map[string]interface{} `json:"c" yaml:"c"`
}

// SheetCells is the read-back content of one sheet.
type SheetCells struct {
	// Name is the sheet name.
	Name string `json:"name" yaml:"name"`
	// Rows contains non-empty rows in order.
	Rows []CellRow `json:"rows,omitempty" yaml:"rows,omitempty"`
	// PrintArea is the sheet's print area, when one is defined.
	PrintArea *Area `json:"print_area,omitempty" yaml:"print_area,omitempty"`
}

// WorkbookCells is the read-back content of a written workbook.
type WorkbookCells struct {
	// BookName is the file name of the workbook.
	BookName string `json:"book_name" yaml:"book_name"`
	// Sheets lists sheets in workbook order.
	Sheets []SheetCells `json:"sheets" yaml:"sheets"`
}
