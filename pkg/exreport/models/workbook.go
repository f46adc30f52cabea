package models

// Workbook is the top-level report configuration with one entry per sheet.
type Workbook struct {
	// Orientation is the default table orientation.
	Orientation Orientation `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	// Sheets lists worksheets in output order.
	Sheets []Sheet `json:"sheets" yaml:"sheets"`
}
