package models

// Protection configures worksheet password protection.
type Protection struct {
	// Enabled turns protection on. A password is then mandatory.
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Password is the protection secret.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// TitleBand is a merged banner across the first row of a sheet.
type TitleBand struct {
	// Text is written left-aligned and vertically centred in the band.
	Text string `json:"text" yaml:"text"`
	// Image is an optional watermark anchored right-aligned in the band.
	Image *Image `json:"image,omitempty" yaml:"image,omitempty"`
}

// Sheet is the configuration of one output worksheet.
type Sheet struct {
	// Name is the worksheet name.
	Name string `json:"name" yaml:"name"`
	// Protection configures password protection.
	Protection Protection `json:"protection,omitempty" yaml:"protection,omitempty"`
	// Columns is the explicit schema of the sheet-level listing.
	Columns []ColumnSpec `json:"columns,omitempty" yaml:"columns,omitempty"`
	// Rows is the sheet-level listing. It is rendered as the first table.
	Rows Rows `json:"rows,omitempty" yaml:"rows,omitempty"`
	// Tables are packed onto the sheet after the listing.
	Tables []TableSpec `json:"tables,omitempty" yaml:"tables,omitempty"`
	// Title is the optional title band.
	Title *TitleBand `json:"title,omitempty" yaml:"title,omitempty"`
}
