package models

import (
	"fmt"
	"strings"
)

// Orientation selects how a table's header list is laid out.
type Orientation string

const (
	// Horizontal writes headers across the first row and one record per row.
	Horizontal Orientation = "horizontal"
	// Vertical writes headers down the first column and one record per column.
	Vertical Orientation = "vertical"
)

// ParseOrientation parses an orientation name. The empty string means Horizontal.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return "", fmt.Errorf("invalid orientation %q (must be horizontal or vertical)", s)
}

// TableSpec describes one table placed on a sheet.
type TableSpec struct {
	// Name is used for the table region; it must be unique within the workbook
	// when set.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Columns is the explicit schema. When empty, columns are inferred from
	// keyed rows.
	Columns []ColumnSpec `json:"columns,omitempty" yaml:"columns,omitempty"`
	// Rows holds the body, one *Object or Array per record.
	Rows Rows `json:"rows,omitempty" yaml:"rows,omitempty"`
	// Width is the declared column count. Zero means derive from the data.
	Width int `json:"width,omitempty" yaml:"width,omitempty"`
	// Height is the declared record count. Zero means derive from the data.
	Height int `json:"height,omitempty" yaml:"height,omitempty"`
	// Orientation overrides the workbook default.
	Orientation Orientation `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	// Totals requests an aggregate row below the body.
	Totals bool `json:"totals,omitempty" yaml:"totals,omitempty"`
	// Style is the table style name, e.g. "TableStyleMedium2".
	Style string `json:"style,omitempty" yaml:"style,omitempty"`
}
