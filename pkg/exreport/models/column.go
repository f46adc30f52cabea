package models

import (
	"fmt"
	"strings"
)

// ColumnType is the declared data type of a column.
type ColumnType string

const (
	// ColumnString holds text; it is the default when no type is declared.
	ColumnString ColumnType = "string"
	// ColumnNumber holds numeric data and takes part in totals rows.
	ColumnNumber ColumnType = "number"
)

// ParseColumnType parses a declared column type. The empty string means ColumnString.
func ParseColumnType(s string) (ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string", "text":
		return ColumnString, nil
	case "number", "numeric":
		return ColumnNumber, nil
	}
	return "", fmt.Errorf("invalid column type %q (must be string or number)", s)
}

// ColumnSpec describes one column of a table.
type ColumnSpec struct {
	// Name is the header text and, for keyed rows, the member name to read.
	Name string `json:"name" yaml:"name"`
	// Type is the declared data type.
	Type ColumnType `json:"type,omitempty" yaml:"type,omitempty"`
	// Format is an optional number format code, e.g. "#,##0.00".
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	// Formula is an optional formula pattern. "{row}" is replaced by the
	// 1-based sheet row of each body cell.
	Formula string `json:"formula,omitempty" yaml:"formula,omitempty"`
}
