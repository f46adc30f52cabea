// Package output serializes plans and inspected workbooks.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid output format %q (must be json or yaml)", s)
}

const indent = "  "

// ToJSON serializes v to JSON.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, v, pretty); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteJSON encodes v to w as one JSON document.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", indent)
	}
	return enc.Encode(v)
}

// ToYAML serializes v to YAML.
func ToYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteYAML encodes v to w as one YAML document.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(len(indent))
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Write encodes v to w in the given format.
func Write(w io.Writer, v interface{}, format Format, pretty bool) error {
	switch format {
	case FormatYAML:
		return WriteYAML(w, v)
	case FormatJSON, "":
		return WriteJSON(w, v, pretty)
	}
	return fmt.Errorf("unsupported output format %q", format)
}
