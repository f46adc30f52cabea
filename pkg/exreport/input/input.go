// Package input loads report documents from JSON or YAML.
//
// A document with a top-level "sheets" member is a workbook configuration.
// Any other document is schema-less data whose sheets and columns are
// inferred when it is resolved.
package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/exreport-go/pkg/exreport"
	"github.com/ukaji3/exreport-go/pkg/exreport/models"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

const sheetsKey = "sheets"

// ErrUnknownEncoding indicates an encoding label that is not recognised.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Format is the syntax of an input document.
type Format string

const (
	// FormatAuto picks JSON or YAML from the file extension or the content.
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Options configures loading.
type Options struct {
	// Encoding is a WHATWG encoding label such as "shift_jis" or
	// "windows-1252". Empty means UTF-8 with an optional byte order mark.
	Encoding string
	// Format forces the document syntax.
	Format Format
}

// Document is a loaded input.
type Document struct {
	// Path is the file the document was read from, or "-".
	Path string
	// Format is the syntax the document was parsed as.
	Format Format
	// Workbook is set when the document is a workbook configuration.
	Workbook *models.Workbook
	// Value is set when the document is schema-less data.
	Value models.Value
}

// IsWorkbook reports whether the document is a workbook configuration.
func (d *Document) IsWorkbook() bool { return d.Workbook != nil }

// Resolve returns the workbook to render. Schema-less documents are turned
// into sheets of inferred columns.
func (d *Document) Resolve(opts exreport.Options) (*models.Workbook, error) {
	if d.Workbook != nil {
		return d.Workbook, nil
	}
	return exreport.FromDocument(d.Value, opts)
}

// Load reads the document at path, or standard input when path is "-".
// Title images of a workbook configuration are read relative to the
// directory of path.
func Load(path string, opts Options) (*Document, error) {
	var (
		data []byte
		err  error
		dir  string
	)
	if path == Stdin {
		data, err = io.ReadAll(os.Stdin)
		dir = "."
	} else {
		data, err = os.ReadFile(path)
		dir = filepath.Dir(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if opts.Format == FormatAuto {
		opts.Format = formatFromPath(path)
	}
	doc, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	if doc.Workbook != nil {
		if err := LoadImages(doc.Workbook, dir); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Parse decodes data into a Document.
func Parse(data []byte, opts Options) (*Document, error) {
	text, err := Decode(data, opts.Encoding)
	if err != nil {
		return nil, err
	}

	format := opts.Format
	if format == FormatAuto {
		format = sniff(text)
	}
	switch format {
	case FormatJSON:
		return parseJSON(text)
	case FormatYAML:
		return parseYAML(text)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// Decode converts data from the named encoding to UTF-8. A leading byte order
// mark is honoured and removed.
func Decode(data []byte, label string) ([]byte, error) {
	var enc encoding.Encoding = unicode.UTF8
	if label != "" {
		e, err := htmlindex.Get(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
		}
		enc = e
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}
	return out, nil
}

func formatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatAuto
}

// sniff treats documents opening with an object or array as JSON.
func sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

func parseJSON(data []byte) (*Document, error) {
	v, err := models.DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	doc := &Document{Format: FormatJSON}
	if !hasSheets(v) {
		doc.Value = v
		return doc, nil
	}
	var wb models.Workbook
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wb); err != nil {
		return nil, fmt.Errorf("%w: %v", exreport.ErrConfigViolation, err)
	}
	doc.Workbook = &wb
	return doc, nil
}

func parseYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	v, err := models.FromYAMLNode(&root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	doc := &Document{Format: FormatYAML}
	if !hasSheets(v) {
		doc.Value = v
		return doc, nil
	}
	var wb models.Workbook
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&wb); err != nil {
		return nil, fmt.Errorf("%w: %v", exreport.ErrConfigViolation, err)
	}
	doc.Workbook = &wb
	return doc, nil
}

func hasSheets(v models.Value) bool {
	obj, ok := v.(*models.Object)
	if !ok {
		return false
	}
	_, ok = obj.Get(sheetsKey)
	return ok
}

// LoadImages reads the data of every title image that names a file and has
// no data yet. Relative paths are resolved against dir.
func LoadImages(wb *models.Workbook, dir string) error {
	for i := range wb.Sheets {
		title := wb.Sheets[i].Title
		if title == nil || title.Image == nil {
			continue
		}
		img := title.Image
		if len(img.Data) > 0 || img.Path == "" {
			continue
		}
		path := img.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("sheet %d: failed to read title image: %w", i, err)
		}
		img.Data = data
		if img.Extension == "" {
			img.Extension = strings.ToLower(filepath.Ext(path))
		}
	}
	return nil
}
