package surface

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/ukaji3/exreport-go/pkg/exreport/models"
	"github.com/xuri/excelize/v2"
)

// Book is a Factory backed by a fresh excelize workbook.
type Book struct {
	f      *excelize.File
	sheets []*Sheet
	styles map[Style]StyleID
}

// NewBook creates an empty workbook.
func NewBook() *Book {
	return &Book{
		f:      excelize.NewFile(),
		styles: make(map[Style]StyleID),
	}
}

// File returns the underlying workbook.
func (b *Book) File() *excelize.File { return b.f }

// placeholderName names a sheet until SetName is called. A name already taken
// by an earlier sheet gets a numeric suffix.
func (b *Book) placeholderName(index int) string {
	name := fmt.Sprintf("__exreport_%d", index)
	for n := 2; b.hasSheet(name); n++ {
		name = fmt.Sprintf("__exreport_%d_%d", index, n)
	}
	return name
}

func (b *Book) hasSheet(name string) bool {
	idx, err := b.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// NewSurface adds a worksheet. The first call takes over the default sheet of
// the new workbook.
func (b *Book) NewSurface(index int) (Surface, error) {
	name := b.placeholderName(index)
	if len(b.sheets) == 0 {
		if err := b.f.SetSheetName(b.f.GetSheetName(0), name); err != nil {
			return nil, err
		}
	} else if _, err := b.f.NewSheet(name); err != nil {
		return nil, err
	}
	s := &Sheet{
		book:     b,
		name:     name,
		explicit: make(map[int]bool),
	}
	b.sheets = append(b.sheets, s)
	return s, nil
}

// Write encodes the workbook to w.
func (b *Book) Write(w io.Writer) error {
	b.f.SetActiveSheet(0)
	return b.f.Write(w)
}

// SaveAs encodes the workbook to path.
func (b *Book) SaveAs(path string) error {
	b.f.SetActiveSheet(0)
	return b.f.SaveAs(path)
}

// Close releases temporary resources held by the workbook.
func (b *Book) Close() error {
	return b.f.Close()
}

func (b *Book) defineStyle(st Style) (StyleID, error) {
	if id, ok := b.styles[st]; ok {
		return id, nil
	}
	xs := &excelize.Style{}
	if st.Bold || st.FontSize > 0 {
		xs.Font = &excelize.Font{Bold: st.Bold, Size: st.FontSize}
	}
	if st.FillColor != "" {
		xs.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{st.FillColor}}
	}
	if st.BorderBottom {
		xs.Border = []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}}
	}
	if st.HAlign != "" || st.VAlign != "" || st.WrapText {
		xs.Alignment = &excelize.Alignment{
			Horizontal: st.HAlign,
			Vertical:   st.VAlign,
			WrapText:   st.WrapText,
		}
	}
	if st.NumberFormat != "" {
		numFmt := st.NumberFormat
		xs.CustomNumFmt = &numFmt
	}
	id, err := b.f.NewStyle(xs)
	if err != nil {
		return 0, err
	}
	b.styles[st] = StyleID(id)
	return StyleID(id), nil
}

// Sheet is one excelize worksheet.
type Sheet struct {
	book     *Book
	name     string
	explicit map[int]bool
}

func cellName(c Cell) (string, error) {
	if !c.Valid() {
		return "", fmt.Errorf("%w: row %d col %d", ErrOutOfBounds, c.Row, c.Col)
	}
	return excelize.CoordinatesToCellName(c.Col+1, c.Row+1)
}

func areaCells(a models.Area) (string, string, error) {
	if !AreaValid(a) {
		return "", "", fmt.Errorf("%w: %+v", ErrOutOfBounds, a)
	}
	tl, err := excelize.CoordinatesToCellName(a.C1+1, a.R1+1)
	if err != nil {
		return "", "", err
	}
	br, err := excelize.CoordinatesToCellName(a.C2+1, a.R2+1)
	if err != nil {
		return "", "", err
	}
	return tl, br, nil
}

func columnName(col int) (string, error) {
	if col < 0 || col >= MaxCols {
		return "", fmt.Errorf("%w: col %d", ErrOutOfBounds, col)
	}
	return excelize.ColumnNumberToName(col + 1)
}

// Name returns the current sheet name.
func (s *Sheet) Name() string { return s.name }

func (s *Sheet) SetName(name string) error {
	if name == s.name {
		return nil
	}
	if !strings.EqualFold(name, s.name) && s.book.hasSheet(name) {
		return fmt.Errorf("sheet name %q is already in use", name)
	}
	if err := s.book.f.SetSheetName(s.name, name); err != nil {
		return err
	}
	s.name = name
	return nil
}

func (s *Sheet) Protect(password string) error {
	return s.book.f.ProtectSheet(s.name, &excelize.SheetProtectionOptions{
		AlgorithmName:       "SHA-512",
		Password:            password,
		SelectLockedCells:   true,
		SelectUnlockedCells: true,
	})
}

func (s *Sheet) DefineStyle(st Style) (StyleID, error) {
	return s.book.defineStyle(st)
}

func (s *Sheet) setStyle(cell string, style StyleID) error {
	if style == 0 {
		return nil
	}
	return s.book.f.SetCellStyle(s.name, cell, cell, int(style))
}

func (s *Sheet) WriteHeader(pos Cell, text string, style StyleID) error {
	cell, err := cellName(pos)
	if err != nil {
		return err
	}
	if err := s.book.f.SetCellStr(s.name, cell, text); err != nil {
		return err
	}
	return s.setStyle(cell, style)
}

func (s *Sheet) WriteCell(pos Cell, v CellValue, style StyleID) error {
	cell, err := cellName(pos)
	if err != nil {
		return err
	}
	switch v.Kind {
	case CellNumber:
		err = s.book.f.SetCellFloat(s.name, cell, v.Num, -1, 64)
	case CellBool:
		err = s.book.f.SetCellBool(s.name, cell, v.Bool)
	default:
		err = s.book.f.SetCellStr(s.name, cell, v.Str)
	}
	if err != nil {
		return err
	}
	return s.setStyle(cell, style)
}

func (s *Sheet) WriteFormula(pos Cell, formula string, style StyleID) error {
	cell, err := cellName(pos)
	if err != nil {
		return err
	}
	if err := s.book.f.SetCellFormula(s.name, cell, strings.TrimPrefix(formula, "=")); err != nil {
		return err
	}
	return s.setStyle(cell, style)
}

func (s *Sheet) DeclareTable(area models.Area, opts TableOptions) error {
	tl, br, err := areaCells(area)
	if err != nil {
		return err
	}
	header := opts.HeaderRow
	stripes := opts.RowStripes
	return s.book.f.AddTable(s.name, &excelize.Table{
		Range:           tl + ":" + br,
		Name:            opts.Name,
		StyleName:       opts.Style,
		ShowHeaderRow:   &header,
		ShowFirstColumn: opts.FirstColumn,
		ShowRowStripes:  &stripes,
	})
}

func (s *Sheet) SetColumnWidth(col int, width float64) error {
	name, err := columnName(col)
	if err != nil {
		return err
	}
	if err := s.book.f.SetColWidth(s.name, name, name, width); err != nil {
		return err
	}
	s.explicit[col] = true
	return nil
}

func (s *Sheet) FreezePanes(rows, cols int) error {
	if rows == 0 && cols == 0 {
		return nil
	}
	topLeft, err := cellName(Cell{Row: rows, Col: cols})
	if err != nil {
		return err
	}
	pane := "bottomRight"
	switch {
	case cols == 0:
		pane = "bottomLeft"
	case rows == 0:
		pane = "topRight"
	}
	return s.book.f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		XSplit:      cols,
		YSplit:      rows,
		TopLeftCell: topLeft,
		ActivePane:  pane,
		Selection: []excelize.Selection{
			{SQRef: topLeft, ActiveCell: topLeft, Pane: pane},
		},
	})
}

func (s *Sheet) Merge(area models.Area, style StyleID) error {
	tl, br, err := areaCells(area)
	if err != nil {
		return err
	}
	if err := s.book.f.MergeCell(s.name, tl, br); err != nil {
		return err
	}
	if style == 0 {
		return nil
	}
	return s.book.f.SetCellStyle(s.name, tl, br, int(style))
}

func (s *Sheet) EmbedImage(pos Cell, img models.Image, opts ImageOptions) error {
	cell, err := cellName(pos)
	if err != nil {
		return err
	}
	ext := img.Extension
	if ext == "" {
		ext = filepath.Ext(img.Path)
	}
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	// Formats image cannot decode (emf, svg, ...) are placed without offset.
	var imgW, imgH int
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data)); err == nil {
		imgW, imgH = cfg.Width, cfg.Height
	}

	offsetX := 0
	if opts.AlignRight && imgW > 0 {
		span, err := s.spanPixels(opts.Span)
		if err != nil {
			return err
		}
		offsetX = max(0, span-imgW)
	}
	if opts.FitRowHeight && imgH > 0 {
		if err := s.growRow(pos.Row, PixelsToPoints(imgH)); err != nil {
			return err
		}
	}

	return s.book.f.AddPictureFromBytes(s.name, cell, &excelize.Picture{
		Extension: ext,
		File:      img.Data,
		Format: &excelize.GraphicOptions{
			AltText:         img.AltText,
			OffsetX:         offsetX,
			LockAspectRatio: true,
			Positioning:     "oneCell",
		},
	})
}

func (s *Sheet) spanPixels(a models.Area) (int, error) {
	total := 0
	for c := a.C1; c <= a.C2; c++ {
		name, err := columnName(c)
		if err != nil {
			return 0, err
		}
		w, err := s.book.f.GetColWidth(s.name, name)
		if err != nil {
			return 0, err
		}
		total += ColumnWidthToPixels(w)
	}
	return total, nil
}

func (s *Sheet) growRow(row int, points float64) error {
	cur, err := s.book.f.GetRowHeight(s.name, row+1)
	if err != nil {
		return err
	}
	if points <= cur {
		return nil
	}
	return s.book.f.SetRowHeight(s.name, row+1, min(points, MaxRowHeight))
}

func (s *Sheet) SetPrintArea(area models.Area) error {
	tl, br, err := areaCells(area)
	if err != nil {
		return err
	}
	ref := fmt.Sprintf("'%s'!%s:%s", strings.ReplaceAll(s.name, "'", "''"), absolute(tl), absolute(br))
	return s.book.f.SetDefinedName(&excelize.DefinedName{
		Name:     printAreaName,
		RefersTo: ref,
		Scope:    s.name,
	})
}

// absolute turns "B12" into "$B$12".
func absolute(cell string) string {
	i := strings.IndexFunc(cell, func(r rune) bool { return r >= '0' && r <= '9' })
	if i <= 0 {
		return cell
	}
	return "$" + cell[:i] + "$" + cell[i:]
}

// AutoFit sizes every column that has content but no explicit width, from
// the displayed text of its cells. Merged ranges are ignored.
func (s *Sheet) AutoFit() error {
	rows, err := s.book.f.GetRows(s.name)
	if err != nil {
		return err
	}
	merged, err := s.mergedAreas()
	if err != nil {
		return err
	}

	widths := make(map[int]int)
	for r, row := range rows {
		for c, text := range row {
			if text == "" || s.explicit[c] || inAny(merged, r, c) {
				continue
			}
			if w := runewidth.StringWidth(text); w > widths[c] {
				widths[c] = w
			}
		}
	}
	for c, w := range widths {
		name, err := columnName(c)
		if err != nil {
			return err
		}
		width := min(float64(w)*1.1+2, MaxColumnWidth)
		if err := s.book.f.SetColWidth(s.name, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sheet) mergedAreas() ([]models.Area, error) {
	cells, err := s.book.f.GetMergeCells(s.name)
	if err != nil {
		return nil, err
	}
	areas := make([]models.Area, 0, len(cells))
	for _, mc := range cells {
		if a := parseRangeToArea(mc.GetStartAxis() + ":" + mc.GetEndAxis()); a != nil {
			areas = append(areas, *a)
		}
	}
	return areas, nil
}

func inAny(areas []models.Area, row, col int) bool {
	for _, a := range areas {
		if a.Contains(row, col) {
			return true
		}
	}
	return false
}
