package exreport

import (
	"path/filepath"

	"github.com/ukaji3/exreport-go/pkg/exreport/models"
	"github.com/ukaji3/exreport-go/pkg/exreport/surface"
	"github.com/xuri/excelize/v2"
)

// Inspect reads back the cell values and print areas of an xlsx file.
func Inspect(path string) (*models.WorkbookCells, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets, err := surface.ReadWorkbook(f)
	if err != nil {
		return nil, err
	}
	return &models.WorkbookCells{
		BookName: filepath.Base(path),
		Sheets:   sheets,
	}, nil
}
