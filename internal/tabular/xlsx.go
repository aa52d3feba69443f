package tabular

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadFile loads an import file and returns its data rows. XLSX workbooks
// are read from their first sheet; anything else is treated as CSV/TSV text.
func ReadFile(path string) ([]Row, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tabular: read %s", path)
	}
	return Parse(string(data))
}

// readXLSX converts the first sheet of a workbook into rows keyed by the
// first row's lower-cased cell values.
func readXLSX(path string) ([]Row, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "tabular: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("tabular: workbook has no sheets")
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.New("tabular: sheet is empty")
	}

	keys := normalizeHeader(rowToStrings(sheet.Rows[0]))

	var rows []Row
	for _, r := range sheet.Rows[1:] {
		if row, ok := buildRow(keys, rowToStrings(r)); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = cell.String()
	}
	return cells
}
