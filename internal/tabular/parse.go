// Package tabular turns raw CSV/TSV text and XLSX workbooks into
// header-keyed row maps for the import pipeline.
package tabular

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// Row is one data line keyed by the lower-cased, trimmed header names.
type Row map[string]string

// Parse reads a whole CSV or TSV export and returns its data rows.
//
// The delimiter is decided once from the header line: a tab anywhere in it
// means the entire file is tab-separated, otherwise comma-separated. Comma
// mode goes through encoding/csv and handles quoted fields with embedded
// commas, newlines, and doubled quotes. Tab mode splits naively on tab;
// spreadsheet tab-exports do not quote. Rows whose every field is empty
// after trimming are skipped.
func Parse(text string) ([]Row, error) {
	text = strings.TrimPrefix(text, "\uFEFF")
	if strings.TrimSpace(text) == "" {
		return nil, eris.New("tabular: empty input")
	}

	headerLine, _, _ := strings.Cut(text, "\n")
	if strings.Contains(headerLine, "\t") {
		return parseTab(text)
	}
	return parseComma(text)
}

func parseComma(text string) ([]Row, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1 // allow ragged rows

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "tabular: read header")
	}
	keys := normalizeHeader(header)

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "tabular: read row")
		}
		if row, ok := buildRow(keys, record); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func parseTab(text string) ([]Row, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	keys := normalizeHeader(strings.Split(lines[0], "\t"))

	var rows []Row
	for _, line := range lines[1:] {
		if row, ok := buildRow(keys, strings.Split(line, "\t")); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// normalizeHeader lower-cases and trims column names so lookups are
// case-insensitive regardless of export origin.
func normalizeHeader(header []string) []string {
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return keys
}

// buildRow pairs header keys with trimmed values. Missing trailing columns
// become empty strings. Returns ok=false when every field is empty.
func buildRow(keys []string, record []string) (Row, bool) {
	row := make(Row, len(keys))
	empty := true
	for i, k := range keys {
		if k == "" {
			continue
		}
		v := ""
		if i < len(record) {
			v = strings.TrimSpace(record[i])
		}
		if v != "" {
			empty = false
		}
		row[k] = v
	}
	if empty {
		return nil, false
	}
	return row, true
}
