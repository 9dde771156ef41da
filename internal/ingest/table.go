// Package ingest loads the BOM, Suppliers, and Program tables and maps
// them onto typed records, failing fast on schema mismatches.
package ingest

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ErrSchema marks a malformed input table: a missing required column, a
// bad cell value, or the wrong number of rows. Matched with eris.Is.
var ErrSchema = errors.New("input schema error")

// Table is a raw tabular input: a trimmed header row plus data rows.
type Table struct {
	Path   string
	Header []string
	Rows   [][]string
}

// ReadTable reads a CSV or XLSX file depending on its extension.
// Header cells are trimmed of surrounding whitespace; inputs are not
// assumed to be clean.
func ReadTable(path string) (*Table, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		records, err = readXLSX(path)
	default:
		records, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, eris.Wrapf(ErrSchema, "ingest: %s is empty", path)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	return &Table{Path: path, Header: header, Rows: records[1:]}, nil
}

// Column returns the index of a required column, or a schema error
// naming the column and the file it is missing from.
func (t *Table) Column(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return 0, eris.Wrapf(ErrSchema, "ingest: %s: missing required column %q", t.Path, name)
}

// Cell returns the trimmed value at (row, col), or "" when the row is
// shorter than the header.
func (t *Table) Cell(row, col int) string {
	if col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: read csv %s", path)
	}
	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Wrapf(ErrSchema, "ingest: %s has no sheets", path)
	}

	sheet := f.Sheets[0]
	records := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = c.Value
		}
		records = append(records, cells)
	}
	return records, nil
}
