package report

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/cubeworks/procure-cli/internal/model"
)

// WriteXLSX writes the plan rows as a single-sheet workbook at path.
func WriteXLSX(path string, rows []model.PlanRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "report: create output dir for %s", path)
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Procurement Plan")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range planHeader {
		header.AddCell().SetString(h)
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Component)
		row.AddCell().SetString(r.Supplier)
		row.AddCell().SetFloat(r.OrderQty)
		row.AddCell().SetString(r.UnitCost.String())
		row.AddCell().SetString(r.Cost.String())
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".plan-*.xlsx")
	if err != nil {
		return eris.Wrap(err, "report: create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return eris.Wrap(err, "report: write xlsx")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "report: close temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return eris.Wrapf(err, "report: rename into %s", path)
	}
	return nil
}
