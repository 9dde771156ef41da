// Package report writes the procurement plan to tabular artifacts.
// Writers stage output in a temp file and rename it into place, so a
// failed run never leaves a partial artifact behind.
package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/cubeworks/procure-cli/internal/model"
)

var planHeader = []string{"Component", "Supplier", "OrderQty", "UnitCost", "Cost"}

// WriteCSV writes the plan rows to a CSV file at path.
func WriteCSV(path string, rows []model.PlanRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "report: create output dir for %s", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".plan-*.csv")
	if err != nil {
		return eris.Wrap(err, "report: create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	w := csv.NewWriter(tmp)
	if err := w.Write(planHeader); err != nil {
		tmp.Close()
		return eris.Wrap(err, "report: write csv header")
	}
	for _, r := range rows {
		record := []string{
			r.Component,
			r.Supplier,
			strconv.FormatFloat(r.OrderQty, 'f', -1, 64),
			r.UnitCost.String(),
			r.Cost.String(),
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return eris.Wrap(err, "report: write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return eris.Wrap(err, "report: flush csv")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "report: close temp file")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "report: rename into %s", path)
	}
	return nil
}
