package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/cubeworks/procure-cli/internal/model"
)

func planRows() []model.PlanRow {
	return []model.PlanRow{
		{
			Component: "Battery",
			Supplier:  "VoltaCell",
			OrderQty:  5,
			UnitCost:  decimal.NewFromInt(25),
			Cost:      decimal.NewFromInt(125),
		},
		{
			Component: "PCB",
			Supplier:  "CircuitWorks",
			OrderQty:  6,
			UnitCost:  decimal.NewFromInt(10),
			Cost:      decimal.NewFromInt(60),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results", "procurement_plan.csv")
	require.NoError(t, WriteCSV(path, planRows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "Component,Supplier,OrderQty,UnitCost,Cost\n" +
		"Battery,VoltaCell,5,25,125\n" +
		"PCB,CircuitWorks,6,10,60\n"
	assert.Equal(t, want, string(data))
}

func TestWriteCSV_EmptyPlan(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plan.csv")
	require.NoError(t, WriteCSV(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Component,Supplier,OrderQty,UnitCost,Cost\n", string(data))
}

func TestWriteCSV_NoTempLeftover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "plan.csv")
	require.NoError(t, WriteCSV(path, planRows()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "plan.csv", entries[0].Name())
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plan.xlsx")
	require.NoError(t, WriteXLSX(path, planRows()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "Procurement Plan", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "Component", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Battery", sheet.Rows[1].Cells[0].Value)
	assert.Equal(t, "CircuitWorks", sheet.Rows[2].Cells[1].Value)

	qty, err := sheet.Rows[1].Cells[2].Float()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, qty, 1e-12)
}
