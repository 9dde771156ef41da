package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubeworks/procure-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "procure.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testInputs() model.RunInputs {
	return model.RunInputs{
		BOMPath:          "data/BOM.csv",
		SuppliersPath:    "data/Suppliers.csv",
		ProgramPath:      "data/Program.csv",
		NumSatellites:    3,
		AssemblyStartDay: 10,
		BigM:             10000,
	}
}

func TestSQLite_CompleteRunRoundTrip(t *testing.T) {
	t.Parallel()
	st := newTestSQLite(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, testInputs())
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)

	result := &model.RunResult{
		SolveStatus: "Optimal",
		Objective:   60,
		TotalCost:   "60",
		Rows: []model.PlanRow{
			{
				Component: "PCB",
				Supplier:  "CircuitWorks",
				OrderQty:  6,
				UnitCost:  decimal.NewFromInt(10),
				Cost:      decimal.NewFromInt(60),
			},
		},
	}
	require.NoError(t, st.CompleteRun(ctx, run.ID, result))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	assert.Equal(t, testInputs(), got.Inputs)
	require.NotNil(t, got.Result)
	assert.Equal(t, "Optimal", got.Result.SolveStatus)
	assert.InDelta(t, 60.0, got.Result.Objective, 1e-12)
	require.Len(t, got.Result.Rows, 1)
	assert.Equal(t, "PCB", got.Result.Rows[0].Component)
	assert.True(t, got.Result.Rows[0].Cost.Equal(decimal.NewFromInt(60)))
}

func TestSQLite_FailRun(t *testing.T) {
	t.Parallel()
	st := newTestSQLite(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, testInputs())
	require.NoError(t, err)

	require.NoError(t, st.FailRun(ctx, run.ID, "solve failed with status Infeasible"))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	assert.Contains(t, got.Error, "Infeasible")
	assert.Nil(t, got.Result)
}

func TestSQLite_GetRun_NotFound(t *testing.T) {
	t.Parallel()
	st := newTestSQLite(t)

	_, err := st.GetRun(context.Background(), "nonexistent")
	require.Error(t, err)
	// The no-rows sentinel must survive wrapping so callers can match it.
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestSQLite_UpdateMissingRun(t *testing.T) {
	t.Parallel()
	st := newTestSQLite(t)
	ctx := context.Background()

	err := st.CompleteRun(ctx, "nonexistent", &model.RunResult{SolveStatus: "Optimal"})
	assert.Error(t, err)

	err = st.FailRun(ctx, "nonexistent", "boom")
	assert.Error(t, err)
}

func TestSQLite_ListRuns(t *testing.T) {
	t.Parallel()
	st := newTestSQLite(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := st.CreateRun(ctx, testInputs())
		require.NoError(t, err)
	}

	runs, err := st.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	runs, err = st.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
