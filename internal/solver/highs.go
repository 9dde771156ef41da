package solver

import (
	"context"
	"time"

	"github.com/bartolsthoorn/gohighs/highs"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cubeworks/procure-cli/internal/milp"
)

// HiGHS solves models with the HiGHS solver. TimeLimit, when positive,
// bounds the wall-clock time of a solve: the native call cannot be
// interrupted, so on expiry the result is abandoned and NotSolved is
// returned.
type HiGHS struct {
	TimeLimit time.Duration
}

// NewHiGHS returns a HiGHS-backed solver.
func NewHiGHS(timeLimit time.Duration) *HiGHS {
	return &HiGHS{TimeLimit: timeLimit}
}

type highsOutcome struct {
	optimal   bool
	status    highs.ModelStatus
	objective float64
	values    []float64
	err       error
}

// toHighsModel translates the internal model to HiGHS form: costs,
// bounds, variable types, and dense constraint rows.
func toHighsModel(m *milp.Model) highs.Model {
	hm := highs.Model{
		ColCosts: append([]float64(nil), m.Costs...),
		ColLower: make([]float64, len(m.Cols)),
		ColUpper: make([]float64, len(m.Cols)),
		VarTypes: make([]highs.VariableType, len(m.Cols)),
	}
	for i, col := range m.Cols {
		hm.ColLower[i] = col.Lower
		hm.ColUpper[i] = col.Upper
		if col.Type == milp.Binary {
			hm.VarTypes[i] = highs.Integer
		} else {
			hm.VarTypes[i] = highs.Continuous
		}
	}
	for _, row := range m.Rows {
		hm.AddDenseRow(row.Lower, m.Dense(row), row.Upper)
	}
	return hm
}

// Solve translates the model to HiGHS form, runs the solver, and maps
// the result back onto the adapter contract.
func (h *HiGHS) Solve(ctx context.Context, m *milp.Model) (*Solution, error) {
	hm := toHighsModel(m)

	if h.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.TimeLimit)
		defer cancel()
	}

	done := make(chan highsOutcome, 1)
	go func() {
		sol, err := hm.Solve(highs.WithOutput(false))
		if err != nil {
			done <- highsOutcome{err: err}
			return
		}
		done <- highsOutcome{
			optimal:   sol.IsOptimal(),
			status:    sol.Status,
			objective: sol.Objective,
			values:    sol.ColValues,
		}
	}()

	select {
	case <-ctx.Done():
		zap.L().Warn("solve abandoned", zap.Error(ctx.Err()))
		return &Solution{Status: NotSolved}, nil
	case out := <-done:
		if out.err != nil {
			return nil, eris.Wrap(out.err, "solver: highs solve")
		}
		return mapOutcome(out), nil
	}
}

func mapOutcome(out highsOutcome) *Solution {
	s := &Solution{
		Objective: out.objective,
		Values:    out.values,
	}
	switch {
	case out.optimal || out.status == highs.ModelStatusOptimal:
		s.Status = Optimal
	case out.status == highs.ModelStatusInfeasible, out.status == highs.ModelStatusUnboundedOrInfeasible:
		s.Status = Infeasible
	case out.status == highs.ModelStatusUnbounded:
		s.Status = Unbounded
	default:
		s.Status = Undefined
	}
	return s
}
