// Package pipeline wires the stages of the procurement optimization:
// normalize, build, solve, extract. Each stage completes before the
// next begins and hands its successor an immutable result; the only
// blocking call is the solve itself.
package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cubeworks/procure-cli/internal/config"
	"github.com/cubeworks/procure-cli/internal/extract"
	"github.com/cubeworks/procure-cli/internal/ingest"
	"github.com/cubeworks/procure-cli/internal/milp"
	"github.com/cubeworks/procure-cli/internal/model"
	"github.com/cubeworks/procure-cli/internal/normalize"
	"github.com/cubeworks/procure-cli/internal/solver"
)

// Result is the outcome of a full pipeline run.
type Result struct {
	Demand    model.Demand
	Feasible  []model.Offer
	Status    solver.Status
	Objective float64
	Rows      []model.PlanRow
	TotalCost decimal.Decimal
}

// Pipeline runs the optimization end to end against a solver.
type Pipeline struct {
	solve  config.SolveConfig
	solver solver.Solver
}

// New creates a Pipeline.
func New(solve config.SolveConfig, s solver.Solver) *Pipeline {
	return &Pipeline{solve: solve, solver: s}
}

// Run executes normalize, build, solve, and extract over the parsed
// inputs. On a non-Optimal solve it returns a *solver.FailureError and
// no rows; nothing downstream may write an artifact in that case.
func (p *Pipeline) Run(ctx context.Context, in *ingest.Inputs) (*Result, error) {
	demand := normalize.BuildDemand(in.BOM, in.Program)

	feasible, err := normalize.FilterFeasible(in.Offers, in.Program)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: filter feasible offers")
	}
	zap.L().Info("normalized inputs",
		zap.Int("components", len(demand)),
		zap.Int("offers", len(in.Offers)),
		zap.Int("feasible_offers", len(feasible)),
	)

	m, ix, err := milp.Build(demand, feasible, milp.BuildOptions{BigM: p.solve.BigM})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: build model")
	}
	zap.L().Info("built model",
		zap.Int("columns", len(m.Cols)),
		zap.Int("rows", len(m.Rows)),
		zap.Float64("big_m", p.solve.BigM),
	)

	sol, err := p.solver.Solve(ctx, m)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: solve")
	}
	if sol.Status != solver.Optimal {
		return nil, eris.Wrap(
			&solver.FailureError{Status: sol.Status, Objective: sol.Objective},
			"pipeline: solve",
		)
	}

	rows := extract.Rows(ix, sol, extract.Options{
		Tolerance: p.solve.Tolerance,
		BigM:      p.solve.BigM,
	})

	return &Result{
		Demand:    demand,
		Feasible:  feasible,
		Status:    sol.Status,
		Objective: sol.Objective,
		Rows:      rows,
		TotalCost: extract.TotalCost(rows),
	}, nil
}
