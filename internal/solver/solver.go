// Package solver defines the narrow contract between the pipeline and
// the external MILP solver, plus the HiGHS-backed implementation. The
// numeric solving itself (branch-and-bound, simplex) lives entirely in
// the external library; everything here is translation and status
// handling.
package solver

import (
	"context"
	"fmt"

	"github.com/cubeworks/procure-cli/internal/milp"
)

// Status is the overall outcome of a solve attempt.
type Status int

const (
	NotSolved Status = iota
	Optimal
	Infeasible
	Unbounded
	Undefined
)

// String returns the human-readable status name.
func (s Status) String() string {
	switch s {
	case NotSolved:
		return "NotSolved"
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	default:
		return "Undefined"
	}
}

// Solution carries the per-column values and objective of a solve.
// Values is indexed by model column; it is only meaningful when Status
// is Optimal.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
}

// Solver solves a built model. Implementations must honor context
// cancellation at least by returning promptly, even if the underlying
// native call cannot be interrupted.
type Solver interface {
	Solve(ctx context.Context, m *milp.Model) (*Solution, error)
}

// FailureError reports a non-Optimal solve. The plan is never extracted
// or written when this is returned.
type FailureError struct {
	Status    Status
	Objective float64
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("solve failed with status %s (objective %v)", e.Status, e.Objective)
}
