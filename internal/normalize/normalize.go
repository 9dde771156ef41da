// Package normalize derives the demand map and the feasible offer set
// from the parsed input tables.
package normalize

import (
	"errors"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/cubeworks/procure-cli/internal/model"
)

// ErrNoFeasibleSupply means no supplier offer meets the program's
// assembly deadline; no feasible procurement exists and the pipeline
// must abort before model construction.
var ErrNoFeasibleSupply = errors.New("no feasible supply")

// BuildDemand computes total program demand per component:
// qty per satellite times satellite count. Duplicate BOM rows for the
// same component sum their quantities.
func BuildDemand(bom []model.BOMLine, prog model.Program) model.Demand {
	demand := make(model.Demand, len(bom))
	for _, line := range bom {
		demand[line.Component] += line.QtyPerSat * float64(prog.NumSatellites)
	}
	return demand
}

// FilterFeasible keeps offers whose lead time meets the assembly
// deadline. The deadline is hard: an offer arriving one day late is
// excluded outright. The result is sorted by (component, supplier) so
// downstream variable indexing and output ordering are deterministic.
func FilterFeasible(offers []model.Offer, prog model.Program) ([]model.Offer, error) {
	feasible := make([]model.Offer, 0, len(offers))
	for _, o := range offers {
		if o.LeadTimeDays <= prog.AssemblyStartDay {
			feasible = append(feasible, o)
		}
	}

	if len(feasible) == 0 {
		return nil, eris.Wrapf(ErrNoFeasibleSupply,
			"normalize: no supplier offer has lead time within %d days", prog.AssemblyStartDay)
	}

	sort.Slice(feasible, func(i, j int) bool {
		if feasible[i].Component != feasible[j].Component {
			return feasible[i].Component < feasible[j].Component
		}
		return feasible[i].Supplier < feasible[j].Supplier
	})

	return feasible, nil
}
