package milp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cubeworks/procure-cli/internal/model"
)

// BuildOptions tunes model construction.
type BuildOptions struct {
	// BigM caps any single offer's order quantity in the activation
	// linearization. It must exceed the largest legitimate order
	// quantity or it clips the optimum.
	BigM float64
}

// Build constructs the procurement MILP from the demand map and the
// feasible offer set, and returns the offer index the extractor needs
// to read the solution back.
//
// Per feasible offer (c, s):
//
//	x_c_s >= 0            continuous order quantity
//	y_c_s in {0,1}        activation flag
//	x_c_s - moq*y_c_s >= 0
//	x_c_s - BigM*y_c_s <= 0
//
// Per demand-map component c:
//
//	sum over offers of c of x >= total_demand(c)
//
// A component with positive demand and no feasible offers still gets
// its demand row; the empty sum makes the model infeasible and the
// solver reports it, rather than the builder hiding the gap.
func Build(demand model.Demand, offers []model.Offer, opts BuildOptions) (*Model, *Index, error) {
	if opts.BigM <= 0 {
		return nil, nil, eris.Errorf("milp: BigM must be positive, got %v", opts.BigM)
	}
	if len(offers) == 0 {
		return nil, nil, eris.New("milp: no offers to build from")
	}

	if maxD := maxDemand(demand); maxD > opts.BigM {
		zap.L().Warn("BigM below largest component demand; single-offer fulfillment is impossible at this setting",
			zap.Float64("big_m", opts.BigM),
			zap.Float64("max_demand", maxD),
		)
	}

	ix := NewIndex(offers)

	m := &Model{
		Cols:  make([]Variable, ix.NumCols()),
		Costs: make([]float64, ix.NumCols()),
	}

	for i := 0; i < ix.Len(); i++ {
		o := ix.Offer(i)
		m.Cols[ix.QtyCol(i)] = Variable{
			Name:  varName("x", o),
			Type:  Continuous,
			Lower: 0,
			Upper: Inf(),
		}
		m.Cols[ix.ActCol(i)] = Variable{
			Name:  varName("y", o),
			Type:  Binary,
			Lower: 0,
			Upper: 1,
		}
		cost, _ := o.UnitCost.Float64()
		m.Costs[ix.QtyCol(i)] = cost
	}

	// Demand rows, in sorted component order for reproducible models.
	components := make([]string, 0, len(demand))
	for c := range demand {
		components = append(components, c)
	}
	sort.Strings(components)

	for _, c := range components {
		var terms []Term
		for i := 0; i < ix.Len(); i++ {
			if ix.Offer(i).Component == c {
				terms = append(terms, Term{Col: ix.QtyCol(i), Coef: 1})
			}
		}
		m.Rows = append(m.Rows, Constraint{
			Name:  fmt.Sprintf("demand_%s", sanitize(c)),
			Terms: terms,
			Lower: demand[c],
			Upper: Inf(),
		})
	}

	// MOQ activation rows per offer.
	for i := 0; i < ix.Len(); i++ {
		o := ix.Offer(i)
		m.Rows = append(m.Rows,
			Constraint{
				Name: fmt.Sprintf("moq_floor_%s", sanitize(o.Component+"_"+o.Supplier)),
				Terms: []Term{
					{Col: ix.QtyCol(i), Coef: 1},
					{Col: ix.ActCol(i), Coef: -o.MOQ},
				},
				Lower: 0,
				Upper: Inf(),
			},
			Constraint{
				Name: fmt.Sprintf("activation_cap_%s", sanitize(o.Component+"_"+o.Supplier)),
				Terms: []Term{
					{Col: ix.QtyCol(i), Coef: 1},
					{Col: ix.ActCol(i), Coef: -opts.BigM},
				},
				Lower: -Inf(),
				Upper: 0,
			},
		)
	}

	return m, ix, nil
}

func maxDemand(demand model.Demand) float64 {
	var maxD float64
	for _, d := range demand {
		if d > maxD {
			maxD = d
		}
	}
	return maxD
}

func varName(prefix string, o model.Offer) string {
	return fmt.Sprintf("%s_%s_%s", prefix, sanitize(o.Component), sanitize(o.Supplier))
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
