// Package extract turns solved variable values into the procurement
// plan.
package extract

import (
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cubeworks/procure-cli/internal/milp"
	"github.com/cubeworks/procure-cli/internal/model"
	"github.com/cubeworks/procure-cli/internal/solver"
)

// Options tunes extraction.
type Options struct {
	// Tolerance is the minimum solved quantity treated as a real
	// allocation. Values at or below it are solver noise.
	Tolerance float64
	// BigM, when positive, enables the binding-bound check: a solved
	// quantity close to BigM means the artificial cap is clipping the
	// optimum and BigM is set too small.
	BigM float64
}

// bigMProximity is the fraction of BigM at which a solved quantity is
// flagged as suspiciously close to the artificial bound.
const bigMProximity = 0.99

// Rows reads the solved quantities back through the offer index and
// returns the non-zero allocations, ordered by (component, supplier).
// Extraction is pure: re-running it on the same solution yields
// identical rows.
func Rows(ix *milp.Index, sol *solver.Solution, opts Options) []model.PlanRow {
	rows := make([]model.PlanRow, 0, ix.Len())

	for i := 0; i < ix.Len(); i++ {
		qty := sol.Values[ix.QtyCol(i)]
		if qty <= opts.Tolerance {
			continue
		}
		o := ix.Offer(i)

		if opts.BigM > 0 && qty >= bigMProximity*opts.BigM {
			zap.L().Warn("solved quantity approaches BigM; the configured bound is likely clipping the optimum",
				zap.String("component", o.Component),
				zap.String("supplier", o.Supplier),
				zap.Float64("quantity", qty),
				zap.Float64("big_m", opts.BigM),
			)
		}

		qtyDec := decimal.NewFromFloat(qty)
		rows = append(rows, model.PlanRow{
			Component: o.Component,
			Supplier:  o.Supplier,
			OrderQty:  qty,
			UnitCost:  o.UnitCost,
			Cost:      o.UnitCost.Mul(qtyDec).Round(6),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Component != rows[j].Component {
			return rows[i].Component < rows[j].Component
		}
		return rows[i].Supplier < rows[j].Supplier
	})

	return rows
}

// TotalCost sums the per-row spend in exact decimal arithmetic.
func TotalCost(rows []model.PlanRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Cost)
	}
	return total
}
