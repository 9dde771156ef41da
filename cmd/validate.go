package main

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cubeworks/procure-cli/internal/ingest"
	"github.com/cubeworks/procure-cli/internal/model"
	"github.com/cubeworks/procure-cli/internal/normalize"
)

// validateSummary is what `validate` prints: the derived demand and the
// feasibility picture, without building or solving anything.
type validateSummary struct {
	NumSatellites    int           `json:"num_satellites"`
	AssemblyStartDay int           `json:"assembly_start_day"`
	Demand           []demandEntry `json:"demand"`
	TotalOffers      int           `json:"total_offers"`
	FeasibleOffers   []model.Offer `json:"feasible_offers"`
	UncoveredDemand  []string      `json:"uncovered_demand,omitempty"`
}

type demandEntry struct {
	Component   string  `json:"component"`
	TotalDemand float64 `json:"total_demand"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check input tables and print the demand and feasibility summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		bomPath, supPath, progPath := resolveInputPaths()
		in, err := ingest.Load(ctx, bomPath, supPath, progPath)
		if err != nil {
			return eris.Wrap(err, "validate: load inputs")
		}

		demand := normalize.BuildDemand(in.BOM, in.Program)
		feasible, err := normalize.FilterFeasible(in.Offers, in.Program)
		if err != nil {
			return eris.Wrap(err, "validate: filter feasible offers")
		}

		summary := buildSummary(in, demand, feasible)
		if len(summary.UncoveredDemand) > 0 {
			zap.L().Warn("components with demand but no feasible offer; the solve will report infeasible",
				zap.Strings("components", summary.UncoveredDemand),
			)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	},
}

func init() {
	validateCmd.Flags().StringVar(&planBOM, "bom", "", "path to BOM table (default <data_dir>/BOM.csv)")
	validateCmd.Flags().StringVar(&planSupplier, "suppliers", "", "path to Suppliers table (default <data_dir>/Suppliers.csv)")
	validateCmd.Flags().StringVar(&planProgram, "program", "", "path to Program table (default <data_dir>/Program.csv)")
	rootCmd.AddCommand(validateCmd)
}

func buildSummary(in *ingest.Inputs, demand model.Demand, feasible []model.Offer) validateSummary {
	covered := make(map[string]bool, len(feasible))
	for _, o := range feasible {
		covered[o.Component] = true
	}

	entries := make([]demandEntry, 0, len(demand))
	var uncovered []string
	for c, d := range demand {
		entries = append(entries, demandEntry{Component: c, TotalDemand: d})
		if !covered[c] {
			uncovered = append(uncovered, c)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Component < entries[j].Component })
	sort.Strings(uncovered)

	return validateSummary{
		NumSatellites:    in.Program.NumSatellites,
		AssemblyStartDay: in.Program.AssemblyStartDay,
		Demand:           entries,
		TotalOffers:      len(in.Offers),
		FeasibleOffers:   feasible,
		UncoveredDemand:  uncovered,
	}
}
