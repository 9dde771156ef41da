package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cubeworks/procure-cli/internal/config"
	"github.com/cubeworks/procure-cli/internal/ingest"
	"github.com/cubeworks/procure-cli/internal/model"
	"github.com/cubeworks/procure-cli/internal/pipeline"
	"github.com/cubeworks/procure-cli/internal/report"
	"github.com/cubeworks/procure-cli/internal/solver"
	"github.com/cubeworks/procure-cli/internal/store"
)

var (
	planBOM      string
	planSupplier string
	planProgram  string
	planOutput   string
	planFormat   string
	planScenario string
	planNoStore  bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Solve the procurement allocation and write the plan",
	Long: `Loads the BOM, Suppliers, and Program tables, solves the
cost-minimizing allocation, and writes the procurement plan.

Input paths default to <data_dir>/{BOM,Suppliers,Program}.csv; tables
may also be .xlsx. Examples:

  # Default paths from config
  procure-cli plan

  # Explicit inputs, XLSX output
  procure-cli plan --bom bom.csv --suppliers sup.csv --program prog.csv --format xlsx

  # What-if run with overridden program parameters
  procure-cli plan --scenario surge.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		bomPath, supPath, progPath := resolveInputPaths()

		in, err := ingest.Load(ctx, bomPath, supPath, progPath)
		if err != nil {
			return eris.Wrap(err, "plan: load inputs")
		}

		solveCfg := cfg.Solve
		if planScenario != "" {
			sc, err := config.LoadScenario(planScenario)
			if err != nil {
				return eris.Wrap(err, "plan: load scenario")
			}
			sc.Apply(&in.Program, &solveCfg)
			zap.L().Info("applied scenario overrides",
				zap.String("scenario", planScenario),
				zap.Int("num_satellites", in.Program.NumSatellites),
				zap.Int("assembly_start_day", in.Program.AssemblyStartDay),
				zap.Float64("big_m", solveCfg.BigM),
			)
		}

		runInputs := model.RunInputs{
			BOMPath:          bomPath,
			SuppliersPath:    supPath,
			ProgramPath:      progPath,
			NumSatellites:    in.Program.NumSatellites,
			AssemblyStartDay: in.Program.AssemblyStartDay,
			BigM:             solveCfg.BigM,
		}

		st := maybeOpenStore(ctx)
		if st != nil {
			defer st.Close() //nolint:errcheck
		}
		run := maybeCreateRun(ctx, st, runInputs)

		hs := solver.NewHiGHS(time.Duration(solveCfg.TimeLimitSecs) * time.Second)
		result, err := pipeline.New(solveCfg, hs).Run(ctx, in)
		if err != nil {
			maybeFailRun(ctx, st, run, err)
			return err
		}

		logPlan(result)

		outPath := resolveOutputPath()
		if err := writePlan(outPath, result.Rows); err != nil {
			maybeFailRun(ctx, st, run, err)
			return err
		}
		zap.L().Info("plan written", zap.String("path", outPath))

		if st != nil && run != nil {
			res := &model.RunResult{
				SolveStatus: result.Status.String(),
				Objective:   result.Objective,
				TotalCost:   result.TotalCost.String(),
				Rows:        result.Rows,
			}
			if err := st.CompleteRun(ctx, run.ID, res); err != nil {
				zap.L().Warn("record run result", zap.Error(err))
			}
		}

		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&planBOM, "bom", "", "path to BOM table (default <data_dir>/BOM.csv)")
	planCmd.Flags().StringVar(&planSupplier, "suppliers", "", "path to Suppliers table (default <data_dir>/Suppliers.csv)")
	planCmd.Flags().StringVar(&planProgram, "program", "", "path to Program table (default <data_dir>/Program.csv)")
	planCmd.Flags().StringVar(&planOutput, "output", "", "plan output path (default <results_dir>/procurement_plan.<format>)")
	planCmd.Flags().StringVar(&planFormat, "format", "csv", "output format: csv or xlsx")
	planCmd.Flags().StringVar(&planScenario, "scenario", "", "YAML file overriding program parameters for this run")
	planCmd.Flags().BoolVar(&planNoStore, "no-store", false, "skip persisting the run to the history store")
	rootCmd.AddCommand(planCmd)
}

func resolveInputPaths() (bom, suppliers, program string) {
	bom, suppliers, program = planBOM, planSupplier, planProgram
	if bom == "" {
		bom = filepath.Join(cfg.Paths.DataDir, "BOM.csv")
	}
	if suppliers == "" {
		suppliers = filepath.Join(cfg.Paths.DataDir, "Suppliers.csv")
	}
	if program == "" {
		program = filepath.Join(cfg.Paths.DataDir, "Program.csv")
	}
	return bom, suppliers, program
}

func resolveOutputPath() string {
	if planOutput != "" {
		return planOutput
	}
	return filepath.Join(cfg.Paths.ResultsDir, "procurement_plan."+strings.ToLower(planFormat))
}

func writePlan(path string, rows []model.PlanRow) error {
	switch strings.ToLower(planFormat) {
	case "csv":
		return report.WriteCSV(path, rows)
	case "xlsx":
		return report.WriteXLSX(path, rows)
	default:
		return eris.Errorf("plan: unknown output format %q (want csv or xlsx)", planFormat)
	}
}

// logPlan mirrors the run summary to the log: solve status, total
// spend, and each non-zero allocation.
func logPlan(result *pipeline.Result) {
	zap.L().Info("solve complete",
		zap.String("status", result.Status.String()),
		zap.Float64("objective", result.Objective),
		zap.String("total_cost", result.TotalCost.String()),
		zap.Int("allocations", len(result.Rows)),
	)
	for _, r := range result.Rows {
		zap.L().Info(fmt.Sprintf("%s -> %s : %v", r.Component, r.Supplier, r.OrderQty),
			zap.String("unit_cost", r.UnitCost.String()),
			zap.String("cost", r.Cost.String()),
		)
	}
}

// maybeOpenStore opens the configured run store; history is
// best-effort, so failures log and return nil rather than aborting the
// solve.
func maybeOpenStore(ctx context.Context) store.Store {
	if planNoStore {
		return nil
	}
	st, err := openStore(ctx)
	if err != nil {
		zap.L().Warn("open run store", zap.Error(err))
		return nil
	}
	return st
}

func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		st, err := store.NewSQLite(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, err
		}
		return st, nil
	case "postgres":
		st, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, err
		}
		return st, nil
	default:
		return nil, eris.Errorf("store: unknown driver %q (want sqlite or postgres)", cfg.Store.Driver)
	}
}

func maybeCreateRun(ctx context.Context, st store.Store, inputs model.RunInputs) *model.Run {
	if st == nil {
		return nil
	}
	run, err := st.CreateRun(ctx, inputs)
	if err != nil {
		zap.L().Warn("create run record", zap.Error(err))
		return nil
	}
	return run
}

func maybeFailRun(ctx context.Context, st store.Store, run *model.Run, cause error) {
	if st == nil || run == nil {
		return
	}
	if err := st.FailRun(ctx, run.ID, cause.Error()); err != nil {
		zap.L().Warn("record run failure", zap.Error(err))
	}
}
