package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cubeworks/procure-cli/internal/model"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect solve-run history",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "runs: open store")
		}
		defer st.Close() //nolint:errcheck

		runs, err := st.ListRuns(ctx, runsLimit)
		if err != nil {
			return eris.Wrap(err, "runs: list")
		}

		// Omit plan rows in the listing; `runs show` has them.
		type listing struct {
			ID          string          `json:"id"`
			Status      model.RunStatus `json:"status"`
			SolveStatus string          `json:"solve_status,omitempty"`
			TotalCost   string          `json:"total_cost,omitempty"`
			Error       string          `json:"error,omitempty"`
			CreatedAt   string          `json:"created_at"`
		}
		out := make([]listing, 0, len(runs))
		for _, r := range runs {
			l := listing{
				ID:        r.ID,
				Status:    r.Status,
				Error:     r.Error,
				CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
			}
			if r.Result != nil {
				l.SolveStatus = r.Result.SolveStatus
				l.TotalCost = r.Result.TotalCost
			}
			out = append(out, l)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run with its full procurement plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "runs: open store")
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs: get")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func init() {
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "max runs to list")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}
