package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"sellsight/internal/ledger"
)

func newStatusCommand(cmdCtx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "status [run-id]",
		Short: "Show recent pipeline runs from the ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := ledger.Open(cfg)
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			if len(args) == 1 {
				records, err := store.ItemsForRun(ctx, args[0])
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintln(out, "No item records for run", args[0])
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					rows = append(rows, []string{rec.ItemID, rec.Phase, rec.Status, rec.Detail})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Item", "Phase", "Status", "Detail"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			}

			runs, err := store.RecentRuns(ctx, limitFlag)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.Period,
					run.Command,
					run.Status,
					run.StartedAt.Local().Format(time.DateTime),
					formatDuration(run),
					strconv.Itoa(run.ItemsTotal),
					strconv.Itoa(run.ItemsFailed),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Period", "Command", "Status", "Started", "Duration", "Items", "Failed"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 10, "Maximum number of runs to show")
	return cmd
}

func formatDuration(run ledger.Run) string {
	if run.FinishedAt.IsZero() {
		return "-"
	}
	return run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
}
