package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sellsight/internal/preflight"
)

func newPreflightCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check LLM, converter, and disk readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := cmdCtx.summaryClient()
			if err != nil {
				return err
			}

			results := preflight.All(cmd.Context(), client, cfg.Converter.Binary, cfg.Paths.StoreDir)

			rows := make([][]string, 0, len(results))
			for _, res := range results {
				status := "ok"
				if !res.Passed {
					status = "FAIL"
				}
				rows = append(rows, []string{res.Name, status, res.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Check", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if !preflight.Passed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
