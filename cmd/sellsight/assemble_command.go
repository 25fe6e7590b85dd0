package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sellsight/internal/fileutil"
	"sellsight/internal/ledger"
	"sellsight/internal/logging"
	"sellsight/internal/pipeline"
)

func newAssembleCommand(cmdCtx *commandContext) *cobra.Command {
	var periodFlag string

	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Rebuild the highlights document from existing artifacts",
		Long: "Rebuild the final document without touching the inbox: existing summaries " +
			"are reused, and when none survive the content store is re-processed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.logger()
			if err != nil {
				return err
			}

			period, reference, err := resolvePeriod(periodFlag)
			if err != nil {
				return err
			}
			logger = logger.With(logging.FieldPeriod, period)

			summarizer, err := cmdCtx.summaryClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store := openLedger(cfg, logger)
			defer store.Close()

			runID := ""
			var recorder pipeline.Recorder
			if store != nil {
				if id, err := store.BeginRun(ctx, period, "assemble"); err != nil {
					logger.Warn("ledger begin failed", "error", err)
				} else {
					runID = id
					recorder = store
				}
			}

			layout := pipeline.NewLayout(cfg, period)
			if err := layout.EnsureDirs(); err != nil {
				finishRun(ctx, store, logger, runID, ledger.RunFailed, 0, 0, err.Error())
				return err
			}

			orch, err := buildOrchestrator(cfg, layout, logger, summarizer, 0, runID, recorder)
			if err != nil {
				finishRun(ctx, store, logger, runID, ledger.RunFailed, 0, 0, err.Error())
				return err
			}

			sources, failed, err := collectSources(ctx, orch, layout, nil, cfg.Paths.StoreDir, logger)
			if err != nil {
				finishRun(ctx, store, logger, runID, ledger.RunFailed, 0, failed, err.Error())
				return err
			}

			document, ok := newAssembler(cfg, period, reference).Build(sources)
			if !ok {
				logger.Info("nothing to assemble")
				finishRun(ctx, store, logger, runID, ledger.RunCompleted, 0, failed, "nothing to assemble")
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to assemble for period", period)
				return nil
			}
			if err := fileutil.WriteFileAtomic(layout.FinalPath(), []byte(document), 0o644); err != nil {
				finishRun(ctx, store, logger, runID, ledger.RunFailed, len(sources), failed, err.Error())
				return fmt.Errorf("write document: %w", err)
			}

			finishRun(ctx, store, logger, runID, ledger.RunCompleted, len(sources)+failed, failed, "")
			fmt.Fprintf(cmd.OutOrStdout(), "Assembled %d entries into %s\n", len(sources), layout.FinalPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&periodFlag, "period", "", "Period anchor date (YYYY-MM-DD, defaults to the most recent Friday)")
	return cmd
}
