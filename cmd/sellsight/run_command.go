package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sellsight/internal/fileutil"
	"sellsight/internal/ledger"
	"sellsight/internal/logging"
	"sellsight/internal/pipeline"
	"sellsight/internal/preflight"
	"sellsight/internal/services"
	"sellsight/internal/staging"
	"sellsight/internal/translate"
)

func newRunCommand(cmdCtx *commandContext) *cobra.Command {
	var periodFlag string
	var workersFlag int
	var skipTranslation bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Stage new reports and build the weekly highlights document",
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

			release, err := acquireRunLock(cfg)
			if err != nil {
				return err
			}
			defer release()

			summarizer, err := cmdCtx.summaryClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			for _, res := range preflight.All(ctx, summarizer, cfg.Converter.Binary, cfg.Paths.StoreDir) {
				if !res.Passed {
					logger.Warn("preflight check failed", "check", res.Name, "detail", res.Detail)
				}
			}

			store := openLedger(cfg, logger)
			defer store.Close()

			runID := ""
			var recorder pipeline.Recorder
			if store != nil {
				if id, err := store.BeginRun(ctx, period, "run"); err != nil {
					logger.Warn("ledger begin failed", "error", err)
				} else {
					runID = id
					recorder = store
					ctx = services.WithRunID(ctx, runID)
				}
			}

			layout := pipeline.NewLayout(cfg, period)
			if err := layout.EnsureDirs(); err != nil {
				finishRun(ctx, store, logger, runID, ledger.RunFailed, 0, 0, err.Error())
				return err
			}

			rawPaths, err := staging.ListInbox(cfg.Paths.InboxDir)
			if err != nil {
				finishRun(ctx, store, logger, runID, ledger.RunFailed, 0, 0, err.Error())
				return err
			}
			stager := staging.NewStager(cfg.Paths.StoreDir, logger)
			items := stager.Stage(ctx, rawPaths)
			stager.CleanInbox(cfg.Paths.InboxDir)
			logger.Info("staging complete", "inbox_files", len(rawPaths), "staged", len(items))

			orch, err := buildOrchestrator(cfg, layout, logger, summarizer, workersFlag, runID, recorder)
			if err != nil {
				finishRun(ctx, store, logger, runID, ledger.RunFailed, 0, 0, err.Error())
				return err
			}

			sources, failed, err := collectSources(ctx, orch, layout, items, cfg.Paths.StoreDir, logger)
			if err != nil {
				finishRun(ctx, store, logger, runID, ledger.RunFailed, 0, failed, err.Error())
				return err
			}

			assembler := newAssembler(cfg, period, reference)
			document, ok := assembler.Build(sources)
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
			logger.Info("document assembled", "entries", len(sources), "path", layout.FinalPath())

			if !skipTranslation && cfg.Translation.Enabled {
				prompt, err := translate.Prompt(cfg)
				if err != nil {
					finishRun(ctx, store, logger, runID, ledger.RunFailed, len(sources), failed, err.Error())
					return err
				}
				translator, err := cmdCtx.translationClient()
				if err != nil {
					finishRun(ctx, store, logger, runID, ledger.RunFailed, len(sources), failed, err.Error())
					return err
				}
				if err := translate.New(translator, prompt, logger).Run(ctx, layout); err != nil {
					// The untranslated document stays valid.
					logger.Error("translation failed", "error", err)
				}
			}

			finishRun(ctx, store, logger, runID, ledger.RunCompleted, len(sources)+failed, failed, "")

			fmt.Fprintf(cmd.OutOrStdout(), "Assembled %d entries into %s (%d failed)\n", len(sources), layout.FinalPath(), failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&periodFlag, "period", "", "Period anchor date (YYYY-MM-DD, defaults to the most recent Friday)")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Worker pool size override")
	cmd.Flags().BoolVar(&skipTranslation, "skip-translation", false, "Skip the English translation pass")
	return cmd
}
