package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sellsight/internal/logging"
	"sellsight/internal/pipeline"
	"sellsight/internal/translate"
)

func newTranslateCommand(cmdCtx *commandContext) *cobra.Command {
	var periodFlag string

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate the assembled highlights document into English",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.logger()
			if err != nil {
				return err
			}

			period, _, err := resolvePeriod(periodFlag)
			if err != nil {
				return err
			}
			logger = logger.With(logging.FieldPeriod, period)

			prompt, err := translate.Prompt(cfg)
			if err != nil {
				return err
			}
			client, err := cmdCtx.translationClient()
			if err != nil {
				return err
			}

			layout := pipeline.NewLayout(cfg, period)
			if err := translate.New(client, prompt, logger).Run(cmd.Context(), layout); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Translation written to %s\n", layout.TranslatedPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&periodFlag, "period", "", "Period anchor date (YYYY-MM-DD, defaults to the most recent Friday)")
	return cmd
}
