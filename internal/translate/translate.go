package translate

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"sellsight/internal/config"
	"sellsight/internal/fileutil"
	"sellsight/internal/logging"
	"sellsight/internal/pipeline"
	"sellsight/internal/services"
)

//go:embed translation_prompt.txt
var defaultPrompt string

// Prompt returns the translation system prompt: the configured override file
// when set, the embedded default otherwise.
func Prompt(cfg *config.Config) (string, error) {
	if cfg.Pipeline.TranslationPromptPath == "" {
		return defaultPrompt, nil
	}
	data, err := os.ReadFile(cfg.Pipeline.TranslationPromptPath)
	if err != nil {
		return "", fmt.Errorf("read prompt %s: %w", cfg.Pipeline.TranslationPromptPath, err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("prompt %s is empty", cfg.Pipeline.TranslationPromptPath)
	}
	return prompt, nil
}

// Completer produces one translation from a system prompt and document text.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Translator writes the English rendition of an assembled highlights
// document next to it in the final directory.
type Translator struct {
	llm    Completer
	prompt string
	logger *slog.Logger
}

// New wires a translator.
func New(llm Completer, prompt string, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Translator{llm: llm, prompt: prompt, logger: logger}
}

// Run translates the period's final document. The pass is skipped when the
// translated file already exists and is at least as new as its source, so
// re-running after an assembly that changed nothing costs no LLM call.
func (t *Translator) Run(ctx context.Context, layout pipeline.Layout) error {
	srcPath := layout.FinalPath()
	dstPath := layout.TranslatedPath()

	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "translate", "stat source",
				fmt.Sprintf("no document for period %s", layout.Period), nil)
		}
		return services.Wrap(services.ErrTransient, "translate", "stat source", "", err)
	}

	if dstInfo, err := os.Stat(dstPath); err == nil && !dstInfo.ModTime().Before(srcInfo.ModTime()) {
		t.logger.Info("translation up to date", logging.FieldPeriod, layout.Period)
		return nil
	}

	document, err := os.ReadFile(srcPath)
	if err != nil {
		return services.Wrap(services.ErrTransient, "translate", "read source", "", err)
	}
	if strings.TrimSpace(string(document)) == "" {
		return services.Wrap(services.ErrValidation, "translate", "read source", "document is empty", nil)
	}

	translated, err := t.llm.Complete(ctx, t.prompt, string(document))
	if err != nil {
		return err
	}
	if strings.TrimSpace(translated) == "" {
		return services.Wrap(services.ErrValidation, "translate", "complete", "empty translation", nil)
	}

	if err := fileutil.WriteFileAtomic(dstPath, []byte(translated), 0o644); err != nil {
		return services.Wrap(services.ErrTransient, "translate", "write", "", err)
	}
	t.logger.Info("translation written", logging.FieldPeriod, layout.Period, "path", dstPath)
	return nil
}
