package pipeline

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"sellsight/internal/config"
)

//go:embed summary_prompt.txt
var defaultSummaryPrompt string

// SummaryPrompt returns the summarization system prompt: the configured
// override file when set, the embedded default otherwise.
func SummaryPrompt(cfg *config.Config) (string, error) {
	return loadPrompt(cfg.Pipeline.SummaryPromptPath, defaultSummaryPrompt)
}

func loadPrompt(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt %s: %w", path, err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("prompt %s is empty", path)
	}
	return prompt, nil
}
