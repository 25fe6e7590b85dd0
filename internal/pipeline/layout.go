package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"sellsight/internal/config"
)

// Layout maps one period to every artifact path the pipeline reads or
// writes. One path per item per phase: a phase's artifact either exists in
// full or not at all, and its presence is the signal that the phase is done.
type Layout struct {
	Period   string
	workDir  string
	finalDir string
}

// NewLayout builds the artifact layout for a period from the configured
// directories.
func NewLayout(cfg *config.Config, period string) Layout {
	return Layout{
		Period:   period,
		workDir:  filepath.Join(cfg.Paths.WorkDir, period),
		finalDir: cfg.Paths.FinalDir,
	}
}

// TextDir holds raw converted text, one file per item.
func (l Layout) TextDir() string { return filepath.Join(l.workDir, "text") }

// CleanedDir holds boundary-truncated text, one file per item.
func (l Layout) CleanedDir() string { return filepath.Join(l.workDir, "cleaned") }

// SummaryDir holds LLM summaries, one file per item.
func (l Layout) SummaryDir() string { return filepath.Join(l.workDir, "summary") }

func (l Layout) TextPath(itemID string) string {
	return filepath.Join(l.TextDir(), itemID+".md")
}

func (l Layout) CleanedPath(itemID string) string {
	return filepath.Join(l.CleanedDir(), itemID+".md")
}

func (l Layout) SummaryPath(itemID string) string {
	return filepath.Join(l.SummaryDir(), itemID+".md")
}

// FinalPath is the assembled highlights document for the period.
func (l Layout) FinalPath() string {
	return filepath.Join(l.finalDir, fmt.Sprintf("%s_highlights.md", l.Period))
}

// TranslatedPath is the English translation of the final document.
func (l Layout) TranslatedPath() string {
	return filepath.Join(l.finalDir, fmt.Sprintf("%s_highlights_translated.md", l.Period))
}

// EnsureDirs creates the per-period work directories and the final directory.
func (l Layout) EnsureDirs() error {
	for _, dir := range []string{l.TextDir(), l.CleanedDir(), l.SummaryDir(), l.finalDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
