package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"sellsight/internal/config"
	"sellsight/internal/highlight"
	"sellsight/internal/ledger"
	"sellsight/internal/pipeline"
	"sellsight/internal/services/extract"
	"sellsight/internal/services/llm"
	"sellsight/internal/staging"
)

// resolvePeriod validates the flag value or falls back to the most recent
// Friday. Returns the period string and its date at midnight UTC.
func resolvePeriod(flagValue string) (string, time.Time, error) {
	period := strings.TrimSpace(flagValue)
	if period == "" {
		period = pipeline.MostRecentFriday(time.Now().UTC())
	}
	reference, err := pipeline.ParsePeriod(period)
	if err != nil {
		return "", time.Time{}, err
	}
	return period, reference, nil
}

// acquireRunLock takes the exclusive run lock under the log dir so two runs
// cannot race on the shared inbox. The caller must call the returned release
// function.
func acquireRunLock(cfg *config.Config) (func(), error) {
	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "sellsight.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another sellsight run holds the lock at %s", lock.Path())
	}
	return func() { _ = lock.Unlock() }, nil
}

func buildOrchestrator(cfg *config.Config, layout pipeline.Layout, logger *slog.Logger, summarizer *llm.Client, workers int, runID string, recorder pipeline.Recorder) (*pipeline.Orchestrator, error) {
	converter, err := extract.New(cfg.Converter.Binary, cfg.Converter.TimeoutSeconds)
	if err != nil {
		return nil, err
	}
	prompt, err := pipeline.SummaryPrompt(cfg)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = cfg.Pipeline.Workers
	}
	return pipeline.NewOrchestrator(converter, summarizer, logger, pipeline.Options{
		Layout:          layout,
		Workers:         workers,
		SummaryPrompt:   prompt,
		SummaryMinChars: cfg.Pipeline.SummaryMinChars,
		RunID:           runID,
		Recorder:        recorder,
	}), nil
}

// collectSources gathers assembler inputs. Staged items run through the
// orchestrator; with nothing staged, existing summary artifacts are reused,
// and failing that the content store is re-listed and re-processed (artifact
// short-circuits make that cheap when artifacts survive).
func collectSources(ctx context.Context, orch *pipeline.Orchestrator, layout pipeline.Layout, items []staging.Item, storeDir string, logger *slog.Logger) ([]highlight.Source, int, error) {
	if len(items) > 0 {
		results := orch.Run(ctx, items)
		return pipeline.SourcesFromResults(results), countFailures(results), nil
	}

	sources, err := pipeline.RecoverSources(layout)
	if err != nil {
		return nil, 0, err
	}
	if len(sources) > 0 {
		logger.Info("recovered summaries from work dir", "count", len(sources))
		return sources, 0, nil
	}

	stored, err := staging.ListStore(storeDir)
	if err != nil {
		return nil, 0, err
	}
	if len(stored) == 0 {
		return nil, 0, nil
	}
	logger.Info("re-deriving items from content store", "count", len(stored))
	results := orch.Run(ctx, stored)
	return pipeline.SourcesFromResults(results), countFailures(results), nil
}

func countFailures(results []pipeline.Result) int {
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	return failed
}

func newAssembler(cfg *config.Config, period string, reference time.Time) highlight.Assembler {
	return highlight.Assembler{
		Period:   period,
		LinkBase: cfg.Pipeline.LinkBaseURL,
		Normalizer: highlight.Normalizer{
			Reference:  reference,
			WindowDays: cfg.Pipeline.DateWindowDays,
		},
	}
}

// openLedger opens the run ledger, degrading to nil on failure: history is
// worth a warning, never a failed run.
func openLedger(cfg *config.Config, logger *slog.Logger) *ledger.Store {
	store, err := ledger.Open(cfg)
	if err != nil {
		logger.Warn("ledger unavailable", "error", err)
		return nil
	}
	return store
}

func finishRun(ctx context.Context, store *ledger.Store, logger *slog.Logger, runID, status string, total, failed int, detail string) {
	if store == nil || runID == "" {
		return
	}
	if err := store.FinishRun(ctx, runID, status, total, failed, detail); err != nil {
		logger.Warn("ledger finish failed", "error", err)
	}
}
