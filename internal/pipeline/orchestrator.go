package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"sellsight/internal/fileutil"
	"sellsight/internal/highlight"
	"sellsight/internal/ledger"
	"sellsight/internal/logging"
	"sellsight/internal/services"
	"sellsight/internal/staging"
	"sellsight/internal/textutil"
)

// Converter turns one staged document into plain text.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// Summarizer produces one summary from a system prompt and report text.
type Summarizer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Recorder receives per-item phase outcomes. Recording is best effort: a
// failure is logged by the orchestrator and never fails the item.
type Recorder interface {
	RecordItem(ctx context.Context, rec ledger.ItemRecord) error
}

// Result is one item's outcome. Err is nil on success; Phase names the phase
// that failed otherwise.
type Result struct {
	Item    staging.Item
	Summary string
	Cleaned string
	Phase   string
	Err     error
}

// Options configures an Orchestrator.
type Options struct {
	Layout        Layout
	Workers       int
	SummaryPrompt string
	// SummaryMinChars rejects degenerate summaries at or below this length.
	SummaryMinChars int
	Boundary        textutil.BoundaryFunc
	// RunID tags ledger records; empty disables recording.
	RunID    string
	Recorder Recorder
}

// Orchestrator fans staged items out to a bounded worker pool and drives
// each through convert, clean, and summarize. A phase whose artifact already
// exists on disk is skipped; artifact presence is the only done-signal, so
// re-running a period touches only what is missing.
type Orchestrator struct {
	converter  Converter
	summarizer Summarizer
	logger     *slog.Logger
	opts       Options
}

// NewOrchestrator wires an orchestrator. Workers below 1 run single-threaded;
// a nil boundary uses the disclosure heuristic.
func NewOrchestrator(converter Converter, summarizer Summarizer, logger *slog.Logger, opts Options) *Orchestrator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Boundary == nil {
		opts.Boundary = textutil.DisclosureBoundary
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{converter: converter, summarizer: summarizer, logger: logger, opts: opts}
}

// Run processes every item and returns one Result per item, in completion
// order. Workers are independent: one item's failure never stops another.
func (o *Orchestrator) Run(ctx context.Context, items []staging.Item) []Result {
	if len(items) == 0 {
		return nil
	}

	jobs := make(chan staging.Item)
	resultCh := make(chan Result)

	workers := o.opts.Workers
	if workers > len(items) {
		workers = len(items)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				resultCh <- o.processItem(ctx, item)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, item := range items {
			select {
			case jobs <- item:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]Result, 0, len(items))
	for res := range resultCh {
		results = append(results, res)
	}
	return results
}

func (o *Orchestrator) processItem(ctx context.Context, item staging.Item) Result {
	ctx = services.WithItemID(ctx, item.ID)
	log := logging.WithContext(ctx, o.logger)

	text, skipped, err := o.convert(ctx, item)
	o.record(ctx, item.ID, ledger.PhaseConvert, skipped, err)
	if err != nil {
		log.Error("conversion failed", "error", err)
		return Result{Item: item, Phase: "convert", Err: err}
	}
	if skipped {
		log.Debug("conversion artifact reused")
	}

	cleaned, err := o.clean(item, text)
	o.record(ctx, item.ID, ledger.PhaseClean, false, err)
	if err != nil {
		log.Error("cleaning failed", "error", err)
		return Result{Item: item, Phase: "clean", Err: err}
	}

	summary, skipped, err := o.summarize(ctx, item, cleaned)
	o.record(ctx, item.ID, ledger.PhaseSummarize, skipped, err)
	if err != nil {
		log.Error("summarization failed", "error", err)
		return Result{Item: item, Phase: "summarize", Err: err}
	}
	if skipped {
		log.Debug("summary artifact reused")
	}

	log.Info("item processed")
	return Result{Item: item, Summary: summary, Cleaned: cleaned}
}

// convert returns the raw text artifact, converting the staged document only
// when the artifact is missing. The bool reports whether the artifact was
// reused.
func (o *Orchestrator) convert(ctx context.Context, item staging.Item) (string, bool, error) {
	path := o.opts.Layout.TextPath(item.ID)
	if fileutil.FileExists(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", false, services.Wrap(services.ErrTransient, "convert", "read artifact", "", err)
		}
		return string(data), true, nil
	}

	text, err := o.converter.Convert(ctx, item.Path)
	if err != nil {
		return "", false, err
	}
	if err := fileutil.WriteFileAtomic(path, []byte(text), 0o644); err != nil {
		return "", false, services.Wrap(services.ErrTransient, "convert", "write artifact", "", err)
	}
	return text, false, nil
}

// clean is always recomputed from the converted text so boundary heuristic
// changes take effect without clearing artifacts.
func (o *Orchestrator) clean(item staging.Item, text string) (string, error) {
	cleaned := textutil.TruncateAtBoundary(text, o.opts.Boundary)
	if strings.TrimSpace(cleaned) == "" {
		return "", services.Wrap(services.ErrValidation, "clean", "truncate",
			fmt.Sprintf("no content for %s after cleaning", item.ID), nil)
	}
	if err := fileutil.WriteFileAtomic(o.opts.Layout.CleanedPath(item.ID), []byte(cleaned), 0o644); err != nil {
		return "", services.Wrap(services.ErrTransient, "clean", "write artifact", "", err)
	}
	return cleaned, nil
}

func (o *Orchestrator) summarize(ctx context.Context, item staging.Item, cleaned string) (string, bool, error) {
	path := o.opts.Layout.SummaryPath(item.ID)
	if fileutil.FileExists(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", false, services.Wrap(services.ErrTransient, "summarize", "read artifact", "", err)
		}
		if err := o.validateSummary(string(data)); err != nil {
			return "", false, err
		}
		return string(data), true, nil
	}

	summary, err := o.summarizer.Complete(ctx, o.opts.SummaryPrompt, cleaned)
	if err != nil {
		return "", false, err
	}
	if err := o.validateSummary(summary); err != nil {
		return "", false, err
	}
	if err := fileutil.WriteFileAtomic(path, []byte(summary), 0o644); err != nil {
		return "", false, services.Wrap(services.ErrTransient, "summarize", "write artifact", "", err)
	}
	return summary, false, nil
}

func (o *Orchestrator) validateSummary(summary string) error {
	if len(strings.TrimSpace(summary)) <= o.opts.SummaryMinChars {
		return services.Wrap(services.ErrValidation, "summarize", "validate",
			fmt.Sprintf("summary shorter than %d characters", o.opts.SummaryMinChars+1), nil)
	}
	return nil
}

func (o *Orchestrator) record(ctx context.Context, itemID, phase string, skipped bool, err error) {
	if o.opts.Recorder == nil || o.opts.RunID == "" {
		return
	}
	rec := ledger.ItemRecord{RunID: o.opts.RunID, ItemID: itemID, Phase: phase, Status: ledger.ItemOK}
	switch {
	case err != nil:
		rec.Status = ledger.ItemFailed
		rec.Detail = err.Error()
	case skipped:
		rec.Status = ledger.ItemSkipped
	}
	if recErr := o.opts.Recorder.RecordItem(ctx, rec); recErr != nil {
		o.logger.Warn("ledger record failed", "item_id", itemID, "phase", phase, "error", recErr)
	}
}

// SourcesFromResults converts successful results into assembler inputs.
func SourcesFromResults(results []Result) []highlight.Source {
	sources := make([]highlight.Source, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		sources = append(sources, highlight.Source{ItemID: res.Item.ID, Summary: res.Summary, Cleaned: res.Cleaned})
	}
	return sources
}

// RecoverSources rebuilds assembler inputs from summary artifacts already on
// disk, pairing each with its cleaned text when present. Used by the
// recovery path when no items were staged this run.
func RecoverSources(layout Layout) ([]highlight.Source, error) {
	entries, err := os.ReadDir(layout.SummaryDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read summary dir: %w", err)
	}

	var sources []highlight.Source
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		itemID := strings.TrimSuffix(entry.Name(), ".md")
		summary, err := os.ReadFile(layout.SummaryPath(itemID))
		if err != nil {
			return nil, fmt.Errorf("read summary %s: %w", itemID, err)
		}
		cleaned := ""
		if data, err := os.ReadFile(layout.CleanedPath(itemID)); err == nil {
			cleaned = string(data)
		}
		sources = append(sources, highlight.Source{ItemID: itemID, Summary: string(summary), Cleaned: cleaned})
	}
	return sources, nil
}
