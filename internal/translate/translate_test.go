package translate_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"sellsight/internal/pipeline"
	"sellsight/internal/services"
	"sellsight/internal/testsupport"
	"sellsight/internal/translate"
)

type fakeCompleter struct {
	calls  atomic.Int64
	output string
	err    error
}

func (f *fakeCompleter) Complete(context.Context, string, string) (string, error) {
	f.calls.Add(1)
	return f.output, f.err
}

func testLayout(t *testing.T) pipeline.Layout {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	layout := pipeline.NewLayout(cfg, "2025-09-12")
	if err := layout.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	return layout
}

func TestRunTranslates(t *testing.T) {
	layout := testLayout(t)
	testsupport.WriteFile(t, layout.FinalPath(), "# Sellside highlights for Week – 2025-09-12\n")

	llm := &fakeCompleter{output: "# Translated document\n"}
	tr := translate.New(llm, "translate", nil)
	if err := tr.Run(context.Background(), layout); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := testsupport.ReadFile(t, layout.TranslatedPath()); got != "# Translated document\n" {
		t.Fatalf("unexpected translation: %q", got)
	}
}

func TestRunSkipsFreshTranslation(t *testing.T) {
	layout := testLayout(t)
	testsupport.WriteFile(t, layout.FinalPath(), "source")
	testsupport.WriteFile(t, layout.TranslatedPath(), "already translated")

	// Make the translation strictly newer than its source.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(layout.TranslatedPath(), future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	llm := &fakeCompleter{output: "fresh translation"}
	tr := translate.New(llm, "translate", nil)
	if err := tr.Run(context.Background(), layout); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if llm.calls.Load() != 0 {
		t.Fatal("expected no LLM call for fresh translation")
	}
	if got := testsupport.ReadFile(t, layout.TranslatedPath()); got != "already translated" {
		t.Fatalf("fresh translation overwritten: %q", got)
	}
}

func TestRunRetranslatesStaleOutput(t *testing.T) {
	layout := testLayout(t)
	testsupport.WriteFile(t, layout.TranslatedPath(), "stale")
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(layout.TranslatedPath(), past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	testsupport.WriteFile(t, layout.FinalPath(), "updated source")

	llm := &fakeCompleter{output: "fresh translation"}
	tr := translate.New(llm, "translate", nil)
	if err := tr.Run(context.Background(), layout); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if llm.calls.Load() != 1 {
		t.Fatalf("expected 1 LLM call, got %d", llm.calls.Load())
	}
	if got := testsupport.ReadFile(t, layout.TranslatedPath()); got != "fresh translation" {
		t.Fatalf("stale translation not replaced: %q", got)
	}
}

func TestRunMissingSource(t *testing.T) {
	layout := testLayout(t)
	tr := translate.New(&fakeCompleter{}, "translate", nil)
	err := tr.Run(context.Background(), layout)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRunFailureLeavesSourceUsable(t *testing.T) {
	layout := testLayout(t)
	testsupport.WriteFile(t, layout.FinalPath(), "source document")

	llm := &fakeCompleter{err: errors.New("llm unavailable")}
	tr := translate.New(llm, "translate", nil)
	if err := tr.Run(context.Background(), layout); err == nil {
		t.Fatal("expected error from failing completer")
	}
	if _, err := os.Stat(layout.TranslatedPath()); !os.IsNotExist(err) {
		t.Fatalf("partial translation written: %v", err)
	}
	if got := testsupport.ReadFile(t, layout.FinalPath()); got != "source document" {
		t.Fatalf("source document changed: %q", got)
	}
}

func TestRunRejectsEmptyTranslation(t *testing.T) {
	layout := testLayout(t)
	testsupport.WriteFile(t, layout.FinalPath(), "source document")

	llm := &fakeCompleter{output: "  \n"}
	tr := translate.New(llm, "translate", nil)
	if err := tr.Run(context.Background(), layout); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
