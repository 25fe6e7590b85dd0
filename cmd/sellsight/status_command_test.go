package main

import (
	"context"
	"testing"

	"sellsight/internal/ledger"
	"sellsight/internal/testsupport"
)

func TestStatusEmptyLedger(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "No runs recorded yet")
}

func TestStatusListsRuns(t *testing.T) {
	env := setupCLITestEnv(t)

	store := testsupport.MustOpenLedger(t, env.cfg)
	ctx := context.Background()
	runID, err := store.BeginRun(ctx, "2025-09-12", "run")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	rec := ledger.ItemRecord{RunID: runID, ItemID: "abc", Phase: ledger.PhaseConvert, Status: ledger.ItemOK}
	if err := store.RecordItem(ctx, rec); err != nil {
		t.Fatalf("RecordItem: %v", err)
	}
	if err := store.FinishRun(ctx, runID, ledger.RunCompleted, 1, 0, ""); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	out, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "2025-09-12")
	requireContains(t, out, "completed")

	out, err = runCLI(t, []string{"status", runID}, env.configPath)
	if err != nil {
		t.Fatalf("status run: %v", err)
	}
	requireContains(t, out, "abc")
	requireContains(t, out, "convert")
}
