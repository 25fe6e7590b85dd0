package staging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sellsight/internal/logging"
)

func TestItemID(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"2026-08-24-BigBank-Autos-abc123.pdf", "abc123"},
		{"2026-08-24-abc123.PDF", "abc123"},
		{"report.pdf", "report"},
		{"noextension", "noextension"},
		{"/inbox/2026-08-24-x-y-z9.docx", "z9"},
	}
	for _, tc := range cases {
		if got := ItemID(tc.name); got != tc.want {
			t.Errorf("ItemID(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStageMovesFilesIntoStore(t *testing.T) {
	inbox := t.TempDir()
	store := t.TempDir()

	writeFile(t, filepath.Join(inbox, "2026-08-24-BigBank-abc1.pdf"), "report one")
	writeFile(t, filepath.Join(inbox, "2026-08-25-OtherBank-abc2.pdf"), "report two")

	stager := NewStager(store, logging.NewNop())
	raw, err := ListInbox(inbox)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 2 {
		t.Fatalf("expected 2 raw files, got %d", len(raw))
	}

	staged := stager.Stage(context.Background(), raw)
	if len(staged) != 2 {
		t.Fatalf("expected 2 staged items, got %d", len(staged))
	}

	for _, item := range staged {
		if _, err := os.Stat(item.Path); err != nil {
			t.Fatalf("staged file missing: %v", err)
		}
	}
	leftovers, err := os.ReadDir(inbox)
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("originals not removed: %d entries remain", len(leftovers))
	}
}

func TestListInboxOrdersByDatePrefixDesc(t *testing.T) {
	inbox := t.TempDir()
	writeFile(t, filepath.Join(inbox, "2026-08-21-a-one.pdf"), "x")
	writeFile(t, filepath.Join(inbox, "2026-08-26-b-two.pdf"), "x")
	writeFile(t, filepath.Join(inbox, ".DS_Store"), "junk")

	raw, err := ListInbox(inbox)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 2 {
		t.Fatalf("expected hidden files skipped, got %d entries", len(raw))
	}
	if filepath.Base(raw[0]) != "2026-08-26-b-two.pdf" {
		t.Fatalf("expected newest first, got %v", raw)
	}
}

func TestListInboxMissingDirectory(t *testing.T) {
	raw, err := ListInbox(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing inbox should not error: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("expected empty result, got %v", raw)
	}
}

func TestStageContinuesAfterItemFailure(t *testing.T) {
	inbox := t.TempDir()
	store := t.TempDir()

	good := filepath.Join(inbox, "2026-08-24-x-good1.pdf")
	writeFile(t, good, "good")
	missing := filepath.Join(inbox, "2026-08-25-x-gone1.pdf")

	stager := NewStager(store, logging.NewNop())
	staged := stager.Stage(context.Background(), []string{missing, good})
	if len(staged) != 1 {
		t.Fatalf("expected 1 staged item, got %d", len(staged))
	}
	if staged[0].ID != "good1" {
		t.Fatalf("unexpected staged item: %+v", staged[0])
	}
}

func TestStageCollisionOverwrites(t *testing.T) {
	inbox := t.TempDir()
	store := t.TempDir()
	stager := NewStager(store, logging.NewNop())

	first := filepath.Join(inbox, "2026-08-24-a-dup1.pdf")
	writeFile(t, first, "first")
	stager.Stage(context.Background(), []string{first})

	second := filepath.Join(inbox, "2026-08-25-b-dup1.pdf")
	writeFile(t, second, "second")
	stager.Stage(context.Background(), []string{second})

	data, err := os.ReadFile(filepath.Join(store, "dup1.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Fatalf("expected newer content after collision, got %q", data)
	}
}

func TestCleanInboxRemovesJunkThenDirectory(t *testing.T) {
	parent := t.TempDir()
	inbox := filepath.Join(parent, "2026-08-28")
	if err := os.Mkdir(inbox, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(inbox, ".DS_Store"), "junk")

	stager := NewStager(t.TempDir(), logging.NewNop())
	stager.CleanInbox(inbox)

	if _, err := os.Stat(inbox); !os.IsNotExist(err) {
		t.Fatalf("expected inbox removed, stat err = %v", err)
	}
}

func TestCleanInboxLeavesSubfoldersAlone(t *testing.T) {
	parent := t.TempDir()
	inbox := filepath.Join(parent, "2026-08-28")
	if err := os.MkdirAll(filepath.Join(inbox, "keep"), 0o755); err != nil {
		t.Fatal(err)
	}

	stager := NewStager(t.TempDir(), logging.NewNop())
	stager.CleanInbox(inbox)

	if _, err := os.Stat(filepath.Join(inbox, "keep")); err != nil {
		t.Fatalf("expected subfolder untouched: %v", err)
	}
}

func TestListStore(t *testing.T) {
	store := t.TempDir()
	writeFile(t, filepath.Join(store, "bbb2.pdf"), "x")
	writeFile(t, filepath.Join(store, "aaa1.pdf"), "x")

	items, err := ListStore(store)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != "aaa1" || items[1].ID != "bbb2" {
		t.Fatalf("unexpected store listing: %+v", items)
	}
}
