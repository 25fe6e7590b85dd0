package highlight

import (
	"strings"
	"testing"
)

func testAssembler() Assembler {
	return Assembler{
		Period:     "2025-09-12",
		LinkBase:   "https://auto.bda-news.com",
		Normalizer: testNormalizer(),
	}
}

func TestBuildDocument(t *testing.T) {
	a := testAssembler()
	doc, ok := a.Build([]Source{
		{ItemID: "aaa111", Summary: "**2025-09-10,BigBank: Title**\n- point one\n- point two"},
	})
	if !ok {
		t.Fatal("expected a document")
	}
	want := strings.Join([]string{
		"# Sellside highlights for Week – 2025-09-12",
		"",
		"",
		"**2025-09-10,BigBank: Title**",
		"",
		"- point one",
		"- point two",
		"",
		"[Report Link](https://auto.bda-news.com/2025-09-12/aaa111.pdf)",
		"",
	}, "\n")
	if doc != want {
		t.Fatalf("unexpected document:\n%s", doc)
	}
}

func TestBuildOrderIndependentOfArrival(t *testing.T) {
	a := testAssembler()
	sources := []Source{
		{ItemID: "ccc", Summary: "2025-09-09,Alpha: Early note"},
		{ItemID: "bbb", Summary: "2025-09-11,Beta: Later note"},
		{ItemID: "aaa", Summary: "2025-09-11,Alpha: Same-day note"},
	}

	first, ok := a.Build(sources)
	if !ok {
		t.Fatal("expected a document")
	}

	// Workers deliver results in completion order; reversing the input must
	// not change the rendered document.
	reversed := []Source{sources[2], sources[1], sources[0]}
	second, ok := a.Build(reversed)
	if !ok {
		t.Fatal("expected a document")
	}
	if first != second {
		t.Fatalf("document depends on arrival order:\n%s\n---\n%s", first, second)
	}

	// Date descending, then source, then item id.
	wantOrder := []string{"aaa.pdf", "bbb.pdf", "ccc.pdf"}
	pos := -1
	for _, name := range wantOrder {
		idx := strings.Index(first, name)
		if idx < 0 {
			t.Fatalf("missing link for %s:\n%s", name, first)
		}
		if idx < pos {
			t.Fatalf("entry %s out of order:\n%s", name, first)
		}
		pos = idx
	}
}

func TestBuildEmptyInput(t *testing.T) {
	a := testAssembler()
	if doc, ok := a.Build(nil); ok || doc != "" {
		t.Fatalf("expected no document, got %q", doc)
	}
}

func TestBuildBulletlessEntry(t *testing.T) {
	a := testAssembler()
	doc, ok := a.Build([]Source{{ItemID: "x1", Summary: "BigBank: Headline only"}})
	if !ok {
		t.Fatal("expected a document")
	}
	if !strings.Contains(doc, "**2025-09-12,BigBank: Headline only**") {
		t.Fatalf("missing header:\n%s", doc)
	}
	if !strings.Contains(doc, "[Report Link](https://auto.bda-news.com/2025-09-12/x1.pdf)") {
		t.Fatalf("missing link:\n%s", doc)
	}
}
