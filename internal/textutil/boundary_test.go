package textutil

import (
	"strings"
	"testing"
)

func TestDisclosureBoundary(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"Required Disclosures", true},
		{"DISCLOSURES", true},
		{"See required disclosures at the end of this report", false},
		{"免责声明", true},
		{"请阅读最后一页免责声明", false},
		{"Price targets and ratings", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := DisclosureBoundary(tc.line); got != tc.want {
			t.Errorf("DisclosureBoundary(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestTruncateAtBoundaryKeepsBoundaryLine(t *testing.T) {
	text := strings.Join([]string{
		"Title line",
		"Body one",
		"Required Disclosures",
		"Analyst certification boilerplate",
		"More legal text",
	}, "\n")

	got := TruncateAtBoundary(text, DisclosureBoundary)
	want := strings.Join([]string{
		"Title line",
		"Body one",
		"Required Disclosures",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected truncation:\n%q\nwant:\n%q", got, want)
	}
}

func TestTruncateAtBoundaryNoMatch(t *testing.T) {
	text := "line one\nline two"
	if got := TruncateAtBoundary(text, DisclosureBoundary); got != text {
		t.Fatalf("text without boundary should pass through, got %q", got)
	}
}

func TestTruncateAtBoundaryNilBoundary(t *testing.T) {
	text := "anything\nDisclosures"
	if got := TruncateAtBoundary(text, nil); got != text {
		t.Fatalf("nil boundary should pass through, got %q", got)
	}
}

func TestTruncateAtBoundaryFirstMatchWins(t *testing.T) {
	text := strings.Join([]string{
		"intro",
		"Disclosures",
		"middle",
		"Disclosures again",
	}, "\n")
	got := TruncateAtBoundary(text, DisclosureBoundary)
	if strings.Contains(got, "middle") {
		t.Fatalf("expected truncation at first boundary, got %q", got)
	}
}
