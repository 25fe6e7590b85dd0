package highlight

import (
	"reflect"
	"testing"
)

func TestSplitSummaryBoldHeader(t *testing.T) {
	header, bullets := SplitSummary("**2025-09-10,BigBank: Title**\n- point one\n- point two")
	if header != "2025-09-10,BigBank: Title" {
		t.Fatalf("unexpected header: %q", header)
	}
	want := []string{"- point one", "- point two"}
	if !reflect.DeepEqual(bullets, want) {
		t.Fatalf("unexpected bullets: %v", bullets)
	}
}

func TestSplitSummaryLeadingBulletHeader(t *testing.T) {
	header, bullets := SplitSummary("- 2025-09-10,BigBank: Title\n- point")
	if header != "2025-09-10,BigBank: Title" {
		t.Fatalf("unexpected header: %q", header)
	}
	if len(bullets) != 1 || bullets[0] != "- point" {
		t.Fatalf("unexpected bullets: %v", bullets)
	}
}

func TestSplitSummaryPlainHeader(t *testing.T) {
	header, _ := SplitSummary("\n\nJust a title line\n- point")
	if header != "Just a title line" {
		t.Fatalf("unexpected header: %q", header)
	}
}

func TestSplitSummaryDemotesUnmarkedLines(t *testing.T) {
	_, bullets := SplitSummary("Header\n* star bullet\nplain **bold** remark\n## section heading\n")
	want := []string{"- star bullet", "- plain bold remark"}
	if !reflect.DeepEqual(bullets, want) {
		t.Fatalf("unexpected bullets: %v", bullets)
	}
}

func TestSplitSummarySkipsBlankLines(t *testing.T) {
	_, bullets := SplitSummary("Header\n\n- one\n\n\n- two\n")
	if len(bullets) != 2 {
		t.Fatalf("expected 2 bullets, got %v", bullets)
	}
}

func TestSplitSummaryEmptyInput(t *testing.T) {
	header, bullets := SplitSummary("")
	if header != "" || bullets != nil {
		t.Fatalf("expected empty result, got %q %v", header, bullets)
	}
	header, bullets = SplitSummary("\n  \n\t\n")
	if header != "" || bullets != nil {
		t.Fatalf("expected empty result for blank input, got %q %v", header, bullets)
	}
}
