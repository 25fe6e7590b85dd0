package highlight

import (
	"reflect"
	"testing"
	"time"
)

func testNormalizer() Normalizer {
	return Normalizer{
		Reference:  time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC),
		WindowDays: 14,
	}
}

func TestNormalizeWellFormedHeader(t *testing.T) {
	n := testNormalizer()
	entry := n.Normalize("abc123", "**2025-09-10,BigBank: Title**\n- point one\n- point two", "")
	if entry.Header != "2025-09-10,BigBank: Title" {
		t.Fatalf("unexpected header: %q", entry.Header)
	}
	if entry.Source != "BigBank" || entry.Title != "Title" {
		t.Fatalf("unexpected source/title: %q %q", entry.Source, entry.Title)
	}
	if want := []string{"- point one", "- point two"}; !reflect.DeepEqual(entry.Bullets, want) {
		t.Fatalf("unexpected bullets: %v", entry.Bullets)
	}
}

func TestNormalizeWindowBoundary(t *testing.T) {
	n := testNormalizer()

	// Exactly WindowDays away is accepted.
	entry := n.Normalize("a", "2025-08-29, BigBank: Old note", "")
	if entry.Header != "2025-08-29,BigBank: Old note" {
		t.Fatalf("date at window edge rejected: %q", entry.Header)
	}

	// One day past the window falls back to the reference date.
	entry = n.Normalize("a", "2025-08-28, BigBank: Stale note", "")
	if entry.Header != "2025-09-12,BigBank: Stale note" {
		t.Fatalf("out-of-window date not replaced: %q", entry.Header)
	}

	// The window is symmetric.
	entry = n.Normalize("a", "2025-09-27, BigBank: Future note", "")
	if entry.Header != "2025-09-12,BigBank: Future note" {
		t.Fatalf("future out-of-window date not replaced: %q", entry.Header)
	}
}

func TestNormalizeFullWidthPunctuation(t *testing.T) {
	n := testNormalizer()
	entry := n.Normalize("a", "2025-09-10，大银行：评级上调", "")
	if entry.Header != "2025-09-10,大银行: 评级上调" {
		t.Fatalf("unexpected header: %q", entry.Header)
	}
	if entry.Source != "大银行" || entry.Title != "评级上调" {
		t.Fatalf("unexpected source/title: %q %q", entry.Source, entry.Title)
	}
}

func TestNormalizeHeaderWithEmbeddedDate(t *testing.T) {
	n := testNormalizer()
	entry := n.Normalize("a", "BigBank note of 10 September 2025: Upgrade", "")
	if entry.Date.Format(isoDate) != "2025-09-10" {
		t.Fatalf("embedded date not used: %s", entry.Date.Format(isoDate))
	}
	if entry.Title != "Upgrade" {
		t.Fatalf("unexpected title: %q", entry.Title)
	}
}

func TestNormalizeDateFallbackChain(t *testing.T) {
	n := testNormalizer()

	// Header has no date; the summary body supplies one.
	entry := n.Normalize("a", "BigBank: Upgrade\n- published 2025年9月10日", "")
	if entry.Date.Format(isoDate) != "2025-09-10" {
		t.Fatalf("summary date not used: %s", entry.Date.Format(isoDate))
	}

	// Neither header nor summary; the cleaned text supplies one.
	entry = n.Normalize("a", "BigBank: Upgrade", "Research note dated 2025-09-11.")
	if entry.Date.Format(isoDate) != "2025-09-11" {
		t.Fatalf("cleaned-text date not used: %s", entry.Date.Format(isoDate))
	}

	// No date anywhere; the reference anchors the entry.
	entry = n.Normalize("a", "BigBank: Upgrade", "no dates here")
	if entry.Date.Format(isoDate) != "2025-09-12" {
		t.Fatalf("reference date not used: %s", entry.Date.Format(isoDate))
	}
}

func TestNormalizeStripsLeadingDateFromSource(t *testing.T) {
	n := testNormalizer()
	entry := n.Normalize("a", "10 September 2025, BigBank: Upgrade", "")
	if entry.Source != "BigBank" {
		t.Fatalf("leading date not stripped from source: %q", entry.Source)
	}
	if entry.Header != "2025-09-10,BigBank: Upgrade" {
		t.Fatalf("unexpected header: %q", entry.Header)
	}
}

func TestNormalizeMalformedInput(t *testing.T) {
	n := testNormalizer()

	entry := n.Normalize("a", "", "")
	if entry.Header != "2025-09-12" {
		t.Fatalf("empty summary: unexpected header %q", entry.Header)
	}
	if len(entry.Bullets) != 0 {
		t.Fatalf("empty summary: unexpected bullets %v", entry.Bullets)
	}

	// No colon: the whole line is treated as the source, title stays empty.
	entry = n.Normalize("a", "BigBank weekly wrap", "")
	if entry.Header != "2025-09-12,BigBank weekly wrap" {
		t.Fatalf("colonless header: %q", entry.Header)
	}
	if entry.Title != "" {
		t.Fatalf("colonless header produced title %q", entry.Title)
	}
}
