package highlight

import (
	"regexp"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// Normalizer reconciles summary headers against the trusted period anchor.
//
// Summaries sometimes embed irrelevant dates (a cited historical event, a
// price-target horizon); any embedded date farther than WindowDays from the
// reference is rejected and the reference date substituted, so stray dates
// cannot corrupt the document's own dating.
type Normalizer struct {
	// Reference is the pipeline's week anchor, at midnight UTC.
	Reference time.Time
	// WindowDays bounds accepted embedded dates: |date - Reference| must be
	// at most WindowDays (inclusive at exactly WindowDays).
	WindowDays int
}

var headerISOPrefix = regexp.MustCompile(`^\s*(\d{4}-\d{2}-\d{2})\s*,?\s*([^:]+?)\s*:\s*(.+)$`)

// Normalize turns one summary's raw text into a well-formed Entry with a
// canonical "YYYY-MM-DD,<source>: <title>" header. cleanedText (the cleaned
// conversion artifact, may be empty) is the last resort for date extraction.
// Malformed input always degrades to defined fallbacks, never errors.
func (n Normalizer) Normalize(itemID, summary, cleanedText string) Entry {
	rawHeader, bullets := SplitSummary(summary)
	header := foldWidth(strings.TrimSpace(rawHeader))

	entry := Entry{ItemID: itemID, Bullets: bullets}

	// Headers that already lead with an ISO date keep their source/title
	// split verbatim; only the date is validated against the window.
	if m := headerISOPrefix.FindStringSubmatch(header); m != nil {
		date := n.Reference
		if cand, err := time.Parse(isoDate, m[1]); err == nil && n.withinWindow(cand) {
			date = cand
		}
		entry.Date = date
		entry.Source = strings.Trim(strings.TrimSpace(m[2]), ",")
		entry.Title = strings.TrimSpace(m[3])
		entry.Header = formatHeader(date, entry.Source, entry.Title)
		return entry
	}

	date, found := FindDate(header)
	if !found {
		date, found = FindDate(summary)
	}
	if !found && cleanedText != "" {
		date, found = FindDate(cleanedText)
	}
	if !found || !n.withinWindow(date) {
		date = n.Reference
	}

	left := header
	title := ""
	if idx := strings.Index(header, ":"); idx >= 0 {
		left = header[:idx]
		title = strings.TrimSpace(header[idx+1:])
	}
	source := strings.Trim(StripLeadingDate(left), ", ")

	entry.Date = date
	entry.Source = source
	entry.Title = title
	entry.Header = formatHeader(date, source, title)
	return entry
}

func (n Normalizer) withinWindow(date time.Time) bool {
	if n.Reference.IsZero() {
		return true
	}
	days := int(date.Sub(n.Reference).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days <= n.WindowDays
}

func formatHeader(date time.Time, source, title string) string {
	iso := date.Format(isoDate)
	if title == "" {
		if source == "" {
			return iso
		}
		return iso + "," + source
	}
	return iso + "," + source + ": " + title
}
