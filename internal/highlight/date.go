package highlight

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"
)

// Embedded date forms recognized inside summaries, in match priority order:
// ISO numeric, Chinese 年月日, "DD Month YYYY", "Month DD, YYYY".
var (
	isoDatePattern = regexp.MustCompile(`(20\d{2})[-/](0?[1-9]|1[0-2])[-/](0?[1-9]|[12]\d|3[01])`)
	cjkDatePattern = regexp.MustCompile(`(20\d{2})\s*年\s*(0?[1-9]|1[0-2])\s*月\s*(0?[1-9]|[12]\d|3[01])\s*日?`)
	dmyDatePattern = regexp.MustCompile(`\b(0?[1-9]|[12]\d|3[01])\s+([A-Za-z]{3,9})\.?\s+(20\d{2})\b`)
	mdyDatePattern = regexp.MustCompile(`\b([A-Za-z]{3,9})\.?\s+(0?[1-9]|[12]\d|3[01]),?\s+(20\d{2})\b`)
)

var leadingDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(20\d{2})[-/](0?[1-9]|1[0-2])[-/](0?[1-9]|[12]\d|3[01])\s*[,，]?\s*`),
	regexp.MustCompile(`^\s*(0?[1-9]|[12]\d|3[01])\s+[A-Za-z]{3,9}\.?\s+(20\d{2})\s*[,，]?\s*`),
	regexp.MustCompile(`^\s*[A-Za-z]{3,9}\.?\s+(0?[1-9]|[12]\d|3[01]),?\s+(20\d{2})\s*[,，]?\s*`),
	regexp.MustCompile(`^\s*(20\d{2})\s*年\s*(0?[1-9]|1[0-2])\s*月\s*(0?[1-9]|[12]\d|3[01])\s*日?\s*[,，]?\s*`),
}

var monthsByName = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// foldWidth maps full-width punctuation (：，０-９) to its narrow form so the
// date and colon matching below only deals with ASCII. CJK ideographs have no
// narrow variant and pass through unchanged.
func foldWidth(s string) string {
	return width.Narrow.String(s)
}

// FindDate returns the first recognizable date embedded in text.
func FindDate(text string) (time.Time, bool) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, false
	}
	text = foldWidth(text)

	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		if d, ok := makeDate(m[1], monthNumber(m[2]), m[3]); ok {
			return d, true
		}
	}
	if m := cjkDatePattern.FindStringSubmatch(text); m != nil {
		if d, ok := makeDate(m[1], monthNumber(m[2]), m[3]); ok {
			return d, true
		}
	}
	if m := dmyDatePattern.FindStringSubmatch(text); m != nil {
		if month, ok := monthsByName[strings.ToLower(m[2])]; ok {
			if d, ok := makeDate(m[3], month, m[1]); ok {
				return d, true
			}
		}
	}
	if m := mdyDatePattern.FindStringSubmatch(text); m != nil {
		if month, ok := monthsByName[strings.ToLower(m[1])]; ok {
			if d, ok := makeDate(m[3], month, m[2]); ok {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// StripLeadingDate removes any leading date expression and trailing
// punctuation from s.
func StripLeadingDate(s string) string {
	out := foldWidth(s)
	for _, pattern := range leadingDatePatterns {
		out = pattern.ReplaceAllString(out, "")
	}
	return strings.TrimSpace(out)
}

func monthNumber(s string) time.Month {
	n, _ := strconv.Atoi(s)
	return time.Month(n)
}

func makeDate(year string, month time.Month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	d, _ := strconv.Atoi(day)
	date := time.Date(y, month, d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (Feb 30 -> Mar 2); a
	// mismatch means the matched text was not a real calendar date.
	if date.Year() != y || date.Month() != month || date.Day() != d {
		return time.Time{}, false
	}
	return date, true
}
