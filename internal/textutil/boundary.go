package textutil

import "strings"

// BoundaryFunc reports whether a line marks the start of trailing boilerplate.
// The first matching line wins; it is kept and everything after it dropped.
type BoundaryFunc func(line string) bool

// DisclosureBoundary is the default boundary heuristic for sellside reports.
// A line containing "disclosures" starts the boilerplate unless it also
// mentions "see" (cross references like "see required disclosures" appear in
// the report body). The Chinese marker "免责声明" behaves the same way unless
// qualified by "阅读". This is a heuristic boundary, not exact truncation; it
// may over- or under-include a few trailing lines.
func DisclosureBoundary(line string) bool {
	low := strings.ToLower(line)
	if strings.Contains(low, "disclosures") && !strings.Contains(low, "see") {
		return true
	}
	if strings.Contains(low, "免责声明") && !strings.Contains(low, "阅读") {
		return true
	}
	return false
}

// TruncateAtBoundary copies lines of text up to and including the first line
// for which boundary returns true. A nil boundary returns text unchanged.
func TruncateAtBoundary(text string, boundary BoundaryFunc) string {
	if boundary == nil {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, line)
		if boundary(line) {
			break
		}
	}
	return strings.Join(out, "\n")
}
