package highlight

import (
	"fmt"
	"sort"
	"strings"
)

// Source is one successfully summarized report to assemble: the summary text
// plus the cleaned conversion text used as a date-extraction fallback.
type Source struct {
	ItemID  string
	Summary string
	Cleaned string
}

// Assembler renders the final highlights document for one period.
type Assembler struct {
	// Period is the week anchor in YYYY-MM-DD form; it appears in the title
	// line and the generated report links.
	Period string
	// LinkBase is the URL prefix report links are built from.
	LinkBase string
	// Normalizer reconciles each entry's header date.
	Normalizer Normalizer
}

// Build normalizes every source and renders the final document. Workers hand
// sources over in completion order; entries are re-sorted here (date
// descending, then source, then item id) so the output is deterministic
// regardless of arrival order. Returns false when there is nothing to
// assemble.
func (a Assembler) Build(sources []Source) (string, bool) {
	if len(sources) == 0 {
		return "", false
	}

	entries := make([]Entry, 0, len(sources))
	for _, src := range sources {
		entries = append(entries, a.Normalizer.Normalize(src.ItemID, src.Summary, src.Cleaned))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		if entries[i].Source != entries[j].Source {
			return entries[i].Source < entries[j].Source
		}
		return entries[i].ItemID < entries[j].ItemID
	})

	var out []string
	out = append(out, fmt.Sprintf("# Sellside highlights for Week – %s", a.Period), "")

	for _, entry := range entries {
		out = append(out, "")
		out = append(out, fmt.Sprintf("**%s**", entry.Header))
		out = append(out, "")
		if len(entry.Bullets) > 0 {
			out = append(out, entry.Bullets...)
			out = append(out, "")
		}
		out = append(out, fmt.Sprintf("[Report Link](%s/%s/%s.pdf)", a.LinkBase, a.Period, entry.ItemID))
		out = append(out, "")
	}

	return strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n", true
}
