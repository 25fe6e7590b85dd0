package highlight

import "strings"

// SplitSummary extracts the header line and bullet list from a summary's raw
// text. The first non-blank line is the header candidate: a bold wrapper
// (**...**) or a leading bullet marker is stripped. Every subsequent
// non-blank line becomes a bullet; already-marked lines are kept, "* " is
// rewritten to "- ", heading lines are dropped, and anything else is demoted
// to a bullet after stripping emphasis markup. Malformed input never errors:
// an empty summary yields an empty header and no bullets.
func SplitSummary(text string) (string, []string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}

	firstIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			firstIdx = i
			break
		}
	}
	if firstIdx < 0 {
		return "", nil
	}

	first := strings.TrimSpace(lines[firstIdx])
	var header string
	switch {
	case strings.HasPrefix(first, "**") && strings.HasSuffix(first, "**"):
		header = strings.TrimSpace(strings.Trim(first, "*"))
	case strings.HasPrefix(first, "- "):
		header = strings.TrimSpace(first[2:])
	default:
		header = first
	}

	var bullets []string
	for _, line := range lines[firstIdx+1:] {
		if bullet, ok := toBullet(line); ok {
			bullets = append(bullets, bullet)
		}
	}
	return header, bullets
}

func toBullet(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return "", false
	}
	switch {
	case strings.HasPrefix(s, "- "):
		return s, true
	case strings.HasPrefix(s, "* "):
		return "- " + strings.TrimSpace(s[2:]), true
	case strings.HasPrefix(s, "#"):
		// Section headings inside a summary carry no content of their own.
		return "", false
	default:
		replacer := strings.NewReplacer("**", "", "*", "", "#", "")
		cleaned := strings.TrimSpace(replacer.Replace(s))
		if cleaned == "" {
			return "", false
		}
		return "- " + cleaned, true
	}
}
