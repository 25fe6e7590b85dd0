package highlight

import "time"

// Entry is the normalized form of one report summary: a canonical dated
// header plus its bullet list. Entries are recomputed on every assembly and
// never persisted on their own.
type Entry struct {
	ItemID  string
	Header  string // canonical "YYYY-MM-DD,Source: Title"
	Date    time.Time
	Source  string
	Title   string
	Bullets []string
}
