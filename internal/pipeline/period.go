package pipeline

import (
	"fmt"
	"regexp"
	"time"
)

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// MostRecentFriday returns the latest Friday on or before now, in the
// period's YYYY-MM-DD form. Runs usually happen on the anchor Friday itself
// or over the following weekend.
func MostRecentFriday(now time.Time) string {
	offset := (int(now.Weekday()) - int(time.Friday) + 7) % 7
	return now.AddDate(0, 0, -offset).Format("2006-01-02")
}

// ParsePeriod validates a user-supplied period string and returns its date
// at midnight UTC.
func ParsePeriod(period string) (time.Time, error) {
	if !periodPattern.MatchString(period) {
		return time.Time{}, fmt.Errorf("period must be YYYY-MM-DD, got %q", period)
	}
	ts, err := time.Parse("2006-01-02", period)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period %q: %w", period, err)
	}
	return ts, nil
}
