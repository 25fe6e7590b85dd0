package pipeline_test

import (
	"testing"
	"time"

	"sellsight/internal/pipeline"
)

func TestMostRecentFriday(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"friday itself", time.Date(2025, time.September, 12, 9, 0, 0, 0, time.UTC), "2025-09-12"},
		{"saturday", time.Date(2025, time.September, 13, 9, 0, 0, 0, time.UTC), "2025-09-12"},
		{"sunday", time.Date(2025, time.September, 14, 23, 0, 0, 0, time.UTC), "2025-09-12"},
		{"monday", time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC), "2025-09-12"},
		{"thursday", time.Date(2025, time.September, 11, 12, 0, 0, 0, time.UTC), "2025-09-05"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pipeline.MostRecentFriday(tc.now); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	ts, err := pipeline.ParsePeriod("2025-09-12")
	if err != nil {
		t.Fatalf("ParsePeriod failed: %v", err)
	}
	if ts.Weekday() != time.Friday {
		t.Fatalf("unexpected weekday: %s", ts.Weekday())
	}

	for _, bad := range []string{"", "2025-9-12", "12-09-2025", "2025-13-01", "notadate"} {
		if _, err := pipeline.ParsePeriod(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
