package cli

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-12", time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local)},
		{"2025-03-12 09:30", time.Date(2025, 3, 12, 9, 30, 0, 0, time.Local)},
		{"2025-03-12T09:30", time.Date(2025, 3, 12, 9, 30, 0, 0, time.Local)},
		{"2025-03-12 09:30:45", time.Date(2025, 3, 12, 9, 30, 0, 0, time.Local)},
		{"2025-03-12T09:30:00Z", time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := parseTimestamp(c.in)
		if err != nil {
			t.Fatalf("parseTimestamp(%q): %v", c.in, err)
		}
		if !got.Equal(c.want) {
			t.Fatalf("parseTimestamp(%q) = %v; want %v", c.in, got, c.want)
		}
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "  ", "12/03/2025", "2025-3-12", "tomorrow"} {
		if _, err := parseTimestamp(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
