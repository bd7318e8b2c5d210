package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDateTime = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2})(?::\d{2})?$`)
)

// parseTimestamp parses:
// - YYYY-MM-DD (local midnight)
// - YYYY-MM-DD HH:MM (local date+time)
// - RFC3339 / RFC3339Nano (timezone-aware)
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}

	if reDateOnly.MatchString(s) {
		return time.ParseInLocation("2006-01-02", s, time.Local)
	}

	if m := reDateTime.FindStringSubmatch(s); m != nil {
		return time.ParseInLocation("2006-01-02 15:04", m[1]+" "+m[2], time.Local)
	}

	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}

	return time.Time{}, fmt.Errorf("invalid datetime %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)", s)
}
