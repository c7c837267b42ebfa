package shortcut

import (
	"fmt"
	"time"
)

// Layout is ISO-8601 extended format in UTC with millisecond precision
const Layout = "2006-01-02T15:04:05.000Z"

// FormatUTC renders t in UTC, e.g. 2023-06-01T12:34:56.789Z
func FormatUTC(t time.Time) string {
	return t.UTC().Format(Layout)
}

// FormatCurrentUTCTimestamp reads the clock and formats the instant
func FormatCurrentUTCTimestamp(c Clock) string {
	return FormatUTC(c.Now())
}

// ParseUTC parses a string produced by FormatUTC
func ParseUTC(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
