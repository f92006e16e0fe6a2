package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatRoundedUnit renders a duration in seconds as its largest whole
// unit, e.g. 42s, 5m, 2h.
func FormatRoundedUnit(seconds int64) string {
	if seconds < 0 {
		seconds = -seconds
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds >= 3600 {
		return fmt.Sprintf("%dh", seconds/3600)
	}
	return fmt.Sprintf("%dm", seconds/60)
}

// FormatAge renders the time elapsed since t
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return FormatRoundedUnit(int64(time.Since(t).Seconds()))
}

// Truncate shortens s to maxLen runes, marking the cut with "..."
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// ParseAge parses a positive age such as "30d", "12h" or "90m". A "d"
// suffix counts whole days; anything else goes through time.ParseDuration.
func ParseAge(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.ParseUint(days, 10, 16)
		if err != nil || n == 0 {
			return 0, fmt.Errorf("invalid age: %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid age: %q", s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("age must be positive: %q", s)
	}
	return d, nil
}
