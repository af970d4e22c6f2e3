package timekeeper

import (
	"strconv"
	"strings"
	"time"
)

// FormatRemaining renders the time left before a break. Anything under a minute is
// shown in exact seconds, longer spans are floored to whole minutes.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int64(remaining / time.Second)
	if seconds >= 60 {
		seconds -= seconds % 60
	}
	return FormatDuration(time.Duration(seconds) * time.Second)
}

// FormatDuration renders a duration as space separated units, e.g. "1h 5m 3s".
// Sub-second precision is dropped.
func FormatDuration(duration time.Duration) string {
	seconds := int64(duration / time.Second)
	if seconds <= 0 {
		return "0s"
	}

	units := []struct {
		suffix string
		size   int64
	}{
		{"d", 24 * 60 * 60},
		{"h", 60 * 60},
		{"m", 60},
		{"s", 1},
	}

	parts := make([]string, 0, len(units))
	for _, unit := range units {
		if seconds < unit.size {
			continue
		}
		parts = append(parts, strconv.FormatInt(seconds/unit.size, 10)+unit.suffix)
		seconds %= unit.size
	}
	return strings.Join(parts, " ")
}
