package config

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"restwatch/internal/core/model"
)

var durationToken = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*([a-zA-Zµ]+)\s*`)

var durationUnits = map[string]time.Duration{
	"ns":      time.Nanosecond,
	"us":      time.Microsecond,
	"µs":      time.Microsecond,
	"ms":      time.Millisecond,
	"msec":    time.Millisecond,
	"s":       time.Second,
	"sec":     time.Second,
	"secs":    time.Second,
	"second":  time.Second,
	"seconds": time.Second,
	"m":       time.Minute,
	"min":     time.Minute,
	"mins":    time.Minute,
	"minute":  time.Minute,
	"minutes": time.Minute,
	"h":       time.Hour,
	"hr":      time.Hour,
	"hrs":     time.Hour,
	"hour":    time.Hour,
	"hours":   time.Hour,
	"d":       24 * time.Hour,
	"day":     24 * time.Hour,
	"days":    24 * time.Hour,
}

// ParseDuration accepts human-readable durations such as "25m", "1h 30m" or
// "90 sec". Every number needs a unit.
func ParseDuration(text string) (time.Duration, error) {
	rest := strings.TrimSpace(text)
	if rest == "" {
		return 0, errors.New("empty duration")
	}

	var total time.Duration
	for rest != "" {
		match := durationToken.FindStringSubmatch(rest)
		if match == nil {
			return 0, errors.Newf("invalid duration %q", text)
		}
		unit, ok := durationUnits[strings.ToLower(match[2])]
		if !ok {
			return 0, errors.Newf("unknown unit %q in duration %q", match[2], text)
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parse duration %q", text)
		}
		step := value * float64(unit)
		if step >= math.MaxInt64 || total > math.MaxInt64-time.Duration(step) {
			return 0, errors.Mark(errors.Newf("duration %q is too long", text), model.ErrInvalidConfig)
		}
		total += time.Duration(step)
		rest = rest[len(match[0]):]
	}
	return total, nil
}
