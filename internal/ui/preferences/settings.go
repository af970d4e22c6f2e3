package preferences

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"restwatch/internal/config"
	"restwatch/internal/core/model"
	"restwatch/internal/core/timekeeper"
)

// Settings holds the editable form values. Durations are kept as text in the
// config file's duration syntax, e.g. "25m" or "1h 30m".
type Settings struct {
	Interval         string
	ShortBreak       string
	LongBreakEnabled bool
	LongBreak        string
	LongBreakAfter   string
	IdleTimeout      string
}

// FromConfig fills the form from a scheduler configuration. A missing long
// break policy keeps the default values in the disabled fields.
func FromConfig(settings model.SchedulerConfig) Settings {
	long := model.DefaultSchedulerConfig().LongBreak
	enabled := settings.LongBreak != nil
	if enabled {
		long = settings.LongBreak
	}

	idle := ""
	if settings.IdleEnabled() {
		idle = timekeeper.FormatDuration(settings.IdleTimeout)
	}

	return Settings{
		Interval:         timekeeper.FormatDuration(settings.WorkInterval),
		ShortBreak:       timekeeper.FormatDuration(settings.ShortBreak),
		LongBreakEnabled: enabled,
		LongBreak:        timekeeper.FormatDuration(long.Duration),
		LongBreakAfter:   strconv.Itoa(int(long.After)),
		IdleTimeout:      idle,
	}
}

// SchedulerConfig parses the form. An empty idle timeout disables idle detection.
func (settings Settings) SchedulerConfig() (model.SchedulerConfig, error) {
	var result model.SchedulerConfig
	var err error

	if result.WorkInterval, err = parseField("interval", settings.Interval); err != nil {
		return model.SchedulerConfig{}, err
	}
	if result.ShortBreak, err = parseField("short break", settings.ShortBreak); err != nil {
		return model.SchedulerConfig{}, err
	}

	if settings.LongBreakEnabled {
		duration, err := parseField("long break", settings.LongBreak)
		if err != nil {
			return model.SchedulerConfig{}, err
		}
		after, err := strconv.ParseUint(strings.TrimSpace(settings.LongBreakAfter), 10, 8)
		if err != nil {
			return model.SchedulerConfig{}, errors.Mark(
				errors.Newf("short breaks before long break: %q is not a number from 0 to 255", settings.LongBreakAfter),
				model.ErrInvalidConfig,
			)
		}
		result.LongBreak = &model.LongBreakPolicy{After: uint8(after), Duration: duration}
	}

	if strings.TrimSpace(settings.IdleTimeout) != "" {
		if result.IdleTimeout, err = parseField("idle timeout", settings.IdleTimeout); err != nil {
			return model.SchedulerConfig{}, err
		}
	}

	if err := result.Validate(); err != nil {
		return model.SchedulerConfig{}, err
	}
	return result, nil
}

func parseField(name, text string) (time.Duration, error) {
	duration, err := config.ParseDuration(text)
	if err != nil {
		return 0, errors.Mark(errors.Wrap(err, name), model.ErrInvalidConfig)
	}
	return duration, nil
}
