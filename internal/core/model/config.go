package model

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ErrInvalidConfig marks configuration values the scheduler cannot run with.
var ErrInvalidConfig = errors.New("invalid configuration")

// LongBreakPolicy enables long breaks. It exists only when both the count and
// the duration are configured.
type LongBreakPolicy struct {
	// After is the number of short breaks taken before a long break fires.
	After    uint8
	Duration time.Duration
}

// SchedulerConfig contains the settings for the phase scheduler.
type SchedulerConfig struct {
	WorkInterval time.Duration
	ShortBreak   time.Duration
	LongBreak    *LongBreakPolicy

	// IdleTimeout enables idle detection when non-zero.
	IdleTimeout time.Duration
}

// DefaultSchedulerConfig returns the classic pomodoro cadence.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		WorkInterval: 25 * time.Minute,
		ShortBreak:   5 * time.Minute,
		LongBreak: &LongBreakPolicy{
			After:    3,
			Duration: 15 * time.Minute,
		},
		IdleTimeout: 5 * time.Minute,
	}
}

// IdleEnabled reports whether idle signals should be requested.
func (config SchedulerConfig) IdleEnabled() bool {
	return config.IdleTimeout > 0
}

// Validate checks the required durations.
func (config SchedulerConfig) Validate() error {
	if config.WorkInterval <= 0 {
		return errors.Wrap(ErrInvalidConfig, "interval must be positive")
	}
	if config.ShortBreak <= 0 {
		return errors.Wrap(ErrInvalidConfig, "short-break must be positive")
	}
	if config.LongBreak != nil && config.LongBreak.Duration <= 0 {
		return errors.Wrap(ErrInvalidConfig, "long-break must be positive")
	}
	if config.IdleTimeout < 0 {
		return errors.Wrap(ErrInvalidConfig, "idle-timeout must not be negative")
	}
	return nil
}

// NewLongBreakPolicy bundles the two optional long-break settings. It returns nil
// unless both are present.
func NewLongBreakPolicy(duration *time.Duration, after *uint8) *LongBreakPolicy {
	if duration == nil || after == nil {
		return nil
	}
	return &LongBreakPolicy{After: *after, Duration: *duration}
}
