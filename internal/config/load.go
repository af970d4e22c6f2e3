// Package config resolves the scheduler configuration from a file and the
// environment.
package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"restwatch/internal/core/model"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. RESTWATCH_SHORT_BREAK.
	EnvPrefix = "RESTWATCH"
	// FileName is the default config file name inside the app config dir.
	FileName = "restwatch.toml"
)

const (
	KeyInterval                   = "interval"
	KeyShortBreak                 = "short-break"
	KeyLongBreak                  = "long-break"
	KeyShortBreaksBeforeLongBreak = "short-breaks-before-long-break"
	KeyIdleTimeout                = "idle-timeout"
)

// ErrConfigNotFound is returned when the config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// DefaultPath returns the config file location under configDir.
func DefaultPath(configDir, appName string) string {
	return filepath.Join(configDir, appName, FileName)
}

// Load reads the config file at path and applies environment overrides.
func Load(path string) (model.SchedulerConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.SchedulerConfig{}, errors.WithHintf(
				errors.Wrapf(ErrConfigNotFound, "%s", path),
				"create one with: restwatch init %s", path,
			)
		}
		return model.SchedulerConfig{}, errors.Wrapf(err, "stat config file %s", path)
	}

	v := newViper()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		err = errors.Wrapf(err, "read config file %s", path)
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			err = errors.Mark(err, model.ErrInvalidConfig)
		}
		return model.SchedulerConfig{}, err
	}

	config, err := FromViper(v)
	if err != nil {
		return model.SchedulerConfig{}, errors.Wrapf(err, "load %s", path)
	}
	return config, nil
}

// FromViper converts raw settings into a validated SchedulerConfig.
func FromViper(v *viper.Viper) (model.SchedulerConfig, error) {
	work, err := requiredDuration(v, KeyInterval)
	if err != nil {
		return model.SchedulerConfig{}, err
	}
	shortBreak, err := requiredDuration(v, KeyShortBreak)
	if err != nil {
		return model.SchedulerConfig{}, err
	}
	longBreak, err := optionalDuration(v, KeyLongBreak)
	if err != nil {
		return model.SchedulerConfig{}, err
	}
	after, err := optionalCount(v, KeyShortBreaksBeforeLongBreak)
	if err != nil {
		return model.SchedulerConfig{}, err
	}
	idleTimeout, err := optionalDuration(v, KeyIdleTimeout)
	if err != nil {
		return model.SchedulerConfig{}, err
	}

	config := model.SchedulerConfig{
		WorkInterval: work,
		ShortBreak:   shortBreak,
		LongBreak:    model.NewLongBreakPolicy(longBreak, after),
	}
	if idleTimeout != nil {
		config.IdleTimeout = *idleTimeout
	}
	if err := config.Validate(); err != nil {
		return model.SchedulerConfig{}, err
	}
	return config, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func requiredDuration(v *viper.Viper, key string) (time.Duration, error) {
	value, err := optionalDuration(v, key)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return 0, errors.Wrapf(model.ErrInvalidConfig, "missing required key %q", key)
	}
	return *value, nil
}

func optionalDuration(v *viper.Viper, key string) (*time.Duration, error) {
	if !v.IsSet(key) {
		return nil, nil
	}
	value, err := ParseDuration(v.GetString(key))
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "key %q", key), model.ErrInvalidConfig)
	}
	return &value, nil
}

func optionalCount(v *viper.Viper, key string) (*uint8, error) {
	if !v.IsSet(key) {
		return nil, nil
	}
	value, err := cast.ToIntE(v.Get(key))
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "key %q", key), model.ErrInvalidConfig)
	}
	if value < 0 || value > math.MaxUint8 {
		return nil, errors.Wrapf(model.ErrInvalidConfig, "key %q must be between 0 and %d", key, math.MaxUint8)
	}
	count := uint8(value)
	return &count, nil
}
