package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"restwatch/internal/core/model"
	"restwatch/internal/core/timekeeper"
)

// ErrConfigExists is returned when SaveConfig would overwrite a file.
var ErrConfigExists = errors.New("config file already exists")

type fileConfig struct {
	Interval                   string `yaml:"interval" toml:"interval"`
	ShortBreak                 string `yaml:"short-break" toml:"short-break"`
	LongBreak                  string `yaml:"long-break,omitempty" toml:"long-break,omitempty"`
	ShortBreaksBeforeLongBreak *uint8 `yaml:"short-breaks-before-long-break,omitempty" toml:"short-breaks-before-long-break,omitempty"`
	IdleTimeout                string `yaml:"idle-timeout,omitempty" toml:"idle-timeout,omitempty"`
}

// SaveConfig writes config to path. The format follows the extension: .yaml and
// .yml produce YAML, anything else TOML. Existing files are kept unless overwrite
// is set.
func SaveConfig(path string, config model.SchedulerConfig, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.Wrapf(ErrConfigExists, "save config %s", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	serialized, err := encodeConfig(path, config)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return errors.Wrap(err, "write config file")
	}

	return nil
}

func encodeConfig(path string, config model.SchedulerConfig) ([]byte, error) {
	fileData := toFileConfig(config)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		serialized, err := yaml.Marshal(fileData)
		if err != nil {
			return nil, errors.Wrap(err, "marshal config yaml")
		}
		return serialized, nil
	default:
		var buffer bytes.Buffer
		if err := toml.NewEncoder(&buffer).Encode(fileData); err != nil {
			return nil, errors.Wrap(err, "marshal config toml")
		}
		return buffer.Bytes(), nil
	}
}

func toFileConfig(config model.SchedulerConfig) fileConfig {
	fileData := fileConfig{
		Interval:   timekeeper.FormatDuration(config.WorkInterval),
		ShortBreak: timekeeper.FormatDuration(config.ShortBreak),
	}
	if policy := config.LongBreak; policy != nil {
		after := policy.After
		fileData.LongBreak = timekeeper.FormatDuration(policy.Duration)
		fileData.ShortBreaksBeforeLongBreak = &after
	}
	if config.IdleEnabled() {
		fileData.IdleTimeout = timekeeper.FormatDuration(config.IdleTimeout)
	}
	return fileData
}
