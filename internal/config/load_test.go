package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restwatch/internal/core/model"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "restwatch.toml", `
interval = "25m"
short-break = "5m"
long-break = "15m"
short-breaks-before-long-break = 2
idle-timeout = "5 min"
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.SchedulerConfig{
		WorkInterval: 25 * time.Minute,
		ShortBreak:   5 * time.Minute,
		LongBreak:    &model.LongBreakPolicy{After: 2, Duration: 15 * time.Minute},
		IdleTimeout:  5 * time.Minute,
	}, config)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "restwatch.yaml", "interval: 1h 30m\nshort-break: 90 sec\n")

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, config.WorkInterval)
	assert.Equal(t, 90*time.Second, config.ShortBreak)
	assert.Nil(t, config.LongBreak)
	assert.False(t, config.IdleEnabled())
}

func TestLoadPartialLongBreakIsDisabled(t *testing.T) {
	path := writeConfig(t, "restwatch.toml", `
interval = "25m"
short-break = "5m"
long-break = "15m"
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, config.LongBreak)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "restwatch.toml", `
interval = "25m"
short-break = "5m"
`)
	t.Setenv("RESTWATCH_SHORT_BREAK", "10m")
	t.Setenv("RESTWATCH_LONG_BREAK", "20m")
	t.Setenv("RESTWATCH_SHORT_BREAKS_BEFORE_LONG_BREAK", "3")

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, config.ShortBreak)
	assert.Equal(t, &model.LongBreakPolicy{After: 3, Duration: 20 * time.Minute}, config.LongBreak)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing interval", `short-break = "5m"`},
		{"missing short break", `interval = "25m"`},
		{"bad duration", "interval = \"soon\"\nshort-break = \"5m\""},
		{"zero interval", "interval = \"0s\"\nshort-break = \"5m\""},
		{"count out of range", "interval = \"25m\"\nshort-break = \"5m\"\nshort-breaks-before-long-break = 300"},
		{"negative count", "interval = \"25m\"\nshort-break = \"5m\"\nshort-breaks-before-long-break = -1"},
		{"overflowing duration", "interval = \"300000d\"\nshort-break = \"5m\""},
		{"not toml", "interval = = 25m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "restwatch.toml", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/cfg", "restwatch", "restwatch.toml"), DefaultPath("/cfg", "restwatch"))
}
