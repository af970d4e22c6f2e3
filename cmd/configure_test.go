package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restwatch/internal/config"
	"restwatch/internal/core/model"
	"restwatch/internal/ui/preferences"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "restwatch.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadForEditingMissingFile(t *testing.T) {
	current, err := loadForEditing(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSchedulerConfig(), current)
}

func TestLoadForEditingValidFile(t *testing.T) {
	path := writeConfig(t, "interval = \"50m\"\nshort-break = \"10m\"\n")

	current, err := loadForEditing(path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Minute, current.WorkInterval)
	assert.Nil(t, current.LongBreak)
}

func TestLoadForEditingInvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad duration", "interval = \"soon\"\nshort-break = \"5m\"\n"},
		{"missing required key", "short-break = \"5m\"\n"},
		{"not toml", "interval = = 25m\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, err := loadForEditing(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidConfig), "got %v", err)
			assert.Equal(t, model.DefaultSchedulerConfig(), current)
		})
	}
}

func TestSaveSettingsReplacesInvalidFile(t *testing.T) {
	path := writeConfig(t, "interval = \"soon\"\n")

	require.NoError(t, saveSettings(path, preferences.FromConfig(model.DefaultSchedulerConfig())))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSchedulerConfig(), loaded)
}
