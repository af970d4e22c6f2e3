package storage

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
)

func TestSaveConfigLoadsBack(t *testing.T) {
	for _, name := range []string{"restwatch.toml", "restwatch.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			want := model.DefaultSchedulerConfig()

			require.NoError(t, SaveConfig(path, want, false))

			got, err := config.Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSaveConfigOmitsUnsetOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restwatch.toml")
	minimal := model.SchedulerConfig{WorkInterval: 50 * time.Minute, ShortBreak: 10 * time.Minute}

	require.NoError(t, SaveConfig(path, minimal, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `interval = "50m"`)
	assert.NotContains(t, string(data), "long-break")
	assert.NotContains(t, string(data), "idle-timeout")
}

func TestSaveConfigKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restwatch.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0o644))

	err := SaveConfig(path, model.DefaultSchedulerConfig(), false)
	assert.True(t, errors.Is(err, ErrConfigExists))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))

	require.NoError(t, SaveConfig(path, model.DefaultSchedulerConfig(), true))
}
