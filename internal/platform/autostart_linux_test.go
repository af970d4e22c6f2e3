package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDesktopEntry(t *testing.T) {
	entry := buildDesktopEntry("restwatch", "/opt/rest watch/restwatch", []string{"--daemon", "-c", "/home/me/cfg.toml"})

	assert.Contains(t, entry, `Exec="/opt/rest watch/restwatch" --daemon -c /home/me/cfg.toml`)
	assert.Contains(t, entry, "Name=restwatch\n")
	assert.Contains(t, entry, "Terminal=false\n")
}

func TestQuoteDesktopExec(t *testing.T) {
	assert.Equal(t, "plain", quoteDesktopExec("plain"))
	assert.Equal(t, `"a b"`, quoteDesktopExec("a b"))
	assert.Equal(t, `"cost \$5"`, quoteDesktopExec("cost $5"))
}

func TestAutostartRoundTrip(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	service := NewService()

	require.NoError(t, service.EnableAutostart("Rest Watch", "/usr/bin/restwatch", "--daemon"))
	entryPath := filepath.Join(configHome, "autostart", "rest-watch.desktop")
	data, err := os.ReadFile(entryPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Exec=/usr/bin/restwatch --daemon")

	require.NoError(t, service.DisableAutostart("Rest Watch"))
	_, err = os.Stat(entryPath)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, service.DisableAutostart("Rest Watch"), "removing twice is fine")
	assert.True(t, errors.Is(service.EnableAutostart("", "/usr/bin/restwatch"), errEmptyAppName))
	assert.True(t, errors.Is(service.EnableAutostart("restwatch", ""), errEmptyExecPath))
	assert.True(t, errors.Is(service.DisableAutostart(""), errEmptyAppName))
}

func TestGetStateDir(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state-home")
	dir, err := NewService().GetStateDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/state-home", dir)

	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/home/tester")
	dir, err = NewService().GetStateDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".local", "state"), dir)
}
