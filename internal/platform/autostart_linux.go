//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// EnableAutostart installs an XDG autostart entry launching execPath with args.
func (service *platformService) EnableAutostart(appName, execPath string, args ...string) error {
	if err := checkAutostartArgs(appName, execPath); err != nil {
		return errors.Wrap(err, "enable autostart")
	}

	configDir, err := service.GetConfigDir()
	if err != nil {
		return errors.Wrap(err, "enable autostart")
	}

	autostartDir := filepath.Join(configDir, "autostart")
	if err := os.MkdirAll(autostartDir, 0o755); err != nil {
		return errors.Wrap(err, "enable autostart: create autostart dir")
	}

	entryPath := filepath.Join(autostartDir, desktopFileName(appName))
	if err := os.WriteFile(entryPath, []byte(buildDesktopEntry(appName, execPath, args)), 0o644); err != nil {
		return errors.Wrap(err, "enable autostart: write desktop entry")
	}

	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return errors.Wrap(errEmptyAppName, "disable autostart")
	}

	configDir, err := service.GetConfigDir()
	if err != nil {
		return errors.Wrap(err, "disable autostart")
	}

	entryPath := filepath.Join(configDir, "autostart", desktopFileName(appName))
	if err := os.Remove(entryPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "disable autostart: remove desktop entry")
	}

	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func stateDirFromEnv() string {
	return os.Getenv("XDG_STATE_HOME")
}

func fallbackStateDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "state")
}

func desktopFileName(appName string) string {
	return slug(appName) + ".desktop"
}

func buildDesktopEntry(appName, execPath string, args []string) string {
	words := make([]string, 0, len(args)+1)
	for _, word := range append([]string{execPath}, args...) {
		words = append(words, quoteDesktopExec(word))
	}

	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Comment=Work and break reminders
Exec=%s
X-GNOME-Autostart-enabled=true
NoDisplay=true
Terminal=false
`,
		appName,
		strings.Join(words, " "),
	)
}

// quoteDesktopExec quotes a word per the desktop entry Exec rules.
func quoteDesktopExec(word string) string {
	if !strings.ContainsAny(word, " \t\"'\\$`") {
		return word
	}
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + replacer.Replace(word) + `"`
}
