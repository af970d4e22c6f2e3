//go:build windows

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

// EnableAutostart registers execPath with args under the user's Run key.
func (service *platformService) EnableAutostart(appName, execPath string, args ...string) error {
	if err := checkAutostartArgs(appName, execPath); err != nil {
		return errors.Wrap(err, "enable autostart")
	}

	command := exec.Command(
		"reg", "add", registryRunKey,
		"/v", appName,
		"/t", "REG_SZ",
		"/d", buildRunCommand(execPath, args),
		"/f",
	)
	output, err := command.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "enable autostart: reg add failed: %s", strings.TrimSpace(string(output)))
	}

	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return errors.Wrap(errEmptyAppName, "disable autostart")
	}

	command := exec.Command("reg", "delete", registryRunKey, "/v", appName, "/f")
	output, err := command.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "disable autostart: reg delete failed: %s", strings.TrimSpace(string(output)))
	}

	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func stateDirFromEnv() string {
	return os.Getenv("LOCALAPPDATA")
}

func fallbackStateDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Local")
}

func buildRunCommand(execPath string, args []string) string {
	words := []string{fmt.Sprintf(`"%s"`, strings.Trim(execPath, `"`))}
	for _, arg := range args {
		if strings.ContainsAny(arg, " \t") {
			arg = `"` + arg + `"`
		}
		words = append(words, arg)
	}
	return strings.Join(words, " ")
}
