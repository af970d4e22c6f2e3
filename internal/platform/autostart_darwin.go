//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// EnableAutostart installs a LaunchAgent running execPath with args at login.
func (service *platformService) EnableAutostart(appName, execPath string, args ...string) error {
	if err := checkAutostartArgs(appName, execPath); err != nil {
		return errors.Wrap(err, "enable autostart")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return errors.Wrap(err, "enable autostart: get home dir")
	}

	launchAgentsDir := filepath.Join(homeDir, "Library", "LaunchAgents")
	if err := os.MkdirAll(launchAgentsDir, 0o755); err != nil {
		return errors.Wrap(err, "enable autostart: create LaunchAgents dir")
	}

	label := launchAgentLabel(appName)
	plistPath := filepath.Join(launchAgentsDir, label+".plist")
	if err := os.WriteFile(plistPath, []byte(buildLaunchAgentPlist(label, execPath, args)), 0o644); err != nil {
		return errors.Wrap(err, "enable autostart: write plist")
	}

	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return errors.Wrap(errEmptyAppName, "disable autostart")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return errors.Wrap(err, "disable autostart: get home dir")
	}

	plistPath := filepath.Join(homeDir, "Library", "LaunchAgents", launchAgentLabel(appName)+".plist")
	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "disable autostart: remove plist")
	}

	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func stateDirFromEnv() string {
	return ""
}

func fallbackStateDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Logs")
}

func launchAgentLabel(appName string) string {
	return "com.restwatch." + slug(appName)
}

func buildLaunchAgentPlist(label, execPath string, args []string) string {
	var program strings.Builder
	for _, word := range append([]string{execPath}, args...) {
		fmt.Fprintf(&program, "\t\t<string>%s</string>\n", xmlEscape(word))
	}

	return fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
%s	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>ProcessType</key>
	<string>Interactive</string>
</dict>
</plist>
`,
		xmlEscape(label),
		program.String(),
	)
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}
