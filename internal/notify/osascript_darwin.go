package notify

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// osascriptBackend posts through Notification Center via osascript.
type osascriptBackend struct{}

func newBackend(string) (backend, error) {
	if _, err := exec.LookPath("osascript"); err != nil {
		return nil, errors.Wrap(err, "osascript")
	}
	return osascriptBackend{}, nil
}

func (osascriptBackend) send(summary, body string) error {
	script := fmt.Sprintf(
		`display notification "%s" with title "%s" sound name "default"`,
		escapeAppleScript(body), escapeAppleScript(summary),
	)

	cmd := exec.Command("osascript", "-e", script)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "osascript: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
