package platform

import (
	"os"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// DetachedEnv is set in the environment of a detached child so it does not detach
// again.
const DetachedEnv = "RESTWATCH_DETACHED"

// Detached reports whether this process was started by Detach.
func Detached() bool {
	return os.Getenv(DetachedEnv) == "1"
}

// Detach re-executes the current binary with args in a new session, with stdio
// pointed at the null device, and returns the child's pid. The caller is expected
// to exit afterwards.
func Detach(args []string) (int, error) {
	executable, err := os.Executable()
	if err != nil {
		return 0, errors.Wrap(err, "locate executable")
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return 0, errors.Wrap(err, "open null device")
	}
	defer devNull.Close()

	command := exec.Command(executable, args...)
	command.Env = append(os.Environ(), DetachedEnv+"=1")
	command.Stdin = devNull
	command.Stdout = devNull
	command.Stderr = devNull
	command.SysProcAttr = detachAttr()

	if err := command.Start(); err != nil {
		return 0, errors.Wrap(err, "start detached process")
	}
	pid := command.Process.Pid
	if err := command.Process.Release(); err != nil {
		return pid, errors.Wrap(err, "release detached process")
	}
	return pid, nil
}
