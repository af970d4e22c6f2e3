package platform

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"restwatch/internal/core/timekeeper"
)

type idleProvider struct {
	xprintidlePath string
}

type unsupportedIdleProvider struct{}

func newIdleProvider() IdleProvider {
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedIdleProvider{}
	}
	return &idleProvider{xprintidlePath: path}
}

// newIdleSource prefers the compositor's own idle watches and falls back to
// polling xprintidle, which only works on X11.
func newIdleSource(logger *zap.SugaredLogger) IdleSource {
	return &fallbackIdleSource{
		logger: logger,
		sources: []namedIdleSource{
			{name: "mutter", source: &mutterIdleSource{logger: logger}},
			{name: "xprintidle", source: &PollingIdleSource{Provider: newIdleProvider(), Logger: logger}},
		},
	}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	if strings.ToLower(os.Getenv("XDG_SESSION_TYPE")) == "wayland" && os.Getenv("DISPLAY") == "" {
		return 0, timekeeper.ErrIdleUnsupported
	}
	output, err := exec.Command(provider.xprintidlePath).Output()
	if err != nil {
		return 0, errors.Wrap(err, "xprintidle")
	}
	idleMillis, err := strconv.ParseInt(strings.TrimSpace(string(output)), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse idle milliseconds")
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, timekeeper.ErrIdleUnsupported
}
