package platform

import (
	"time"

	"go.uber.org/zap"

	"restwatch/internal/core/timekeeper"
)

type idleProvider struct{}

func newIdleProvider() IdleProvider {
	return &idleProvider{}
}

func newIdleSource(logger *zap.SugaredLogger) IdleSource {
	return &PollingIdleSource{Provider: newIdleProvider(), Logger: logger}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	return 0, timekeeper.ErrIdleUnsupported
}
