package platform

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"restwatch/internal/core/timekeeper"
)

// IdleProvider returns the duration since last user input.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

// IdleSource delivers an Idled signal once the user has been inactive for timeout,
// and a Resumed signal on the next input. The channel closes when ctx is done or the
// source fails.
type IdleSource interface {
	Watch(ctx context.Context, timeout time.Duration) (<-chan timekeeper.IdleKind, error)
}

// NewIdleProvider returns a platform-specific idle provider.
func NewIdleProvider() IdleProvider {
	return newIdleProvider()
}

// NewIdleSource returns the best idle source available on this platform.
func NewIdleSource(logger *zap.SugaredLogger) IdleSource {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return newIdleSource(logger)
}

// fallbackIdleSource tries each source in order and uses the first that subscribes.
type fallbackIdleSource struct {
	sources []namedIdleSource
	logger  *zap.SugaredLogger
}

type namedIdleSource struct {
	name   string
	source IdleSource
}

func (fallback *fallbackIdleSource) Watch(ctx context.Context, timeout time.Duration) (<-chan timekeeper.IdleKind, error) {
	var failures error
	for _, candidate := range fallback.sources {
		events, err := candidate.source.Watch(ctx, timeout)
		if err == nil {
			fallback.logger.Infow("idle detection active", "source", candidate.name, "timeout", timeout)
			return events, nil
		}
		fallback.logger.Debugw("idle source unavailable", "source", candidate.name, "error", err)
		failures = errors.CombineErrors(failures, errors.Wrap(err, candidate.name))
	}
	if failures == nil {
		return nil, timekeeper.ErrIdleUnsupported
	}
	return nil, errors.Mark(failures, timekeeper.ErrIdleUnsupported)
}
