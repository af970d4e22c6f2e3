package platform

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"restwatch/internal/core/timekeeper"
)

const defaultPollInterval = time.Second

// PollingIdleSource turns an IdleProvider into idle/active transitions by sampling it.
type PollingIdleSource struct {
	Provider IdleProvider
	Interval time.Duration
	Logger   *zap.SugaredLogger
}

// Watch samples the provider once up front so an unusable provider fails here
// rather than later in the background.
func (source *PollingIdleSource) Watch(ctx context.Context, timeout time.Duration) (<-chan timekeeper.IdleKind, error) {
	if source.Provider == nil {
		return nil, timekeeper.ErrIdleUnsupported
	}
	if _, err := source.Provider.IdleDuration(); err != nil {
		return nil, errors.Wrap(err, "query idle provider")
	}

	interval := source.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	logger := source.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	events := make(chan timekeeper.IdleKind, 1)
	go source.run(ctx, timeout, interval, logger, events)
	return events, nil
}

func (source *PollingIdleSource) run(ctx context.Context, timeout, interval time.Duration, logger *zap.SugaredLogger, events chan<- timekeeper.IdleKind) {
	defer close(events)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	idle := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		idleFor, err := source.Provider.IdleDuration()
		if err != nil {
			if errors.Is(err, timekeeper.ErrIdleUnsupported) {
				logger.Errorw("idle provider stopped working", "error", err)
				return
			}
			logger.Warnw("idle check failed", "error", err)
			continue
		}

		kind, changed := nextIdleEdge(idle, idleFor, timeout)
		if !changed {
			continue
		}
		idle = kind == timekeeper.Idled

		select {
		case events <- kind:
		case <-ctx.Done():
			return
		}
	}
}

// nextIdleEdge reports the transition implied by a sample, if any.
func nextIdleEdge(idle bool, idleFor, timeout time.Duration) (timekeeper.IdleKind, bool) {
	nowIdle := idleFor >= timeout
	switch {
	case nowIdle && !idle:
		return timekeeper.Idled, true
	case !nowIdle && idle:
		return timekeeper.Resumed, true
	default:
		return 0, false
	}
}
