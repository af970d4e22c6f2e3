package timekeeper

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"restwatch/internal/core/model"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// Notifier shows a message to the user. Delivery failures stay with the notifier.
type Notifier interface {
	Notify(summary, body string)
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	Clock  Clock
	Logger *zap.SugaredLogger
}

// TimeKeeper owns a Scheduler and its single countdown timer, and feeds timer
// expiries and idle signals into it one at a time.
type TimeKeeper struct {
	mu        sync.Mutex
	scheduler *Scheduler
	notifier  Notifier
	clock     Clock
	logger    *zap.SugaredLogger
	timer     Timer
	events    []chan Event
	running   bool
}

// New creates a TimeKeeper with the provided configuration.
func New(config model.SchedulerConfig, notifier Notifier, options Config) *TimeKeeper {
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop().Sugar()
	}

	return &TimeKeeper{
		scheduler: NewScheduler(config),
		notifier:  notifier,
		clock:     options.Clock,
		logger:    options.Logger,
	}
}

// Subscribe registers a new observer channel. Observers that fall behind miss events.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Run starts the first work countdown and processes events until ctx is done.
// idle may be nil when idle detection is disabled. Observer channels are closed on
// return.
func (keeper *TimeKeeper) Run(ctx context.Context, idle <-chan IdleKind) error {
	keeper.mu.Lock()
	if keeper.running {
		keeper.mu.Unlock()
		return errors.New("timekeeper already running")
	}
	keeper.running = true
	keeper.mu.Unlock()

	defer keeper.stop()

	now := keeper.clock.Now()
	keeper.apply(keeper.scheduler.Start(now))
	keeper.logger.Debugw("work started", "remaining", keeper.scheduler.Remaining(now))
	keeper.emit(Event{
		Type:      EventPhaseChange,
		Phase:     PhaseWork,
		Remaining: keeper.scheduler.Remaining(now),
		At:        now,
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-keeper.timerC():
			keeper.handleExpiry()
		case kind, ok := <-idle:
			if !ok {
				keeper.logger.Warn("idle source closed, idle detection stopped")
				idle = nil
				keeper.handleIdleLost()
				continue
			}
			keeper.handleIdle(kind)
		}
	}
}

func (keeper *TimeKeeper) handleExpiry() {
	now := keeper.clock.Now()
	previous := keeper.scheduler.Phase()
	effects := keeper.scheduler.Expire(now)
	if len(effects) == 0 {
		return
	}
	keeper.apply(effects)

	phase := keeper.scheduler.Phase()
	switch phase {
	case PhaseWork:
		keeper.logger.Debugw("work again", "after", previous)
	case PhaseShortBreak:
		keeper.logger.Debugw("short break", "short_breaks", keeper.scheduler.ShortBreaks())
	case PhaseLongBreak:
		keeper.logger.Debug("long break")
	}

	keeper.emit(Event{
		Type:      EventPhaseChange,
		Phase:     phase,
		Remaining: keeper.scheduler.Remaining(now),
		At:        now,
	})
}

func (keeper *TimeKeeper) handleIdle(kind IdleKind) {
	now := keeper.clock.Now()
	keeper.logger.Debugw("idle signal", "kind", kind, "phase", keeper.scheduler.Phase())

	effects := keeper.scheduler.Idle(kind, now)
	keeper.apply(effects)

	event := Event{
		Type:      EventIdleIgnored,
		Phase:     keeper.scheduler.Phase(),
		Remaining: keeper.scheduler.Remaining(now),
		Message:   kind.String(),
		At:        now,
	}
	for _, effect := range effects {
		switch effect.Type {
		case EffectDisarm:
			event.Type = EventPaused
		case EffectArm:
			event.Type = EventResumed
			keeper.logger.Debugw("time left before break", "remaining", effect.Duration)
		}
	}
	keeper.emit(event)
}

func (keeper *TimeKeeper) handleIdleLost() {
	now := keeper.clock.Now()
	effects := keeper.scheduler.DropIdle(now)
	if len(effects) == 0 {
		return
	}
	keeper.apply(effects)
	keeper.logger.Debugw("time left before break", "remaining", keeper.scheduler.Remaining(now))
	keeper.emit(Event{
		Type:      EventResumed,
		Phase:     keeper.scheduler.Phase(),
		Remaining: keeper.scheduler.Remaining(now),
		Message:   "idle source closed",
		At:        now,
	})
}

func (keeper *TimeKeeper) apply(effects []Effect) {
	for _, effect := range effects {
		switch effect.Type {
		case EffectArm:
			keeper.stopTimer()
			keeper.timer = keeper.clock.NewTimer(effect.Duration)
		case EffectDisarm:
			keeper.stopTimer()
		case EffectNotify:
			if keeper.notifier != nil {
				keeper.notifier.Notify(effect.Summary, effect.Body)
			}
		}
	}
}

func (keeper *TimeKeeper) timerC() <-chan time.Time {
	if keeper.timer == nil {
		return nil
	}
	return keeper.timer.Chan()
}

func (keeper *TimeKeeper) stopTimer() {
	if keeper.timer != nil {
		keeper.timer.Stop()
		keeper.timer = nil
	}
}

func (keeper *TimeKeeper) stop() {
	keeper.stopTimer()

	keeper.mu.Lock()
	keeper.running = false
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) emit(event Event) {
	keeper.mu.Lock()
	events := append([]chan Event(nil), keeper.events...)
	keeper.mu.Unlock()

	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
