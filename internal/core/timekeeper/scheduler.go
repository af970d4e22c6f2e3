package timekeeper

import (
	"fmt"
	"time"

	"restwatch/internal/core/model"
)

// countdown is either running or paused. Exactly one holds at a time.
type countdown interface {
	isCountdown()
}

type running struct {
	startedAt time.Time
	armed     time.Duration
}

type paused struct {
	remaining time.Duration
}

func (running) isCountdown() {}
func (paused) isCountdown()  {}

func (timer running) remainingAt(now time.Time) time.Duration {
	elapsed := now.Sub(timer.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := timer.armed - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Scheduler is the phase state machine. It performs no I/O: every method takes the
// current time and returns the effects the caller must carry out. It is not safe for
// concurrent use; a single owner (the TimeKeeper loop) drives it.
type Scheduler struct {
	config      model.SchedulerConfig
	phase       Phase
	shortBreaks int
	timer       countdown
	idleLost    bool
}

// NewScheduler creates a Scheduler in the work phase. No countdown exists until
// Start is called; expiries and idle signals before that are ignored.
func NewScheduler(config model.SchedulerConfig) *Scheduler {
	return &Scheduler{
		config: config,
		phase:  PhaseWork,
	}
}

// Start arms the first work countdown.
func (scheduler *Scheduler) Start(now time.Time) []Effect {
	scheduler.phase = PhaseWork
	scheduler.shortBreaks = 0
	scheduler.timer = running{startedAt: now, armed: scheduler.config.WorkInterval}
	return []Effect{arm(scheduler.config.WorkInterval)}
}

// Expire handles the countdown reaching zero.
func (scheduler *Scheduler) Expire(now time.Time) []Effect {
	if _, ok := scheduler.timer.(running); !ok {
		// a fire that raced with an idle pause
		return nil
	}

	var (
		effects  []Effect
		duration time.Duration
	)
	switch scheduler.phase {
	case PhaseWork:
		if policy := scheduler.config.LongBreak; policy != nil && scheduler.shortBreaks == int(policy.After) {
			scheduler.shortBreaks = 0
			scheduler.phase = PhaseLongBreak
			duration = policy.Duration
			effects = append(effects, notify("Long break", "Take a long pause!"))
		} else {
			scheduler.shortBreaks++
			scheduler.phase = PhaseShortBreak
			duration = scheduler.config.ShortBreak
			effects = append(effects, notify("Short break"+scheduler.progressSuffix(), "Take a pause!"))
		}
	default:
		scheduler.phase = PhaseWork
		duration = scheduler.config.WorkInterval
	}

	scheduler.timer = running{startedAt: now, armed: duration}
	return append(effects, arm(duration))
}

// Idle handles a signal from the idle source. Signals are only honored during work;
// anything else is dropped and yields no effects.
func (scheduler *Scheduler) Idle(kind IdleKind, now time.Time) []Effect {
	if !scheduler.config.IdleEnabled() || scheduler.idleLost || scheduler.phase != PhaseWork {
		return nil
	}

	switch kind {
	case Idled:
		current, ok := scheduler.timer.(running)
		if !ok {
			return nil
		}
		scheduler.timer = paused{remaining: current.remainingAt(now)}
		return []Effect{disarm()}
	case Resumed:
		current, ok := scheduler.timer.(paused)
		if !ok {
			return nil
		}
		scheduler.timer = running{startedAt: now, armed: current.remaining}
		return []Effect{
			arm(current.remaining),
			notify("Welcome back", FormatRemaining(current.remaining)+" until next break"),
		}
	}
	return nil
}

// DropIdle handles the idle source going away. A paused countdown resumes with
// its remaining time, without a notification since nobody reported the user back,
// and later idle signals are ignored.
func (scheduler *Scheduler) DropIdle(now time.Time) []Effect {
	scheduler.idleLost = true
	current, ok := scheduler.timer.(paused)
	if !ok {
		return nil
	}
	scheduler.timer = running{startedAt: now, armed: current.remaining}
	return []Effect{arm(current.remaining)}
}

// Phase returns the current phase.
func (scheduler *Scheduler) Phase() Phase {
	return scheduler.phase
}

// ShortBreaks returns the short breaks taken since the last long break.
func (scheduler *Scheduler) ShortBreaks() int {
	return scheduler.shortBreaks
}

// Paused reports whether the countdown is suspended by an idle period.
func (scheduler *Scheduler) Paused() bool {
	_, ok := scheduler.timer.(paused)
	return ok
}

// Remaining returns the time left on the countdown.
func (scheduler *Scheduler) Remaining(now time.Time) time.Duration {
	switch timer := scheduler.timer.(type) {
	case running:
		return timer.remainingAt(now)
	case paused:
		return timer.remaining
	}
	return 0
}

func (scheduler *Scheduler) progressSuffix() string {
	policy := scheduler.config.LongBreak
	if policy == nil {
		return ""
	}
	return fmt.Sprintf(" (%d/%d)", scheduler.shortBreaks, int(policy.After)+1)
}
