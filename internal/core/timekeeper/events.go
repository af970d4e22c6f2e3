package timekeeper

import "time"

// Phase represents the current scheduler mode.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// IdleKind is a signal from the idle source.
type IdleKind int

const (
	Idled IdleKind = iota + 1
	Resumed
)

func (kind IdleKind) String() string {
	switch kind {
	case Idled:
		return "idled"
	case Resumed:
		return "resumed"
	default:
		return "unknown"
	}
}

// EffectType defines what the loop has to do after a transition.
type EffectType string

const (
	EffectArm    EffectType = "arm"
	EffectDisarm EffectType = "disarm"
	EffectNotify EffectType = "notify"
)

// Effect is an instruction produced by the Scheduler and carried out by the TimeKeeper.
type Effect struct {
	Type     EffectType
	Duration time.Duration
	Summary  string
	Body     string
}

func arm(duration time.Duration) Effect {
	return Effect{Type: EffectArm, Duration: duration}
}

func disarm() Effect {
	return Effect{Type: EffectDisarm}
}

func notify(summary, body string) Effect {
	return Effect{Type: EffectNotify, Summary: summary, Body: body}
}

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventPhaseChange EventType = "phase_change"
	EventPaused      EventType = "paused"
	EventResumed     EventType = "resumed"
	EventIdleIgnored EventType = "idle_ignored"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type      EventType
	Phase     Phase
	Remaining time.Duration
	Message   string
	At        time.Time
}
