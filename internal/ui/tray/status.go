package tray

import (
	"fmt"

	"restwatch/internal/core/timekeeper"
)

const clockLayout = "15:04"

// StatusText describes an event for the tray status line. It returns false for
// events that leave the status unchanged.
func StatusText(event timekeeper.Event) (string, bool) {
	until := event.At.Add(event.Remaining).Format(clockLayout)

	switch event.Type {
	case timekeeper.EventPaused:
		return fmt.Sprintf("away, %s of work left", timekeeper.FormatRemaining(event.Remaining)), true
	case timekeeper.EventPhaseChange, timekeeper.EventResumed:
	default:
		return "", false
	}

	switch event.Phase {
	case timekeeper.PhaseShortBreak:
		return "short break until " + until, true
	case timekeeper.PhaseLongBreak:
		return "long break until " + until, true
	default:
		return "working, next break at " + until, true
	}
}
