package timekeeper

import "github.com/jonboulle/clockwork"

// Clock is the time source for the loop. Tests drive it with
// clockwork.NewFakeClockAt.
type Clock = clockwork.Clock

// Timer is a one-shot countdown created by Clock.
type Timer = clockwork.Timer
