package platform

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"restwatch/internal/core/timekeeper"
)

const (
	mutterIdleService   = "org.gnome.Mutter.IdleMonitor"
	mutterIdleInterface = "org.gnome.Mutter.IdleMonitor"
	mutterIdlePath      = dbus.ObjectPath("/org/gnome/Mutter/IdleMonitor/Core")
	mutterWatchFired    = mutterIdleInterface + ".WatchFired"
)

// mutterIdleSource uses the GNOME idle monitor on the session bus. An idle watch
// fires once the user has been inactive for the timeout; a one-shot user-active
// watch is added after each idle period to learn when input returns.
type mutterIdleSource struct {
	logger *zap.SugaredLogger
}

func (source *mutterIdleSource) Watch(ctx context.Context, timeout time.Duration) (<-chan timekeeper.IdleKind, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, errors.Wrap(err, "connect session bus")
	}

	err = conn.AddMatchSignalContext(ctx,
		dbus.WithMatchObjectPath(mutterIdlePath),
		dbus.WithMatchInterface(mutterIdleInterface),
		dbus.WithMatchMember("WatchFired"),
	)
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "subscribe to WatchFired")
	}
	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)

	monitor := conn.Object(mutterIdleService, mutterIdlePath)
	var idleWatch uint32
	err = monitor.CallWithContext(ctx, mutterIdleInterface+".AddIdleWatch", 0, uint64(timeout.Milliseconds())).Store(&idleWatch)
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "add idle watch")
	}

	events := make(chan timekeeper.IdleKind, 1)
	go source.run(ctx, conn, monitor, &watchTracker{idleWatch: idleWatch}, signals, events)
	return events, nil
}

func (source *mutterIdleSource) run(ctx context.Context, conn *dbus.Conn, monitor dbus.BusObject, tracker *watchTracker, signals <-chan *dbus.Signal, events chan<- timekeeper.IdleKind) {
	defer close(events)
	defer conn.Close()
	defer source.removeWatches(monitor, tracker)

	for {
		var signal *dbus.Signal
		select {
		case <-ctx.Done():
			return
		case received, ok := <-signals:
			if !ok {
				source.logger.Warn("session bus closed, idle detection stopped")
				return
			}
			signal = received
		}

		id, ok := firedWatchID(signal)
		if !ok {
			continue
		}
		kind, changed := tracker.fired(id)
		if !changed {
			continue
		}
		if kind == timekeeper.Idled {
			var activeWatch uint32
			if err := monitor.CallWithContext(ctx, mutterIdleInterface+".AddUserActiveWatch", 0).Store(&activeWatch); err != nil {
				source.logger.Warnw("add user active watch", "error", err)
				tracker.reset()
				continue
			}
			tracker.activeWatch = activeWatch
		}

		select {
		case events <- kind:
		case <-ctx.Done():
			return
		}
	}
}

func (source *mutterIdleSource) removeWatches(monitor dbus.BusObject, tracker *watchTracker) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for _, id := range tracker.watches() {
		if err := monitor.CallWithContext(ctx, mutterIdleInterface+".RemoveWatch", 0, id).Err; err != nil {
			source.logger.Debugw("remove idle watch", "id", id, "error", err)
		}
	}
}

func firedWatchID(signal *dbus.Signal) (uint32, bool) {
	if signal == nil || signal.Name != mutterWatchFired || len(signal.Body) != 1 {
		return 0, false
	}
	id, ok := signal.Body[0].(uint32)
	return id, ok
}

// watchTracker maps WatchFired ids onto idle transitions.
type watchTracker struct {
	idleWatch   uint32
	activeWatch uint32
	idle        bool
}

func (tracker *watchTracker) fired(id uint32) (timekeeper.IdleKind, bool) {
	switch {
	case id == tracker.idleWatch && !tracker.idle:
		tracker.idle = true
		return timekeeper.Idled, true
	case tracker.idle && tracker.activeWatch != 0 && id == tracker.activeWatch:
		tracker.idle = false
		tracker.activeWatch = 0
		return timekeeper.Resumed, true
	default:
		return 0, false
	}
}

func (tracker *watchTracker) reset() {
	tracker.idle = false
	tracker.activeWatch = 0
}

func (tracker *watchTracker) watches() []uint32 {
	ids := []uint32{tracker.idleWatch}
	if tracker.activeWatch != 0 {
		ids = append(ids, tracker.activeWatch)
	}
	return ids
}
