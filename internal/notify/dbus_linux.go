package notify

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
)

const (
	notificationsService   = "org.freedesktop.Notifications"
	notificationsPath      = dbus.ObjectPath("/org/freedesktop/Notifications")
	notificationsInterface = "org.freedesktop.Notifications"

	// expireDefault lets the notification server pick the timeout.
	expireDefault = int32(-1)
)

// dbusBackend talks to the freedesktop notification service on the session bus.
type dbusBackend struct {
	appName string

	mu   sync.Mutex
	conn *dbus.Conn
}

func newBackend(appName string) (backend, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, errors.Wrap(err, "connect session bus")
	}
	return &dbusBackend{appName: appName, conn: conn}, nil
}

func (backend *dbusBackend) send(summary, body string) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	if backend.conn == nil || !backend.conn.Connected() {
		conn, err := dbus.ConnectSessionBus()
		if err != nil {
			return errors.Wrap(err, "reconnect session bus")
		}
		backend.conn = conn
	}

	call := backend.conn.Object(notificationsService, notificationsPath).Call(
		notificationsInterface+".Notify", 0,
		backend.appName,
		uint32(0),
		"",
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{},
		expireDefault,
	)
	if call.Err != nil {
		return errors.Wrap(call.Err, "Notify")
	}
	return nil
}
