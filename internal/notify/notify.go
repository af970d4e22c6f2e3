// Package notify shows scheduler messages as desktop notifications.
package notify

import (
	"go.uber.org/zap"
)

// LogNotifier writes notifications to the log. It is the fallback when no
// desktop notification service is reachable.
type LogNotifier struct {
	Logger *zap.SugaredLogger
}

func (notifier LogNotifier) Notify(summary, body string) {
	if notifier.Logger == nil {
		return
	}
	notifier.Logger.Infow(summary, "body", body)
}

// New returns the platform's desktop notifier, or a LogNotifier when none can be
// reached.
func New(appName string, logger *zap.SugaredLogger) *Notifier {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	desktop, err := newBackend(appName)
	if err != nil {
		logger.Warnw("desktop notifications unavailable, logging them instead", "error", err)
		desktop = nil
	}
	return &Notifier{backend: desktop, logger: logger}
}

type backend interface {
	send(summary, body string) error
}

// Notifier delivers to a desktop backend and logs what it sends. Delivery
// errors are logged and never returned.
type Notifier struct {
	backend backend
	logger  *zap.SugaredLogger
}

func (notifier *Notifier) Notify(summary, body string) {
	if notifier.backend == nil {
		LogNotifier{Logger: notifier.logger}.Notify(summary, body)
		return
	}
	notifier.logger.Debugw("notify", "summary", summary, "body", body)
	if err := notifier.backend.send(summary, body); err != nil {
		notifier.logger.Warnw("notification failed", "summary", summary, "error", err)
	}
}
