package tray

import "fyne.io/fyne/v2"

// Notifier shows scheduler notifications through the fyne app, which uses the
// platform's native notification service.
type Notifier struct {
	App fyne.App
}

func (notifier Notifier) Notify(summary, body string) {
	fyne.Do(func() {
		notifier.App.SendNotification(fyne.NewNotification(summary, body))
	})
}
