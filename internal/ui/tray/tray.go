package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"restwatch/internal/core/timekeeper"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnSettings func()
	OnQuit     func()
}

// Manager keeps the system tray menu and icon in step with the scheduler. All
// methods must run on the fyne main goroutine.
type Manager struct {
	app        desktop.App
	title      string
	statusItem *fyne.MenuItem
	callbacks  Callbacks
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.app.SetSystemTrayIcon(theme.VisibilityIcon())
	manager.refreshMenu()
	return manager
}

// Apply updates the status line and icon for a scheduler event.
func (manager *Manager) Apply(event timekeeper.Event) {
	status, ok := StatusText(event)
	if !ok {
		return
	}
	manager.statusItem.Label = "Status: " + status
	manager.app.SetSystemTrayIcon(iconFor(event))
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	settings := fyne.NewMenuItem("Settings...", func() {
		if manager.callbacks.OnSettings != nil {
			manager.callbacks.OnSettings()
		}
	})
	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title, manager.statusItem, fyne.NewMenuItemSeparator(), settings, quit))
}

func iconFor(event timekeeper.Event) fyne.Resource {
	switch {
	case event.Type == timekeeper.EventPaused:
		return theme.MediaPauseIcon()
	case event.Phase == timekeeper.PhaseWork:
		return theme.VisibilityIcon()
	default:
		return theme.VisibilityOffIcon()
	}
}
