package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window edits the config file. Changes take effect the next time the scheduler
// starts.
type Window struct {
	window    fyne.Window
	onSave    func(Settings) error
	interval  *widget.Entry
	shortDur  *widget.Entry
	longCheck *widget.Check
	longDur   *widget.Entry
	longAfter *widget.Entry
	idle      *widget.Entry
	errLabel  *widget.Label
}

// New creates a settings window. onSave runs when Save is pressed; the window
// closes only when it returns nil.
func New(app fyne.App, title string, settings Settings, onSave func(Settings) error) *Window {
	window := app.NewWindow(title)

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		interval:  widget.NewEntry(),
		shortDur:  widget.NewEntry(),
		longDur:   widget.NewEntry(),
		longAfter: widget.NewEntry(),
		idle:      widget.NewEntry(),
		errLabel:  widget.NewLabel(""),
	}
	prefs.idle.SetPlaceHolder("off")
	prefs.errLabel.Importance = widget.DangerImportance
	prefs.errLabel.Wrapping = fyne.TextWrapWord
	prefs.longCheck = widget.NewCheck("Long breaks", prefs.setLongEnabled)

	form := widget.NewForm(
		widget.NewFormItem("Work interval", prefs.interval),
		widget.NewFormItem("Short break", prefs.shortDur),
		widget.NewFormItem("", prefs.longCheck),
		widget.NewFormItem("Long break", prefs.longDur),
		widget.NewFormItem("Short breaks before long", prefs.longAfter),
		widget.NewFormItem("Idle timeout", prefs.idle),
	)
	hint := widget.NewLabel("Durations look like 25m, 1h 30m or 90s. Changes apply after a restart.")
	hint.Wrapping = fyne.TextWrapWord

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", window.Close)
	buttons := container.NewHBox(layout.NewSpacer(), cancelButton, saveButton)

	window.SetContent(container.NewBorder(nil, container.NewVBox(prefs.errLabel, buttons), nil, nil,
		container.NewVBox(form, hint)))
	window.Resize(fyne.NewSize(420, 360))

	prefs.UpdateSettings(settings)
	return prefs
}

// SetMaster makes closing this window quit the app.
func (prefs *Window) SetMaster() {
	prefs.window.SetMaster()
}

// ShowError puts message above the buttons until the next save attempt.
func (prefs *Window) ShowError(message string) {
	prefs.errLabel.SetText(message)
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces the form values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.interval.SetText(settings.Interval)
	prefs.shortDur.SetText(settings.ShortBreak)
	prefs.longDur.SetText(settings.LongBreak)
	prefs.longAfter.SetText(settings.LongBreakAfter)
	prefs.idle.SetText(settings.IdleTimeout)
	prefs.longCheck.SetChecked(settings.LongBreakEnabled)
	prefs.setLongEnabled(settings.LongBreakEnabled)
	prefs.errLabel.SetText("")
}

func (prefs *Window) settings() Settings {
	return Settings{
		Interval:         prefs.interval.Text,
		ShortBreak:       prefs.shortDur.Text,
		LongBreakEnabled: prefs.longCheck.Checked,
		LongBreak:        prefs.longDur.Text,
		LongBreakAfter:   prefs.longAfter.Text,
		IdleTimeout:      prefs.idle.Text,
	}
}

func (prefs *Window) setLongEnabled(enabled bool) {
	for _, entry := range []*widget.Entry{prefs.longDur, prefs.longAfter} {
		if enabled {
			entry.Enable()
		} else {
			entry.Disable()
		}
	}
}

func (prefs *Window) handleSave() {
	settings := prefs.settings()
	if _, err := settings.SchedulerConfig(); err != nil {
		prefs.errLabel.SetText(err.Error())
		return
	}
	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			prefs.errLabel.SetText(err.Error())
			return
		}
	}
	prefs.window.Close()
}
