package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"restwatch/internal/config"
	"restwatch/internal/core/model"
	"restwatch/internal/platform"
	"restwatch/internal/storage"
	"restwatch/internal/ui/preferences"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Edit the config file in a settings window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := resolveConfigPath(platform.NewService())
		if err != nil {
			return err
		}

		fyneApp := app.NewWithID("io.restwatch.app")
		window, err := newSettingsWindow(fyneApp, path, func() {
			cmd.Printf("wrote %s\n", path)
		})
		if err != nil {
			return err
		}
		window.SetMaster()
		window.Show()
		fyneApp.Run()
		return nil
	},
}

// openSettings shows the settings window for path inside a running fyne app.
func openSettings(fyneApp fyne.App, path string, onSaved func()) error {
	window, err := newSettingsWindow(fyneApp, path, onSaved)
	if err != nil {
		return err
	}
	window.Show()
	return nil
}

func newSettingsWindow(fyneApp fyne.App, path string, onSaved func()) (*preferences.Window, error) {
	current, problem := loadForEditing(path)
	if problem != nil && !errors.Is(problem, model.ErrInvalidConfig) {
		return nil, problem
	}

	window := preferences.New(fyneApp, appName+" settings", preferences.FromConfig(current), func(settings preferences.Settings) error {
		if err := saveSettings(path, settings); err != nil {
			return err
		}
		if onSaved != nil {
			onSaved()
		}
		return nil
	})
	if problem != nil {
		window.ShowError(problem.Error() + ". Showing the defaults; Save replaces the file.")
	}
	return window, nil
}

// loadForEditing reads path for the settings form. A missing file yields the
// defaults. An invalid one yields the defaults together with the problem, marked
// with model.ErrInvalidConfig, so the form can be used to fix it.
func loadForEditing(path string) (model.SchedulerConfig, error) {
	current, err := config.Load(path)
	switch {
	case err == nil:
		return current, nil
	case errors.Is(err, config.ErrConfigNotFound):
		return model.DefaultSchedulerConfig(), nil
	case errors.Is(err, model.ErrInvalidConfig):
		return model.DefaultSchedulerConfig(), err
	default:
		return model.SchedulerConfig{}, err
	}
}

func saveSettings(path string, settings preferences.Settings) error {
	updated, err := settings.SchedulerConfig()
	if err != nil {
		return err
	}
	return storage.SaveConfig(path, updated, true)
}
