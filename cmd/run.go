package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"restwatch/internal/config"
	"restwatch/internal/core/model"
	"restwatch/internal/core/timekeeper"
	"restwatch/internal/logger"
	"restwatch/internal/notify"
	"restwatch/internal/platform"
	"restwatch/internal/ui/tray"
)

func runScheduler(cmd *cobra.Command, _ []string) error {
	service := platform.NewService()
	path, err := resolveConfigPath(service)
	if err != nil {
		return err
	}
	settings, err := config.Load(path)
	if err != nil {
		return err
	}

	if daemonMode && !platform.Detached() {
		return detach(cmd, settings)
	}

	logOptions := logger.Options{}
	if daemonMode {
		stateDir, err := service.GetStateDir()
		if err != nil {
			return err
		}
		logOptions.File = filepath.Join(stateDir, appName, appName+".log")
	}
	log, err := logger.New(logOptions)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	return logFailure(log, serve(cmd.Context(), path, settings, log))
}

// detach checks what can be checked from the terminal, then starts the detached
// child and returns.
func detach(cmd *cobra.Command, settings model.SchedulerConfig) error {
	if platform.InstanceRunning(appName) {
		return errors.WithHint(platform.ErrAlreadyRunning, "stop the running instance first")
	}
	if err := checkIdle(cmd.Context(), settings); err != nil {
		return err
	}
	pid, err := platform.Detach(os.Args[1:])
	if err != nil {
		return err
	}
	cmd.Printf("%s running in the background (pid %d)\n", appName, pid)
	return nil
}

func serve(ctx context.Context, path string, settings model.SchedulerConfig, log *zap.SugaredLogger) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	log.Infow("starting",
		"config", path,
		"interval", timekeeper.FormatDuration(settings.WorkInterval),
		"short_break", timekeeper.FormatDuration(settings.ShortBreak),
		"long_break", longBreakField(settings.LongBreak),
		"idle_timeout", timekeeper.FormatDuration(settings.IdleTimeout),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if trayMode {
		return runTray(ctx, path, settings, log)
	}
	return runKeeper(ctx, settings, notify.New(appName, log), log, nil)
}

// logFailure records err in the log before it is returned. A detached process
// writes stderr to the null device, so the log is the only trace.
func logFailure(log *zap.SugaredLogger, err error) error {
	if err != nil {
		log.Errorw("stopped with error", "error", err)
	}
	return err
}

// runTray runs the scheduler behind a system tray icon. fyne owns the main
// goroutine until the scheduler stops or Quit is chosen.
func runTray(ctx context.Context, path string, settings model.SchedulerConfig, log *zap.SugaredLogger) error {
	fyneApp := app.NewWithID("io.restwatch.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	notifier := tray.Notifier{App: fyneApp}
	manager := tray.New(desktopApp, appName, tray.Callbacks{
		OnSettings: func() {
			err := openSettings(fyneApp, path, func() {
				log.Infow("settings saved, restart to apply them", "config", path)
				notifier.Notify("Settings saved", "Restart "+appName+" to apply them")
			})
			if err != nil {
				log.Warnw("open settings", "error", err)
			}
		},
		OnQuit: cancel,
	})

	done := make(chan error, 1)
	go func() {
		done <- runKeeper(ctx, settings, notifier, log, func(event timekeeper.Event) {
			fyne.Do(func() {
				manager.Apply(event)
			})
		})
		fyne.Do(fyneApp.Quit)
	}()

	fyneApp.Run()
	cancel()
	return <-done
}

// runKeeper starts idle detection when configured and runs the scheduler until
// ctx is done. observe, when set, receives every scheduler event.
func runKeeper(ctx context.Context, settings model.SchedulerConfig, notifier timekeeper.Notifier, log *zap.SugaredLogger, observe func(timekeeper.Event)) error {
	var idle <-chan timekeeper.IdleKind
	if settings.IdleEnabled() {
		source, err := watchIdle(ctx, settings, log)
		if err != nil {
			return err
		}
		idle = source
	}

	keeper := timekeeper.New(settings, notifier, timekeeper.Config{Logger: log})
	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			logEvent(log, event)
			if observe != nil {
				observe(event)
			}
		}
	}()

	if err := keeper.Run(ctx, idle); err != nil {
		return err
	}
	log.Info("stopped")
	return nil
}

func watchIdle(ctx context.Context, settings model.SchedulerConfig, log *zap.SugaredLogger) (<-chan timekeeper.IdleKind, error) {
	source, err := platform.NewIdleSource(log).Watch(ctx, settings.IdleTimeout)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "start idle detection"),
			"set idle-timeout to 0 or remove it to run without idle detection",
		)
	}
	return source, nil
}

// checkIdle subscribes to the idle source once and drops the subscription.
func checkIdle(ctx context.Context, settings model.SchedulerConfig) error {
	if !settings.IdleEnabled() {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	_, err := watchIdle(ctx, settings, zap.NewNop().Sugar())
	return err
}

func logEvent(log *zap.SugaredLogger, event timekeeper.Event) {
	remaining := timekeeper.FormatDuration(event.Remaining)
	switch event.Type {
	case timekeeper.EventPhaseChange:
		log.Infow("phase changed", "phase", event.Phase, "duration", remaining)
	case timekeeper.EventPaused:
		log.Infow("away, work timer paused", "remaining", remaining)
	case timekeeper.EventResumed:
		log.Infow("back, work timer resumed", "remaining", remaining)
	case timekeeper.EventIdleIgnored:
		log.Debugw("idle signal ignored", "signal", event.Message, "phase", event.Phase)
	}
}

func longBreakField(policy *model.LongBreakPolicy) string {
	if policy == nil {
		return "off"
	}
	return timekeeper.FormatDuration(policy.Duration) + " after " + strconv.Itoa(int(policy.After)) + " short breaks"
}
