package main

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"restwatch/internal/platform"
)

var autostartTray bool

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Start restwatch when you log in",
}

var autostartEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Register restwatch to start at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		execPath, err := os.Executable()
		if err != nil {
			return errors.Wrap(err, "locate executable")
		}
		args, err := autostartArgs()
		if err != nil {
			return err
		}
		if err := platform.NewService().EnableAutostart(appName, execPath, args...); err != nil {
			return err
		}
		cmd.Println("autostart enabled")
		return nil
	},
}

var autostartDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop starting restwatch at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := platform.NewService().DisableAutostart(appName); err != nil {
			return err
		}
		cmd.Println("autostart disabled")
		return nil
	},
}

func init() {
	autostartEnableCmd.Flags().BoolVar(&autostartTray, "tray", false, "start with the system tray icon")
	autostartCmd.AddCommand(autostartEnableCmd, autostartDisableCmd)
}

// autostartArgs returns the flags the login item passes to restwatch. A relative
// --config is made absolute since the session starts elsewhere.
func autostartArgs() ([]string, error) {
	var args []string
	if configPath != "" {
		absolute, err := filepath.Abs(configPath)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %s", configPath)
		}
		args = append(args, "--config", absolute)
	}
	if autostartTray {
		args = append(args, "--tray")
	}
	return args, nil
}
