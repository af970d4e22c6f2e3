package main

import (
	"github.com/spf13/cobra"

	"restwatch/internal/config"
	"restwatch/internal/platform"
)

var (
	configPath string
	daemonMode bool
	trayMode   bool
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Break reminder that pauses while you are away",
	Long: `restwatch alternates work intervals with short and long breaks and shows a
desktop notification whenever a break starts. When an idle timeout is
configured, the work countdown stops while you are away from the keyboard
and picks up where it left off when you return.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScheduler,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default <config dir>/restwatch/restwatch.toml)")
	rootCmd.Flags().BoolVarP(&daemonMode, "daemon", "d", false, "detach from the terminal and log to the state directory")
	rootCmd.Flags().BoolVar(&trayMode, "tray", false, "show status in the system tray")

	rootCmd.AddCommand(initCmd, configureCmd, autostartCmd)
}

// resolveConfigPath returns --config, or the default location under the user's
// config directory.
func resolveConfigPath(service platform.Service) (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return config.DefaultPath(configDir, appName), nil
}
