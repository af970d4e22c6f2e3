package main

import (
	"github.com/spf13/cobra"

	"restwatch/internal/core/model"
	"restwatch/internal/platform"
	"restwatch/internal/storage"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the default settings",
	Long: `Write a config file with the default settings to path, or to the --config
location, or to the default config location. Files ending in .yaml or .yml are
written as YAML, everything else as TOML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath(platform.NewService())
		if err != nil {
			return err
		}
		if len(args) == 1 {
			path = args[0]
		}
		if err := storage.SaveConfig(path, model.DefaultSchedulerConfig(), initForce); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
}
