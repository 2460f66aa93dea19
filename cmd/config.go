package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FluidXR/sinodroid/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sinodroid configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Config file: %s\n\n", configPath())
		fmt.Printf("Data directory:  %s\n", cfg.ExpandDataDir())
		fmt.Printf("Install root:    %s\n", cfg.InstallRoot())
		if cfg.ResourceDir != "" {
			fmt.Printf("Resource dir:    %s\n", cfg.ResourceDir)
		}
		fmt.Printf("Command timeout: %s\n", cfg.CommandTimeout)
		fmt.Printf("Log level:       %s\n", cfg.LogLevel)
		if cfg.LogFile != "" {
			fmt.Printf("Log file:        %s\n", cfg.LogFile)
		}
		fmt.Printf("History limit:   %d\n", cfg.HistoryLimit)
		fmt.Printf("\nDevices:\n")
		if len(cfg.Devices) == 0 {
			fmt.Println("  (none configured)")
		}
		for serial, dc := range cfg.Devices {
			fmt.Printf("  - %s", serial)
			if dc.Nickname != "" {
				fmt.Printf(" (%s)", dc.Nickname)
			}
			fmt.Println()
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
		if err := config.SaveTo(config.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Printf("Config created at %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long:  "Valid keys: data_dir, resource_dir, command_timeout, log_level, log_file, history_limit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.SaveTo(cfg, configPath()); err != nil {
			return err
		}
		fmt.Printf("Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var configNicknameCmd = &cobra.Command{
	Use:   "nickname <serial> <name>",
	Short: "Set a nickname for a device",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		serial := args[0]
		name := args[1]

		dc := cfg.Devices[serial]
		dc.Nickname = name
		cfg.Devices[serial] = dc
		if err := config.SaveTo(cfg, configPath()); err != nil {
			return err
		}
		fmt.Printf("Set nickname for %s: %s\n", serial, name)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configNicknameCmd)
	rootCmd.AddCommand(configCmd)
}
