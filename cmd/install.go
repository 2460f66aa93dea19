package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FluidXR/sinodroid/internal/app"
)

var installForce bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Extract the bundled platform-tools",
	Long: `Extracts the platform-tools archive shipped with sinodroid into the data
directory. Does nothing if adb is already installed, unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		if installForce {
			err = a.ReinstallPlatformTools()
		} else {
			err = a.InitPlatformTools()
		}
		if err != nil {
			return err
		}
		ts, err := a.Toolset()
		if err != nil {
			return err
		}
		fmt.Printf("adb:      %s\n", ts.AdbPath)
		if ts.FastbootPath != "" {
			fmt.Printf("fastboot: %s\n", ts.FastbootPath)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether platform-tools are installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Install root: %s\n", a.InstallRoot())
		ts, err := a.Toolset()
		if err != nil {
			fmt.Println("Status:       not installed (run 'sinodroid install')")
			return nil
		}
		fmt.Println("Status:       installed")
		fmt.Printf("adb:          %s\n", ts.AdbPath)
		if ts.FastbootPath != "" {
			fmt.Printf("fastboot:     %s\n", ts.FastbootPath)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show sinodroid and adb versions",
	Args:    cobra.NoArgs,
	PreRunE: requireTools(false),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("sinodroid %s\n\n", app.Version)
		out, err := sinodroid.GetAdbVersion()
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var shutdownCmd = &cobra.Command{
	Use:   "shutdown",
	Short: "Stop the adb server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		a.Shutdown()
		fmt.Println("adb server stopped.")
		return nil
	},
}

func init() {
	installCmd.Flags().BoolVar(&installForce, "force", false, "remove and re-extract an existing install")
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(shutdownCmd)
}
