package cmd

import (
	"github.com/spf13/cobra"

	"github.com/FluidXR/sinodroid/internal/gui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the desktop window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		return gui.Run(a, log)
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
