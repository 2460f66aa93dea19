package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/FluidXR/sinodroid/internal/app"
	"github.com/FluidXR/sinodroid/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve adb tools to an MCP client over stdio",
	Long: `Speaks the Model Context Protocol on stdin/stdout so an agent can list
devices, read device info, connect over Wi-Fi and run adb commands.
Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		if err := a.InitPlatformTools(); err != nil {
			// Reported through the platform_tools_status tool.
			log.Warn().Err(err).Msg("platform-tools not available")
		}
		defer a.Shutdown()
		return mcp.NewServer(a, app.Version, log).Serve(cmd.Context(), os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
