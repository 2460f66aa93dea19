package cmd

import (
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	connectPort     int
	historyCommands bool
	historyLimit    int
	historyForget   string
)

var connectCmd = &cobra.Command{
	Use:   "connect <ip[:port]>",
	Short: "Connect to a device over Wi-Fi",
	Long: `Connects adb to a device with wireless debugging enabled.
Successful addresses are remembered; see 'sinodroid history'.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: requireTools(false),
	RunE: func(cmd *cobra.Command, args []string) error {
		host, port := args[0], connectPort
		if h, p, err := net.SplitHostPort(args[0]); err == nil {
			n, err := strconv.Atoi(p)
			if err != nil {
				return fmt.Errorf("invalid port %q", p)
			}
			host, port = h, n
		}
		addr, err := sinodroid.ConnectWiFi(host, port)
		if err != nil {
			return err
		}
		fmt.Printf("Connected to %s\n", addr)
		return nil
	},
}

var disconnectCmd = &cobra.Command{
	Use:     "disconnect [ip:port]",
	Short:   "Disconnect a Wi-Fi device, or all of them",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: requireTools(false),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := ""
		if len(args) == 1 {
			addr = args[0]
		}
		out, err := sinodroid.DisconnectWiFi(addr)
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimSpace(out))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent Wi-Fi addresses or adb commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}

		if historyForget != "" {
			if err := a.ForgetWiFi(historyForget); err != nil {
				return err
			}
			fmt.Printf("Forgot %s\n", historyForget)
			return nil
		}

		if historyCommands {
			invs, err := a.RecentCommands(historyLimit)
			if err != nil {
				return err
			}
			if len(invs) == 0 {
				fmt.Println("No commands recorded.")
				return nil
			}
			for _, inv := range invs {
				line := fmt.Sprintf("%s  %-8s exit=%-3d %s %s",
					inv.StartedAt.Format("2006-01-02 15:04:05"),
					inv.Duration.Round(time.Millisecond), inv.ExitCode,
					filepath.Base(inv.Program), strings.Join(inv.Args, " "))
				if inv.Err != "" {
					line += "  (" + inv.Err + ")"
				}
				fmt.Println(line)
			}
			return nil
		}

		conns, err := a.WiFiHistory()
		if err != nil {
			return err
		}
		if len(conns) == 0 {
			fmt.Println("No Wi-Fi connections recorded.")
			return nil
		}
		for _, c := range conns {
			fmt.Printf("%-22s %s\n", c.Address, c.ConnectedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	connectCmd.Flags().IntVarP(&connectPort, "port", "p", 5555, "adb port when not given in the address")
	historyCmd.Flags().BoolVar(&historyCommands, "commands", false, "show the adb command log instead")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of commands to show")
	historyCmd.Flags().StringVar(&historyForget, "forget", "", "remove an address from the Wi-Fi history")
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
	rootCmd.AddCommand(historyCmd)
}
