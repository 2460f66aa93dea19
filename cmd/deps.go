package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/FluidXR/sinodroid/internal/app"
	"github.com/FluidXR/sinodroid/internal/config"
)

// requireTools returns a PreRunE that installs the bundled platform-tools
// on first use and prompts to nickname any new devices.
func requireTools(promptDevices bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		if err := ensureTools(a); err != nil {
			return err
		}
		if promptDevices {
			checkNewDevices(a)
		}
		return nil
	}
}

func ensureTools(a *app.App) error {
	if a.IsPlatformToolsReady() {
		return nil
	}
	fmt.Fprintf(os.Stderr, "Installing platform-tools into %s...\n", a.InstallRoot())
	if err := a.InitPlatformTools(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "platform-tools installed.")
	return nil
}

func interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// checkNewDevices prompts the user to nickname any newly discovered devices.
func checkNewDevices(a *app.App) {
	if !interactive() {
		return
	}
	devices, err := a.GetDevicesDetailed()
	if err != nil {
		return
	}

	reader := bufio.NewReader(os.Stdin)
	changed := false

	for _, d := range devices {
		if !d.IsOnline() {
			continue
		}
		if _, known := cfg.Devices[d.Serial]; known {
			continue
		}

		model := displayModel(d)
		if model == "-" {
			model = "unknown model"
		}
		fmt.Printf("\nNew device detected: %s (%s)\n", d.Serial, model)
		fmt.Print("Give it a nickname (or press Enter to skip): ")
		name, _ := reader.ReadString('\n')
		name = strings.TrimSpace(name)

		if cfg.Devices == nil {
			cfg.Devices = make(map[string]config.DeviceConfig)
		}
		dc := cfg.Devices[d.Serial]
		if name != "" {
			dc.Nickname = name
		}
		cfg.Devices[d.Serial] = dc
		changed = true
	}

	if changed {
		if err := config.SaveTo(cfg, configPath()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		}
	}
}
