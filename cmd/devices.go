package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/FluidXR/sinodroid/internal/adb"
)

var (
	devicesWatch    bool
	devicesInterval time.Duration
	devicesFastboot bool
)

var devicesCmd = &cobra.Command{
	Use:     "devices",
	Short:   "List connected Android devices",
	Args:    cobra.NoArgs,
	PreRunE: requireTools(true),
	RunE: func(cmd *cobra.Command, args []string) error {
		if devicesFastboot {
			devices, err := sinodroid.GetFastbootDevices()
			if err != nil {
				return err
			}
			printDevices(devices)
			return nil
		}
		if devicesWatch {
			return watchDevices(cmd)
		}
		devices, err := sinodroid.GetDevicesDetailed()
		if err != nil {
			return err
		}
		printDevices(devices)
		return nil
	},
}

// watchDevices polls adb and reprints the list whenever it changes.
func watchDevices(cmd *cobra.Command) error {
	ctx := cmd.Context()
	limiter := rate.NewLimiter(rate.Every(devicesInterval), 1)
	last := ""
	for {
		if err := limiter.Wait(ctx); err != nil {
			// Interrupted.
			return nil
		}
		devices, err := sinodroid.GetDevicesDetailed()
		if err != nil {
			return err
		}
		key := deviceListKey(devices)
		if key == last {
			continue
		}
		last = key
		fmt.Printf("-- %s --\n", time.Now().Format("15:04:05"))
		printDevices(devices)
	}
}

func deviceListKey(devices []adb.Device) string {
	var b strings.Builder
	for _, d := range devices {
		b.WriteString(d.Serial)
		b.WriteByte('=')
		b.WriteString(d.State)
		b.WriteByte(';')
	}
	return b.String()
}

func printDevices(devices []adb.Device) {
	if len(devices) == 0 {
		fmt.Println("No devices connected.")
		return
	}
	for _, d := range devices {
		nickname := ""
		if n := cfg.Nickname(d.Serial); n != "" {
			nickname = fmt.Sprintf(" (%s)", n)
		}

		status := d.State
		if !d.IsOnline() {
			status = strings.ToUpper(status)
		}

		fmt.Printf("%-24s %-16s [%s] [%s]%s\n",
			d.Serial, displayModel(d), d.ConnType, status, nickname)
	}
}

// displayModel turns adb's `model:Pixel_7` into "Pixel 7".
func displayModel(d adb.Device) string {
	if d.Model == "" {
		return "-"
	}
	return strings.ReplaceAll(d.Model, "_", " ")
}

var infoCmd = &cobra.Command{
	Use:     "info <serial>",
	Short:   "Show build properties of a device",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireTools(false),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := sinodroid.GetDeviceInfo(args[0])
		if err != nil {
			return err
		}
		rows := [][2]string{
			{"Serial", info.Serial},
			{"Nickname", cfg.Nickname(args[0])},
			{"Manufacturer", info.Manufacturer},
			{"Brand", info.Brand},
			{"Model", info.Model},
			{"Android", info.AndroidVersion},
			{"SDK", info.SDKVersion},
			{"Security patch", info.SecurityPatch},
			{"Build", info.BuildNumber},
			{"Board", info.Board},
			{"CPU", info.CPU},
			{"Resolution", info.Resolution},
			{"Kernel", info.KernelVersion},
		}
		for _, r := range rows {
			if r[1] == "" {
				continue
			}
			fmt.Printf("%-15s %s\n", r[0]+":", r[1])
		}
		return nil
	},
}

func init() {
	devicesCmd.Flags().BoolVarP(&devicesWatch, "watch", "w", false, "keep polling and print changes")
	devicesCmd.Flags().DurationVar(&devicesInterval, "interval", 2*time.Second, "poll interval for --watch")
	devicesCmd.Flags().BoolVar(&devicesFastboot, "fastboot", false, "list devices in bootloader mode instead")
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(infoCmd)
}
