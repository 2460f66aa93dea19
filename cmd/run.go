package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var runAll bool

var runCmd = &cobra.Command{
	Use:   "run -- <adb args>",
	Short: "Run adb with arbitrary arguments",
	Long: `Runs the bundled adb with the given arguments and prints its output.

Example: sinodroid run -- -s emulator-5554 shell getprop ro.product.model
With --all, the arguments are run against every online device in parallel.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: requireTools(false),
	RunE: func(cmd *cobra.Command, args []string) error {
		if runAll {
			results, err := sinodroid.RunOnAllDevices(args)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("No online devices.")
				return nil
			}
			failed := 0
			for _, r := range results {
				fmt.Printf("== %s ==\n", r.Serial)
				if r.Error != "" {
					failed++
					fmt.Fprintf(os.Stderr, "  error: %s\n", r.Error)
					continue
				}
				fmt.Print(r.Output)
				if !strings.HasSuffix(r.Output, "\n") {
					fmt.Println()
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d devices failed", failed, len(results))
			}
			return nil
		}
		out, err := sinodroid.ExecuteAdbCommand(args)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runAll, "all", false, "run on every online device")
	rootCmd.AddCommand(runCmd)
}
