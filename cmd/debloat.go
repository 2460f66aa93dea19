package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FluidXR/sinodroid/internal/debloat"
)

var (
	debloatBrand  string
	debloatSearch string
	debloatYes    bool
)

var debloatCmd = &cobra.Command{
	Use:   "debloat",
	Short: "Remove vendor preinstalled apps",
}

var debloatListCmd = &cobra.Command{
	Use:   "list",
	Short: "List packages in the built-in catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		var pkgs []debloat.Package
		switch {
		case debloatSearch != "":
			pkgs = a.SearchDebloat(debloatSearch)
		default:
			pkgs = a.DebloatCatalog(debloatBrand)
		}
		if len(pkgs) == 0 {
			fmt.Printf("No packages found. Known brands: %s\n", strings.Join(a.DebloatBrands(), ", "))
			return nil
		}
		for _, p := range pkgs {
			fmt.Printf("%-8s %-45s %s\n", p.Brand, p.Package, p.Name)
		}
		return nil
	},
}

var debloatRunCmd = &cobra.Command{
	Use:   "run <serial> [package...]",
	Short: "Uninstall packages for the current user",
	Long: `Uninstalls packages with 'pm uninstall --user 0'. Without package names, every
catalog entry for the device's brand is removed. Packages that are not
installed are skipped, and a failure on one package does not stop the rest.
Removed apps can be restored with 'adb shell cmd package install-existing <pkg>'.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: requireTools(false),
	RunE: func(cmd *cobra.Command, args []string) error {
		serial, pkgs := args[0], args[1:]
		if !debloatYes && interactive() {
			target := strings.Join(pkgs, ", ")
			if target == "" {
				target = "all catalog packages for this device's brand"
			}
			fmt.Printf("Remove %s from %s? [y/N] ", target, serial)
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			answer = strings.TrimSpace(strings.ToLower(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		res, err := sinodroid.Debloat(serial, pkgs)
		if err != nil {
			return err
		}
		for _, o := range res.Outcomes {
			switch o.Status {
			case debloat.Removed:
				fmt.Printf("  removed       %s\n", o.Package.Package)
			case debloat.NotInstalled:
				fmt.Printf("  not installed %s\n", o.Package.Package)
			default:
				fmt.Printf("  skipped       %s: %s\n", o.Package.Package, o.Error)
			}
		}
		fmt.Printf("\nRemoved %d, not installed %d, skipped %d\n", res.Removed, res.NotInstalled, res.Skipped)
		return nil
	},
}

func init() {
	debloatListCmd.Flags().StringVarP(&debloatBrand, "brand", "b", "", "only show this brand")
	debloatListCmd.Flags().StringVarP(&debloatSearch, "search", "s", "", "match name, package or description")
	debloatRunCmd.Flags().BoolVarP(&debloatYes, "yes", "y", false, "do not ask for confirmation")
	debloatCmd.AddCommand(debloatListCmd)
	debloatCmd.AddCommand(debloatRunCmd)
	rootCmd.AddCommand(debloatCmd)
}
