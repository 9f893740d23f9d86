package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/barysiuk/reincheck/internal/updates"
	"github.com/barysiuk/reincheck/internal/versions"
)

var checkCmd = &cobra.Command{
	Use:   "check [harness...]",
	Short: "Check for harness updates",
	Long: `Compare each harness's installed version against the latest published one.

Version probes are read-only and run in parallel. With no arguments,
every harness from the generated config (or the active preset) is
checked. Harnesses whose probes fail are reported, not fatal.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		cfg, err := d.config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		targets, err := d.checkTargets(args, cfg)
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			return fmt.Errorf("no harnesses to check")
		}
		debugf("checking %d harnesses", len(targets))

		results := updates.NewChecker(d.runner).CheckAll(targets)

		format, _ := cmd.Flags().GetString("format")
		if format != "table" {
			return writeStructured(os.Stdout, format, results)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Harness\tInstalled\tLatest\tStatus")
		for _, r := range results {
			installed := versions.Extract(r.CurrentVersion)
			if installed == "" {
				installed = "-"
			}
			latest := versions.Extract(r.LatestVersion)
			if latest == "" {
				latest = "-"
			}

			status := "up to date"
			switch {
			case r.CurrentStatus != "success":
				status = "not installed"
			case r.LatestStatus != "success":
				status = "check failed"
			case r.UpdateAvailable:
				status = "update available"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, installed, latest, status)
		}
		return w.Flush()
	},
}

func init() {
	addFormatFlag(checkCmd)
	rootCmd.AddCommand(checkCmd)
}
