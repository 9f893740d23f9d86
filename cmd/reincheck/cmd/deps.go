package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/barysiuk/reincheck/internal/installer"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Scan system dependencies",
	Long: `Scan the host for the package managers and runtimes install methods
depend on, and summarize readiness per preset.

Every dependency is probed independently with a short timeout, so one
hanging probe cannot block the scan.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		statusMap := d.scanner().Scan()
		report := installer.BuildReport(d.registry.Presets(), d.registry.Methods(), statusMap)

		format, _ := cmd.Flags().GetString("format")
		if format != "table" {
			return writeStructured(os.Stdout, format, report)
		}

		names := make([]string, 0, len(report.Statuses))
		for name := range report.Statuses {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\tDependency\tVersion\tPath")
		for _, name := range names {
			st := report.Statuses[name]
			version := st.Version
			if version == "" {
				version = "-"
			}
			path := st.Path
			if path == "" {
				if dep, ok := d.registry.Dependency(name); ok && !st.Available {
					path = dep.InstallHint
				} else {
					path = "-"
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", st.Icon(), name, version, path)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "\n%d of %d dependencies available\n", report.AvailableCount, report.TotalCount)
		if len(report.UnsatisfiedVersions) > 0 {
			fmt.Fprintf(os.Stdout, "Version requirements not met: %s\n", joinStrings(report.UnsatisfiedVersions))
		}

		fmt.Fprintln(os.Stdout, "\nPreset readiness:")
		presetNames := make([]string, 0, len(report.PresetStatuses))
		for name := range report.PresetStatuses {
			presetNames = append(presetNames, name)
		}
		sort.Strings(presetNames)
		for _, name := range presetNames {
			fmt.Fprintf(os.Stdout, "  %-14s %s\n", name, report.PresetStatuses[name])
		}
		return nil
	},
}

func init() {
	addFormatFlag(depsCmd)
	rootCmd.AddCommand(depsCmd)
}
