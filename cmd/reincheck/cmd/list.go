package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/barysiuk/reincheck/internal/installer"
)

// listEntry is one row of the harness listing.
type listEntry struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Method      string `json:"method,omitempty"`
	RiskLevel   string `json:"risk_level,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged harnesses",
	Long: `List every harness in the catalog.

When an active preset is configured (or --preset is given), each row
also shows the install method and risk level that preset resolves to.
Harnesses the preset cannot resolve show "-".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		cfg, err := d.config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		presetFlag, _ := cmd.Flags().GetString("preset")
		preset, presetErr := d.activePreset(presetFlag, cfg)

		var entries []listEntry
		for _, name := range d.registry.HarnessNames() {
			harness, _ := d.registry.Harness(name)
			entry := listEntry{
				Name:        harness.Name,
				DisplayName: harness.DisplayName,
				Description: harness.Description,
			}
			if presetErr == nil {
				if m, err := installer.ResolveMethod(preset, name, d.registry.Methods(), cfg.Overrides); err == nil {
					entry.Method = m.MethodName
					entry.RiskLevel = string(m.RiskLevel)
				}
			}
			entries = append(entries, entry)
		}

		format, _ := cmd.Flags().GetString("format")
		if format != "table" {
			return writeStructured(os.Stdout, format, entries)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Harness\tName\tMethod\tRisk\tDescription")
		for _, e := range entries {
			method, risk := e.Method, e.RiskLevel
			if method == "" {
				method, risk = "-", "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.DisplayName, method, risk, e.Description)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().String("preset", "", "Preset to resolve methods from (default: configured preset)")
	addFormatFlag(listCmd)
	rootCmd.AddCommand(listCmd)
}
