package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/barysiuk/reincheck/internal/catalog"
	"github.com/barysiuk/reincheck/internal/deps"
	"github.com/barysiuk/reincheck/internal/installer"
)

// presetEntry is one row of the preset listing.
type presetEntry struct {
	Name        string `json:"name"`
	Strategy    string `json:"strategy"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    int    `json:"priority"`
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List installation presets ranked by readiness",
	Long: `List every preset with its dependency readiness, best-first.

green   every dependency the preset needs is available
partial some are available
red     none are

Ranking is by status, then the preset's declared priority.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		statusMap := d.scanner().Scan()
		entries := rankPresets(d.registry.PresetsByPriority(), d.registry.Methods(), statusMap)

		format, _ := cmd.Flags().GetString("format")
		if format != "table" {
			return writeStructured(os.Stdout, format, entries)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Preset\tStatus\tStrategy\tDescription")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Status, e.Strategy, e.Description)
		}
		return w.Flush()
	},
}

// rankPresets orders presets best-first: green before partial before
// red, then by declared priority.
func rankPresets(presets []catalog.Preset, methods map[string]catalog.InstallMethod, statusMap map[string]deps.Status) []presetEntry {
	rank := map[installer.PresetStatus]int{
		installer.StatusGreen:   0,
		installer.StatusPartial: 1,
		installer.StatusRed:     2,
	}

	entries := make([]presetEntry, 0, len(presets))
	for _, p := range presets {
		status := installer.ComputePresetStatus(p, methods, statusMap)
		entries = append(entries, presetEntry{
			Name:        p.Name,
			Strategy:    p.Strategy,
			Description: p.Description,
			Status:      string(status),
			Priority:    p.Priority,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := rank[installer.PresetStatus(entries[i].Status)], rank[installer.PresetStatus(entries[j].Status)]
		if ri != rj {
			return ri < rj
		}
		return entries[i].Priority < entries[j].Priority
	})
	return entries
}

func init() {
	addFormatFlag(presetsCmd)
	rootCmd.AddCommand(presetsCmd)
}
