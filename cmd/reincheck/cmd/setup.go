package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/barysiuk/reincheck/internal/catalog"
	"github.com/barysiuk/reincheck/internal/config"
	"github.com/barysiuk/reincheck/internal/installer"
	"github.com/barysiuk/reincheck/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup [preset]",
	Short: "Pick a preset and generate the harness configuration",
	Long: `Select an installation strategy and write ~/.reincheck/config.json.

With no argument an interactive picker opens, with presets ranked by
how many of their dependencies are already on this system. The written
config carries one record per harness with its four resolved commands,
so later 'check', 'install', and 'upgrade' runs resolve consistently.

Pass --apply to install the configured harnesses immediately.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		cfg, err := d.config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		apply, _ := cmd.Flags().GetBool("apply")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		yes, _ := cmd.Flags().GetBool("yes")

		preset, ok, err := selectPreset(d, args)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stdout, "Setup cancelled.")
			return nil
		}

		records, resolvedNames := resolvePresetRecords(d, preset, cfg.Overrides)
		if len(records) == 0 {
			return fmt.Errorf("no valid install methods found for any harness in preset %q", preset.Name)
		}

		if dryRun {
			fmt.Fprintf(os.Stdout, "Would write config for preset %q with %d harnesses:\n", preset.Name, len(records))
			for _, rec := range records {
				fmt.Fprintf(os.Stdout, "  %s\n    install: %s\n", rec.Name, rec.InstallCommand)
			}
			return nil
		}

		cfg.Preset = preset.Name
		cfg.Agents = records
		if err := d.config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %s (preset %q, %d harnesses)\n", d.config.ConfigPath(), preset.Name, len(records))

		if !apply {
			fmt.Fprintln(os.Stdout, "Run 'reincheck install' to install them, or rerun with --apply.")
			return nil
		}

		plan, err := installer.PlanInstall(preset, resolvedNames, d.registry.Methods(), cfg.Overrides, d.scanner().Scan)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, installer.RenderPlan(plan, d.registry.Dependencies()))

		confirmer := installer.Confirmer(tui.Confirm)
		if yes {
			confirmer = func(string) bool { return true }
		} else if !tui.Confirm(fmt.Sprintf("Install %d harnesses now?", len(plan.Steps))) {
			fmt.Fprintln(os.Stdout, "Aborted.")
			return nil
		}

		results := installer.NewExecutor(d.runner, confirmer).Apply(plan, false, yes)
		return reportResults(results)
	},
}

// selectPreset returns the named preset, or opens the interactive
// picker when no name was given. ok=false means the user cancelled.
func selectPreset(d *cliDeps, args []string) (catalog.Preset, bool, error) {
	if len(args) == 1 {
		preset, ok := d.registry.Preset(args[0])
		if !ok {
			return catalog.Preset{}, false, fmt.Errorf("preset %q not found. Hint: run 'reincheck presets' to see available presets", args[0])
		}
		return preset, true, nil
	}

	statusMap := d.scanner().Scan()
	choices := make([]tui.PresetChoice, 0, len(d.registry.Presets()))
	for _, p := range d.registry.PresetsByPriority() {
		choices = append(choices, tui.PresetChoice{
			Preset: p,
			Status: installer.ComputePresetStatus(p, d.registry.Methods(), statusMap),
		})
	}
	// Best-first: green, partial, red, then declared priority.
	rank := map[installer.PresetStatus]int{installer.StatusGreen: 0, installer.StatusPartial: 1, installer.StatusRed: 2}
	sort.SliceStable(choices, func(i, j int) bool {
		return rank[choices[i].Status] < rank[choices[j].Status]
	})

	choice, ok, err := tui.PickPreset(choices)
	if err != nil || !ok {
		return catalog.Preset{}, false, err
	}
	return choice.Preset, true, nil
}

// resolvePresetRecords resolves every harness the preset maps and
// converts the results into persistable records, warning about and
// excluding harnesses that cannot be resolved.
func resolvePresetRecords(d *cliDeps, preset catalog.Preset, overrides map[string]installer.Override) ([]config.AgentRecord, []string) {
	var names []string
	for harness := range preset.Methods {
		if _, ok := d.registry.Harness(harness); ok {
			names = append(names, harness)
		}
	}
	sort.Strings(names)

	var records []config.AgentRecord
	var resolved []string
	for _, name := range names {
		method, err := installer.ResolveMethod(preset, name, d.registry.Methods(), overrides)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		harness, _ := d.registry.Harness(name)
		records = append(records, config.AgentRecord{
			Name:               harness.Name,
			Description:        harness.Description,
			InstallCommand:     method.Install,
			UpgradeCommand:     method.Upgrade,
			VersionCommand:     method.Version,
			CheckLatestCommand: method.CheckLatest,
			GitHubRepo:         harness.GitHubRepo,
			ReleaseNotesURL:    harness.ReleaseNotesURL,
		})
		resolved = append(resolved, name)
	}
	return records, resolved
}

func init() {
	setupCmd.Flags().Bool("apply", false, "Install the configured harnesses after writing the config")
	setupCmd.Flags().Bool("dry-run", false, "Show what would be written without writing it")
	setupCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompts")
	rootCmd.AddCommand(setupCmd)
}
