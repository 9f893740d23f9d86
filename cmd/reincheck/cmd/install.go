package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barysiuk/reincheck/internal/catalog"
	"github.com/barysiuk/reincheck/internal/installer"
)

var installCmd = &cobra.Command{
	Use:   "install [harness...]",
	Short: "Install harnesses using the active preset",
	Long: `Resolve an install method per harness and execute the installation plan.

With no arguments, every harness the active preset maps is installed.
The plan is rendered in full before anything runs; commands that pipe
remote scripts into a shell are confirmed individually.

Use --dry-run to see the exact commands without executing them, and
--yes to skip all confirmation prompts.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlanCommand(cmd, args, "install")
	},
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [harness...]",
	Short: "Upgrade harnesses using the active preset",
	Long: `Resolve each harness's install method and execute its upgrade command.

With no arguments, every harness the active preset maps is upgraded.
Accepts the same --dry-run and --yes flags as install.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlanCommand(cmd, args, "upgrade")
	},
}

// runPlanCommand is the shared plan-render-confirm-apply flow behind
// install and upgrade.
func runPlanCommand(cmd *cobra.Command, args []string, action string) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	cfg, err := d.config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	presetFlag, _ := cmd.Flags().GetString("preset")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")

	preset, err := d.activePreset(presetFlag, cfg)
	if err != nil {
		return err
	}
	names, err := d.targetHarnesses(args, preset)
	if err != nil {
		return err
	}

	// Per-harness resolution failures are reported and excluded; the
	// rest of the batch proceeds.
	resolved := d.resolveAll(preset, names, cfg.Overrides)
	if len(resolved) == 0 {
		return fmt.Errorf("no harness in preset %q could be resolved", preset.Name)
	}

	plan, err := buildPlan(d, preset, resolved, cfg.Overrides, action)
	if err != nil {
		return err
	}
	debugf("planned %d steps, %d unsatisfied deps", len(plan.Steps), len(plan.UnsatisfiedDeps))

	fmt.Fprint(os.Stdout, installer.RenderPlan(plan, d.registry.Dependencies()))

	if !dryRun && !yes {
		if !askConfirm(fmt.Sprintf("Continue with %s?", action)) {
			fmt.Fprintln(os.Stdout, "Aborted.")
			return nil
		}
	}

	executor := installer.NewExecutor(d.runner, askConfirm)
	results := executor.Apply(plan, dryRun, yes)
	return reportResults(results)
}

func buildPlan(d *cliDeps, preset catalog.Preset, names []string, overrides map[string]installer.Override, action string) (*installer.Plan, error) {
	scan := d.scanner().Scan
	if action == "upgrade" {
		return installer.PlanUpgrade(preset, names, d.registry.Methods(), overrides, scan)
	}
	return installer.PlanInstall(preset, names, d.registry.Methods(), overrides, scan)
}

// reportResults prints one line per step and fails the command when any
// step failed, so scripts can detect mixed outcomes.
func reportResults(results []installer.StepResult) error {
	failed := 0
	for _, r := range results {
		switch r.Status {
		case installer.StepSuccess:
			fmt.Fprintf(os.Stdout, "ok      %s\n", r.Harness)
		case installer.StepDryRun:
			fmt.Fprintf(os.Stdout, "dry-run %s: %s\n", r.Harness, r.Output)
		case installer.StepSkipped:
			fmt.Fprintf(os.Stdout, "skipped %s: %s\n", r.Harness, r.Output)
		case installer.StepFailed:
			failed++
			fmt.Fprintf(os.Stdout, "FAILED  %s: %s\n", r.Harness, r.Output)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d steps failed", failed, len(results))
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{installCmd, upgradeCmd} {
		c.Flags().String("preset", "", "Preset to resolve methods from (default: configured preset)")
		c.Flags().Bool("dry-run", false, "Show the commands without executing them")
		c.Flags().BoolP("yes", "y", false, "Skip confirmation prompts")
		rootCmd.AddCommand(c)
	}
}
