package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/barysiuk/reincheck/internal/catalog"
	"github.com/barysiuk/reincheck/internal/config"
	"github.com/barysiuk/reincheck/internal/deps"
	"github.com/barysiuk/reincheck/internal/installer"
	"github.com/barysiuk/reincheck/internal/shell"
	"github.com/barysiuk/reincheck/internal/updates"
)

// cliDeps holds shared dependencies for CLI commands.
type cliDeps struct {
	config   *config.Manager
	registry *catalog.Registry
	runner   shell.Runner
}

// newDeps creates shared dependencies. Called lazily by commands that
// need them.
func newDeps() (*cliDeps, error) {
	cfgMgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}
	registry, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return &cliDeps{
		config:   cfgMgr,
		registry: registry,
		runner:   shell.Local{},
	}, nil
}

// scanner builds a dependency scanner over the loaded catalog.
func (d *cliDeps) scanner() *deps.Scanner {
	return deps.NewScanner(d.registry.Dependencies(), d.runner)
}

// activePreset resolves the preset to operate under: the --preset flag
// if set, otherwise the preset recorded by setup.
func (d *cliDeps) activePreset(flagValue string, cfg *config.Config) (catalog.Preset, error) {
	name := flagValue
	if name == "" {
		name = cfg.Preset
	}
	if name == "" {
		return catalog.Preset{}, fmt.Errorf("no active preset configured. Hint: run 'reincheck setup' or pass --preset")
	}
	preset, ok := d.registry.Preset(name)
	if !ok {
		available := make([]string, 0, len(d.registry.Presets()))
		for n := range d.registry.Presets() {
			available = append(available, n)
		}
		sort.Strings(available)
		return catalog.Preset{}, fmt.Errorf("preset %q not found. Available: %s", name, strings.Join(available, ", "))
	}
	return preset, nil
}

// targetHarnesses returns the harnesses to operate on: explicit args,
// or every harness the preset maps that exists in the catalog.
func (d *cliDeps) targetHarnesses(args []string, preset catalog.Preset) ([]string, error) {
	if len(args) > 0 {
		for _, name := range args {
			if _, ok := d.registry.Harness(name); !ok {
				return nil, fmt.Errorf("unknown harness %q. Hint: run 'reincheck list' to see available harnesses", name)
			}
		}
		return args, nil
	}

	var names []string
	for harness := range preset.Methods {
		if _, ok := d.registry.Harness(harness); ok {
			names = append(names, harness)
		}
	}
	sort.Strings(names)
	return names, nil
}

// resolveAll resolves a method per harness, reporting and excluding
// failures rather than aborting the batch.
func (d *cliDeps) resolveAll(preset catalog.Preset, harnesses []string, overrides map[string]installer.Override) []string {
	resolved := make([]string, 0, len(harnesses))
	for _, harness := range harnesses {
		method, err := installer.ResolveMethod(preset, harness, d.registry.Methods(), overrides)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		debugf("resolved %s -> %s (%s)", harness, method.MethodName, method.RiskLevel)
		resolved = append(resolved, harness)
	}
	return resolved
}

// checkTargets builds update-check targets. When setup has written
// agent records, those are authoritative (the commands a previous
// resolution produced); otherwise methods are resolved live from the
// active preset.
func (d *cliDeps) checkTargets(args []string, cfg *config.Config) ([]updates.Target, error) {
	wanted := func(name string) bool {
		if len(args) == 0 {
			return true
		}
		for _, a := range args {
			if a == name {
				return true
			}
		}
		return false
	}

	if len(cfg.Agents) > 0 {
		var targets []updates.Target
		for _, rec := range cfg.Agents {
			if !wanted(rec.Name) {
				continue
			}
			targets = append(targets, updates.Target{
				Harness: harnessForRecord(d.registry, rec),
				Method:  recordMethod(rec),
			})
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("no configured harnesses match %s", strings.Join(args, ", "))
		}
		return targets, nil
	}

	preset, err := d.activePreset("", cfg)
	if err != nil {
		return nil, err
	}
	names, err := d.targetHarnesses(args, preset)
	if err != nil {
		return nil, err
	}

	var targets []updates.Target
	for _, name := range names {
		method, err := installer.ResolveMethod(preset, name, d.registry.Methods(), cfg.Overrides)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		harness, _ := d.registry.Harness(name)
		targets = append(targets, updates.Target{Harness: harness, Method: method})
	}
	return targets, nil
}

// harnessForRecord prefers catalog metadata, falling back to what the
// record itself carries.
func harnessForRecord(registry *catalog.Registry, rec config.AgentRecord) catalog.Harness {
	if h, ok := registry.Harness(rec.Name); ok {
		return h
	}
	return catalog.Harness{
		Name:            rec.Name,
		DisplayName:     rec.Name,
		Description:     rec.Description,
		GitHubRepo:      rec.GitHubRepo,
		ReleaseNotesURL: rec.ReleaseNotesURL,
	}
}

// recordMethod converts a persisted agent record back into a method.
// Method name "config" marks commands that came from the config file;
// risk is re-inferred from the recorded install command.
func recordMethod(rec config.AgentRecord) catalog.InstallMethod {
	return catalog.InstallMethod{
		Harness:     rec.Name,
		MethodName:  "config",
		Install:     rec.InstallCommand,
		Upgrade:     rec.UpgradeCommand,
		Version:     rec.VersionCommand,
		CheckLatest: rec.CheckLatestCommand,
		RiskLevel:   installer.InferRiskLevel(rec.InstallCommand),
	}
}

// joinStrings concatenates string slices with ", " separator.
func joinStrings(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	result := ss[0]
	for _, s := range ss[1:] {
		result += ", " + s
	}
	return result
}

// askConfirm prompts on stderr and reads a y/N answer from stdin.
// Anything other than an explicit yes declines.
func askConfirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// writeStructured renders v as json or yaml.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q (want json or yaml)", format)
	}
}

// addFormatFlag registers the shared --format flag.
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", "table", "Output format: table, json, or yaml")
}
