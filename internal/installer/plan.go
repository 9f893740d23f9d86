package installer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/barysiuk/reincheck/internal/catalog"
	"github.com/barysiuk/reincheck/internal/deps"
	"github.com/barysiuk/reincheck/internal/shell"
)

// PlanStep is one resolved installation action. Dependency lists are
// defensively copied at build time so later mutation of the source
// method cannot corrupt an already-built plan.
type PlanStep struct {
	Harness      string            `json:"harness"`
	Action       string            `json:"action"`
	Command      string            `json:"command"`
	Timeout      time.Duration     `json:"timeout"`
	RiskLevel    catalog.RiskLevel `json:"risk_level"`
	MethodName   string            `json:"method_name"`
	Dependencies []string          `json:"dependencies,omitempty"`
}

// Plan is an ordered, inspectable set of resolved installation actions.
// Never mutated after construction.
type Plan struct {
	PresetName      string     `json:"preset_name"`
	Steps           []PlanStep `json:"steps"`
	UnsatisfiedDeps []string   `json:"unsatisfied_deps,omitempty"`
	RiskySteps      []string   `json:"risky_steps,omitempty"`
}

// IsReady reports whether every required dependency was satisfied at
// plan time. Advisory only: planning never fails for missing deps;
// the caller decides whether to proceed.
func (p *Plan) IsReady() bool {
	return len(p.UnsatisfiedDeps) == 0
}

// ScanFunc produces a fresh dependency status map. Planning scans once
// up front, not per harness.
type ScanFunc func() map[string]deps.Status

// PlanInstall resolves a method for each harness, in the given order,
// and assembles an install plan. Missing dependencies and dangerous
// methods are recorded, never fatal. A harness that cannot be resolved
// fails the whole call; batch callers pre-resolve and exclude failures
// before planning.
func PlanInstall(preset catalog.Preset, harnesses []string, methods map[string]catalog.InstallMethod, overrides map[string]Override, scan ScanFunc) (*Plan, error) {
	return buildPlan(preset, harnesses, methods, overrides, scan, "install")
}

// PlanUpgrade is PlanInstall for the upgrade commands, with the shorter
// upgrade timeout.
func PlanUpgrade(preset catalog.Preset, harnesses []string, methods map[string]catalog.InstallMethod, overrides map[string]Override, scan ScanFunc) (*Plan, error) {
	return buildPlan(preset, harnesses, methods, overrides, scan, "upgrade")
}

func buildPlan(preset catalog.Preset, harnesses []string, methods map[string]catalog.InstallMethod, overrides map[string]Override, scan ScanFunc, action string) (*Plan, error) {
	plan := &Plan{PresetName: preset.Name}
	unsatisfied := make(map[string]struct{})
	statusMap := scan()

	for _, harness := range harnesses {
		method, err := ResolveMethod(preset, harness, methods, overrides)
		if err != nil {
			return nil, err
		}

		for _, dep := range method.Dependencies {
			if st, ok := statusMap[dep]; !ok || !st.Available || !st.VersionSatisfied {
				unsatisfied[dep] = struct{}{}
			}
		}

		if method.RiskLevel == catalog.RiskDangerous {
			plan.RiskySteps = append(plan.RiskySteps, harness)
		}

		command := method.Install
		timeout := shell.InstallTimeout
		if action == "upgrade" {
			command = method.Upgrade
			timeout = shell.UpgradeTimeout
		}

		plan.Steps = append(plan.Steps, PlanStep{
			Harness:      harness,
			Action:       action,
			Command:      command,
			Timeout:      timeout,
			RiskLevel:    method.RiskLevel,
			MethodName:   method.MethodName,
			Dependencies: append([]string(nil), method.Dependencies...),
		})
	}

	for dep := range unsatisfied {
		plan.UnsatisfiedDeps = append(plan.UnsatisfiedDeps, dep)
	}
	sort.Strings(plan.UnsatisfiedDeps)
	return plan, nil
}

// RenderPlan formats a plan for pre-execution review. Every step shows
// its full resolved command, untruncated: the rendered plan is the
// user's only review surface before anything runs, so destructive
// commands are never hidden or abbreviated.
func RenderPlan(plan *Plan, dependencies map[string]catalog.Dependency) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Installation Plan: %s\n\n", plan.PresetName)

	if len(plan.UnsatisfiedDeps) > 0 {
		b.WriteString("Missing dependencies:\n")
		for _, dep := range plan.UnsatisfiedDeps {
			hint := "Unknown dependency"
			if d, ok := dependencies[dep]; ok {
				hint = d.InstallHint
			}
			fmt.Fprintf(&b, "  - %s: %s\n", dep, hint)
		}
		b.WriteString("\n")
	}

	if len(plan.RiskySteps) > 0 {
		b.WriteString("The following pipe remote scripts into a shell (review carefully):\n")
		for _, harness := range plan.RiskySteps {
			fmt.Fprintf(&b, "  - %s\n", harness)
		}
		b.WriteString("\n")
	}

	b.WriteString("Steps:\n")
	for i, step := range plan.Steps {
		fmt.Fprintf(&b, "  %d. [%s] %s (%s)\n", i+1, step.RiskLevel, step.Harness, step.MethodName)
		fmt.Fprintf(&b, "     $ %s\n", step.Command)
	}
	return b.String()
}
