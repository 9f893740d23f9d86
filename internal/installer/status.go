package installer

import (
	"sort"

	"github.com/barysiuk/reincheck/internal/catalog"
	"github.com/barysiuk/reincheck/internal/deps"
)

// PresetStatus is a coarse readiness signal for ranking presets
// best-first. It intentionally hides exact percentages; diagnostics
// belong to Report.
type PresetStatus string

const (
	StatusGreen   PresetStatus = "green"   // every required dependency ready
	StatusPartial PresetStatus = "partial" // some ready, some not
	StatusRed     PresetStatus = "red"     // none ready
)

// ComputePresetStatus reduces a preset's dependency requirements and the
// scanned statuses into GREEN, PARTIAL, or RED. A preset whose methods
// require nothing is GREEN.
func ComputePresetStatus(preset catalog.Preset, methods map[string]catalog.InstallMethod, statusMap map[string]deps.Status) PresetStatus {
	required := make(map[string]struct{})
	for harness, methodName := range preset.Methods {
		if m, ok := methods[harness+"."+methodName]; ok {
			for _, dep := range m.Dependencies {
				required[dep] = struct{}{}
			}
		}
	}
	if len(required) == 0 {
		return StatusGreen
	}

	satisfied := 0
	for name := range required {
		if st, ok := statusMap[name]; ok && st.Available && st.VersionSatisfied {
			satisfied++
		}
	}
	switch {
	case satisfied == len(required):
		return StatusGreen
	case satisfied > 0:
		return StatusPartial
	default:
		return StatusRed
	}
}

// Report is a read-only snapshot of dependency state for ranking and
// display.
type Report struct {
	Statuses            map[string]deps.Status  `json:"dependencies"`
	PresetStatuses      map[string]PresetStatus `json:"preset_statuses"`
	MissingDeps         []string                `json:"missing_deps"`
	UnsatisfiedVersions []string                `json:"unsatisfied_versions"`
	AvailableCount      int                     `json:"available_count"`
	TotalCount          int                     `json:"total_count"`
}

// OverallReady reports whether every cataloged dependency is available.
func (r Report) OverallReady() bool {
	return r.AvailableCount == r.TotalCount
}

// BuildReport computes PresetStatus for every preset and partitions the
// status map into missing and version-unsatisfied dependency lists.
func BuildReport(presets map[string]catalog.Preset, methods map[string]catalog.InstallMethod, statusMap map[string]deps.Status) Report {
	report := Report{
		Statuses:       statusMap,
		PresetStatuses: make(map[string]PresetStatus, len(presets)),
		TotalCount:     len(statusMap),
	}

	for name, preset := range presets {
		report.PresetStatuses[name] = ComputePresetStatus(preset, methods, statusMap)
	}

	for name, st := range statusMap {
		switch {
		case !st.Available:
			report.MissingDeps = append(report.MissingDeps, name)
		case !st.VersionSatisfied:
			report.UnsatisfiedVersions = append(report.UnsatisfiedVersions, name)
		}
		if st.Available {
			report.AvailableCount++
		}
	}
	sort.Strings(report.MissingDeps)
	sort.Strings(report.UnsatisfiedVersions)
	return report
}
