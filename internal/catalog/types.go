// Package catalog defines the harness, install method, preset, and
// dependency data model and loads it from the bundled JWCC data files.
// It has zero UI dependencies and is independently testable.
package catalog

import "fmt"

// RiskLevel classifies how an install method's command behaves when run.
type RiskLevel string

const (
	// RiskSafe commands install from a local or trusted package source.
	RiskSafe RiskLevel = "safe"
	// RiskInteractive commands invoke a package manager that may prompt.
	RiskInteractive RiskLevel = "interactive"
	// RiskDangerous commands pipe a remote script into a shell.
	RiskDangerous RiskLevel = "dangerous"
)

// ParseRiskLevel converts a catalog string into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(s) {
	case RiskSafe, RiskInteractive, RiskDangerous:
		return RiskLevel(s), nil
	}
	return "", fmt.Errorf("invalid risk level %q, must be one of: dangerous, interactive, safe", s)
}

// Harness is one managed external tool (e.g. an AI coding assistant CLI).
// Loaded once from catalog data and read-only thereafter.
type Harness struct {
	Name            string `json:"name"`
	DisplayName     string `json:"display_name"`
	Description     string `json:"description"`
	GitHubRepo      string `json:"github_repo,omitempty"`
	ReleaseNotesURL string `json:"release_notes_url,omitempty"`
}

// InstallMethod is one concrete way to install, upgrade, and query a
// harness. Methods are keyed "harness.method_name" in the catalog.
type InstallMethod struct {
	Harness      string
	MethodName   string
	Install      string
	Upgrade      string
	Version      string
	CheckLatest  string
	Dependencies []string
	RiskLevel    RiskLevel
}

// Key returns the catalog key for this method.
func (m InstallMethod) Key() string {
	return m.Harness + "." + m.MethodName
}

// Preset is a named policy selecting a default method per harness.
// FallbackStrategy, when set, names a method-name convention tried for
// harnesses the preset does not enumerate (or whose mapped method is
// missing from the catalog).
type Preset struct {
	Name             string
	Strategy         string
	Description      string
	Methods          map[string]string // harness name -> method name
	FallbackStrategy string
	Priority         int // lower sorts first
}

// defaultPresetPriority is used when a preset declares no priority.
const defaultPresetPriority = 999

// Dependency is a system prerequisite (package manager, runtime) that
// install methods may require. Immutable once loaded.
type Dependency struct {
	Name           string
	CheckCommand   string
	InstallHint    string
	VersionCommand string
	MinVersion     string
	MaxVersion     string
}

// HasBounds reports whether the dependency declares a version bound.
func (d Dependency) HasBounds() bool {
	return d.MinVersion != "" || d.MaxVersion != ""
}
