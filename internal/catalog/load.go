package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/tailscale/hujson"
)

//go:embed data/*.json
var dataFS embed.FS

// DecodeJWCC parses JSON-with-comments-and-trailing-commas into v.
// Catalog data files and the user config both use this tolerant form.
func DecodeJWCC(data []byte, v any) error {
	std, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return json.Unmarshal(std, v)
}

func decodeFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading data file %s: %w", name, err)
	}
	if err := DecodeJWCC(data, v); err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}
	return nil
}

// Raw shapes mirror the on-disk files. Optional numeric and list fields
// use pointers so validation can tell "absent" from "zero".

type rawHarness struct {
	Name            string `json:"name"`
	DisplayName     string `json:"display_name"`
	Description     string `json:"description"`
	GitHubRepo      string `json:"github_repo"`
	ReleaseNotesURL string `json:"release_notes_url"`
}

type rawDependency struct {
	Name           string `json:"name"`
	CheckCommand   string `json:"check_command"`
	InstallHint    string `json:"install_hint"`
	VersionCommand string `json:"version_command"`
	MinVersion     string `json:"min_version"`
	MaxVersion     string `json:"max_version"`
}

type rawPreset struct {
	Strategy         string             `json:"strategy"`
	Description      string             `json:"description"`
	Methods          *map[string]string `json:"methods"`
	FallbackStrategy string             `json:"fallback_strategy"`
	Priority         *int               `json:"priority"`
}

type rawMethod struct {
	Install      string   `json:"install"`
	Upgrade      string   `json:"upgrade"`
	Version      string   `json:"version"`
	CheckLatest  string   `json:"check_latest"`
	Dependencies []string `json:"dependencies"`
	RiskLevel    string   `json:"risk_level"`
}

func loadHarnesses(fsys fs.FS) (map[string]Harness, error) {
	var file struct {
		Harnesses map[string]rawHarness `json:"harnesses"`
	}
	if err := decodeFile(fsys, "data/harnesses.json", &file); err != nil {
		return nil, err
	}
	if file.Harnesses == nil {
		return nil, fmt.Errorf("invalid harnesses data file: missing top-level 'harnesses' key")
	}

	out := make(map[string]Harness, len(file.Harnesses))
	for name, raw := range file.Harnesses {
		entity := fmt.Sprintf("Harness '%s'", name)
		if raw.Name == "" {
			return nil, fieldErr(entity, "name", "must be a non-empty string")
		}
		if raw.DisplayName == "" {
			return nil, fieldErr(entity, "display_name", "must be a non-empty string")
		}
		if raw.Description == "" {
			return nil, fieldErr(entity, "description", "must be a non-empty string")
		}
		out[name] = Harness{
			Name:            raw.Name,
			DisplayName:     raw.DisplayName,
			Description:     raw.Description,
			GitHubRepo:      raw.GitHubRepo,
			ReleaseNotesURL: raw.ReleaseNotesURL,
		}
	}
	return out, nil
}

func loadDependencies(fsys fs.FS) (map[string]Dependency, error) {
	var file struct {
		Dependencies map[string]rawDependency `json:"dependencies"`
	}
	if err := decodeFile(fsys, "data/dependencies.json", &file); err != nil {
		return nil, err
	}
	if file.Dependencies == nil {
		return nil, fmt.Errorf("invalid dependencies data file: missing top-level 'dependencies' key")
	}

	out := make(map[string]Dependency, len(file.Dependencies))
	for name, raw := range file.Dependencies {
		entity := fmt.Sprintf("Dependency '%s'", name)
		if raw.Name == "" {
			return nil, fieldErr(entity, "name", "must be a non-empty string")
		}
		if raw.CheckCommand == "" {
			return nil, fieldErr(entity, "check_command", "must be a non-empty string")
		}
		if raw.InstallHint == "" {
			return nil, fieldErr(entity, "install_hint", "must be a non-empty string")
		}
		out[name] = Dependency{
			Name:           raw.Name,
			CheckCommand:   raw.CheckCommand,
			InstallHint:    raw.InstallHint,
			VersionCommand: raw.VersionCommand,
			MinVersion:     raw.MinVersion,
			MaxVersion:     raw.MaxVersion,
		}
	}
	return out, nil
}

func loadPresets(fsys fs.FS) (map[string]Preset, error) {
	var file struct {
		Presets map[string]rawPreset `json:"presets"`
	}
	if err := decodeFile(fsys, "data/presets.json", &file); err != nil {
		return nil, err
	}
	if file.Presets == nil {
		return nil, fmt.Errorf("invalid presets data file: missing top-level 'presets' key")
	}

	out := make(map[string]Preset, len(file.Presets))
	for name, raw := range file.Presets {
		entity := fmt.Sprintf("Preset '%s'", name)
		if raw.Strategy == "" {
			return nil, fieldErr(entity, "strategy", "must be a non-empty string")
		}
		if raw.Description == "" {
			return nil, fieldErr(entity, "description", "must be a non-empty string")
		}
		if raw.Methods == nil {
			return nil, fieldErr(entity, "methods", "must be an object")
		}
		for harness, method := range *raw.Methods {
			if method == "" {
				return nil, fieldErr(entity, "methods."+harness, "must be a non-empty string")
			}
		}
		priority := defaultPresetPriority
		if raw.Priority != nil {
			priority = *raw.Priority
		}
		out[name] = Preset{
			Name:             name,
			Strategy:         raw.Strategy,
			Description:      raw.Description,
			Methods:          *raw.Methods,
			FallbackStrategy: raw.FallbackStrategy,
			Priority:         priority,
		}
	}
	return out, nil
}

func loadMethods(fsys fs.FS) (map[string]InstallMethod, error) {
	var file struct {
		Methods map[string]rawMethod `json:"methods"`
	}
	if err := decodeFile(fsys, "data/methods.json", &file); err != nil {
		return nil, err
	}
	if file.Methods == nil {
		return nil, fmt.Errorf("invalid methods data file: missing top-level 'methods' key")
	}

	out := make(map[string]InstallMethod, len(file.Methods))
	for key, raw := range file.Methods {
		entity := fmt.Sprintf("Method '%s'", key)

		harness, methodName, ok := splitMethodKey(key)
		if !ok {
			return nil, entityErr(entity, "has invalid key, expected '<harness>.<method_name>'")
		}
		for field, value := range map[string]string{
			"install":      raw.Install,
			"upgrade":      raw.Upgrade,
			"version":      raw.Version,
			"check_latest": raw.CheckLatest,
			"risk_level":   raw.RiskLevel,
		} {
			if value == "" {
				return nil, fieldErr(entity, field, "must be a non-empty string")
			}
		}
		risk, err := ParseRiskLevel(raw.RiskLevel)
		if err != nil {
			return nil, entityErr(entity, fmt.Sprintf("has invalid risk_level: %s. Must be one of: dangerous, interactive, safe", raw.RiskLevel))
		}
		for i, dep := range raw.Dependencies {
			if dep == "" {
				return nil, entityErr(entity, fmt.Sprintf("dependencies[%d] must be a non-empty string", i))
			}
		}

		out[key] = InstallMethod{
			Harness:      harness,
			MethodName:   methodName,
			Install:      raw.Install,
			Upgrade:      raw.Upgrade,
			Version:      raw.Version,
			CheckLatest:  raw.CheckLatest,
			Dependencies: raw.Dependencies,
			RiskLevel:    risk,
		}
	}
	return out, nil
}

// splitMethodKey splits "harness.method_name" at the first dot. Method
// names may themselves contain dots; harness names may not.
func splitMethodKey(key string) (harness, method string, ok bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			if i == 0 || i == len(key)-1 {
				return "", "", false
			}
			return key[:i], key[i+1:], true
		}
	}
	return "", "", false
}
