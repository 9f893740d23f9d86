// Package installer resolves install methods, assembles installation
// plans, and executes them. It consumes the catalog and dependency
// scanner and exposes plan/step/result values to the CLI layer; it
// never imports a terminal or UI toolkit.
package installer

import (
	"encoding/json"
	"fmt"

	"github.com/barysiuk/reincheck/internal/catalog"
)

// ResolutionError reports that no install method could be determined for
// a harness under a given preset and overrides. Batch callers are
// expected to report it, exclude the harness, and continue.
type ResolutionError struct {
	Harness string
	Preset  string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no valid install method found for %s in preset %s", e.Harness, e.Preset)
}

// OverrideCommands is ad hoc command text supplied by an override.
// Empty fields fall back to the base method's commands.
type OverrideCommands struct {
	Install     string `json:"install,omitempty"`
	Upgrade     string `json:"upgrade,omitempty"`
	Version     string `json:"version,omitempty"`
	CheckLatest string `json:"check_latest,omitempty"`
}

// Override is a caller-supplied exception to a preset's defaults for one
// harness. In config JSON it is either a bare string naming a method
// ("homebrew") or an object with an optional base method and optional
// command bundle.
type Override struct {
	Method   string            `json:"method,omitempty"`
	Commands *OverrideCommands `json:"commands,omitempty"`

	named bool // decoded from a bare string
}

// NamedOverride builds the string form of an override.
func NamedOverride(method string) Override {
	return Override{Method: method, named: true}
}

// IsNamed reports whether the override is the bare-string form.
func (o Override) IsNamed() bool { return o.named }

// UnmarshalJSON accepts both the string and object forms.
func (o *Override) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*o = Override{Method: name, named: true}
		return nil
	}
	type plain Override
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = Override(p)
	return nil
}

// MarshalJSON writes the string form back out for named overrides.
func (o Override) MarshalJSON() ([]byte, error) {
	if o.named {
		return json.Marshal(o.Method)
	}
	type plain Override
	return json.Marshal(plain(o))
}

// ResolveMethod picks exactly one install method for harness under
// preset, applying precedence top-down, first match wins:
//
//  1. custom override bundle (explicit command text), synthesized
//  2. named-method override pointing at an existing catalog entry
//  3. the preset's mapped method for the harness
//  4. the preset's fallback strategy
//
// Anything else fails with a ResolutionError.
func ResolveMethod(preset catalog.Preset, harness string, methods map[string]catalog.InstallMethod, overrides map[string]Override) (catalog.InstallMethod, error) {
	if ov, ok := overrides[harness]; ok && !ov.named {
		base, haveBase := lookupBase(preset, harness, ov, methods)

		if ov.Commands != nil {
			return synthesizeCustom(harness, *ov.Commands, base, haveBase), nil
		}
		if haveBase {
			return base, nil
		}
	}

	if ov, ok := overrides[harness]; ok && ov.named && ov.Method != "" {
		if m, ok := methods[harness+"."+ov.Method]; ok {
			return m, nil
		}
	}

	if methodName, ok := preset.Methods[harness]; ok {
		if m, ok := methods[harness+"."+methodName]; ok {
			return m, nil
		}
	}

	// The fallback applies even to harnesses the preset never enumerates.
	if preset.FallbackStrategy != "" {
		if m, ok := methods[harness+"."+preset.FallbackStrategy]; ok {
			return m, nil
		}
	}

	return catalog.InstallMethod{}, &ResolutionError{Harness: harness, Preset: preset.Name}
}

func lookupBase(preset catalog.Preset, harness string, ov Override, methods map[string]catalog.InstallMethod) (catalog.InstallMethod, bool) {
	baseName := ov.Method
	if baseName == "" {
		baseName = preset.Methods[harness]
	}
	if baseName == "" {
		return catalog.InstallMethod{}, false
	}
	m, ok := methods[harness+"."+baseName]
	return m, ok
}

// synthesizeCustom builds an ad hoc method from an override's command
// bundle. Unspecified commands fall back to the base method, the
// dependency list is inherited from the base unchanged, and the risk
// level is recomputed from the override's install command, so an
// override can both loosen and tighten the apparent risk of the base.
func synthesizeCustom(harness string, cmds OverrideCommands, base catalog.InstallMethod, haveBase bool) catalog.InstallMethod {
	pick := func(override, fallback string) string {
		if override != "" {
			return override
		}
		if haveBase {
			return fallback
		}
		return ""
	}

	var deps []string
	if haveBase {
		deps = base.Dependencies
	}

	return catalog.InstallMethod{
		Harness:      harness,
		MethodName:   "custom",
		Install:      pick(cmds.Install, base.Install),
		Upgrade:      pick(cmds.Upgrade, base.Upgrade),
		Version:      pick(cmds.Version, base.Version),
		CheckLatest:  pick(cmds.CheckLatest, base.CheckLatest),
		Dependencies: deps,
		RiskLevel:    InferRiskLevel(cmds.Install),
	}
}
