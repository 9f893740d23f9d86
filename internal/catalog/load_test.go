package catalog

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

// validData builds a minimal in-memory data tree in the same JWCC form
// as the bundled files, comments and trailing commas included.
func validData() fstest.MapFS {
	return fstest.MapFS{
		"data/harnesses.json": {Data: []byte(`{
  // Test harness catalog.
  "harnesses": {
    "claude": {
      "name": "claude",
      "display_name": "Claude Code",
      "description": "Anthropic's coding CLI",
      "github_repo": "anthropics/claude-code",
      "release_notes_url": "https://registry.npmjs.org/@anthropic-ai/claude-code",
    },
    "goose": {
      "name": "goose",
      "display_name": "Goose",
      "description": "Block's open-source agent",
      "github_repo": "block/goose",
    },
  },
}`)},
		"data/dependencies.json": {Data: []byte(`{
  "dependencies": {
    "npm": {
      "name": "npm",
      "check_command": "which npm",
      "install_hint": "Install Node.js from https://nodejs.org",
      "version_command": "npm --version",
    },
    "node": {
      "name": "node",
      "check_command": "which node",
      "install_hint": "Install Node.js from https://nodejs.org",
      "version_command": "node --version",
      "min_version": "18.0.0",
    },
  },
}`)},
		"data/presets.json": {Data: []byte(`{
  "presets": {
    "npm_global": {
      "strategy": "npm",
      "description": "Global npm installs",
      "methods": {
        "claude": "npm_global",
      },
      "fallback_strategy": "npm_global",
      "priority": 3,
    },
    "no_priority": {
      "strategy": "manual",
      "description": "No priority declared",
      "methods": {},
    },
  },
}`)},
		"data/methods.json": {Data: []byte(`{
  "methods": {
    "claude.npm_global": {
      "install": "npm install -g @anthropic-ai/claude-code",
      "upgrade": "npm update -g @anthropic-ai/claude-code",
      "version": "claude --version",
      "check_latest": "npm view @anthropic-ai/claude-code version",
      "dependencies": ["npm", "node"],
      "risk_level": "interactive",
    },
  },
}`)},
	}
}

func TestLoadFS(t *testing.T) {
	r, err := LoadFS(validData())
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}

	h, ok := r.Harness("claude")
	if !ok {
		t.Fatal("claude not loaded")
	}
	if h.DisplayName != "Claude Code" {
		t.Errorf("DisplayName = %q", h.DisplayName)
	}

	d, ok := r.Dependency("node")
	if !ok {
		t.Fatal("node not loaded")
	}
	if d.MinVersion != "18.0.0" || !d.HasBounds() {
		t.Errorf("node bounds = %q..%q", d.MinVersion, d.MaxVersion)
	}
	if npm, _ := r.Dependency("npm"); npm.HasBounds() {
		t.Error("npm reports bounds without declaring any")
	}

	p, ok := r.Preset("npm_global")
	if !ok {
		t.Fatal("npm_global not loaded")
	}
	if p.Priority != 3 || p.FallbackStrategy != "npm_global" {
		t.Errorf("preset = %+v", p)
	}
	if np, _ := r.Preset("no_priority"); np.Priority != defaultPresetPriority {
		t.Errorf("undeclared priority = %d, want %d", np.Priority, defaultPresetPriority)
	}

	m, ok := r.Methods()["claude.npm_global"]
	if !ok {
		t.Fatal("claude.npm_global not loaded")
	}
	if m.Harness != "claude" || m.MethodName != "npm_global" {
		t.Errorf("method key split = %s / %s", m.Harness, m.MethodName)
	}
	if m.Key() != "claude.npm_global" {
		t.Errorf("Key() = %q", m.Key())
	}
	if m.RiskLevel != RiskInteractive {
		t.Errorf("RiskLevel = %q", m.RiskLevel)
	}
}

func TestLoadFSValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(fstest.MapFS)
		wantText string
	}{
		{
			"missing harness display_name",
			func(m fstest.MapFS) {
				m["data/harnesses.json"].Data = []byte(`{"harnesses": {"claude": {"name": "claude", "description": "x"}}}`)
			},
			`Harness 'claude' field 'display_name' must be a non-empty string`,
		},
		{
			"missing dependency check_command",
			func(m fstest.MapFS) {
				m["data/dependencies.json"].Data = []byte(`{"dependencies": {"npm": {"name": "npm", "install_hint": "x"}}}`)
			},
			`Dependency 'npm' field 'check_command' must be a non-empty string`,
		},
		{
			"preset without methods object",
			func(m fstest.MapFS) {
				m["data/presets.json"].Data = []byte(`{"presets": {"p": {"strategy": "s", "description": "d"}}}`)
			},
			`Preset 'p' field 'methods' must be an object`,
		},
		{
			"preset with empty method name",
			func(m fstest.MapFS) {
				m["data/presets.json"].Data = []byte(`{"presets": {"p": {"strategy": "s", "description": "d", "methods": {"claude": ""}}}}`)
			},
			`Preset 'p' field 'methods.claude' must be a non-empty string`,
		},
		{
			"method with bad key",
			func(m fstest.MapFS) {
				m["data/methods.json"].Data = []byte(`{"methods": {"nodot": {"install": "a", "upgrade": "b", "version": "c", "check_latest": "d", "risk_level": "safe"}}}`)
			},
			`Method 'nodot' has invalid key`,
		},
		{
			"method with invalid risk_level",
			func(m fstest.MapFS) {
				m["data/methods.json"].Data = []byte(`{"methods": {"claude.x": {"install": "a", "upgrade": "b", "version": "c", "check_latest": "d", "risk_level": "scary"}}}`)
			},
			`has invalid risk_level: scary`,
		},
		{
			"method with empty dependency entry",
			func(m fstest.MapFS) {
				m["data/methods.json"].Data = []byte(`{"methods": {"claude.x": {"install": "a", "upgrade": "b", "version": "c", "check_latest": "d", "risk_level": "safe", "dependencies": ["npm", ""]}}}`)
			},
			`dependencies[1] must be a non-empty string`,
		},
		{
			"missing top-level key",
			func(m fstest.MapFS) {
				m["data/methods.json"].Data = []byte(`{}`)
			},
			`missing top-level 'methods' key`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := validData()
			tt.mutate(fsys)
			_, err := LoadFS(fsys)
			if err == nil {
				t.Fatal("LoadFS succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantText)
			}
		})
	}
}

func TestLoadFSFieldErrorsAreDataErrors(t *testing.T) {
	fsys := validData()
	fsys["data/harnesses.json"].Data = []byte(`{"harnesses": {"claude": {"name": "claude", "description": "x"}}}`)
	_, err := LoadFS(fsys)
	var dataErr *DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("error = %T, want *DataError", err)
	}
	if dataErr.Field != "display_name" {
		t.Errorf("Field = %q", dataErr.Field)
	}
}

func TestReloadKeepsOldDataOnFailure(t *testing.T) {
	fsys := validData()
	r, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}

	fsys["data/harnesses.json"].Data = []byte(`{"harnesses": {"claude": {"name": "claude"}}}`)
	if err := r.Reload(); err == nil {
		t.Fatal("Reload succeeded on malformed data")
	}
	// The registry still serves the previous load.
	if _, ok := r.Harness("claude"); !ok {
		t.Error("registry lost its contents after a failed reload")
	}
}

func TestLoadEmbeddedData(t *testing.T) {
	r, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(r.Harnesses()) == 0 || len(r.Dependencies()) == 0 || len(r.Presets()) == 0 || len(r.Methods()) == 0 {
		t.Fatal("embedded catalog loaded empty")
	}

	// Cross-reference integrity of the bundled data.
	for key, m := range r.Methods() {
		if _, ok := r.Harness(m.Harness); !ok {
			t.Errorf("method %s references unknown harness %s", key, m.Harness)
		}
		for _, dep := range m.Dependencies {
			if _, ok := r.Dependency(dep); !ok {
				t.Errorf("method %s references unknown dependency %s", key, dep)
			}
		}
	}
	for name, p := range r.Presets() {
		for harness, methodName := range p.Methods {
			if _, ok := r.Methods()[harness+"."+methodName]; !ok {
				t.Errorf("preset %s maps %s to unknown method %s", name, harness, methodName)
			}
		}
	}
}

func TestHarnessNamesSorted(t *testing.T) {
	r, err := LoadFS(validData())
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	names := r.HarnessNames()
	if len(names) != 2 || names[0] != "claude" || names[1] != "goose" {
		t.Errorf("HarnessNames() = %v", names)
	}
}

func TestPresetsByPriority(t *testing.T) {
	r, err := LoadFS(validData())
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	presets := r.PresetsByPriority()
	if len(presets) != 2 || presets[0].Name != "npm_global" || presets[1].Name != "no_priority" {
		order := make([]string, len(presets))
		for i, p := range presets {
			order[i] = p.Name
		}
		t.Errorf("PresetsByPriority() order = %v", order)
	}
}

func TestParseRiskLevel(t *testing.T) {
	for _, valid := range []string{"safe", "interactive", "dangerous"} {
		if _, err := ParseRiskLevel(valid); err != nil {
			t.Errorf("ParseRiskLevel(%q) = %v", valid, err)
		}
	}
	if _, err := ParseRiskLevel("SAFE"); err == nil {
		t.Error("ParseRiskLevel is case-insensitive, want exact match only")
	}
	if _, err := ParseRiskLevel(""); err == nil {
		t.Error("ParseRiskLevel accepted empty string")
	}
}
