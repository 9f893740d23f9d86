package deps

import (
	"testing"
	"time"

	"github.com/barysiuk/reincheck/internal/catalog"
)

// fakeRunner maps commands to canned output and exit code.
type fakeRunner struct {
	responses map[string]fakeResponse
	calls     []string
}

type fakeResponse struct {
	output string
	code   int
}

func (r *fakeRunner) Run(command string, timeout time.Duration) (string, int) {
	r.calls = append(r.calls, command)
	if resp, ok := r.responses[command]; ok {
		return resp.output, resp.code
	}
	return "", 1
}

func noLookPath(string) string { return "" }

func TestScanSimpleWhichUsesPathLookup(t *testing.T) {
	runner := &fakeRunner{}
	deps := map[string]catalog.Dependency{
		"npm": {Name: "npm", CheckCommand: "which npm"},
	}
	s := NewScanner(deps, runner).WithLookPath(func(name string) string {
		if name == "npm" {
			return "/usr/local/bin/npm"
		}
		return ""
	})

	result := s.Scan()
	status := result["npm"]
	if !status.Available {
		t.Fatal("expected npm to be available")
	}
	if status.Path != "/usr/local/bin/npm" {
		t.Errorf("Path = %q, want /usr/local/bin/npm", status.Path)
	}
	if !status.VersionSatisfied {
		t.Error("dependency without bounds should have VersionSatisfied = true")
	}
	if len(runner.calls) != 0 {
		t.Errorf("plain which probe spawned a process: %v", runner.calls)
	}
}

func TestScanMissingDependency(t *testing.T) {
	runner := &fakeRunner{}
	deps := map[string]catalog.Dependency{
		"mise": {Name: "mise", CheckCommand: "which mise", VersionCommand: "mise --version"},
	}
	s := NewScanner(deps, runner).WithLookPath(noLookPath)

	status := s.Scan()["mise"]
	if status.Available {
		t.Fatal("expected mise to be unavailable")
	}
	if status.Version != "" || status.Path != "" {
		t.Errorf("unavailable dependency carries version/path: %+v", status)
	}
	// Version probe must be skipped for unavailable dependencies.
	if len(runner.calls) != 0 {
		t.Errorf("unexpected commands run: %v", runner.calls)
	}
	if status.Icon() != "✗" {
		t.Errorf("Icon() = %q, want ✗", status.Icon())
	}
}

func TestScanCompoundWhichTakesFirstLine(t *testing.T) {
	runner := &fakeRunner{responses: map[string]fakeResponse{
		"which python3 || which python": {output: "/usr/bin/python3\n", code: 0},
	}}
	deps := map[string]catalog.Dependency{
		"python": {Name: "python", CheckCommand: "which python3 || which python"},
	}
	s := NewScanner(deps, runner).WithLookPath(noLookPath)

	status := s.Scan()["python"]
	if !status.Available {
		t.Fatal("expected python to be available")
	}
	if status.Path != "/usr/bin/python3" {
		t.Errorf("Path = %q, want /usr/bin/python3", status.Path)
	}
}

func TestScanVersionBounds(t *testing.T) {
	tests := []struct {
		name          string
		versionOutput string
		min           string
		wantVersion   string
		wantSatisfied bool
		wantIcon      string
	}{
		{"satisfied", "v22.14.0", "18.0.0", "22.14.0", true, "✓"},
		{"too old", "v16.20.2", "18.0.0", "16.20.2", false, "!"},
		{"no bounds", "8.2.1", "", "8.2.1", true, "✓"},
		{"unparseable output satisfied", "latest stable", "18.0.0", "", true, "✓"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{responses: map[string]fakeResponse{
				"node --version": {output: tt.versionOutput, code: 0},
			}}
			deps := map[string]catalog.Dependency{
				"node": {
					Name:           "node",
					CheckCommand:   "which node",
					VersionCommand: "node --version",
					MinVersion:     tt.min,
				},
			}
			s := NewScanner(deps, runner).WithLookPath(func(string) string { return "/usr/bin/node" })

			status := s.Scan()["node"]
			if status.Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", status.Version, tt.wantVersion)
			}
			if status.VersionSatisfied != tt.wantSatisfied {
				t.Errorf("VersionSatisfied = %v, want %v", status.VersionSatisfied, tt.wantSatisfied)
			}
			if status.Icon() != tt.wantIcon {
				t.Errorf("Icon() = %q, want %q", status.Icon(), tt.wantIcon)
			}
		})
	}
}

func TestScanFailedVersionProbe(t *testing.T) {
	runner := &fakeRunner{responses: map[string]fakeResponse{
		"uv --version": {output: "boom", code: 1},
	}}
	deps := map[string]catalog.Dependency{
		"uv": {Name: "uv", CheckCommand: "which uv", VersionCommand: "uv --version"},
	}
	s := NewScanner(deps, runner).WithLookPath(func(string) string { return "/usr/bin/uv" })

	status := s.Scan()["uv"]
	if !status.Available {
		t.Fatal("expected uv to be available")
	}
	if status.Version != "" {
		t.Errorf("Version = %q, want empty after failed probe", status.Version)
	}
	if !status.VersionSatisfied {
		t.Error("missing version with no bounds should be satisfied")
	}
}

func TestScanEmptyCatalog(t *testing.T) {
	s := NewScanner(nil, &fakeRunner{})
	if result := s.Scan(); len(result) != 0 {
		t.Errorf("Scan() over empty catalog = %v, want empty", result)
	}
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"v22.14.0", "22.14.0"},
		{"git version 2.43.0", "2.43.0"},
		{"mise 2025.1.0 linux-x64", "2025.1.0"},
		{"2.4", "2.4"},
		{"10.9.2\n", "10.9.2"},
		{"  7.1  ", "7.1"},
		{"no digits here", ""},
	}
	for _, tt := range tests {
		if got := extractVersion(tt.input); got != tt.want {
			t.Errorf("extractVersion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
