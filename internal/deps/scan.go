// Package deps scans the host for the system prerequisites that install
// methods depend on (package managers, runtimes). Statuses are
// recomputed fresh on every scan and never cached.
package deps

import (
	"regexp"
	"strings"
	"time"

	"github.com/barysiuk/reincheck/internal/catalog"
	"github.com/barysiuk/reincheck/internal/shell"
	"github.com/barysiuk/reincheck/internal/versions"
)

// ProbeTimeout bounds every availability and version probe.
const ProbeTimeout = 5 * time.Second

// Status is the scanned state of one dependency.
type Status struct {
	Name             string `json:"name"`
	Available        bool   `json:"available"`
	Version          string `json:"version,omitempty"`
	Path             string `json:"path,omitempty"`
	VersionSatisfied bool   `json:"version_satisfied"`
}

// Icon returns the display glyph for this status.
func (s Status) Icon() string {
	switch {
	case !s.Available:
		return "✗"
	case !s.VersionSatisfied:
		return "!"
	default:
		return "✓"
	}
}

var simpleWhichRe = regexp.MustCompile(`^which \S+$`)

var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+\.\d+\.\d+)`),
	regexp.MustCompile(`(\d+\.\d+)`),
}

var bareNumericRe = regexp.MustCompile(`^[\d.]+$`)

// Scanner probes dependencies against the host. The zero dependencies
// case scans to an empty map; each dependency is evaluated in isolation
// so one failing or hanging probe cannot block the rest.
type Scanner struct {
	deps     map[string]catalog.Dependency
	runner   shell.Runner
	lookPath func(string) string
}

// NewScanner builds a Scanner over the given dependency catalog.
func NewScanner(deps map[string]catalog.Dependency, runner shell.Runner) *Scanner {
	return &Scanner{deps: deps, runner: runner, lookPath: shell.LookPath}
}

// WithLookPath overrides PATH resolution. Used by tests.
func (s *Scanner) WithLookPath(fn func(string) string) *Scanner {
	s.lookPath = fn
	return s
}

// Scan evaluates every cataloged dependency and returns a status map
// keyed by dependency name.
func (s *Scanner) Scan() map[string]Status {
	result := make(map[string]Status, len(s.deps))
	for name, dep := range s.deps {
		result[name] = s.scanOne(dep)
	}
	return result
}

func (s *Scanner) scanOne(dep catalog.Dependency) Status {
	status := Status{Name: dep.Name, VersionSatisfied: true}

	status.Available, status.Path = s.probe(dep.CheckCommand)
	if !status.Available {
		return status
	}

	if dep.VersionCommand != "" {
		status.Version = s.probeVersion(dep.VersionCommand)
		status.VersionSatisfied = versions.InBounds(status.Version, dep.MinVersion, dep.MaxVersion)
	}
	return status
}

// probe checks availability. Plain "which X" probes resolve via PATH
// lookup without spawning a process; compound which commands (e.g.
// "which python3 || which python") shell out and take the first output
// line as the path; anything else shells out and only the exit code
// matters.
func (s *Scanner) probe(checkCommand string) (available bool, path string) {
	if binary, ok := binaryFromWhich(checkCommand); ok {
		path = s.lookPath(binary)
		return path != "", path
	}

	output, code := s.runner.Run(checkCommand, ProbeTimeout)
	if code != 0 {
		return false, ""
	}
	if strings.HasPrefix(checkCommand, "which ") {
		if line, _, _ := strings.Cut(strings.TrimSpace(output), "\n"); line != "" {
			path = line
		}
	}
	return true, path
}

func (s *Scanner) probeVersion(versionCommand string) string {
	output, code := s.runner.Run(versionCommand, ProbeTimeout)
	if code != 0 {
		return ""
	}
	return extractVersion(output)
}

// extractVersion tries a three-part pattern, then two-part, then a bare
// numeric string.
func extractVersion(output string) string {
	for _, pat := range versionPatterns {
		if m := pat.FindStringSubmatch(output); m != nil {
			return m[1]
		}
	}
	trimmed := strings.TrimSpace(output)
	if bareNumericRe.MatchString(trimmed) {
		return trimmed
	}
	return ""
}

func binaryFromWhich(command string) (string, bool) {
	if !simpleWhichRe.MatchString(command) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(command, "which ")), true
}
