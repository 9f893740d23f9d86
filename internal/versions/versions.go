// Package versions extracts and compares tool version strings. Output
// from version commands is messy ("aider 0.82.1", "v2.3", "Python
// 3.12.4 (main, ...)"), so extraction is pattern-based and comparison
// degrades gracefully when a string will not parse as a version.
package versions

import (
	"os"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var extractPatterns = []*regexp.Regexp{
	regexp.MustCompile(`v?(\d+\.\d+\.\d+(?:\.\d+)?)`),
	regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`),
	regexp.MustCompile(`v?(\d+)`),
}

// Extract pulls a version number out of arbitrary command output,
// preferring three-part over two-part over bare-integer forms. Returns
// "" when no version-looking token exists, so callers never end up
// comparing prose like "Unknown" against "1.2.3".
func Extract(s string) string {
	if s == "" {
		return ""
	}
	for _, pat := range extractPatterns {
		if m := pat.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	return ""
}

// Compare orders two version strings, returning -1, 0, or 1. Each input
// is run through Extract first. When either side does not parse as a
// version, plain string comparison is the fallback.
func Compare(a, b string) int {
	va, errA := semver.NewVersion(Extract(a))
	vb, errB := semver.NewVersion(Extract(b))
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}
	return strings.Compare(a, b)
}

// InBounds reports whether version lies within the optional min/max
// bounds (inclusive). Unparseable versions or bounds count as satisfied:
// a parse failure must never be conflated with "too old".
func InBounds(version, min, max string) bool {
	if min == "" && max == "" {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return true
	}
	if min != "" {
		if minV, err := semver.NewVersion(min); err == nil && v.LessThan(minV) {
			return false
		}
	}
	if max != "" {
		if maxV, err := semver.NewVersion(max); err == nil && v.GreaterThan(maxV) {
			return false
		}
	}
	return true
}

// AddGitHubAuth injects a Bearer token header into curl commands that
// target api.github.com, when GITHUB_TOKEN is set. Unauthenticated
// GitHub API calls rate-limit quickly during batch update checks.
func AddGitHubAuth(command string) string {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" || !strings.Contains(command, "api.github.com") {
		return command
	}
	if strings.Contains(command, "Authorization:") {
		return command
	}
	if strings.HasPrefix(command, "curl") {
		return strings.Replace(command, "curl", `curl -H "Authorization: Bearer $GITHUB_TOKEN"`, 1)
	}
	return command
}
