// Package notes fetches release information for harnesses from the npm
// registry or the GitHub releases API and renders it as markdown.
package notes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/barysiuk/reincheck/internal/catalog"
)

const fetchTimeout = 15 * time.Second

// Fetcher retrieves release metadata over HTTP.
type Fetcher struct {
	client  *http.Client
	baseNPM string // overridable for tests
	baseGH  string
}

// NewFetcher builds a Fetcher with a bounded-timeout client.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: fetchTimeout},
		baseNPM: "https://registry.npmjs.org",
		baseGH:  "https://api.github.com",
	}
}

// WithBaseURLs overrides the registry endpoints. Used by tests.
func (f *Fetcher) WithBaseURLs(npm, gh string) *Fetcher {
	f.baseNPM = npm
	f.baseGH = gh
	return f
}

// ForHarness fetches release notes for a harness, preferring the npm
// registry when the harness declares an npm release_notes_url and
// falling back to GitHub releases.
func (f *Fetcher) ForHarness(h catalog.Harness) (string, error) {
	if pkg := npmPackageFromURL(h.ReleaseNotesURL); pkg != "" {
		return f.NPM(pkg)
	}
	if h.GitHubRepo != "" {
		return f.GitHub(h.GitHubRepo)
	}
	return "", fmt.Errorf("no release notes source configured for %s", h.Name)
}

// npmPackageFromURL extracts the package name from a registry.npmjs.org
// URL, keeping the scope prefix for scoped packages. Returns "" for
// anything that is not an npm registry URL.
func npmPackageFromURL(rawURL string) string {
	const host = "registry.npmjs.org/"
	idx := strings.Index(rawURL, host)
	if idx < 0 {
		return ""
	}
	pkg := strings.TrimSuffix(rawURL[idx+len(host):], "/")
	if pkg == "" {
		return ""
	}
	// Scoped packages keep "@scope/name"; bare ones keep just the first
	// path segment.
	parts := strings.Split(pkg, "/")
	if strings.HasPrefix(parts[0], "@") && len(parts) > 1 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// NPM returns markdown describing the latest published version of an
// npm package.
func (f *Fetcher) NPM(pkg string) (string, error) {
	var doc struct {
		DistTags map[string]string `json:"dist-tags"`
		Time     map[string]string `json:"time"`
	}
	if err := f.getJSON(f.baseNPM+"/"+pkg, &doc); err != nil {
		return "", fmt.Errorf("fetching npm info for %s: %w", pkg, err)
	}

	latest := doc.DistTags["latest"]
	if latest == "" {
		return "", fmt.Errorf("npm package %s has no latest dist-tag", pkg)
	}
	published := doc.Time[latest]
	if published == "" {
		published = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", pkg)
	fmt.Fprintf(&b, "**Latest version:** %s\n\n", latest)
	fmt.Fprintf(&b, "**Published:** %s\n", published)
	return b.String(), nil
}

// GitHub returns the body of the latest release for an "owner/repo".
func (f *Fetcher) GitHub(repo string) (string, error) {
	var release struct {
		TagName     string `json:"tag_name"`
		Name        string `json:"name"`
		Body        string `json:"body"`
		PublishedAt string `json:"published_at"`
	}
	url := f.baseGH + "/repos/" + repo + "/releases/latest"
	if err := f.getJSON(url, &release); err != nil {
		return "", fmt.Errorf("fetching releases for %s: %w", repo, err)
	}

	title := release.Name
	if title == "" {
		title = release.TagName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", repo, title)
	if release.PublishedAt != "" {
		fmt.Fprintf(&b, "**Published:** %s\n\n", release.PublishedAt)
	}
	if release.Body != "" {
		b.WriteString(release.Body)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (f *Fetcher) getJSON(url string, v any) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if token := os.Getenv("GITHUB_TOKEN"); token != "" && strings.Contains(url, "api.github.com") {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// Render formats markdown for terminal display.
func Render(markdown string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
