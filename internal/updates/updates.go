// Package updates checks installed harness versions against the latest
// published versions. Checks are read-only with no shared mutable
// target, so unlike installation they may fan out in parallel.
package updates

import (
	"github.com/barysiuk/reincheck/internal/catalog"
	"github.com/barysiuk/reincheck/internal/shell"
	"github.com/barysiuk/reincheck/internal/versions"
	"golang.org/x/sync/errgroup"
)

// checkConcurrency bounds the parallel version probes.
const checkConcurrency = 4

// Target pairs a harness with its resolved install method.
type Target struct {
	Harness catalog.Harness
	Method  catalog.InstallMethod
}

// Result is the outcome of one harness update check. Version fields
// hold raw command output; statuses are "success" or a failure message.
type Result struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	CurrentVersion  string `json:"current_version,omitempty"`
	CurrentStatus   string `json:"current_status"`
	LatestVersion   string `json:"latest_version,omitempty"`
	LatestStatus    string `json:"latest_status"`
	UpdateAvailable bool   `json:"update_available"`
}

// Checker runs version and check-latest commands through a Runner.
type Checker struct {
	runner shell.Runner
}

// NewChecker builds a Checker over the given runner.
func NewChecker(runner shell.Runner) *Checker {
	return &Checker{runner: runner}
}

// Check probes one harness: current version via the method's version
// command, latest via its check-latest command, compared semantically.
func (c *Checker) Check(target Target) Result {
	result := Result{
		Name:          target.Harness.Name,
		Description:   target.Harness.Description,
		CurrentStatus: "success",
		LatestStatus:  "success",
	}

	result.CurrentVersion, result.CurrentStatus = c.probe(target.Method.Version)
	latestCmd := versions.AddGitHubAuth(target.Method.CheckLatest)
	result.LatestVersion, result.LatestStatus = c.probe(latestCmd)

	if result.CurrentStatus == "success" && result.LatestStatus == "success" &&
		result.CurrentVersion != "" && result.LatestVersion != "" {
		result.UpdateAvailable = versions.Compare(result.CurrentVersion, result.LatestVersion) < 0
	}
	return result
}

// CheckAll probes every target in parallel and returns results in
// target order.
func (c *Checker) CheckAll(targets []Target) []Result {
	results := make([]Result, len(targets))
	var g errgroup.Group
	g.SetLimit(checkConcurrency)
	for i, target := range targets {
		g.Go(func() error {
			results[i] = c.Check(target)
			return nil
		})
	}
	_ = g.Wait() // Check never errors; results carry failures
	return results
}

func (c *Checker) probe(command string) (version, status string) {
	if command == "" {
		return "", "No version command configured"
	}
	output, code := c.runner.Run(command, shell.DefaultTimeout)
	if code != 0 {
		if output == "" {
			output = "Command failed"
		}
		return "", output
	}
	return output, "success"
}
