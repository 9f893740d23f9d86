package installer

import (
	"fmt"

	"github.com/barysiuk/reincheck/internal/catalog"
	"github.com/barysiuk/reincheck/internal/shell"
)

// Step result statuses. Execution failures and declined confirmations
// are always represented as results, never errors, so a multi-harness
// install completes and reports a mixed outcome.
const (
	StepSuccess = "success"
	StepFailed  = "failed"
	StepSkipped = "skipped"
	StepDryRun  = "dry-run"
)

// StepResult is the outcome of executing (or skipping, or dry-running)
// one plan step. Results always zip positionally with plan.Steps.
type StepResult struct {
	Harness string `json:"harness"`
	Status  string `json:"status"`
	Output  string `json:"output"`
}

// Confirmer asks the user a yes/no question. Injected so the core never
// depends on a concrete terminal toolkit.
type Confirmer func(prompt string) bool

// Executor runs plans sequentially against a command runner. Steps are
// never run concurrently: concurrent installs can contend for the same
// package-manager lock.
type Executor struct {
	runner  shell.Runner
	confirm Confirmer
}

// NewExecutor builds an Executor over the given runner and confirmation
// primitive.
func NewExecutor(runner shell.Runner, confirm Confirmer) *Executor {
	return &Executor{runner: runner, confirm: confirm}
}

// Apply executes the plan's steps in order, one StepResult per step.
//
// If the plan has unsatisfied dependencies and confirmation is not
// skipped, the user is asked once, globally; declining returns an empty
// result list without running anything. Dangerous steps get their own
// per-step gate; declining one records it as skipped and moves on. A
// failed step never aborts the remainder, and nothing is retried:
// retrying a partially-applied install without knowing what side
// effects already landed is unsafe, so re-invocation is left to the
// operator.
func (e *Executor) Apply(plan *Plan, dryRun, skipConfirmation bool) []StepResult {
	if !plan.IsReady() && !skipConfirmation {
		if !e.confirm("Dependencies missing. Continue anyway?") {
			return []StepResult{}
		}
	}

	if dryRun {
		results := make([]StepResult, 0, len(plan.Steps))
		for _, step := range plan.Steps {
			results = append(results, StepResult{
				Harness: step.Harness,
				Status:  StepDryRun,
				Output:  step.Command,
			})
		}
		return results
	}

	results := make([]StepResult, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		if step.RiskLevel == catalog.RiskDangerous && !skipConfirmation {
			prompt := fmt.Sprintf("About to run a remote script for %s:\n  $ %s\nExecute this command? (review carefully)", step.Harness, step.Command)
			if !e.confirm(prompt) {
				results = append(results, StepResult{Harness: step.Harness, Status: StepSkipped, Output: "User declined"})
				continue
			}
		}

		output, code := e.runner.Run(step.Command, step.Timeout)
		status := StepSuccess
		if code != 0 {
			status = StepFailed
		}
		results = append(results, StepResult{Harness: step.Harness, Status: status, Output: output})
	}
	return results
}
