package installer

import (
	"regexp"
	"strings"

	"github.com/barysiuk/reincheck/internal/catalog"
)

// RiskClassifier infers a risk level from raw command text. The default
// heuristic is pattern-based; implementations inspecting destructive
// flags or untrusted sources can be swapped in without touching the
// resolver.
type RiskClassifier interface {
	Classify(command string) catalog.RiskLevel
}

var pipeToShellRe = regexp.MustCompile(`(?i)\|.*\b(sh|bash)\b`)

var interactiveInstalls = []string{
	"npm install",
	"pip install",
	"uv tool install",
}

// HeuristicClassifier is the stock pattern-based classifier: commands
// that pipe fetched output into a shell are dangerous, known
// package-manager install invocations are interactive, everything else
// is safe. It is a pure function of the string and never inspects
// network content.
type HeuristicClassifier struct{}

func (HeuristicClassifier) Classify(command string) catalog.RiskLevel {
	if pipeToShellRe.MatchString(command) {
		return catalog.RiskDangerous
	}
	for _, pattern := range interactiveInstalls {
		if strings.Contains(command, pattern) {
			return catalog.RiskInteractive
		}
	}
	return catalog.RiskSafe
}

// InferRiskLevel classifies command text with the stock heuristic.
func InferRiskLevel(command string) catalog.RiskLevel {
	return HeuristicClassifier{}.Classify(command)
}
