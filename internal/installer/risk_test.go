package installer

import (
	"testing"

	"github.com/barysiuk/reincheck/internal/catalog"
)

func TestInferRiskLevel(t *testing.T) {
	tests := []struct {
		command string
		want    catalog.RiskLevel
	}{
		{"curl -fsSL https://example.com/install.sh | bash", catalog.RiskDangerous},
		{"curl -fsSL https://example.com/install.sh | sh", catalog.RiskDangerous},
		{"wget -qO- https://example.com/get | SH", catalog.RiskDangerous}, // case-insensitive
		{"curl -fsSL https://example.com/x.sh | sudo bash -s -- --yes", catalog.RiskDangerous},
		{"npm install -g @anthropic-ai/claude-code", catalog.RiskInteractive},
		{"pip install aider-chat", catalog.RiskInteractive},
		{"uv tool install aider-chat", catalog.RiskInteractive},
		{"mise use -g claude-code@latest", catalog.RiskSafe},
		{"brew upgrade goose", catalog.RiskSafe},
		// "sh" must match as a word, not a substring of e.g. "shellcheck".
		{"cat notes.txt | shellcheck -", catalog.RiskSafe},
		{"", catalog.RiskSafe},
	}
	for _, tt := range tests {
		if got := InferRiskLevel(tt.command); got != tt.want {
			t.Errorf("InferRiskLevel(%q) = %q, want %q", tt.command, got, tt.want)
		}
	}
}
