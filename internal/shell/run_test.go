package shell

import (
	"strings"
	"testing"
	"time"
)

func TestRunSuccess(t *testing.T) {
	output, code := Local{}.Run("echo hello", DefaultTimeout)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if output != "hello" {
		t.Errorf("output = %q, want %q", output, "hello")
	}
}

func TestRunFailurePropagatesExitCode(t *testing.T) {
	_, code := Local{}.Run("exit 3", DefaultTimeout)
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
}

func TestRunFallsBackToStderr(t *testing.T) {
	output, code := Local{}.Run("echo oops >&2; exit 1", DefaultTimeout)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if output != "oops" {
		t.Errorf("output = %q, want %q", output, "oops")
	}
}

func TestRunStdoutWinsOverStderr(t *testing.T) {
	output, _ := Local{}.Run("echo out; echo err >&2", DefaultTimeout)
	if output != "out" {
		t.Errorf("output = %q, want %q", output, "out")
	}
}

func TestRunTimeout(t *testing.T) {
	start := time.Now()
	output, code := Local{}.Run("sleep 5", 100*time.Millisecond)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(output, "timed out") {
		t.Errorf("output = %q, want timeout message", output)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %s, process not killed promptly", elapsed)
	}
}

func TestLookPath(t *testing.T) {
	if path := LookPath("sh"); path == "" {
		t.Error("LookPath(sh) = empty, expected a path")
	}
	if path := LookPath("definitely-not-a-real-binary-12345"); path != "" {
		t.Errorf("LookPath(nonexistent) = %q, want empty", path)
	}
}
