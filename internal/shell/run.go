// Package shell runs catalog commands through the system shell with a
// bounded timeout. Results are failure-shaped, never errors: a timeout
// and a non-zero exit are indistinguishable to callers except by the
// output text, which keeps the success/failure contract uniform.
package shell

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Default timeouts by operation class.
const (
	DefaultTimeout = 30 * time.Second
	UpgradeTimeout = 300 * time.Second
	InstallTimeout = 600 * time.Second
)

// Runner executes a shell command and returns its captured output and
// exit code. Implementations must kill and reap the process on timeout
// before returning.
type Runner interface {
	Run(command string, timeout time.Duration) (output string, exitCode int)
}

// Local runs commands through "sh -c" on the host.
type Local struct{}

// Run executes command via the shell, waiting at most timeout. Exit code
// 0 means success; timeouts and spawn failures report as exit code 1
// with a descriptive output string.
func (Local) Run(command string, timeout time.Duration) (string, int) {
	cmd := exec.Command("sh", "-c", command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Sprintf("Error: %v", err), 1
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		output := strings.TrimSpace(stdout.String())
		if output == "" {
			output = strings.TrimSpace(stderr.String())
		}
		if err == nil {
			return output, 0
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return output, exitErr.ExitCode()
		}
		return fmt.Sprintf("Error: %v", err), 1

	case <-time.After(timeout):
		_ = cmd.Process.Kill()
		<-done // reap before returning
		return fmt.Sprintf("Command timed out after %s", timeout), 1
	}
}

// LookPath reports the PATH location of a binary, or "" if not found.
// Split out so the dependency scanner's fast path can be faked in tests.
func LookPath(binary string) string {
	path, err := exec.LookPath(binary)
	if err != nil {
		return ""
	}
	return path
}
