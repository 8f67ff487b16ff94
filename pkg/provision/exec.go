package provision

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Executor runs external commands, allowing tests to substitute a fake.
type Executor interface {
	// Run executes a command in dir (or the working directory when dir is
	// empty), streaming stdout and capturing stderr for error reporting.
	Run(ctx context.Context, dir, name string, args ...string) error

	// Output executes a command and returns its stdout.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)

	// LookPath finds an executable on PATH.
	LookPath(file string) (string, error)
}

// RealExecutor runs commands on the host.
type RealExecutor struct{}

// Run executes a command, streaming stdout to the terminal. On failure the
// captured stderr text is folded into the returned error.
func (e *RealExecutor) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s failed: %s", name, msg)
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}

	return nil
}

// Output executes a command and returns its stdout.
func (e *RealExecutor) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %s", name, msg)
		}
		return "", fmt.Errorf("%s failed: %w", name, err)
	}

	return stdout.String(), nil
}

// LookPath finds an executable on PATH.
func (e *RealExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
