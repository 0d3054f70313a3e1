package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// maxStderr bounds how much of a failing tool's stderr lands in the error
const maxStderr = 2000

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return e.run(ctx, "", name, args)
}

// ExecuteInDir runs an external command in a specific working directory
func (e *implExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return e.run(ctx, dir, name, args)
}

// LookPath resolves a binary on PATH
func (e *implExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (e *implExecutor) run(ctx context.Context, dir, name string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := tail(strings.TrimSpace(stderr.String()), maxStderr)
		if stderrStr != "" {
			return "", fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return "", fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), nil
}

// tail keeps the last n bytes, where ffmpeg puts the actual failure
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
