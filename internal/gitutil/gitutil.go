package gitutil

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandRunner is an interface for running external commands.
type CommandRunner interface {
	CombinedOutput(ctx context.Context, dir, name string, arg ...string) ([]byte, error)
}

// DefaultRunner implements CommandRunner using os/exec.Command.
type DefaultRunner struct{}

func (r DefaultRunner) CombinedOutput(ctx context.Context, dir, name string, arg ...string) ([]byte, error) {
	cmd := commandContext(ctx, name, arg...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// commandContext is a helper to create a *exec.Cmd with context.
func commandContext(ctx context.Context, name string, arg ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, arg...)
	return cmd
}

// We'll use a package-level variable for the runner
var runner CommandRunner = DefaultRunner{}

// ErrNotRepository is returned when the directory is outside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// HeadCommit returns the abbreviated HEAD commit of the repository that
// contains dir.
func HeadCommit(ctx context.Context, dir string) (string, error) {
	out, err := git(ctx, dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsDirty reports whether path has uncommitted changes (staged, unstaged
// or untracked).
func IsDirty(ctx context.Context, path string) (bool, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	out, err := git(ctx, dir, "status", "--porcelain", "--", base)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

func git(ctx context.Context, dir string, args ...string) (string, error) {
	outputBytes, err := runner.CombinedOutput(ctx, dir, "git", args...)
	output := string(outputBytes)
	if strings.Contains(strings.ToLower(output), "not a git repository") {
		return "", fmt.Errorf("%w: %s", ErrNotRepository, strings.TrimSpace(output))
	}
	if err != nil {
		return "", fmt.Errorf("error running git %s: %w, output: %s", args[0], err, strings.TrimSpace(output))
	}
	return output, nil
}

// For testing, we'll add a function to set a mock runner
func SetRunner(r CommandRunner) {
	runner = r
}
