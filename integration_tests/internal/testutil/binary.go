package testutil

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
)

// GetSpinBinaryPath returns the absolute path to the spin binary for integration tests.
// It checks multiple locations in order of preference:
// 1. Current directory (./spin)
// 2. Parent directory (../spin) - where 'go build -o spin .' leaves it
// 3. bin directory (../bin/spin)
func GetSpinBinaryPath() string {
	candidates := []string{
		"spin",
		filepath.Join("..", "spin"),
		filepath.Join("..", "bin", "spin"),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			if abs, err := filepath.Abs(candidate); err == nil {
				return abs
			}
			return candidate
		}
	}

	// Default to current directory (will fail if binary doesn't exist)
	return "./spin"
}

// Result is the outcome of one spin invocation
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunSpin runs the spin binary in dir with args and extra environment entries
func RunSpin(ctx context.Context, dir string, env []string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, GetSpinBinaryPath(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, err
}
