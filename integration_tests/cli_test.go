package integration

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/maxkimambo/spin/integration_tests/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectSpinfile = `env_file: config/test.env
env:
  STAGE: ci
tasks:
  default: echo default-ran
  clean: echo cleaned
  build:
    description: Build the project
    run: sh -c 'echo built for $STAGE with $FROM_ENV_FILE'
  lint: sh -c 'sleep 0.2; echo linted'
  where:
    run: pwd
    dir: sub
  target: sh -c 'echo target=$SPIN_OPT_TARGET'
  broken: sh -c 'echo about to fail; exit 4'
`

func setupProject(t *testing.T) string {
	t.Helper()
	testutil.RequireTools(t, "sh", "echo", "pwd", "sleep")
	return testutil.SetupTestWorkspace(t, projectSpinfile, map[string]string{
		"config/test.env": "FROM_ENV_FILE=dotenv\n",
		"sub/.keep":       "",
	})
}

func runSpin(t *testing.T, dir string, env []string, args ...string) testutil.Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := testutil.RunSpin(ctx, dir, env, args...)
	require.NoError(t, err, "failed to run spin")
	return result
}

func TestSpin_DefaultTask(t *testing.T) {
	dir := setupProject(t)

	result := runSpin(t, dir, nil)
	require.Equal(t, 0, result.ExitCode, result.Stderr)

	assert.Contains(t, result.Stdout, "Using spinfile "+filepath.Join(dir, "Spinfile.yml"))
	assert.Contains(t, result.Stdout, "Starting 'default'...")
	assert.Contains(t, result.Stdout, "default-ran")
	assert.Contains(t, result.Stdout, "✨  Done in ")
}

func TestSpin_SequenceOrderAndEnvironment(t *testing.T) {
	dir := setupProject(t)

	result := runSpin(t, dir, nil, "clean", "build")
	require.Equal(t, 0, result.ExitCode, result.Stderr)

	cleaned := strings.Index(result.Stdout, "cleaned")
	built := strings.Index(result.Stdout, "built for ci with dotenv")
	require.NotEqual(t, -1, cleaned)
	require.NotEqual(t, -1, built)
	assert.Less(t, cleaned, built)
}

func TestSpin_ParallelGroups(t *testing.T) {
	dir := setupProject(t)

	result := runSpin(t, dir, nil, "-p", "clean+build", "lint")
	require.Equal(t, 0, result.ExitCode, result.Stderr)

	// lint sleeps, so the inner sequence finishes first
	assert.Less(t, strings.Index(result.Stdout, "Finished 'build'"), strings.Index(result.Stdout, "Finished 'lint'"))
	assert.Less(t, strings.Index(result.Stdout, "Finished 'clean'"), strings.Index(result.Stdout, "Starting 'build'"))
}

func TestSpin_DiscoversSpinfileFromSubdirectory(t *testing.T) {
	dir := setupProject(t)

	result := runSpin(t, filepath.Join(dir, "sub"), nil, "where")
	require.Equal(t, 0, result.ExitCode, result.Stderr)
	assert.Contains(t, result.Stdout, filepath.Join(dir, "sub")+"\n")
}

func TestSpin_Options(t *testing.T) {
	dir := setupProject(t)

	result := runSpin(t, dir, nil, "--opt", "target=arm64", "target")
	require.Equal(t, 0, result.ExitCode, result.Stderr)
	assert.Contains(t, result.Stdout, "target=arm64")
}

func TestSpin_ListTasks(t *testing.T) {
	dir := setupProject(t)

	result := runSpin(t, dir, nil, "--tasks")
	require.Equal(t, 0, result.ExitCode, result.Stderr)

	for _, name := range []string{"broken", "build", "clean", "default", "lint", "target", "where"} {
		assert.Contains(t, result.Stdout, name)
	}
	assert.Contains(t, result.Stdout, "Build the project")
}

func TestSpin_Failures(t *testing.T) {
	dir := setupProject(t)

	tests := []struct {
		name          string
		args          []string
		expectedError string
		notRun        string
	}{
		{
			name:          "unknown_task",
			args:          []string{"clean", "missing", "build"},
			expectedError: "Task 'missing' not found",
			notRun:        "Starting 'build'",
		},
		{
			name:          "failing_command",
			args:          []string{"broken", "clean"},
			expectedError: "Task 'broken' failed",
			notRun:        "Starting 'clean'",
		},
		{
			name:          "failing_parallel_group",
			args:          []string{"-p", "broken+clean", "lint"},
			expectedError: "Parallel group 'broken+clean' failed",
			notRun:        "Starting 'clean'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := runSpin(t, dir, nil, tt.args...)

			assert.Equal(t, 1, result.ExitCode)
			assert.Contains(t, result.Stderr, tt.expectedError)
			assert.NotContains(t, result.Stdout, tt.notRun)
			assert.NotContains(t, result.Stdout, "Done in")
		})
	}
}

func TestSpin_MissingSpinfile(t *testing.T) {
	dir := t.TempDir()

	result := runSpin(t, dir, nil, "--spinfile", filepath.Join(dir, "Spinfile.yml"))
	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Stderr, "No spinfile found")
}

func TestSpin_SilentAndEnvironmentOverrides(t *testing.T) {
	dir := setupProject(t)

	result := runSpin(t, dir, []string{"SPIN_SILENT=true"}, "clean")
	require.Equal(t, 0, result.ExitCode, result.Stderr)
	assert.Equal(t, "cleaned\n", result.Stdout)
	assert.Empty(t, result.Stderr)
}

func TestSpin_JSONLogs(t *testing.T) {
	dir := setupProject(t)

	result := runSpin(t, dir, nil, "--json", "--verbosity", "notice", "clean")
	require.Equal(t, 0, result.ExitCode, result.Stderr)

	var messages []string
	for _, line := range strings.Split(strings.TrimSpace(result.Stdout), "\n") {
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		messages = append(messages, entry["msg"].(string))
	}

	assert.Contains(t, messages, "Starting 'clean'...")
	assert.Contains(t, result.Stdout, "cleaned\n")
}

func TestSpin_Version(t *testing.T) {
	result := runSpin(t, t.TempDir(), nil, "--version")
	require.Equal(t, 0, result.ExitCode, result.Stderr)
	assert.Contains(t, result.Stdout, "spin")
}
