package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestWorkspace creates a temporary project directory holding a Spinfile.yml
// with the given content plus any extra files, keyed by relative path.
// The directory is removed when the test finishes.
func SetupTestWorkspace(t *testing.T, spinfile string, files map[string]string) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err, "failed to resolve workspace directory")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Spinfile.yml"), []byte(spinfile), 0o644),
		"failed to write spinfile")

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "failed to create %s", filepath.Dir(path))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "failed to write %s", name)
	}

	return dir
}

// RequireTools skips the test when any of the given executables is missing
func RequireTools(t *testing.T, tools ...string) {
	t.Helper()
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not available: %v", tool, err)
		}
	}
}
