// Package testutil provides filesystem helpers for homeset tests.
// Tests run against real temp directories: symlink resolution, mode
// bits and deletion propagation are the behavior under test, and an
// in-memory filesystem would fake exactly the parts that matter.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// WriteFile creates a file with parents, failing the test on error
func WriteFile(t *testing.T, path, content string, mode fs.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	// WriteFile mode passes through umask; force the exact bits
	require.NoError(t, os.Chmod(path, mode))
}

// MkDir creates a directory with parents, failing the test on error
func MkDir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0755))
}

// ReadFile reads a file, failing the test on error
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

// AssertSymlinkTo asserts that link is a symlink resolving to target
func AssertSymlinkTo(t *testing.T, link, target string) {
	t.Helper()
	info, err := os.Lstat(link)
	require.NoError(t, err, "expected symlink at %s", link)
	require.NotZero(t, info.Mode()&fs.ModeSymlink, "expected %s to be a symlink", link)

	resolved, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, resolved)
}

// AssertNotExists asserts that nothing exists at path, not even a dangling link
func AssertNotExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "expected %s to not exist", path)
}

// AssertFileContent asserts a regular file exists with exact content
func AssertFileContent(t *testing.T, path, content string) {
	t.Helper()
	actual, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(actual))
}

// AssertFileMode asserts the permission bits of path
func AssertFileMode(t *testing.T, path string, mode fs.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, mode, info.Mode().Perm())
}

// SnapshotTree walks root and returns relative path -> content for
// regular files, used for byte-identical mirror assertions.
func SnapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	snapshot := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		snapshot[rel] = string(content)
		return nil
	})
	require.NoError(t, err)
	return snapshot
}
