package execute

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/homeset/pkg/errors"
)

func TestExecuteCreatesDirAndSymlink(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src", "kitty")
	require.NoError(t, os.MkdirAll(source, 0755))

	link := filepath.Join(dir, "home", ".config", "kitty")
	exec := New(false, dir)

	err := exec.Execute(context.Background(), []Operation{
		CreateDir(filepath.Dir(link)),
		CreateSymlink(source, link),
	})
	require.NoError(t, err)

	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, source, target)
}

func TestExecuteOverwritesExistingEntry(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src", "swaylock")
	require.NoError(t, os.MkdirAll(source, 0755))

	link := filepath.Join(dir, ".config", "swaylock")
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, os.WriteFile(link, []byte("stale file"), 0644))

	exec := New(false, dir)
	err := exec.Execute(context.Background(), []Operation{CreateSymlink(source, link)})
	require.NoError(t, err)

	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, source, target)
}

func TestExecuteOverwritesPopulatedDirectory(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src", "kitty")
	require.NoError(t, os.MkdirAll(source, 0755))

	// A real directory with contents sits where the link belongs
	link := filepath.Join(dir, ".config", "kitty")
	require.NoError(t, os.MkdirAll(link, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(link, "kitty.conf"), []byte("stale"), 0644))

	exec := New(false, dir)
	err := exec.Execute(context.Background(), []Operation{CreateSymlink(source, link)})
	require.NoError(t, err)

	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, source, target)
}

func TestExecuteRelinksOnRerun(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src", "wallpapers")
	require.NoError(t, os.MkdirAll(source, 0755))

	link := filepath.Join(dir, "Pictures", "wallpapers")
	exec := New(false, dir)
	ops := []Operation{
		CreateDir(filepath.Dir(link)),
		CreateSymlink(source, link),
	}

	require.NoError(t, exec.Execute(context.Background(), ops))
	require.NoError(t, exec.Execute(context.Background(), ops))

	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, source, target)
}

func TestExecuteWriteAndCopy(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "faces", "a.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(source), 0755))
	require.NoError(t, os.WriteFile(source, []byte("png-bytes"), 0644))

	icon := filepath.Join(dir, "accounts", "icons", "alice")
	descriptor := filepath.Join(dir, "accounts", "users", "alice")

	exec := New(false, dir)
	err := exec.Execute(context.Background(), []Operation{
		CreateDir(filepath.Dir(icon)),
		CopyFile(source, icon),
		CreateDir(filepath.Dir(descriptor)),
		WriteFile(descriptor, []byte("[User]\nIcon="+icon+"\n"), 0644),
	})
	require.NoError(t, err)

	content, err := os.ReadFile(icon)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), content)

	desc, err := os.ReadFile(descriptor)
	require.NoError(t, err)
	assert.Contains(t, string(desc), "Icon="+icon)
}

func TestExecuteRejectsTargetOutsideRoots(t *testing.T) {
	dir := t.TempDir()
	exec := New(false, filepath.Join(dir, "home"))

	err := exec.Execute(context.Background(), []Operation{CreateDir(filepath.Join(dir, "elsewhere"))})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOpInvalid))
}

func TestExecuteRejectsRelativeTarget(t *testing.T) {
	exec := New(false)

	err := exec.Execute(context.Background(), []Operation{CreateDir("relative/path")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOpInvalid))
}

func TestDryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, ".config", "kitty")

	exec := New(true, dir)
	err := exec.Execute(context.Background(), []Operation{
		CreateDir(filepath.Dir(link)),
		CreateSymlink(filepath.Join(dir, "src"), link),
	})
	require.NoError(t, err)

	_, statErr := os.Lstat(link)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecuteEmptyIsNoop(t *testing.T) {
	exec := New(false)
	assert.NoError(t, exec.Execute(context.Background(), nil))
}
