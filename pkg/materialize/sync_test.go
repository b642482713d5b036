package materialize

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/homeset/pkg/report"
	"github.com/arthur-debert/homeset/pkg/testutil"
)

func TestCopyStrategyMirrorsSourceTree(t *testing.T) {
	e := newEnv(t)
	testutil.WriteFile(t, filepath.Join(e.source, "kitty", "kitty.conf"), "font_size 12", 0644)
	testutil.WriteFile(t, filepath.Join(e.source, "hypr", "scripts", "startup.sh"), "#!/bin/sh\n", 0755)

	rep, err := e.materializer(t, StrategyCopy).Materialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.StatusSuccess, rep.Find(stepSyncConfig).Status)

	configDir := filepath.Join(e.home, ".config")
	testutil.AssertFileContent(t, filepath.Join(configDir, "kitty", "kitty.conf"), "font_size 12")
	testutil.AssertFileContent(t, filepath.Join(configDir, "hypr", "scripts", "startup.sh"), "#!/bin/sh\n")
	testutil.AssertFileMode(t, filepath.Join(configDir, "hypr", "scripts", "startup.sh"), 0755)
}

func TestCopyStrategyDeletesStaleEntries(t *testing.T) {
	e := newEnv(t)
	testutil.WriteFile(t, filepath.Join(e.source, "kitty", "kitty.conf"), "font_size 12", 0644)
	// Destination entries with no source counterpart
	testutil.WriteFile(t, filepath.Join(e.home, ".config", "kitty", "old.conf"), "stale", 0644)
	testutil.WriteFile(t, filepath.Join(e.home, ".config", "removedapp", "settings.ini"), "stale", 0644)

	_, err := e.materializer(t, StrategyCopy).Materialize(context.Background())
	require.NoError(t, err)

	testutil.AssertNotExists(t, filepath.Join(e.home, ".config", "kitty", "old.conf"))
	testutil.AssertNotExists(t, filepath.Join(e.home, ".config", "removedapp"))
	testutil.AssertFileContent(t, filepath.Join(e.home, ".config", "kitty", "kitty.conf"), "font_size 12")
}

func TestCopyStrategyIsIdempotent(t *testing.T) {
	e := newEnv(t)
	testutil.WriteFile(t, filepath.Join(e.source, "kitty", "kitty.conf"), "font_size 12", 0644)
	testutil.WriteFile(t, filepath.Join(e.source, "wallpapers", "forest.jpg"), "jpeg-bytes", 0644)

	m := e.materializer(t, StrategyCopy)
	_, err := m.Materialize(context.Background())
	require.NoError(t, err)
	first := testutil.SnapshotTree(t, e.home)

	_, err = m.Materialize(context.Background())
	require.NoError(t, err)
	second := testutil.SnapshotTree(t, e.home)

	assert.Equal(t, first, second)
}

func TestCopyStrategyMirrorsWallpapersIntoPictures(t *testing.T) {
	e := newEnv(t)
	testutil.WriteFile(t, filepath.Join(e.source, "wallpapers", "forest.jpg"), "jpeg-bytes", 0644)
	// A stale wallpaper that must be pruned by the secondary mirror
	testutil.WriteFile(t, filepath.Join(e.home, "Pictures", "wallpapers", "old.png"), "old", 0644)

	rep, err := e.materializer(t, StrategyCopy).Materialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.StatusSuccess, rep.Find(stepSyncWallpapers).Status)

	testutil.AssertFileContent(t, filepath.Join(e.home, "Pictures", "wallpapers", "forest.jpg"), "jpeg-bytes")
	testutil.AssertNotExists(t, filepath.Join(e.home, "Pictures", "wallpapers", "old.png"))
}

func TestCopyStrategySkipsWallpapersWhenAbsent(t *testing.T) {
	e := newEnv(t)
	testutil.WriteFile(t, filepath.Join(e.source, "kitty", "kitty.conf"), "font_size 12", 0644)

	rep, err := e.materializer(t, StrategyCopy).Materialize(context.Background())
	require.NoError(t, err)

	step := rep.Find(stepSyncWallpapers)
	require.NotNil(t, step)
	assert.Equal(t, report.StatusSkipped, step.Status)
}

func TestCopyStrategyForcesOwnershipDuringSync(t *testing.T) {
	e := newEnv(t)
	testutil.WriteFile(t, filepath.Join(e.source, "kitty", "kitty.conf"), "font_size 12", 0644)

	_, err := e.materializer(t, StrategyCopy).Materialize(context.Background())
	require.NoError(t, err)

	assert.True(t, e.owner.chowned[filepath.Join(e.home, ".config", "kitty")])
	assert.True(t, e.owner.chowned[filepath.Join(e.home, ".config", "kitty", "kitty.conf")])
	// Final defensive pass over both managed roots
	assert.True(t, e.owner.trees[filepath.Join(e.home, ".config")])
	assert.True(t, e.owner.trees[filepath.Join(e.home, "Pictures")])
}

func TestCopyStrategyReplacesFileWithDirectory(t *testing.T) {
	e := newEnv(t)
	testutil.WriteFile(t, filepath.Join(e.source, "kitty", "kitty.conf"), "font_size 12", 0644)
	// Destination has a regular file where the source has a directory
	testutil.WriteFile(t, filepath.Join(e.home, ".config", "kitty"), "i am a file", 0644)

	_, err := e.materializer(t, StrategyCopy).Materialize(context.Background())
	require.NoError(t, err)

	testutil.AssertFileContent(t, filepath.Join(e.home, ".config", "kitty", "kitty.conf"), "font_size 12")
}

func TestFirstAvatarImageDeterminism(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "b.jpg"), "b", 0644)
	testutil.WriteFile(t, filepath.Join(dir, "a.png"), "a", 0644)
	testutil.WriteFile(t, filepath.Join(dir, "notes.txt"), "n", 0644)

	for i := 0; i < 5; i++ {
		image, ok, err := firstAvatarImage(dir)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "a.png"), image)
	}
}

func TestFirstAvatarImageCaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "AVATAR.PNG"), "caps", 0644)

	image, ok, err := firstAvatarImage(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "AVATAR.PNG"), image)
}
