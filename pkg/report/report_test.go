package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportAccumulation(t *testing.T) {
	r := New("link dotfiles")
	r.AddSuccess("kitty")
	r.AddSkipped("swaylock", "not present in source")
	r.AddFailed("hypr", errors.New("symlink failed"))

	require.Len(t, r.Steps, 3)
	assert.True(t, r.HasFailures())

	succeeded, skipped, failed := r.Counts()
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, failed)
}

func TestFind(t *testing.T) {
	r := New("link dotfiles")
	r.AddSuccess("wallpapers")

	step := r.Find("wallpapers")
	require.NotNil(t, step)
	assert.Equal(t, StatusSuccess, step.Status)

	assert.Nil(t, r.Find("faces"))
}

func TestMerge(t *testing.T) {
	a := New("provision")
	a.AddSuccess("install packages")

	b := New("materialize")
	b.AddSkipped("faces", "no avatar image found")

	a.Merge(b)
	require.Len(t, a.Steps, 2)
	assert.Equal(t, "faces", a.Steps[1].Name)

	a.Merge(nil)
	assert.Len(t, a.Steps, 2)
}

func TestHasFailuresEmpty(t *testing.T) {
	assert.False(t, New("empty").HasFailures())
}
