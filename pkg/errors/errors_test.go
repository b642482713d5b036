package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrTargetMissing, "target home does not exist")
	assert.Equal(t, ErrTargetMissing, err.Code)
	assert.Equal(t, "[TARGET_HOME_MISSING] target home does not exist", err.Error())
	assert.Nil(t, err.Wrapped)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrSymlinkCreate, "failed to link %s", "kitty")
	assert.Equal(t, "[SYMLINK_CREATE] failed to link kitty", err.Error())
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("permission denied")
	err := Wrap(inner, ErrChownFailed, "chown failed")
	require.NotNil(t, err)
	assert.Equal(t, ErrChownFailed, err.Code)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, inner, errors.Unwrap(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrChownFailed, "no-op"))
	assert.Nil(t, Wrapf(nil, ErrChownFailed, "no-op %d", 1))
}

func TestIsErrorCode(t *testing.T) {
	err := New(ErrSourceMissing, "dotfiles root not found")
	wrapped := fmt.Errorf("outer: %w", err)

	assert.True(t, IsErrorCode(err, ErrSourceMissing))
	assert.True(t, IsErrorCode(wrapped, ErrSourceMissing))
	assert.False(t, IsErrorCode(err, ErrTargetMissing))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrSourceMissing))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrSyncFailed, GetErrorCode(New(ErrSyncFailed, "sync")))
	assert.Equal(t, ErrUnknown, GetErrorCode(errors.New("plain")))
}

func TestErrorIs(t *testing.T) {
	a := New(ErrStepFailed, "one")
	b := New(ErrStepFailed, "two")
	c := New(ErrStepCommand, "three")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrFileCopy, "copy failed").
		WithDetail("source", "/dotfiles/faces/a.png").
		WithDetail("target", "/var/lib/AccountsService/icons/alice")
	assert.Equal(t, "/dotfiles/faces/a.png", err.Details["source"])
	assert.Len(t, err.Details, 2)
}
