package materialize

import (
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/homeset/pkg/errors"
)

// Owner resolves and applies file ownership. It is an interface so the
// chown behavior can be verified in tests without running as root.
type Owner interface {
	// Lookup resolves a username to numeric uid and gid
	Lookup(username string) (uid, gid int, err error)

	// Chown changes ownership of a single path without following symlinks
	Chown(path string, uid, gid int) error

	// ChownTree changes ownership of root and everything under it.
	// A missing root is not an error.
	ChownTree(root string, uid, gid int) error
}

type osOwner struct{}

// NewOSOwner returns an Owner backed by the real user database and filesystem
func NewOSOwner() Owner {
	return &osOwner{}
}

func (o *osOwner) Lookup(username string) (int, int, error) {
	u, err := user.Lookup(username)
	if err != nil {
		return 0, 0, errors.Wrapf(err, errors.ErrUserUnknown, "unknown user %q", username)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, 0, errors.Wrapf(err, errors.ErrInternal, "non-numeric uid %q", u.Uid)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return 0, 0, errors.Wrapf(err, errors.ErrInternal, "non-numeric gid %q", u.Gid)
	}
	return uid, gid, nil
}

func (o *osOwner) Chown(path string, uid, gid int) error {
	if err := os.Lchown(path, uid, gid); err != nil {
		return errors.Wrapf(err, errors.ErrChownFailed, "failed to chown %s", path)
	}
	return nil
}

func (o *osOwner) ChownTree(root string, uid, gid int) error {
	if _, err := os.Lstat(root); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrChownFailed, "failed to stat %s", root)
	}

	return filepath.WalkDir(root, func(path string, _ os.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrChownFailed, "failed to walk %s", path)
		}
		return o.Chown(path, uid, gid)
	})
}
