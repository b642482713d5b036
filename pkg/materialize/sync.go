package materialize

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/homeset/pkg/errors"
	"github.com/arthur-debert/homeset/pkg/paths"
	"github.com/arthur-debert/homeset/pkg/report"
)

// Step names for the copy strategy
const (
	stepSyncConfig     = "sync .config"
	stepSyncWallpapers = "sync wallpapers"
)

// syncAll implements the copy strategy: mirror the whole source tree
// into .config, then mirror a wallpapers subtree into Pictures if the
// first sync produced one. Ownership is applied during the walk; the
// shared ownership step re-asserts it afterwards.
func (m *Materializer) syncAll(ctx context.Context, rep *report.Report) {
	if m.opts.DryRun {
		rep.AddSkipped(stepSyncConfig, "dry run")
		rep.AddSkipped(stepSyncWallpapers, "dry run")
		return
	}

	uid, gid, err := m.owner.Lookup(m.paths.TargetUser())
	haveOwner := err == nil
	if !haveOwner {
		m.logger.Warn().Err(err).Str("user", m.paths.TargetUser()).
			Msg("Cannot resolve target user, syncing without ownership")
	}

	configDir := m.paths.ConfigDir()
	if err := m.syncDir(ctx, m.opts.SourceRoot, configDir, uid, gid, haveOwner); err != nil {
		m.logger.Warn().Err(err).Msg("Config sync failed")
		rep.AddFailed(stepSyncConfig, err)
	} else {
		rep.AddSuccess(stepSyncConfig)
	}

	wallpapers := filepath.Join(configDir, paths.WallpapersDirName)
	if !dirExists(wallpapers) {
		rep.AddSkipped(stepSyncWallpapers, "no wallpapers directory after sync")
		return
	}
	if err := m.syncDir(ctx, wallpapers, m.paths.WallpapersDir(), uid, gid, haveOwner); err != nil {
		m.logger.Warn().Err(err).Msg("Wallpapers sync failed")
		rep.AddFailed(stepSyncWallpapers, err)
	} else {
		rep.AddSuccess(stepSyncWallpapers)
	}
}

// syncDir mirrors src into dst: after it returns, every entry under dst
// matches src byte-for-byte with the same permission bits, and entries
// with no source counterpart are gone.
func (m *Materializer) syncDir(ctx context.Context, src, dst string, uid, gid int, haveOwner bool) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSyncFailed, "failed to stat %s", src)
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dst)
	}
	m.chownBestEffort(dst, uid, gid, haveOwner)

	if err := m.copyPass(ctx, src, dst, uid, gid, haveOwner); err != nil {
		return err
	}
	return m.deletePass(src, dst)
}

func (m *Materializer) copyPass(ctx context.Context, src, dst string, uid, gid int, haveOwner bool) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrSyncFailed, "failed to walk %s", path)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to relativize %s", path)
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return errors.Wrapf(err, errors.ErrSyncFailed, "failed to stat %s", path)
		}

		switch {
		case d.IsDir():
			if existing, err := os.Lstat(target); err == nil && !existing.IsDir() {
				if err := os.RemoveAll(target); err != nil {
					return errors.Wrapf(err, errors.ErrSyncFailed, "failed to replace %s", target)
				}
			}
			if err := os.MkdirAll(target, info.Mode().Perm()); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", target)
			}
			if err := os.Chmod(target, info.Mode().Perm()); err != nil {
				return errors.Wrapf(err, errors.ErrSyncFailed, "failed to chmod %s", target)
			}
		case d.Type()&fs.ModeSymlink != 0:
			linkDest, err := os.Readlink(path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrSyncFailed, "failed to read link %s", path)
			}
			if err := os.RemoveAll(target); err != nil {
				return errors.Wrapf(err, errors.ErrSyncFailed, "failed to replace %s", target)
			}
			if err := os.Symlink(linkDest, target); err != nil {
				return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s", target)
			}
		default:
			if err := copyFileContents(path, target, info.Mode().Perm()); err != nil {
				return err
			}
		}

		m.chownBestEffort(target, uid, gid, haveOwner)
		return nil
	})
}

// deletePass removes destination entries that have no source counterpart
func (m *Materializer) deletePass(src, dst string) error {
	return filepath.WalkDir(dst, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A parent may already have been removed by this pass
			if os.IsNotExist(err) {
				return nil
			}
			return errors.Wrapf(err, errors.ErrSyncFailed, "failed to walk %s", path)
		}

		rel, err := filepath.Rel(dst, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to relativize %s", path)
		}
		if rel == "." {
			return nil
		}

		if _, err := os.Lstat(filepath.Join(src, rel)); os.IsNotExist(err) {
			m.logger.Debug().Str("path", path).Msg("Removing stale destination entry")
			if err := os.RemoveAll(path); err != nil {
				return errors.Wrapf(err, errors.ErrSyncFailed, "failed to remove %s", path)
			}
			if d.IsDir() {
				return fs.SkipDir
			}
		}
		return nil
	})
}

// chownBestEffort applies ownership if the target user resolved.
// Failures are logged, not returned: a non-root run still produces a
// correct mirror.
func (m *Materializer) chownBestEffort(path string, uid, gid int, haveOwner bool) {
	if !haveOwner {
		return
	}
	if err := m.owner.Chown(path, uid, gid); err != nil {
		m.logger.Warn().Err(err).Str("path", path).Msg("Chown failed")
	}
}

// copyFileContents replaces target with an exact copy of source,
// including permission bits. The target is removed first so a stale
// symlink or directory cannot swallow the write.
func copyFileContents(source, target string, perm fs.FileMode) error {
	if err := os.RemoveAll(target); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to replace %s", target)
	}

	in, err := os.Open(source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to open %s", source)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to create %s", target)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s", source)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to close %s", target)
	}

	// Creation mode is filtered by umask; force the exact source bits
	if err := os.Chmod(target, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to chmod %s", target)
	}
	return nil
}
