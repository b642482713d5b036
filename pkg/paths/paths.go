// Package paths provides centralized path handling for homeset.
// It computes every destination path the materializer writes to, so the
// placement rules live in one place instead of being scattered through
// the strategies.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/homeset/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for the dotfiles location
	EnvDotfilesRoot = "HOMESET_DOTFILES_ROOT"

	// EnvAccountsDir overrides the AccountsService root, mainly for tests
	EnvAccountsDir = "HOMESET_ACCOUNTS_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed directory and file names. These mirror the layout the desktop
// stack expects and are not user-configurable.
const (
	// ConfigDirName is the per-user configuration directory under home
	ConfigDirName = ".config"

	// PicturesDirName is the per-user pictures directory under home
	PicturesDirName = "Pictures"

	// WallpapersDirName is the wallpapers directory name, both in the
	// source tree and under Pictures
	WallpapersDirName = "wallpapers"

	// AccountsServiceDir is where display managers look up user avatars
	AccountsServiceDir = "/var/lib/AccountsService"

	// ConfigFileName is the name of the homeset configuration file
	ConfigFileName = "homeset.toml"

	// LogFileName is the name of the log file
	LogFileName = "homeset.log"
)

// Paths resolves destination locations for one target user's home.
type Paths struct {
	targetHome   string
	targetUser   string
	accountsRoot string
}

// New creates a Paths instance for the given target home and user.
// targetHome must be non-empty; existence is checked by the materializer,
// not here.
func New(targetHome, targetUser string) (*Paths, error) {
	if targetHome == "" {
		return nil, errors.New(errors.ErrInvalidInput, "target home must not be empty")
	}
	if targetUser == "" {
		return nil, errors.New(errors.ErrInvalidInput, "target user must not be empty")
	}

	accountsRoot := os.Getenv(EnvAccountsDir)
	if accountsRoot == "" {
		accountsRoot = AccountsServiceDir
	}

	return &Paths{
		targetHome:   filepath.Clean(targetHome),
		targetUser:   targetUser,
		accountsRoot: accountsRoot,
	}, nil
}

// TargetHome returns the target user's home directory
func (p *Paths) TargetHome() string {
	return p.targetHome
}

// TargetUser returns the target user name
func (p *Paths) TargetUser() string {
	return p.targetUser
}

// ConfigDir returns the target user's configuration directory
func (p *Paths) ConfigDir() string {
	return filepath.Join(p.targetHome, ConfigDirName)
}

// ConfigPath returns the destination for a named configuration subtree
func (p *Paths) ConfigPath(name string) string {
	return filepath.Join(p.ConfigDir(), name)
}

// PicturesDir returns the target user's pictures directory
func (p *Paths) PicturesDir() string {
	return filepath.Join(p.targetHome, PicturesDirName)
}

// WallpapersDir returns the wallpapers destination under Pictures
func (p *Paths) WallpapersDir() string {
	return filepath.Join(p.PicturesDir(), WallpapersDirName)
}

// AvatarIconPath returns the AccountsService icon path for the target user
func (p *Paths) AvatarIconPath() string {
	return filepath.Join(p.accountsRoot, "icons", p.targetUser)
}

// AvatarDescriptorPath returns the AccountsService user descriptor path
func (p *Paths) AvatarDescriptorPath() string {
	return filepath.Join(p.accountsRoot, "users", p.targetUser)
}

// OwnedRoots returns the trees whose ownership is forced to the target
// user after materialization. The AccountsService paths stay root-owned
// and are deliberately not listed.
func (p *Paths) OwnedRoots() []string {
	return []string{p.ConfigDir(), p.PicturesDir()}
}

// ConfigFileCandidates returns the locations searched for the homeset
// configuration file, in precedence order (later wins when merged).
func ConfigFileCandidates() []string {
	return []string{
		filepath.Join("/etc", "homeset", ConfigFileName),
		filepath.Join(xdg.ConfigHome, "homeset", ConfigFileName),
	}
}

// DefaultDotfilesRoot resolves the dotfiles root from the environment,
// falling back to ~/dotfiles for the invoking user.
func DefaultDotfilesRoot() string {
	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return root
	}
	home := os.Getenv(EnvHome)
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, "dotfiles")
}

// IsUnder reports whether path is located under root after cleaning.
func IsUnder(root, path string) bool {
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	if root == path {
		return true
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}
