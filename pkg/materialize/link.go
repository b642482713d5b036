package materialize

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/homeset/pkg/execute"
	"github.com/arthur-debert/homeset/pkg/report"
)

// Recognized source category names. Anything else at the top level of
// the source tree is ignored by the link strategy.
const (
	CategoryKitty      = "kitty"
	CategorySwaylock   = "swaylock"
	CategoryHypr       = "hypr"
	CategoryWallpapers = "wallpapers"
	CategoryFaces      = "faces"
)

// hyprShadersDirName is checked both under the hypr tree and at the
// source top level; either location ends up at .config/hypr/shaders.
const hyprShadersDirName = "shaders"

// category is one recognized source subtree with its placement rule.
// plan inspects the source and returns the operations to run; empty
// operations with a reason means the category is skipped.
type category struct {
	name string
	plan func() (ops []execute.Operation, skipReason string, err error)
}

func (m *Materializer) categories() []category {
	return []category{
		{name: CategoryKitty, plan: m.planConfigLink(CategoryKitty)},
		{name: CategorySwaylock, plan: m.planConfigLink(CategorySwaylock)},
		{name: CategoryHypr, plan: m.planHypr},
		{name: CategoryWallpapers, plan: m.planWallpapers},
		{name: CategoryFaces, plan: m.planAvatar},
	}
}

// linkAll runs every category as its own operation batch. A failing
// category is recorded and the remaining categories still run.
func (m *Materializer) linkAll(ctx context.Context, rep *report.Report) {
	for _, cat := range m.categories() {
		ops, skipReason, err := cat.plan()
		if err != nil {
			m.logger.Warn().Err(err).Str("category", cat.name).Msg("Category planning failed")
			rep.AddFailed(cat.name, err)
			continue
		}
		if len(ops) == 0 {
			rep.AddSkipped(cat.name, skipReason)
			continue
		}
		if err := m.exec.Execute(ctx, ops); err != nil {
			m.logger.Warn().Err(err).Str("category", cat.name).Msg("Category failed")
			rep.AddFailed(cat.name, err)
			continue
		}
		rep.AddSuccess(cat.name)
	}
}

// planConfigLink handles the simple pass-through categories: one
// directory link from source/<name> to .config/<name>.
func (m *Materializer) planConfigLink(name string) func() ([]execute.Operation, string, error) {
	return func() ([]execute.Operation, string, error) {
		src := filepath.Join(m.opts.SourceRoot, name)
		if !dirExists(src) {
			return nil, "not present in source", nil
		}
		return []execute.Operation{
			execute.CreateDir(m.paths.ConfigDir()),
			execute.CreateSymlink(src, m.paths.ConfigPath(name)),
		}, "", nil
	}
}

// planHypr handles the composite window-manager category. The primary
// config file and each fragment file are linked individually so local
// additions next to them survive; scripts and shaders are linked as
// whole directories.
func (m *Materializer) planHypr() ([]execute.Operation, string, error) {
	src := filepath.Join(m.opts.SourceRoot, CategoryHypr)
	if !dirExists(src) {
		return nil, "not present in source", nil
	}

	dst := m.paths.ConfigPath(CategoryHypr)
	ops := []execute.Operation{execute.CreateDir(dst)}

	if mainConf := filepath.Join(src, "hyprland.conf"); fileExists(mainConf) {
		ops = append(ops, execute.CreateSymlink(mainConf, filepath.Join(dst, "hyprland.conf")))
	}

	if confDir := filepath.Join(src, "conf"); dirExists(confDir) {
		fragments, err := sortedFileNames(confDir)
		if err != nil {
			return nil, "", err
		}
		ops = append(ops, execute.CreateDir(filepath.Join(dst, "conf")))
		for _, name := range fragments {
			ops = append(ops, execute.CreateSymlink(
				filepath.Join(confDir, name),
				filepath.Join(dst, "conf", name)))
		}
	}

	if scripts := filepath.Join(src, "scripts"); dirExists(scripts) {
		ops = append(ops, execute.CreateSymlink(scripts, filepath.Join(dst, "scripts")))
	}

	// Shaders may live under the hypr tree or at the source top level
	for _, shaders := range []string{
		filepath.Join(src, hyprShadersDirName),
		filepath.Join(m.opts.SourceRoot, hyprShadersDirName),
	} {
		if dirExists(shaders) {
			ops = append(ops, execute.CreateSymlink(shaders, filepath.Join(dst, hyprShadersDirName)))
			break
		}
	}

	return ops, "", nil
}

// planWallpapers links the wallpapers directory as one unit under Pictures
func (m *Materializer) planWallpapers() ([]execute.Operation, string, error) {
	src := filepath.Join(m.opts.SourceRoot, CategoryWallpapers)
	if !dirExists(src) {
		return nil, "not present in source", nil
	}
	return []execute.Operation{
		execute.CreateDir(m.paths.PicturesDir()),
		execute.CreateSymlink(src, m.paths.WallpapersDir()),
	}, "", nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// sortedFileNames returns the regular files in dir, sorted by name
func sortedFileNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
