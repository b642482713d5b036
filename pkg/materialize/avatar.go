package materialize

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/homeset/pkg/execute"
)

// avatarExtensions are the image types accepted as user avatars,
// matched case-insensitively.
var avatarExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// planAvatar copies the first avatar image (sorted by name for a
// deterministic pick) to the AccountsService icon path and writes the
// descriptor the display manager reads. The icon is copied, not linked:
// AccountsService files stay root-owned outside the target home.
func (m *Materializer) planAvatar() ([]execute.Operation, string, error) {
	src := filepath.Join(m.opts.SourceRoot, CategoryFaces)
	if !dirExists(src) {
		return nil, "not present in source", nil
	}

	image, ok, err := firstAvatarImage(src)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "no avatar image found", nil
	}

	iconPath := m.paths.AvatarIconPath()
	descriptorPath := m.paths.AvatarDescriptorPath()

	return []execute.Operation{
		execute.CreateDir(filepath.Dir(iconPath)),
		execute.CopyFile(image, iconPath),
		execute.CreateDir(filepath.Dir(descriptorPath)),
		execute.WriteFile(descriptorPath, avatarDescriptor(iconPath), 0644),
	}, "", nil
}

// firstAvatarImage scans dir non-recursively for image files and
// returns the first one by name. Directory listing order is not
// guaranteed stable, so candidates are sorted before picking.
func firstAvatarImage(dir string) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, err
	}

	var candidates []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if avatarExtensions[ext] {
			candidates = append(candidates, entry.Name())
		}
	}
	if len(candidates) == 0 {
		return "", false, nil
	}

	sort.Strings(candidates)
	return filepath.Join(dir, candidates[0]), true, nil
}

// avatarDescriptor renders the AccountsService user file pointing the
// display manager at the copied icon.
func avatarDescriptor(iconPath string) []byte {
	return []byte(fmt.Sprintf("[User]\nIcon=%s\n", iconPath))
}
