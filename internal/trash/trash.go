// Package trash permanently removes files and directories. Nothing is
// moved to the Finder Trash and nothing can be recovered.
package trash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lu-zhengda/macsweep/internal/utils"
)

// ErrProtected is returned for paths that must never be deleted.
var ErrProtected = errors.New("refusing to delete protected path")

var systemRoots = []string{
	"/",
	"/Applications",
	"/Library",
	"/System",
	"/Users",
	"/Volumes",
	"/bin",
	"/cores",
	"/dev",
	"/etc",
	"/opt",
	"/private",
	"/private/etc",
	"/private/var",
	"/sbin",
	"/usr",
	"/var",
}

// IsProtected reports whether path is a filesystem root, a system
// directory, or one of the top-level folders of home.
func IsProtected(path, home string) bool {
	if path == "" {
		return true
	}
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return true
	}

	for _, root := range systemRoots {
		if clean == root {
			return true
		}
	}

	if home != "" {
		home = filepath.Clean(home)
		for _, p := range []string{
			home,
			filepath.Join(home, "Library"),
			filepath.Join(home, "Documents"),
			filepath.Join(home, "Desktop"),
			filepath.Join(home, "Downloads"),
		} {
			if clean == p {
				return true
			}
		}
	}
	return false
}

// PermanentDelete removes path. Files and symlinks are unlinked;
// directories are removed bottom-up, continuing past entries that cannot
// be removed and returning those failures joined.
func PermanentDelete(path string) error {
	if IsProtected(path, utils.HomeDir()) {
		return fmt.Errorf("%s: %w", path, ErrProtected)
	}

	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return os.Remove(path)
	}
	return removeTree(path)
}

func removeTree(dir string) error {
	var errs []error

	entries, err := os.ReadDir(dir)
	if err != nil {
		errs = append(errs, err)
	}
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if err := removeTree(p); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if err := os.Remove(p); err != nil {
			errs = append(errs, err)
		}
	}

	// A directory with surviving children cannot go; its children already
	// explain why.
	if len(errs) == 0 {
		if err := os.Remove(dir); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
