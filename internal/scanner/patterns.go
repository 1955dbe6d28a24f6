package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lu-zhengda/macsweep/internal/utils"
)

// FindAndSize walks root and collects every file or directory whose base
// name contains one of patterns. A match is sized by its own Lstat size,
// not recursively, and the walk still descends into matched directories.
func FindAndSize(root string, patterns []string, onErr utils.WalkErrorFunc) (int64, []Entry) {
	if _, err := os.Lstat(root); err != nil {
		if !os.IsNotExist(err) && onErr != nil {
			onErr(root, err)
		}
		return 0, nil
	}

	var (
		total   int64
		matches []Entry
	)

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if onErr != nil {
				onErr(path, err)
			}
			return nil
		}
		if path == root || !matchesAny(d.Name(), patterns) {
			return nil
		}

		var size int64
		info, err := d.Info()
		if err != nil {
			if onErr != nil {
				onErr(path, err)
			}
		} else {
			size = info.Size()
		}

		total += size
		matches = append(matches, Entry{Path: path, Size: size})
		return nil
	})

	return total, matches
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(name, p) {
			return true
		}
	}
	return false
}
