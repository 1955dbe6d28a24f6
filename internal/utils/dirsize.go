package utils

import (
	"io/fs"
	"os"
	"path/filepath"
)

// WalkErrorFunc receives entries that could not be read while walking a
// tree. The walk always continues after it returns.
type WalkErrorFunc func(path string, err error)

func (fn WalkErrorFunc) report(path string, err error) {
	if fn != nil {
		fn(path, err)
	}
}

// SizeOf returns the space occupied by path: 0 when it does not exist, the
// byte length of a regular file, or the sum of every regular file below a
// directory. Symlinks are never followed and count as 0. Entries that
// cannot be read are passed to onErr and contribute nothing.
func SizeOf(path string, onErr WalkErrorFunc) int64 {
	info, err := os.Lstat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			onErr.report(path, err)
		}
		return 0
	}

	switch {
	case info.Mode().IsRegular():
		return info.Size()
	case info.IsDir():
		return DirSize(path, onErr)
	default:
		return 0
	}
}

// DirSize sums the regular files of a directory tree in a single
// filepath.WalkDir pass.
func DirSize(root string, onErr WalkErrorFunc) int64 {
	var size int64
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			onErr.report(path, err)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			onErr.report(path, err)
			return nil
		}
		size += info.Size()
		return nil
	})
	return size
}
