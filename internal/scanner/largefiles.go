package scanner

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/lu-zhengda/macsweep/internal/utils"
)

// DefaultLargeFileThreshold is the size a download must exceed to be
// reported as large.
const DefaultLargeFileThreshold = 100 * utils.MB

// LargeFiles returns a resolver listing regular files below dir, at any
// depth, whose size is strictly greater than threshold.
func LargeFiles(dir string, threshold int64) Resolver {
	return func(ctx context.Context) ([]string, error) {
		if !utils.DirExists(dir) {
			return nil, nil
		}

		var paths []string
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err != nil {
				warn(ctx, path, err)
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				warn(ctx, path, err)
				return nil
			}
			if info.Size() > threshold {
				paths = append(paths, path)
			}
			return nil
		})
		return paths, err
	}
}
