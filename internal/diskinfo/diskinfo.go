// Package diskinfo reports free space and the host platform.
package diskinfo

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
	"golang.org/x/sys/unix"
)

// Usage is the capacity of the filesystem holding a path.
type Usage struct {
	Total int64
	Free  int64
}

// Used returns the bytes in use, including space reserved for root.
func (u Usage) Used() int64 {
	return u.Total - u.Free
}

// Stat returns the usage of the filesystem containing path. Free counts
// only blocks available to unprivileged users.
func Stat(path string) (Usage, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Usage{}, fmt.Errorf("failed to stat filesystem: %w", err)
	}
	bsize := int64(stat.Bsize)
	return Usage{
		Total: int64(stat.Blocks) * bsize,
		Free:  int64(stat.Bavail) * bsize,
	}, nil
}

// Free returns the available disk space in bytes for the given path.
func Free(path string) (int64, error) {
	u, err := Stat(path)
	if err != nil {
		return 0, err
	}
	return u.Free, nil
}

// Platform describes the running OS, e.g. "darwin 14.5 (Standalone
// Workstation)". It falls back to runtime.GOOS.
func Platform(ctx context.Context) string {
	platform, family, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil || platform == "" {
		return runtime.GOOS
	}

	var b strings.Builder
	b.WriteString(platform)
	if version != "" {
		b.WriteString(" " + version)
	}
	if family != "" && family != platform {
		b.WriteString(" (" + family + ")")
	}
	return b.String()
}
