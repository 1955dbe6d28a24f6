package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lu-zhengda/macsweep/internal/utils"
)

// InstalledAppOracle answers whether a bundle identifier belongs to an
// application that is still installed.
type InstalledAppOracle interface {
	Related(ctx context.Context, bundleID string) (bool, error)
}

// SafeSubfolders returns the children of base named in names that exist
// and are directories, in the order of names.
func SafeSubfolders(base string, names ...string) []string {
	var dirs []string
	for _, name := range names {
		candidate := filepath.Join(base, name)
		if utils.DirExists(candidate) {
			dirs = append(dirs, candidate)
		}
	}
	return dirs
}

// listDirs returns the immediate subdirectories of root. A missing root
// yields nothing.
func listDirs(root string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	dirs := entries[:0]
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e)
		}
	}
	return dirs, nil
}

// ContainerCachesAndLogs resolves the Caches and Logs folders inside every
// sandboxed container under containersDir.
func ContainerCachesAndLogs(containersDir string) Resolver {
	return func(_ context.Context) ([]string, error) {
		containers, err := listDirs(containersDir)
		if err != nil {
			return nil, err
		}

		var paths []string
		for _, c := range containers {
			lib := filepath.Join(containersDir, c.Name(), "Data", "Library")
			paths = append(paths, SafeSubfolders(lib, "Caches", "Logs")...)
		}
		return paths, nil
	}
}

// Subfolders resolves the existing children of base named in names.
func Subfolders(base string, names ...string) Resolver {
	return func(_ context.Context) ([]string, error) {
		return SafeSubfolders(base, names...), nil
	}
}

// UnusedContainers resolves container directories whose bundle identifier
// is not related to any installed application. Identifiers starting with
// one of skipPrefixes are never reported. An oracle failure fails the
// whole resolver.
func UnusedContainers(containersDir string, oracle InstalledAppOracle, skipPrefixes []string) Resolver {
	return func(ctx context.Context) ([]string, error) {
		if oracle == nil {
			return nil, fmt.Errorf("no installed-application registry available")
		}

		containers, err := listDirs(containersDir)
		if err != nil {
			return nil, err
		}

		var unused []string
		for _, c := range containers {
			id := c.Name()
			if hasAnyPrefix(id, skipPrefixes) {
				continue
			}

			related, err := oracle.Related(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to check %s: %w", id, err)
			}
			if !related {
				unused = append(unused, filepath.Join(containersDir, id))
			}
		}
		return unused, nil
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
