// Package appregistry answers whether a bundle identifier belongs to an
// application that is still installed, using the LaunchServices database
// and the .app bundles in the Applications folders.
package appregistry

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/lu-zhengda/macsweep/internal/log"
)

const lsregisterPath = "/System/Library/Frameworks/CoreServices.framework/Frameworks/LaunchServices.framework/Support/lsregister"

// Registry caches the registered bundle identifiers for the lifetime of
// the process. Safe for concurrent use.
type Registry struct {
	// runCmd executes a command and returns its stdout.
	// Defaults to exec.CommandContext(...).Output(); override in tests.
	runCmd func(ctx context.Context, name string, args ...string) ([]byte, error)

	appDirs []string

	group  singleflight.Group
	mu     sync.Mutex
	ids    map[string]struct{}
	loaded bool
}

// New returns a Registry that searches /Applications and ~/Applications.
func New(home string) *Registry {
	return &Registry{
		runCmd: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
		appDirs: []string{"/Applications", filepath.Join(home, "Applications")},
	}
}

// BundleIDs returns every identifier registered with LaunchServices. The
// dump runs at most once successfully; concurrent first callers share it.
func (r *Registry) BundleIDs(ctx context.Context) (map[string]struct{}, error) {
	r.mu.Lock()
	if r.loaded {
		ids := r.ids
		r.mu.Unlock()
		return ids, nil
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do("lsregister", func() (any, error) {
		r.mu.Lock()
		if r.loaded {
			ids := r.ids
			r.mu.Unlock()
			return ids, nil
		}
		r.mu.Unlock()

		out, err := r.runCmd(ctx, lsregisterPath, "-dump")
		if err != nil {
			return nil, fmt.Errorf("failed to dump launch services database: %w", err)
		}
		ids := ParseDump(out)
		log.Debug().Int("count", len(ids)).Msg("loaded registered bundle identifiers")

		r.mu.Lock()
		r.ids, r.loaded = ids, true
		r.mu.Unlock()
		return ids, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]struct{}), nil
}

// ParseDump extracts bundle identifiers from lsregister -dump output.
func ParseDump(out []byte) map[string]struct{} {
	ids := make(map[string]struct{})
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		var id string
		if _, after, ok := strings.Cut(line, "bundle identifier:"); ok {
			id = after
		} else if after, ok := strings.CutPrefix(line, "identifier:"); ok {
			id = after
		}
		if id = strings.TrimSpace(id); id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// Related reports whether bundleID is registered, shares a prefix with a
// registered identifier, or names an installed .app bundle.
func (r *Registry) Related(ctx context.Context, bundleID string) (bool, error) {
	ids, err := r.BundleIDs(ctx)
	if err != nil {
		return false, err
	}
	if matchesRegistered(bundleID, ids) {
		return true, nil
	}
	return r.hasMatchingApp(bundleID), nil
}

// IsRelatedToInstalledApp is Related without the error. When the
// LaunchServices database cannot be read only the .app bundles are checked.
func (r *Registry) IsRelatedToInstalledApp(ctx context.Context, bundleID string) bool {
	related, err := r.Related(ctx, bundleID)
	if err != nil {
		log.Warn().Err(err).Str("bundle_id", bundleID).Msg("installed app lookup degraded")
		return r.hasMatchingApp(bundleID)
	}
	return related
}

func matchesRegistered(bundleID string, ids map[string]struct{}) bool {
	if _, ok := ids[bundleID]; ok {
		return true
	}
	for id := range ids {
		if strings.HasPrefix(bundleID, id) || strings.HasPrefix(id, bundleID) {
			return true
		}
	}
	return false
}

// nameHints returns the dot components of bundleID that usually carry the
// application name: the last and the second-to-last.
func nameHints(bundleID string) []string {
	parts := strings.Split(bundleID, ".")
	if len(parts) == 1 {
		return []string{strings.ToLower(bundleID)}
	}

	var hints []string
	for _, p := range []string{parts[len(parts)-2], parts[len(parts)-1]} {
		if p != "" {
			hints = append(hints, strings.ToLower(p))
		}
	}
	return hints
}

func (r *Registry) hasMatchingApp(bundleID string) bool {
	hints := nameHints(bundleID)
	if len(hints) == 0 {
		return false
	}

	for _, dir := range r.appDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !strings.HasSuffix(e.Name(), ".app") {
				continue
			}
			name := strings.ToLower(e.Name())
			for _, h := range hints {
				if strings.Contains(name, h) {
					return true
				}
			}
		}
	}
	return false
}
