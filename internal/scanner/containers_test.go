package scanner

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOracle struct {
	installed map[string]bool
	err       error
	asked     []string
}

func (f *fakeOracle) Related(_ context.Context, id string) (bool, error) {
	f.asked = append(f.asked, id)
	if f.err != nil {
		return false, f.err
	}
	return f.installed[id], nil
}

func TestSafeSubfolders(t *testing.T) {
	base := t.TempDir()
	mkdir(t, filepath.Join(base, "Logs"))
	mkfile(t, filepath.Join(base, "Caches"), 1) // a file, not a folder

	got := SafeSubfolders(base, "Caches", "Logs", "Missing")
	assert.Equal(t, []string{filepath.Join(base, "Logs")}, got)
}

func TestContainerCachesAndLogs(t *testing.T) {
	root := t.TempDir()
	mkdir(t, filepath.Join(root, "com.a", "Data", "Library", "Caches"))
	mkdir(t, filepath.Join(root, "com.a", "Data", "Library", "Logs"))
	mkdir(t, filepath.Join(root, "com.b", "Data", "Library", "Preferences"))
	mkfile(t, filepath.Join(root, "stray.plist"), 1)

	paths, err := ContainerCachesAndLogs(root)(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "com.a", "Data", "Library", "Caches"),
		filepath.Join(root, "com.a", "Data", "Library", "Logs"),
	}, paths)
}

func TestContainerCachesAndLogs_MissingRoot(t *testing.T) {
	paths, err := ContainerCachesAndLogs(filepath.Join(t.TempDir(), "Containers"))(context.Background())
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestUnusedContainers(t *testing.T) {
	root := t.TempDir()
	for _, id := range []string{"com.apple.Notes", "com.old.Gone", "com.vendor.Kept"} {
		mkdir(t, filepath.Join(root, id))
	}
	oracle := &fakeOracle{installed: map[string]bool{"com.vendor.Kept": true}}

	paths, err := UnusedContainers(root, oracle, DefaultVendorPrefixes)(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "com.old.Gone")}, paths)
	assert.NotContains(t, oracle.asked, "com.apple.Notes", "vendor containers are never checked")
}

func TestUnusedContainers_OracleFailureFailsResolver(t *testing.T) {
	root := t.TempDir()
	mkdir(t, filepath.Join(root, "com.x.App"))
	oracle := &fakeOracle{err: errors.New("lsregister exploded")}

	paths, err := UnusedContainers(root, oracle, DefaultVendorPrefixes)(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lsregister exploded")
	assert.Empty(t, paths)
}

func TestUnusedContainers_NoOracle(t *testing.T) {
	_, err := UnusedContainers(t.TempDir(), nil, nil)(context.Background())
	assert.Error(t, err)
}

func TestUnusedContainers_MissingRoot(t *testing.T) {
	paths, err := UnusedContainers(filepath.Join(t.TempDir(), "nope"), &fakeOracle{}, nil)(context.Background())
	require.NoError(t, err)
	assert.Empty(t, paths)
}
