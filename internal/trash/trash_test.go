package trash

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestIsProtected(t *testing.T) {
	home := "/Users/me"
	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"", true},
		{"relative/path", true},
		{"/System", true},
		{"/usr/", true},
		{"/Users/me", true},
		{"/Users/me/Library", true},
		{"/Users/me/Downloads", true},
		{"/Users/me/Library/Caches", false},
		{"/Users/me/Downloads/big.iso", false},
		{"/private/tmp", false},
		{"/private/var/folders", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsProtected(tt.path, home), tt.path)
	}
}

func TestPermanentDelete_File(t *testing.T) {
	f := filepath.Join(t.TempDir(), "a.log")
	writeFile(t, f, 10)

	require.NoError(t, PermanentDelete(f))
	_, err := os.Lstat(f)
	assert.True(t, os.IsNotExist(err))
}

func TestPermanentDelete_Tree(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Caches")
	writeFile(t, filepath.Join(dir, "a", "b", "c.bin"), 10)
	writeFile(t, filepath.Join(dir, "top"), 10)

	require.NoError(t, PermanentDelete(dir))
	_, err := os.Lstat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestPermanentDelete_SymlinkRemovedAsLink(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "real")
	writeFile(t, filepath.Join(target, "keep.txt"), 10)
	dir := filepath.Join(base, "victim")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link")))

	require.NoError(t, PermanentDelete(dir))
	_, err := os.Stat(filepath.Join(target, "keep.txt"))
	assert.NoError(t, err, "symlink target must survive")
}

func TestPermanentDelete_Missing(t *testing.T) {
	err := PermanentDelete(filepath.Join(t.TempDir(), "gone"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestPermanentDelete_Protected(t *testing.T) {
	assert.ErrorIs(t, PermanentDelete("/"), ErrProtected)
}

func TestPermanentDelete_ContinuesPastFailures(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := filepath.Join(t.TempDir(), "mixed")
	writeFile(t, filepath.Join(dir, "a_ok", "f"), 1)
	writeFile(t, filepath.Join(dir, "b_locked", "f"), 1)
	writeFile(t, filepath.Join(dir, "c_ok", "f"), 1)
	locked := filepath.Join(dir, "b_locked")
	require.NoError(t, os.Chmod(locked, 0o500))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	err := PermanentDelete(dir)
	require.Error(t, err)

	_, errA := os.Lstat(filepath.Join(dir, "a_ok"))
	_, errC := os.Lstat(filepath.Join(dir, "c_ok"))
	assert.True(t, os.IsNotExist(errA))
	assert.True(t, os.IsNotExist(errC), "removal continues after a failing sibling")
	assert.FileExists(t, filepath.Join(locked, "f"))
}
