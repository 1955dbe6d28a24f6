package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestSizeOf_Missing(t *testing.T) {
	var errs []string
	size := SizeOf(filepath.Join(t.TempDir(), "nope"), func(p string, _ error) {
		errs = append(errs, p)
	})
	assert.Zero(t, size)
	assert.Empty(t, errs, "a missing path is not a diagnostic")
}

func TestSizeOf_File(t *testing.T) {
	f := filepath.Join(t.TempDir(), "a.bin")
	writeFile(t, f, 500)
	assert.Equal(t, int64(500), SizeOf(f, nil))
}

func TestSizeOf_FlatDir(t *testing.T) {
	dir := t.TempDir()
	sizes := map[string]int{"a.txt": 100, "b": 200, ".hidden": 300, "weird name.log": 7}
	var want int64
	for name, n := range sizes {
		writeFile(t, filepath.Join(dir, name), n)
		want += int64(n)
	}
	assert.Equal(t, want, SizeOf(dir, nil))
}

func TestSizeOf_Nested(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.txt"), 10)
	writeFile(t, filepath.Join(dir, "sub", "nested.txt"), 500)
	writeFile(t, filepath.Join(dir, "sub", "deeper", "x"), 40)
	assert.Equal(t, int64(550), SizeOf(dir, nil))
}

func TestSizeOf_EmptyDir(t *testing.T) {
	assert.Zero(t, SizeOf(t.TempDir(), nil))
}

func TestSizeOf_SymlinkIsLeaf(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "real", "data"), 100)
	// A link back to its own parent would loop forever if followed.
	require.NoError(t, os.Symlink(dir, filepath.Join(dir, "real", "loop")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real", "data"), filepath.Join(dir, "alias")))

	assert.Equal(t, int64(100), SizeOf(dir, nil))
	assert.Zero(t, SizeOf(filepath.Join(dir, "alias"), nil))
}

func TestSizeOf_UnreadableDirReported(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.txt"), 50)
	locked := filepath.Join(dir, "locked")
	writeFile(t, filepath.Join(locked, "secret"), 1000)
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	var reported []string
	size := SizeOf(dir, func(p string, err error) {
		reported = append(reported, p)
	})

	assert.Equal(t, int64(50), size)
	assert.Contains(t, reported, locked)
}
