package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// sparse creates a file of the given logical size without writing its data.
func sparse(t *testing.T, path string, size int64) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := f.Truncate(size); err != nil {
		t.Fatal(err)
	}
}

func TestLargeFiles(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "installer.dmg")
	nested := filepath.Join(dir, "sub", "movie.mov")
	sparse(t, big, 200*1024*1024)
	sparse(t, nested, DefaultLargeFileThreshold+1)
	sparse(t, filepath.Join(dir, "exact.iso"), DefaultLargeFileThreshold)
	mkfile(t, filepath.Join(dir, "small.txt"), 100)

	paths, err := LargeFiles(dir, DefaultLargeFileThreshold)(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 large files, got %d: %v", len(paths), paths)
	}
	if paths[0] != big || paths[1] != nested {
		t.Errorf("unexpected paths: %v", paths)
	}
}

func TestLargeFiles_MissingDir(t *testing.T) {
	paths, err := LargeFiles(filepath.Join(t.TempDir(), "Downloads"), 1)(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no paths, got %v", paths)
	}
}

func TestLargeFiles_SkipsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "outside.bin")
	sparse(t, target, 10*1024)
	if err := os.Symlink(target, filepath.Join(dir, "link.bin")); err != nil {
		t.Fatal(err)
	}

	paths, err := LargeFiles(dir, 1024)(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("symlink should not be reported, got %v", paths)
	}
}
