// Package scancache remembers the sizes found by the last scan so the
// next one can show what changed.
package scancache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lu-zhengda/macsweep/internal/scanner"
)

// Snapshot captures the state of a scan at a point in time.
type Snapshot struct {
	Timestamp  time.Time          `json:"timestamp"`
	Categories []CategorySnapshot `json:"categories"`
	TotalSize  int64              `json:"total_size"`
}

// CategorySnapshot captures the size and entry count for a single category.
type CategorySnapshot struct {
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	Items int    `json:"items"`
}

// CategoryDiff describes how a category changed between two snapshots.
type CategoryDiff struct {
	Name         string `json:"name"`
	PreviousSize int64  `json:"previous_size"`
	CurrentSize  int64  `json:"current_size"`
	Delta        int64  `json:"delta"`
	IsNew        bool   `json:"is_new,omitempty"`
}

// DiffResult describes the differences between two snapshots.
type DiffResult struct {
	PreviousTimestamp time.Time      `json:"previous_timestamp"`
	TotalDelta        int64          `json:"total_delta"`
	Categories        []CategoryDiff `json:"categories"`
}

// DefaultPath returns the default scan cache file location:
// ~/.local/share/macsweep/last-scan.json
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "last-scan.json"
	}
	return filepath.Join(home, ".local", "share", "macsweep", "last-scan.json")
}

// FromReports builds a snapshot of the given reports.
func FromReports(reports []scanner.Report, at time.Time) Snapshot {
	snap := Snapshot{Timestamp: at}
	for _, r := range reports {
		snap.Categories = append(snap.Categories, CategorySnapshot{
			Name:  r.Category.Name,
			Size:  r.Total,
			Items: len(r.Entries),
		})
		snap.TotalSize += r.Total
	}
	return snap
}

// Update returns prev with every category of curr replaced or added,
// stamped with curr's timestamp. Categories curr did not scan keep their
// previous values.
func Update(prev, curr Snapshot) Snapshot {
	out := Snapshot{Timestamp: curr.Timestamp}

	fresh := make(map[string]CategorySnapshot, len(curr.Categories))
	for _, c := range curr.Categories {
		fresh[c.Name] = c
	}

	for _, c := range prev.Categories {
		if n, ok := fresh[c.Name]; ok {
			c = n
			delete(fresh, c.Name)
		}
		out.Categories = append(out.Categories, c)
		out.TotalSize += c.Size
	}
	for _, c := range curr.Categories {
		if _, ok := fresh[c.Name]; ok {
			out.Categories = append(out.Categories, c)
			out.TotalSize += c.Size
		}
	}
	return out
}

// Save writes a snapshot to the given path as indented JSON.
// It creates parent directories if they don't exist.
func Save(path string, snap Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create scan cache directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scan snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scan cache file: %w", err)
	}

	return nil
}

// Load reads a snapshot from the given path.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read scan cache file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse scan cache file: %w", err)
	}

	return snap, nil
}

// Diff compares every category of curr, in curr's order, against prev.
// Categories curr did not scan are ignored, so partial scans never look
// like shrinkage.
func Diff(prev, curr Snapshot) DiffResult {
	result := DiffResult{PreviousTimestamp: prev.Timestamp}

	prevMap := make(map[string]int64, len(prev.Categories))
	for _, c := range prev.Categories {
		prevMap[c.Name] = c.Size
	}

	for _, c := range curr.Categories {
		prevSize, existed := prevMap[c.Name]
		d := CategoryDiff{
			Name:         c.Name,
			PreviousSize: prevSize,
			CurrentSize:  c.Size,
			Delta:        c.Size - prevSize,
			IsNew:        !existed,
		}
		result.Categories = append(result.Categories, d)
		result.TotalDelta += d.Delta
	}

	return result
}
