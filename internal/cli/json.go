package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lu-zhengda/macsweep/internal/scanner"
)

type scanJSON struct {
	Version    string             `json:"version"`
	Timestamp  time.Time          `json:"timestamp"`
	Categories []scanCategoryJSON `json:"categories"`
	TotalSize  int64              `json:"total_size"`
	TotalItems int                `json:"total_items"`
	Safety     SafetyBreakdown    `json:"safety_summary"`
}

type scanCategoryJSON struct {
	Name     string          `json:"name"`
	Safety   string          `json:"safety"`
	Size     int64           `json:"size"`
	Items    int             `json:"items"`
	Error    string          `json:"error,omitempty"`
	Warnings int             `json:"warnings,omitempty"`
	Entries  []scanner.Entry `json:"entries"`
}

func buildScanJSON(reports []scanner.Report) scanJSON {
	result := scanJSON{
		Version:    version,
		Timestamp:  time.Now().UTC(),
		Categories: make([]scanCategoryJSON, 0, len(reports)),
		Safety:     safetySummary(reports),
	}

	for _, r := range reports {
		c := scanCategoryJSON{
			Name:     r.Category.Name,
			Safety:   r.Category.Safety.String(),
			Size:     r.Total,
			Items:    len(r.Entries),
			Warnings: len(r.Warnings),
			Entries:  r.Entries,
		}
		if c.Entries == nil {
			c.Entries = []scanner.Entry{}
		}
		if r.Err != nil {
			c.Error = r.Err.Error()
		}
		result.Categories = append(result.Categories, c)
		result.TotalSize += r.Total
		result.TotalItems += len(r.Entries)
	}
	return result
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
