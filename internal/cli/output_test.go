package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lu-zhengda/macsweep/internal/cleaner"
	"github.com/lu-zhengda/macsweep/internal/history"
	"github.com/lu-zhengda/macsweep/internal/scancache"
	"github.com/lu-zhengda/macsweep/internal/scanner"
)

func sampleReport(safety scanner.Safety) *scanner.Report {
	r := &scanner.Report{Category: &scanner.Category{Name: "User Caches", Safety: safety}}
	r.Add(scanner.Entry{Path: "/Users/test/Library/Caches/com.example", Size: 2048})
	r.Add(scanner.Entry{Path: "/Users/test/Library/Caches/org.sample", Size: 1024})
	return r
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, 3, sampleReport(scanner.Auto), false)

	out := buf.String()
	assert.Contains(t, out, "3. User Caches:")
	assert.Contains(t, out, "3.0 KB")
	assert.Contains(t, out, "2 items")
	assert.NotContains(t, out, "com.example")
	assert.NotContains(t, out, "with user confirmation")
}

func TestPrintReport_Detailed(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, 1, sampleReport(scanner.Confirm), true)

	out := buf.String()
	assert.Contains(t, out, "(with user confirmation)")
	assert.Contains(t, out, "/Users/test/Library/Caches/com.example (2.0 KB)")
	assert.Contains(t, out, "/Users/test/Library/Caches/org.sample (1.0 KB)")
}

func TestPrintReport_Incomplete(t *testing.T) {
	r := sampleReport(scanner.Auto)
	r.Err = errors.New("boom")

	var buf bytes.Buffer
	printReport(&buf, 1, r, false)
	assert.Contains(t, buf.String(), "incomplete")
}

func TestPrintReport_Empty(t *testing.T) {
	r := &scanner.Report{Category: &scanner.Category{Name: "User Logs"}}

	var buf bytes.Buffer
	printReport(&buf, 2, r, true)

	out := buf.String()
	assert.Contains(t, out, "2. User Logs:")
	assert.Contains(t, out, "0 B")
	assert.NotContains(t, out, "item")
}

func TestPrintTotal(t *testing.T) {
	var buf bytes.Buffer
	total := printTotal(&buf, []scanner.Report{*sampleReport(scanner.Auto), *sampleReport(scanner.Confirm)})

	assert.Equal(t, int64(6144), total)
	assert.Contains(t, buf.String(), "TOTAL:")
	assert.Contains(t, buf.String(), "6.0 KB")
}

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		delta int64
		want  string
	}{
		{0, "no change"},
		{1024, "+1.0 KB"},
		{-2 * 1024 * 1024, "-2.0 MB"},
		{512, "+512 B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDelta(tt.delta), "delta %d", tt.delta)
	}
}

func TestPrintDiff(t *testing.T) {
	var buf bytes.Buffer
	printDiff(&buf, scancache.DiffResult{})
	assert.Empty(t, buf.String(), "no previous scan")

	printDiff(&buf, scancache.DiffResult{
		PreviousTimestamp: time.Now().Add(-2 * time.Hour),
		TotalDelta:        -1024,
	})
	assert.Contains(t, buf.String(), "Since last scan (2 hours ago): -1.0 KB")
}

func TestPrintSummary(t *testing.T) {
	s := cleaner.Summarize([]cleaner.Outcome{
		{Category: "User Caches", Path: "/a", Size: 1024, Status: cleaner.Deleted},
		{Category: "User Caches", Path: "/b", Size: 1024, Status: cleaner.Deleted},
		{Category: "Large Downloads", Path: "/c", Size: 10, Status: cleaner.Skipped},
		{Category: "User Logs", Path: "/d", Size: 10, Status: cleaner.Failed, Err: errors.New("denied")},
	})

	var buf bytes.Buffer
	printSummary(&buf, s)
	out := buf.String()

	lines := strings.Split(out, "\n")
	var caches, downloads, logs string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "User Caches"):
			caches = l
		case strings.Contains(l, "Large Downloads"):
			downloads = l
		case strings.Contains(l, "User Logs"):
			logs = l
		}
	}
	assert.Contains(t, caches, "2.0 KB")
	assert.Contains(t, caches, "ok")
	assert.Contains(t, downloads, "skipped")
	assert.Contains(t, logs, "1 failed")
	assert.Contains(t, out, "Cleanup completed: 2 items deleted (2.0 KB freed), 1 failed, 1 skipped")
}

func TestPrintSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, cleaner.Summary{})
	assert.Contains(t, buf.String(), "Nothing was deleted.")
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, history.Stats{
		TotalFreed:    3 * 1024 * 1024,
		TotalCleanups: 2,
		ByCategory: map[string]history.CategoryStats{
			"User Caches": {BytesFreed: 2 * 1024 * 1024, Cleanups: 1},
			"User Logs":   {BytesFreed: 1024 * 1024, Cleanups: 1},
		},
		Recent: []history.Entry{
			{Timestamp: time.Now(), Category: "User Caches", Items: 1, BytesFreed: 2 * 1024 * 1024, Method: history.MethodPermanent},
		},
	})
	out := buf.String()

	assert.Contains(t, out, "Total freed all-time:  3.0 MB")
	assert.Contains(t, out, "Total cleanups:        2")
	require.Less(t, strings.Index(out, "User Caches"), strings.Index(out, "User Logs"), "largest category first")
	assert.Contains(t, out, "Recent:")
	assert.NotContains(t, out, "No cleanup history yet")
}

func TestPrintStats_Empty(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, history.Stats{})
	assert.Contains(t, buf.String(), "No cleanup history yet")
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "item", plural(1, "item", "items"))
	assert.Equal(t, "items", plural(0, "item", "items"))
	assert.Equal(t, "items", plural(2, "item", "items"))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", indent("a\nb\n", "  "))
}
