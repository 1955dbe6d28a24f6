package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lu-zhengda/macsweep/internal/cleaner"
	"github.com/lu-zhengda/macsweep/internal/scancache"
	"github.com/lu-zhengda/macsweep/internal/scanner"
	"github.com/lu-zhengda/macsweep/internal/utils"
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render("--- "+title+" ---"))
}

// printReport prints one category: its number, name, total and, when
// detailed, every entry.
func printReport(w io.Writer, idx int, r *scanner.Report, detailed bool) {
	name := r.Category.Name
	if r.Category.Safety == scanner.Confirm {
		name += dimStyle.Render(" (with user confirmation)")
	}
	fmt.Fprintf(w, "%d. %s:\n", idx, categoryStyle.Render(name))

	line := "    " + sizeStyle.Render(utils.FormatSize(r.Total))
	if n := len(r.Entries); n > 0 {
		line += dimStyle.Render(fmt.Sprintf("  (%s %s)", humanize.Comma(int64(n)), plural(n, "item", "items")))
	}
	if r.Err != nil {
		line += "  " + errStyle.Render("incomplete")
	}
	fmt.Fprintln(w, line)

	if !detailed {
		return
	}
	for _, e := range r.Entries {
		fmt.Fprintf(w, "        %s (%s)\n", e.Path, utils.FormatSize(e.Size))
	}
}

func printTotal(w io.Writer, reports []scanner.Report) int64 {
	var total int64
	for _, r := range reports {
		total += r.Total
	}
	fmt.Fprintf(w, "\n%s %s\n", categoryStyle.Render("TOTAL:"), sizeStyle.Render(utils.FormatSize(total)))
	return total
}

func printDiff(w io.Writer, d scancache.DiffResult) {
	if d.PreviousTimestamp.IsZero() {
		return
	}
	fmt.Fprintf(w, "%s\n", dimStyle.Render(fmt.Sprintf("Since last scan (%s): %s",
		humanize.Time(d.PreviousTimestamp), formatDelta(d.TotalDelta))))
}

func formatDelta(delta int64) string {
	switch {
	case delta > 0:
		return "+" + utils.FormatSize(delta)
	case delta < 0:
		return "-" + utils.FormatSize(-delta)
	default:
		return "no change"
	}
}

// printSummary prints what the executor did, category by category.
func printSummary(w io.Writer, s cleaner.Summary) {
	if len(s.Categories) == 0 {
		fmt.Fprintln(w, "\nNothing was deleted.")
		return
	}

	fmt.Fprintln(w)
	for _, c := range s.Categories {
		switch {
		case c.Deleted == 0 && c.Failed == 0:
			fmt.Fprintf(w, "  %-40s %s\n", c.Name, dimStyle.Render("skipped"))
		case c.Failed > 0:
			fmt.Fprintf(w, "  %-40s %10s  %s\n", c.Name, utils.FormatSize(c.Freed),
				errStyle.Render(fmt.Sprintf("%d failed", c.Failed)))
		default:
			fmt.Fprintf(w, "  %-40s %10s  %s\n", c.Name, utils.FormatSize(c.Freed), okStyle.Render("ok"))
		}
	}

	msg := fmt.Sprintf("\nCleanup completed: %s %s deleted (%s freed)",
		humanize.Comma(int64(s.Deleted)), plural(s.Deleted, "item", "items"), utils.FormatSize(s.Freed))
	if s.Failed > 0 {
		msg += fmt.Sprintf(", %d failed", s.Failed)
	}
	if s.Skipped > 0 {
		msg += fmt.Sprintf(", %d skipped", s.Skipped)
	}
	fmt.Fprintln(w, msg)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
