package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lu-zhengda/macsweep/internal/history"
	"github.com/lu-zhengda/macsweep/internal/utils"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cleanup history and statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := history.Open(history.DefaultPath())
		if err != nil {
			return err
		}
		defer h.Close()

		stats, err := h.Stats()
		if err != nil {
			return err
		}

		if jsonFlag {
			return printJSON(os.Stdout, stats)
		}
		printStats(os.Stdout, stats)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&jsonFlag, "json", false, "Output in JSON format")
}

func printStats(w io.Writer, stats history.Stats) {
	fmt.Fprintln(w, titleStyle.Render("macsweep -- Cleanup Stats"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Total freed all-time:  %s\n", utils.FormatSize(stats.TotalFreed))
	fmt.Fprintf(w, "  Total cleanups:        %s\n", humanize.Comma(int64(stats.TotalCleanups)))

	if len(stats.ByCategory) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  By Category:")

		type catEntry struct {
			name  string
			stats history.CategoryStats
		}
		cats := make([]catEntry, 0, len(stats.ByCategory))
		for name, cs := range stats.ByCategory {
			cats = append(cats, catEntry{name: name, stats: cs})
		}
		sort.Slice(cats, func(i, j int) bool {
			if cats[i].stats.BytesFreed != cats[j].stats.BytesFreed {
				return cats[i].stats.BytesFreed > cats[j].stats.BytesFreed
			}
			return cats[i].name < cats[j].name
		})

		for _, c := range cats {
			fmt.Fprintf(w, "    %-40s %10s  (%d %s)\n",
				c.name, utils.FormatSize(c.stats.BytesFreed), c.stats.Cleanups, plural(c.stats.Cleanups, "cleanup", "cleanups"))
		}
	}

	if len(stats.Recent) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Recent:")

		for _, e := range stats.Recent {
			fmt.Fprintf(w, "    %-14s  %-40s %3d %-5s  %10s  (%s)\n",
				humanize.Time(e.Timestamp),
				e.Category,
				e.Items,
				plural(e.Items, "item", "items"),
				utils.FormatSize(e.BytesFreed),
				e.Method)
		}
	}

	if stats.TotalCleanups == 0 {
		fmt.Fprintln(w, "  No cleanup history yet. Run 'macsweep clean' to get started.")
	}

	fmt.Fprintln(w)
}
