package cli

import (
	"github.com/spf13/cobra"

	"github.com/lu-zhengda/macsweep/internal/scanner"
)

var scanPolicy string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Report reclaimable space without deleting anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		safeties, err := parsePolicy(scanPolicy)
		if err != nil {
			return err
		}

		s := newSession()
		ctx := cmd.Context()

		var reports []scanner.Report
		if !jsonFlag {
			s.printHeader(ctx)
		}
		for _, safety := range safeties {
			p := safePass
			if safety == scanner.Confirm {
				p = sensitivePass
			}
			if !jsonFlag {
				printTitle(s.out, p.title)
			}
			reports = append(reports, s.scan(ctx, scanner.Filter(s.categories, scanner.BySafety(safety)), jsonFlag)...)
		}

		if jsonFlag {
			return printJSON(s.out, buildScanJSON(reports))
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanPolicy, "policy", "all", "Categories to scan: auto, confirm, or all")
	scanCmd.Flags().BoolVar(&jsonFlag, "json", false, "Output in JSON format")
}
