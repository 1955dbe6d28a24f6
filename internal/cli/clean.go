package cli

import (
	"github.com/spf13/cobra"

	"github.com/lu-zhengda/macsweep/internal/scanner"
)

var (
	cleanPolicy  string
	cleanConfirm string
	cleanDryRun  bool
	cleanYes     bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Scan and delete reclaimable files",
	Long: "Scan and delete reclaimable files.\n\n" +
		"--yes skips the \"delete these files?\" question of each pass. Categories\n" +
		"that need confirmation are still asked about one by one.",
	RunE: func(cmd *cobra.Command, args []string) error {
		safeties, err := parsePolicy(cleanPolicy)
		if err != nil {
			return err
		}
		mode, err := parseConfirmMode(cleanConfirm)
		if err != nil {
			return err
		}

		s := newSession()
		ctx := cmd.Context()
		s.printHeader(ctx)

		for _, safety := range safeties {
			p := safePass
			if safety == scanner.Confirm {
				p = sensitivePass
			}
			s.runPass(ctx, p, passOptions{
				skipGates:   cleanYes,
				dryRun:      cleanDryRun,
				granularity: s.granularity(mode),
			})
		}
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanPolicy, "policy", "all", "Categories to clean: auto, confirm, or all")
	cleanCmd.Flags().StringVar(&cleanConfirm, "confirm", "", "Confirm sensitive categories per category or each entry (default from config)")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "Show what would be deleted without deleting anything")
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Skip the per-pass confirmation")
}
