package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/macsweep/internal/config"
	"github.com/lu-zhengda/macsweep/internal/log"
	"github.com/lu-zhengda/macsweep/internal/scanner"
)

var (
	configPath   string
	detailedFlag bool
	debugFlag    bool
	plainFlag    bool
	jsonFlag     bool
	rootDryRun   bool
	appConfig    *config.Config

	// Set via ldflags at build time.
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "macsweep",
	Short: "Reclaim disk space on macOS",
	Long: "macsweep sizes caches, logs, temporary files, developer artifacts and\n" +
		"unused app containers, then deletes them permanently.\n\n" +
		"Without a subcommand it runs a safe pass (deleted without further\n" +
		"questions) followed by a sensitive pass (confirmed entry by entry).",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugFlag {
			log.SetDebugMode()
		}
		if cmd.Name() == "help" || cmd.Flags().Changed("version") {
			appConfig = config.Default()
			return nil
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appConfig = cfg

		for _, w := range appConfig.Validate(categoryNames()) {
			log.Warn().Msg(w)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		ctx := cmd.Context()
		s.printHeader(ctx)

		s.runPass(ctx, safePass, passOptions{askStart: true, dryRun: rootDryRun})
		s.runPass(ctx, sensitivePass, passOptions{
			askStart:    true,
			dryRun:      rootDryRun,
			granularity: s.granularity(""),
		})
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("macsweep %s\n", version))
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.config/macsweep/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&detailedFlag, "detailed", false, "List every path found, not just category totals")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Use plain text prompts even on a terminal")
	rootCmd.Flags().BoolVar(&rootDryRun, "dry-run", false, "Show what would be deleted without deleting anything")
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
}

// RootCmd returns the root cobra command for documentation generation.
func RootCmd() *cobra.Command {
	return rootCmd
}

// categoryNames lists every registry category, enabled or not.
func categoryNames() []string {
	cats := scanner.Registry(scanner.Env{})
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return names
}

// parsePolicy maps --policy to the safeties it selects.
func parsePolicy(policy string) ([]scanner.Safety, error) {
	switch policy {
	case "auto":
		return []scanner.Safety{scanner.Auto}, nil
	case "confirm":
		return []scanner.Safety{scanner.Confirm}, nil
	case "all", "":
		return []scanner.Safety{scanner.Auto, scanner.Confirm}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q (use auto, confirm, or all)", policy)
	}
}

func parseConfirmMode(mode string) (string, error) {
	switch mode {
	case "", config.ConfirmEach, config.ConfirmCategory:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown confirm mode %q (use each or category)", mode)
	}
}

