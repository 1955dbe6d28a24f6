package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lu-zhengda/macsweep/internal/appregistry"
	"github.com/lu-zhengda/macsweep/internal/cleaner"
	"github.com/lu-zhengda/macsweep/internal/config"
	"github.com/lu-zhengda/macsweep/internal/diskinfo"
	"github.com/lu-zhengda/macsweep/internal/engine"
	"github.com/lu-zhengda/macsweep/internal/history"
	"github.com/lu-zhengda/macsweep/internal/log"
	"github.com/lu-zhengda/macsweep/internal/progress"
	"github.com/lu-zhengda/macsweep/internal/prompt"
	"github.com/lu-zhengda/macsweep/internal/scancache"
	"github.com/lu-zhengda/macsweep/internal/scanner"
	"github.com/lu-zhengda/macsweep/internal/simctl"
	"github.com/lu-zhengda/macsweep/internal/utils"
)

// session holds everything one invocation needs to scan and clean.
type session struct {
	cfg       *config.Config
	home      string
	out       io.Writer
	confirm   prompt.Confirmer
	indicator progress.Indicator
	detailed  bool

	categories []scanner.Category

	historyPath string
	cachePath   string
}

func newSession() *session {
	if appConfig == nil {
		appConfig = config.Default()
	}
	home := utils.HomeDir()

	var ind progress.Indicator = progress.Noop{}
	if !debugFlag && !jsonFlag {
		ind = progress.New(os.Stderr)
	}

	s := &session{
		cfg:         appConfig,
		home:        home,
		out:         os.Stdout,
		confirm:     prompt.New(plainFlag),
		indicator:   ind,
		detailed:    detailedFlag || appConfig.Detailed,
		historyPath: history.DefaultPath(),
		cachePath:   scancache.DefaultPath(),
	}
	s.categories = s.enabled(scanner.Registry(s.env()))
	return s
}

func (s *session) env() scanner.Env {
	threshold := s.cfg.LargeFiles.MinSize
	if threshold <= 0 {
		threshold = scanner.DefaultLargeFileThreshold
	}
	dir := s.cfg.LargeFiles.Path
	if dir == "" {
		dir = "~/Downloads"
	}

	return scanner.Env{
		Home:               s.home,
		Apps:               appregistry.New(s.home),
		Simulators:         simctl.New(),
		LargeFileDir:       utils.ExpandHome(dir, s.home),
		LargeFileThreshold: threshold,
		VendorPrefixes:     s.cfg.Containers.VendorPrefixes,
	}
}

func (s *session) enabled(cats []scanner.Category) []scanner.Category {
	return scanner.Filter(cats, func(c scanner.Category) bool {
		return !s.cfg.IsDisabled(c.Name)
	})
}

func (s *session) granularity(flag string) cleaner.Granularity {
	switch flag {
	case config.ConfirmCategory:
		return cleaner.PerCategory
	case config.ConfirmEach:
		return cleaner.PerEntry
	}
	if s.cfg.ConfirmEachEntry() {
		return cleaner.PerEntry
	}
	return cleaner.PerCategory
}

// scan sizes the categories one by one, printing each as it completes.
// The spinner is always stopped before anything is printed.
func (s *session) scan(ctx context.Context, cats []scanner.Category, quiet bool) []scanner.Report {
	b := engine.New()
	b.SetExcludeFunc(s.cfg.IsExcluded)

	idx := 0
	b.OnProgress(func(p engine.ScanProgress) {
		switch p.Status {
		case engine.ScanStarted:
			s.indicator.Start("Sizing " + p.Name + "...")
		case engine.ScanDone:
			s.indicator.Stop()
			idx++
			reportDiagnostics(p.Report)
			if !quiet {
				printReport(s.out, idx, p.Report, s.detailed)
			}
		}
	})

	reports := b.Build(ctx, cats)
	if !quiet {
		printTotal(s.out, reports)
		s.compareWithLastScan(reports)
	} else {
		s.saveSnapshot(reports)
	}
	return reports
}

func reportDiagnostics(r *scanner.Report) {
	for _, w := range r.Warnings {
		log.Warn().Err(w.Err).Str("path", w.Path).Msg("skipped")
	}
	if r.Err != nil {
		log.Error().Err(r.Err).Str("category", r.Category.Name).Msg("category incomplete")
	}
}

func (s *session) compareWithLastScan(reports []scanner.Report) {
	prev, err := scancache.Load(s.cachePath)
	if err == nil {
		curr := scancache.FromReports(reports, time.Now())
		printDiff(s.out, scancache.Diff(prev, curr))
	}
	s.saveSnapshot(reports)
}

func (s *session) saveSnapshot(reports []scanner.Report) {
	curr := scancache.FromReports(reports, time.Now())
	prev, _ := scancache.Load(s.cachePath)
	if err := scancache.Save(s.cachePath, scancache.Update(prev, curr)); err != nil {
		log.Debug().Err(err).Msg("failed to save scan snapshot")
	}
}

// clean deletes the entries of reports and prints a summary.
func (s *session) clean(ctx context.Context, reports []scanner.Report, g cleaner.Granularity) cleaner.Summary {
	before, _ := diskinfo.Free(s.home)

	ex := cleaner.New(s.confirm, g)
	ex.OnCategory(func(r *scanner.Report) {
		fmt.Fprintf(s.out, "Deleting %s...\n", r.Category.Name)
	})
	ex.OnOutcome(func(o cleaner.Outcome) {
		if o.Status != cleaner.Failed {
			return
		}
		ev := log.Error().Err(o.Err).Str("category", o.Category)
		if o.Path != "" {
			ev = ev.Str("path", o.Path)
		}
		ev.Msg("could not delete")
	})

	fmt.Fprintln(s.out, "\nDeleting files...")
	outcomes := ex.Execute(ctx, reports)
	summary := cleaner.Summarize(outcomes)
	printSummary(s.out, summary)

	if after, err := diskinfo.Free(s.home); err == nil && before > 0 {
		fmt.Fprintf(s.out, "Free space: %s -> %s\n", utils.FormatSize(before), utils.FormatSize(after))
	}

	if s.cfg.History {
		s.recordHistory(reports, summary)
	}
	return summary
}

func (s *session) recordHistory(reports []scanner.Report, summary cleaner.Summary) {
	purged := make(map[string]bool)
	for _, r := range reports {
		if r.Category.Purge != nil {
			purged[r.Category.Name] = true
		}
	}

	now := time.Now()
	var entries []history.Entry
	for _, c := range summary.Categories {
		if c.Deleted == 0 && c.Failed == 0 {
			continue
		}
		method := history.MethodPermanent
		if purged[c.Name] {
			method = history.MethodPurge
		}
		entries = append(entries, history.Entry{
			Timestamp:  now,
			Category:   c.Name,
			Items:      c.Deleted,
			Failed:     c.Failed,
			BytesFreed: c.Freed,
			Method:     method,
		})
	}
	if len(entries) == 0 {
		return
	}

	h, err := history.Open(s.historyPath)
	if err != nil {
		log.Warn().Err(err).Msg("cleanup history unavailable")
		return
	}
	defer h.Close()
	if err := h.Record(entries...); err != nil {
		log.Warn().Err(err).Msg("failed to record cleanup history")
	}
}

// pass is one analysis-then-delete round over categories of one safety.
type pass struct {
	title   string
	start   string
	proceed string
	safety  scanner.Safety
}

var (
	safePass = pass{
		title:   "SAFE CLEANUP ANALYSIS",
		start:   "Start safe clean analysis?",
		proceed: "Do you want to delete these files?",
		safety:  scanner.Auto,
	}
	sensitivePass = pass{
		title:   "SENSITIVE CLEANUP ANALYSIS",
		start:   "Start sensitive clean analysis?",
		proceed: "Do you want to delete these files (checking each one)?",
		safety:  scanner.Confirm,
	}
)

type passOptions struct {
	askStart    bool
	skipGates   bool
	dryRun      bool
	granularity cleaner.Granularity
}

// runPass scans the categories of p and, unless this is a dry run or the
// user declines, deletes what was found.
func (s *session) runPass(ctx context.Context, p pass, opts passOptions) *cleaner.Summary {
	if opts.askStart && !opts.skipGates && !s.confirm.Confirm(p.start) {
		return nil
	}

	printTitle(s.out, p.title)
	reports := s.scan(ctx, scanner.Filter(s.categories, scanner.BySafety(p.safety)), false)

	if opts.dryRun {
		fmt.Fprintln(s.out, "\nDry run mode: no files will be deleted.")
		return nil
	}
	if !hasEntries(reports) {
		fmt.Fprintln(s.out, "\nNothing to clean.")
		return nil
	}
	if !opts.skipGates && !s.confirm.Confirm(p.proceed) {
		fmt.Fprintln(s.out, "Operation cancelled.")
		return nil
	}

	summary := s.clean(ctx, reports, opts.granularity)
	return &summary
}

func hasEntries(reports []scanner.Report) bool {
	for _, r := range reports {
		if len(r.Entries) > 0 {
			return true
		}
	}
	return false
}

func (s *session) printHeader(ctx context.Context) {
	line := "macsweep " + version + " on " + diskinfo.Platform(ctx)
	if u, err := diskinfo.Stat(s.home); err == nil {
		line += fmt.Sprintf(", %s used, %s free", utils.FormatSize(u.Used()), utils.FormatSize(u.Free))
	}
	fmt.Fprintln(s.out, dimStyle.Render(line))
}
