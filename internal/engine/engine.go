package engine

import (
	"context"
	"fmt"

	"github.com/lu-zhengda/macsweep/internal/log"
	"github.com/lu-zhengda/macsweep/internal/scanner"
	"github.com/lu-zhengda/macsweep/internal/utils"
)

// ScanStatus represents the state of a category in the progress callback.
type ScanStatus int

const (
	ScanStarted ScanStatus = iota
	ScanDone
)

// ScanProgress is sent to the progress callback for each category event.
// Report is only set when Status is ScanDone.
type ScanProgress struct {
	Name   string
	Status ScanStatus
	Report *scanner.Report
}

// Builder turns categories into sized reports, one category at a time.
type Builder struct {
	excludeFunc func(string) bool
	onProgress  func(ScanProgress)
}

func New() *Builder {
	return &Builder{}
}

// SetExcludeFunc drops every candidate path for which fn returns true
// before it is sized.
func (b *Builder) SetExcludeFunc(fn func(string) bool) {
	b.excludeFunc = fn
}

func (b *Builder) OnProgress(fn func(ScanProgress)) {
	b.onProgress = fn
}

func (b *Builder) excluded(path string) bool {
	return b.excludeFunc != nil && b.excludeFunc(path)
}

func (b *Builder) emit(p ScanProgress) {
	if b.onProgress != nil {
		b.onProgress(p)
	}
}

// Build returns one report per category in input order. A failure in one
// category is recorded in its report and never stops the others.
func (b *Builder) Build(ctx context.Context, categories []scanner.Category) []scanner.Report {
	reports := make([]scanner.Report, 0, len(categories))
	for i := range categories {
		cat := &categories[i]
		b.emit(ScanProgress{Name: cat.Name, Status: ScanStarted})
		rep := b.BuildOne(ctx, cat)
		reports = append(reports, rep)
		b.emit(ScanProgress{Name: cat.Name, Status: ScanDone, Report: &reports[len(reports)-1]})
	}
	return reports
}

// BuildOne sizes a single category. Static or resolved paths come first,
// in order, followed by pattern matches.
func (b *Builder) BuildOne(ctx context.Context, cat *scanner.Category) (rep scanner.Report) {
	rep.Category = cat

	defer func() {
		if r := recover(); r != nil {
			rep.Err = fmt.Errorf("%s: panic: %v", cat.Name, r)
			log.Debug().Str("category", cat.Name).Interface("panic", r).Msg("category aborted")
		}
	}()

	onErr := utils.WalkErrorFunc(rep.Warn)
	ctx = scanner.WithWarnFunc(ctx, onErr)

	paths, err := cat.Paths.Resolve(ctx)
	if err != nil {
		rep.Err = fmt.Errorf("%s: %w", cat.Name, err)
	}

	for _, p := range paths {
		if b.excluded(p) {
			continue
		}
		if size := utils.SizeOf(p, onErr); size > 0 {
			rep.Add(scanner.Entry{Path: p, Size: size})
		}
	}

	if cat.Pattern != nil {
		_, matches := scanner.FindAndSize(cat.Pattern.Root, cat.Pattern.Patterns, onErr)
		for _, m := range matches {
			if !b.excluded(m.Path) {
				rep.Add(m)
			}
		}
	}

	return rep
}
