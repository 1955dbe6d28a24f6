// Package cleaner deletes the entries of previously built reports,
// asking for confirmation where a category requires it.
package cleaner

import (
	"context"
	"fmt"

	"github.com/lu-zhengda/macsweep/internal/log"
	"github.com/lu-zhengda/macsweep/internal/scanner"
	"github.com/lu-zhengda/macsweep/internal/trash"
	"github.com/lu-zhengda/macsweep/internal/utils"
)

// Confirmer answers yes/no questions. See package prompt.
type Confirmer interface {
	Confirm(question string) bool
}

// Granularity controls how Confirm categories are prompted.
type Granularity int

const (
	// PerCategory asks once per category.
	PerCategory Granularity = iota
	// PerEntry asks once per category and then once per entry.
	PerEntry
)

type Status int

const (
	Deleted Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Deleted:
		return "deleted"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome records what happened to one entry. Purged categories produce a
// single outcome with an empty Path.
type Outcome struct {
	Category string
	Path     string
	Size     int64
	Status   Status
	Err      error
}

type Executor struct {
	confirm     Confirmer
	granularity Granularity

	// remove deletes a single entry.
	// Defaults to trash.PermanentDelete; override in tests.
	remove func(path string) error

	onCategory func(*scanner.Report)
	onOutcome  func(Outcome)
}

func New(confirm Confirmer, granularity Granularity) *Executor {
	return &Executor{
		confirm:     confirm,
		granularity: granularity,
		remove:      trash.PermanentDelete,
	}
}

// OnCategory is called when deletion of a category starts.
func (e *Executor) OnCategory(fn func(*scanner.Report)) {
	e.onCategory = fn
}

// OnOutcome is called after every recorded outcome.
func (e *Executor) OnOutcome(fn func(Outcome)) {
	e.onOutcome = fn
}

func (e *Executor) record(outcomes []Outcome, o Outcome) []Outcome {
	if e.onOutcome != nil {
		e.onOutcome(o)
	}
	return append(outcomes, o)
}

// Execute processes reports in order. Only the paths listed in the
// reports are touched, and no failure stops the remaining entries or
// categories.
func (e *Executor) Execute(ctx context.Context, reports []scanner.Report) []Outcome {
	var outcomes []Outcome
	for i := range reports {
		outcomes = e.executeOne(ctx, &reports[i], outcomes)
	}
	return outcomes
}

func (e *Executor) executeOne(ctx context.Context, rep *scanner.Report, outcomes []Outcome) []Outcome {
	cat := rep.Category
	if len(rep.Entries) == 0 {
		return outcomes
	}

	if cat.Safety == scanner.Confirm {
		question := fmt.Sprintf("Delete %s (%s)?", cat.Name, utils.FormatSize(rep.Total))
		if !e.confirm.Confirm(question) {
			log.Debug().Str("category", cat.Name).Msg("category declined")
			if cat.Purge != nil {
				return e.record(outcomes, Outcome{Category: cat.Name, Size: rep.Total, Status: Skipped})
			}
			for _, entry := range rep.Entries {
				outcomes = e.record(outcomes, Outcome{Category: cat.Name, Path: entry.Path, Size: entry.Size, Status: Skipped})
			}
			return outcomes
		}
	}

	if e.onCategory != nil {
		e.onCategory(rep)
	}

	if cat.Purge != nil {
		o := Outcome{Category: cat.Name, Size: rep.Total, Status: Deleted}
		if err := cat.Purge(ctx); err != nil {
			o.Status, o.Err = Failed, err
		}
		return e.record(outcomes, o)
	}

	askEach := cat.Safety == scanner.Confirm && e.granularity == PerEntry
	for _, entry := range rep.Entries {
		o := Outcome{Category: cat.Name, Path: entry.Path, Size: entry.Size, Status: Deleted}
		if askEach && !e.confirm.Confirm(fmt.Sprintf("Delete %s (%s)?", entry.Path, utils.FormatSize(entry.Size))) {
			o.Status = Skipped
		} else if err := e.remove(entry.Path); err != nil {
			o.Status, o.Err = Failed, err
		}
		outcomes = e.record(outcomes, o)
	}
	return outcomes
}
