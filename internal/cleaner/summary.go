package cleaner

// CategorySummary aggregates the outcomes of one category.
type CategorySummary struct {
	Name    string
	Freed   int64
	Deleted int
	Skipped int
	Failed  int
}

type Summary struct {
	Categories []CategorySummary
	Freed      int64
	Deleted    int
	Skipped    int
	Failed     int
}

// Summarize totals outcomes per category, in order of first appearance.
// Freed counts the recorded size of deleted entries only.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	index := make(map[string]int)

	for _, o := range outcomes {
		i, ok := index[o.Category]
		if !ok {
			i = len(s.Categories)
			index[o.Category] = i
			s.Categories = append(s.Categories, CategorySummary{Name: o.Category})
		}
		c := &s.Categories[i]

		switch o.Status {
		case Deleted:
			c.Deleted++
			c.Freed += o.Size
			s.Deleted++
			s.Freed += o.Size
		case Skipped:
			c.Skipped++
			s.Skipped++
		case Failed:
			c.Failed++
			s.Failed++
		}
	}
	return s
}
