package scanner

import (
	"context"
)

// Safety decides whether a category is deleted without asking.
type Safety int

const (
	Auto Safety = iota
	Confirm
)

func (s Safety) String() string {
	switch s {
	case Auto:
		return "Auto"
	case Confirm:
		return "Confirm"
	default:
		return "Unknown"
	}
}

// Resolver computes a category's candidate paths at report time.
type Resolver func(ctx context.Context) ([]string, error)

// PathSource is either a fixed list of paths or a Resolver, never both.
type PathSource struct {
	static   []string
	resolver Resolver
}

func StaticPaths(paths ...string) PathSource {
	return PathSource{static: paths}
}

func DynamicResolver(fn Resolver) PathSource {
	return PathSource{resolver: fn}
}

// IsDynamic reports whether paths are computed by a resolver.
func (p PathSource) IsDynamic() bool { return p.resolver != nil }

// Resolve returns the candidate paths. The resolver, if any, is invoked
// on every call.
func (p PathSource) Resolve(ctx context.Context) ([]string, error) {
	if p.resolver != nil {
		return p.resolver(ctx)
	}
	return p.static, nil
}

// PatternSource requests a tree-wide search under Root for names
// containing any of Patterns.
type PatternSource struct {
	Root     string
	Patterns []string
}

// Category is one named class of reclaimable files.
type Category struct {
	Name        string
	Description string
	Paths       PathSource
	Pattern     *PatternSource
	Safety      Safety

	// Purge, when set, replaces per-entry deletion for this category.
	Purge func(ctx context.Context) error
}

type Entry struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Warning is a per-path error that was skipped while sizing.
type Warning struct {
	Path string
	Err  error
}

// Report is the sizing result of a single category.
type Report struct {
	Category *Category
	Entries  []Entry
	Total    int64
	Err      error
	Warnings []Warning
}

func (r *Report) Add(e Entry) {
	r.Entries = append(r.Entries, e)
	r.Total += e.Size
}

// Warn records a skipped path. Its signature matches utils.WalkErrorFunc.
func (r *Report) Warn(path string, err error) {
	r.Warnings = append(r.Warnings, Warning{Path: path, Err: err})
}
