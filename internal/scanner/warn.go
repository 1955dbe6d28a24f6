package scanner

import (
	"context"

	"github.com/lu-zhengda/macsweep/internal/utils"
)

type warnKey struct{}

// WithWarnFunc returns a context whose resolvers report skipped paths to fn.
func WithWarnFunc(ctx context.Context, fn utils.WalkErrorFunc) context.Context {
	return context.WithValue(ctx, warnKey{}, fn)
}

// WarnFunc returns the callback installed by WithWarnFunc, or nil.
func WarnFunc(ctx context.Context) utils.WalkErrorFunc {
	fn, _ := ctx.Value(warnKey{}).(utils.WalkErrorFunc)
	return fn
}

func warn(ctx context.Context, path string, err error) {
	if fn := WarnFunc(ctx); fn != nil {
		fn(path, err)
	}
}
