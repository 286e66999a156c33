package livedata

import (
	"context"

	"github.com/apolyakov/reelmark/internal/logging"
)

// Source delivers table-invalidation signals; *storage.Notifier implements it.
type Source interface {
	Subscribe(fn func(), tables ...string) (cancel func())
}

// NewQuery runs the query once to seed a LiveData and re-runs it whenever one
// of the given tables is invalidated. Query errors are logged and the last
// good value is kept. The invalidation subscription is released when the
// LiveData loses its last observer, so callers should observe promptly.
func NewQuery[T any](ctx context.Context, src Source, log logging.Logger, run func(context.Context) (T, error), tables ...string) *LiveData[T] {
	d := New[T]()

	rerun := func() {
		v, err := run(ctx)
		if err != nil {
			log.Error(ctx, "live query failed", "error", err)
			return
		}
		d.Set(v)
	}

	cancel := src.Subscribe(rerun, tables...)
	d.SetOnInactive(cancel)

	rerun()
	return d
}
