// Package executor provides the bounded asynchronous execution context used
// for local-store writes, decoupling write latency from the calling
// goroutine (typically an observer callback).
package executor

import (
	"context"

	"github.com/apolyakov/reelmark/internal/logging"
	"golang.org/x/sync/errgroup"
)

const defaultSize = 4

// Executor runs submitted functions on a fixed-size pool.
type Executor struct {
	g   *errgroup.Group
	log logging.Logger
}

// New returns an Executor running at most size functions concurrently.
func New(size int, log logging.Logger) *Executor {
	if size <= 0 {
		size = defaultSize
	}
	g := new(errgroup.Group)
	g.SetLimit(size)
	return &Executor{g: g, log: log}
}

// Execute schedules fn. Errors are logged, not returned: store writes either
// succeed or are surfaced to the user through the live-query layer.
func (e *Executor) Execute(ctx context.Context, fn func(ctx context.Context) error) {
	e.g.Go(func() error {
		if err := fn(ctx); err != nil {
			e.log.Error(ctx, "background write failed", "error", err)
		}
		return nil
	})
}

// Wait blocks until every scheduled function has finished.
func (e *Executor) Wait() {
	_ = e.g.Wait()
}
