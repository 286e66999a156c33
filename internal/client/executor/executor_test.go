package executor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/apolyakov/reelmark/internal/logging"
	"github.com/stretchr/testify/assert"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func TestExecute_RunsAllFunctions(t *testing.T) {
	e := New(2, testLogger())

	var n atomic.Int64
	for i := 0; i < 10; i++ {
		e.Execute(context.Background(), func(ctx context.Context) error {
			n.Add(1)
			return nil
		})
	}
	e.Wait()

	assert.Equal(t, int64(10), n.Load())
}

func TestExecute_BoundsConcurrency(t *testing.T) {
	e := New(2, testLogger())

	var mu sync.Mutex
	running, peak := 0, 0

	for i := 0; i < 8; i++ {
		e.Execute(context.Background(), func(ctx context.Context) error {
			mu.Lock()
			running++
			if running > peak {
				peak = running
			}
			mu.Unlock()

			mu.Lock()
			running--
			mu.Unlock()
			return nil
		})
	}
	e.Wait()

	assert.LessOrEqual(t, peak, 2)
}

func TestExecute_ErrorsDoNotStopThePool(t *testing.T) {
	e := New(1, testLogger())

	var n atomic.Int64
	e.Execute(context.Background(), func(ctx context.Context) error { return errors.New("boom") })
	e.Execute(context.Background(), func(ctx context.Context) error { n.Add(1); return nil })
	e.Wait()

	assert.Equal(t, int64(1), n.Load())
}
