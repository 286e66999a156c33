package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/apolyakov/reelmark/internal/logging"
	"github.com/sethvargo/go-retry"
)

const (
	defaultInterval = time.Hour
	defaultBackoff  = 2 * time.Second
)

var errAbandoned = errors.New("batch abandoned")

// Connectivity reports whether the server is reachable; *remote.Client
// implements it.
type Connectivity interface {
	Online(ctx context.Context) bool
}

// Scheduler drives the workers on a fixed interval. Rounds are skipped while
// the server is unreachable, and never overlap.
type Scheduler struct {
	conn     Connectivity
	workers  []Worker
	interval time.Duration
	backoff  time.Duration
	log      logging.Logger

	mu sync.Mutex
}

func NewScheduler(conn Connectivity, log logging.Logger, interval time.Duration, workers ...Worker) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{
		conn:     conn,
		workers:  workers,
		interval: interval,
		backoff:  defaultBackoff,
		log:      log.With("module", "sync_scheduler"),
	}
}

// Run blocks until ctx is cancelled, syncing once immediately and then on
// every tick.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.SyncNow(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SyncNow(ctx)
		}
	}
}

// SyncNow performs one sync round: a connectivity check, then each worker in
// turn with up to MaxAttempts tries. Concurrent calls are serialized with the
// ticker-driven rounds.
func (s *Scheduler) SyncNow(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.conn.Online(ctx) {
		s.log.Debug(ctx, "server unreachable, skipping sync round")
		return
	}

	for _, w := range s.workers {
		s.syncOne(ctx, w)
	}
}

func (s *Scheduler) syncOne(ctx context.Context, w Worker) {
	attempt := 0
	b := retry.WithMaxRetries(MaxAttempts-1, retry.NewConstant(s.backoff))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		switch w.RunOnce(ctx, attempt) {
		case Retry:
			return retry.RetryableError(errors.New("attempt failed"))
		case Failure:
			return errAbandoned
		default:
			return nil
		}
	})
	if err != nil {
		s.log.Warn(ctx, "sync round failed", "worker", w.Name(), "attempts", attempt, "error", err)
	}
}
