package syncer

import (
	"context"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/client/remote"
	"github.com/apolyakov/reelmark/internal/client/repositories/sentiments"
	"github.com/apolyakov/reelmark/internal/logging"
)

// SentimentSyncer pushes pending reactions in one batch per attempt. Rows
// updated between push and acknowledgement keep their pending flag and are
// resubmitted on the next round.
type SentimentSyncer struct {
	sentiments sentiments.Repository
	remote     *remote.Client
	log        logging.Logger
}

func NewSentimentSyncer(repo sentiments.Repository, rc *remote.Client, log logging.Logger) *SentimentSyncer {
	return &SentimentSyncer{sentiments: repo, remote: rc, log: log.With("module", "sentiment_syncer")}
}

func (s *SentimentSyncer) Name() string { return "sentiments" }

func (s *SentimentSyncer) RunOnce(ctx context.Context, attempt int) Result {
	if attempt > MaxAttempts {
		s.log.Warn(ctx, "retry ceiling reached, abandoning batch", "attempt", attempt)
		return Failure
	}

	pending, err := s.sentiments.GetAllPending(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to load pending sentiments", "error", err)
		return Retry
	}
	if len(pending) == 0 {
		return Success
	}

	batch := make([]api.UserSentiment, 0, len(pending))
	for _, item := range pending {
		batch = append(batch, item.ToAPI())
	}

	resp := s.remote.PushSentiments(ctx, batch)
	if !resp.OK() {
		s.log.Warn(ctx, "sentiment push rejected", "attempt", attempt, "code", resp.Code, "error", resp.Message)
		return Retry
	}

	if err := s.sentiments.ClearPending(ctx, pending); err != nil {
		s.log.Error(ctx, "failed to clear pending sentiments", "error", err)
		return Retry
	}

	s.log.Info(ctx, "sentiments synced", "count", len(pending))
	return Success
}
