package syncer

import (
	"context"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/client/remote"
	"github.com/apolyakov/reelmark/internal/client/repositories/accounts"
	"github.com/apolyakov/reelmark/internal/logging"
)

// AccountSyncer pushes locally created accounts in one batch per attempt.
type AccountSyncer struct {
	accounts accounts.Repository
	remote   *remote.Client
	log      logging.Logger
}

func NewAccountSyncer(repo accounts.Repository, rc *remote.Client, log logging.Logger) *AccountSyncer {
	return &AccountSyncer{accounts: repo, remote: rc, log: log.With("module", "account_syncer")}
}

func (s *AccountSyncer) Name() string { return "accounts" }

func (s *AccountSyncer) RunOnce(ctx context.Context, attempt int) Result {
	if attempt > MaxAttempts {
		s.log.Warn(ctx, "retry ceiling reached, abandoning batch", "attempt", attempt)
		return Failure
	}

	pending, err := s.accounts.GetAllPending(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to load pending accounts", "error", err)
		return Retry
	}
	if len(pending) == 0 {
		return Success
	}

	batch := make([]api.Account, 0, len(pending))
	names := make([]string, 0, len(pending))
	for _, a := range pending {
		batch = append(batch, a.ToAPI())
		names = append(names, a.Name)
	}

	resp := s.remote.PushAccounts(ctx, batch)
	if !resp.OK() {
		s.log.Warn(ctx, "account push rejected", "attempt", attempt, "code", resp.Code, "error", resp.Message)
		return Retry
	}

	if err := s.accounts.ClearPending(ctx, names); err != nil {
		s.log.Error(ctx, "failed to clear pending accounts", "error", err)
		return Retry
	}

	s.log.Info(ctx, "accounts synced", "count", len(names))
	return Success
}
