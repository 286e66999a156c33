// Package services implements the server's business layer: batch validation
// and persistence for accounts, assets, and sentiments, plus catalog reads
// and scrape ingestion. Validation failures wrap common.ErrValidation so the
// HTTP layer can map them to 400 responses.
package services

import (
	"context"
	"fmt"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/common"
	"github.com/apolyakov/reelmark/internal/logging"
	"github.com/apolyakov/reelmark/internal/server/repositories/accounts"
)

type AccountService struct {
	accounts accounts.Repository
	log      logging.Logger
}

func NewAccountService(repo accounts.Repository, log logging.Logger) *AccountService {
	return &AccountService{accounts: repo, log: log.With("module", "account_service")}
}

// List returns all accounts sorted by name.
func (s *AccountService) List(ctx context.Context) ([]api.Account, error) {
	return s.accounts.GetAll(ctx)
}

// SaveBatch validates and stores a batch of accounts, returning the stored
// items.
func (s *AccountService) SaveBatch(ctx context.Context, items []api.Account) ([]api.Account, error) {
	for _, a := range items {
		if a.Name == "" {
			return nil, fmt.Errorf("%w: account name must not be empty", common.ErrValidation)
		}
	}

	if err := s.accounts.UpsertBatch(ctx, items); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "accounts saved", "count", len(items))
	return items, nil
}
