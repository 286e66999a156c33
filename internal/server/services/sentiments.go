package services

import (
	"context"
	"fmt"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/common"
	"github.com/apolyakov/reelmark/internal/logging"
	"github.com/apolyakov/reelmark/internal/server/repositories/accounts"
	"github.com/apolyakov/reelmark/internal/server/repositories/sentiments"
)

type SentimentService struct {
	sentiments sentiments.Repository
	accounts   accounts.Repository
	log        logging.Logger
}

func NewSentimentService(repo sentiments.Repository, accountRepo accounts.Repository, log logging.Logger) *SentimentService {
	return &SentimentService{sentiments: repo, accounts: accountRepo, log: log.With("module", "sentiment_service")}
}

// SaveBatch validates and upserts a batch of sentiments, returning the stored
// items. Every referenced account must already exist.
func (s *SentimentService) SaveBatch(ctx context.Context, items []api.UserSentiment) ([]api.UserSentiment, error) {
	for _, item := range items {
		if item.AssetID == "" {
			return nil, fmt.Errorf("%w: asset id must not be empty", common.ErrValidation)
		}
		if !item.AssetType.Valid() {
			return nil, fmt.Errorf("%w: invalid asset type %q", common.ErrValidation, item.AssetType)
		}
		if !item.SentimentType.Valid() {
			return nil, fmt.Errorf("%w: invalid sentiment type %q", common.ErrValidation, item.SentimentType)
		}

		exists, err := s.accounts.Exists(ctx, item.AccountName)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: unknown account %q", common.ErrValidation, item.AccountName)
		}
	}

	if err := s.sentiments.UpsertBatch(ctx, items); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "sentiments saved", "count", len(items))
	return items, nil
}
