package services

import (
	"context"
	"fmt"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/common"
	"github.com/apolyakov/reelmark/internal/logging"
	"github.com/apolyakov/reelmark/internal/server/repositories/assets"
)

type AssetService struct {
	assets assets.Repository
	log    logging.Logger
}

func NewAssetService(repo assets.Repository, log logging.Logger) *AssetService {
	return &AssetService{assets: repo, log: log.With("module", "asset_service")}
}

// List returns assets of one type joined with accountName's sentiments. For
// SentimentUnspecified the result is the union of explicit-UNSPECIFIED and
// no-row assets, explicit rows first.
func (s *AssetService) List(ctx context.Context, assetType api.AssetType, accountName string, sentiment api.SentimentType) ([]api.AssetSentiment, error) {
	if !assetType.Valid() {
		return nil, fmt.Errorf("%w: invalid asset type %q", common.ErrValidation, assetType)
	}
	if !sentiment.Valid() {
		return nil, fmt.Errorf("%w: invalid sentiment type %q", common.ErrValidation, sentiment)
	}
	if accountName == "" {
		return nil, fmt.Errorf("%w: account name must not be empty", common.ErrValidation)
	}
	return s.assets.ListWithSentiments(ctx, assetType, accountName, sentiment)
}

// SaveBatch validates and stores ingested assets. Existing catalog entries
// are left untouched.
func (s *AssetService) SaveBatch(ctx context.Context, items []api.Asset) error {
	for _, a := range items {
		if a.AssetID == "" {
			return fmt.Errorf("%w: asset id must not be empty", common.ErrValidation)
		}
		if !a.AssetType.Valid() {
			return fmt.Errorf("%w: invalid asset type %q", common.ErrValidation, a.AssetType)
		}
	}

	if err := s.assets.UpsertBatch(ctx, items); err != nil {
		return err
	}

	s.log.Info(ctx, "assets saved", "count", len(items))
	return nil
}
