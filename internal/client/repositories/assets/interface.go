package assets

import (
	"context"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/client/models"
)

// Repository describes the local store operations for Asset rows. Assets are
// immutable once ingested; Add uses insert-or-ignore semantics.
type Repository interface {
	// Add inserts an asset; a duplicate (asset_id, asset_type) is a no-op.
	Add(ctx context.Context, asset models.Asset) error

	// Get joins one asset with the account's sentiment toward it. The
	// sentiment defaults to SentimentUnspecified when no row exists. Returns
	// common.ErrNotFound when the asset itself is absent.
	Get(ctx context.Context, accountName, assetID string, assetType api.AssetType) (*models.AssetSentiment, error)
}
