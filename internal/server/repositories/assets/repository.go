package assets

import (
	"context"

	"github.com/apolyakov/reelmark/internal/api"
)

// Repository describes the authoritative asset catalog.
type Repository interface {
	// ListWithSentiments returns assets of one type joined with accountName's
	// sentiment. An explicit sentimentType matches only assets with a stored
	// row of that value. SentimentUnspecified returns assets with an explicit
	// UNSPECIFIED row first, followed by assets with no row at all.
	ListWithSentiments(ctx context.Context, assetType api.AssetType, accountName string, sentiment api.SentimentType) ([]api.AssetSentiment, error)

	// UpsertBatch stores the assets; existing (asset_id, asset_type) keys are
	// left untouched.
	UpsertBatch(ctx context.Context, items []api.Asset) error
}
