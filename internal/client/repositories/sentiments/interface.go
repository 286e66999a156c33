package sentiments

import (
	"context"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/client/models"
)

// Repository describes the local store operations for UserSentiment rows.
// The table is keyed by (asset_id, account_name, asset_type); writes replace
// any previous row for the same key.
type Repository interface {
	// Update records a reaction, replacing the previous one if present. The
	// new row is flagged pending until a sync worker confirms it.
	Update(ctx context.Context, accountName, assetID string, assetType api.AssetType, sentiment api.SentimentType) error

	// List returns asset+sentiment joins for one account and asset type,
	// ordered by asset id. For an explicit sentiment it returns only assets
	// with a matching row; for SentimentUnspecified it returns both assets
	// with an explicit UNSPECIFIED row and assets with no row at all.
	List(ctx context.Context, assetType api.AssetType, accountName string, sentiment api.SentimentType) ([]models.AssetSentiment, error)

	// MergeFromServer stores a server-confirmed sentiment without marking it
	// pending. An existing local row wins: the merge is insert-or-ignore so
	// unsynced local reactions are never overwritten.
	MergeFromServer(ctx context.Context, s models.UserSentiment) error

	// DeleteAllForAccount removes every sentiment row for one account,
	// leaving other accounts untouched.
	DeleteAllForAccount(ctx context.Context, accountName string) error

	// GetAllPending returns sentiments not yet confirmed synced.
	GetAllPending(ctx context.Context) ([]models.UserSentiment, error)

	// ClearPending clears the pending flag on exactly the given rows.
	ClearPending(ctx context.Context, items []models.UserSentiment) error
}
