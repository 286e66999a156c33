package sentiments

import (
	"context"

	"github.com/apolyakov/reelmark/internal/api"
)

// Repository describes the authoritative sentiment store. At most one row
// exists per (asset_id, account_name, asset_type); writes replace the value.
type Repository interface {
	// UpsertBatch stores the sentiments, replacing existing values for the
	// same keys.
	UpsertBatch(ctx context.Context, items []api.UserSentiment) error
}
