package sentiments

import (
	"context"
	"fmt"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) UpsertBatch(ctx context.Context, items []api.UserSentiment) error {
	query := `INSERT INTO user_sentiments (asset_id, account_name, asset_type, sentiment_type, ts)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (asset_id, account_name, asset_type)
		 DO UPDATE SET sentiment_type = EXCLUDED.sentiment_type, ts = EXCLUDED.ts`

	for _, s := range items {
		if _, err := r.db.ExecContext(ctx, query,
			s.AssetID, s.AccountName, s.AssetType, s.SentimentType, s.Timestamp); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}
