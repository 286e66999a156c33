package assets

import (
	"context"
	"fmt"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/dbx"
)

const assetColumns = `a.asset_id, a.asset_type, a.title, a.poster_url, a.banner_url, a.plot, a.runtime,
		a.year, a.imdb_rating, a.rotten_tomatoes_rating, a.ts`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListWithSentiments(ctx context.Context, assetType api.AssetType, accountName string, sentiment api.SentimentType) ([]api.AssetSentiment, error) {
	if sentiment != api.SentimentUnspecified {
		query := `SELECT ` + assetColumns + `, s.sentiment_type, s.ts
			 FROM assets a
			 JOIN user_sentiments s ON s.asset_id = a.asset_id AND s.asset_type = a.asset_type
			 WHERE a.asset_type = $1 AND s.account_name = $2 AND s.sentiment_type = $3
			 ORDER BY a.asset_id ASC`
		return r.query(ctx, accountName, query, assetType, accountName, sentiment)
	}

	// Contract order: assets with an explicit UNSPECIFIED row first, then
	// assets with no sentiment row at all.
	explicitQuery := `SELECT ` + assetColumns + `, s.sentiment_type, s.ts
		 FROM assets a
		 JOIN user_sentiments s ON s.asset_id = a.asset_id AND s.asset_type = a.asset_type
		 WHERE a.asset_type = $1 AND s.account_name = $2 AND s.sentiment_type = 'UNSPECIFIED'
		 ORDER BY a.asset_id ASC`
	explicit, err := r.query(ctx, accountName, explicitQuery, assetType, accountName)
	if err != nil {
		return nil, err
	}

	absentQuery := `SELECT ` + assetColumns + `, NULL, NULL
		 FROM assets a
		 LEFT JOIN user_sentiments s
			ON s.asset_id = a.asset_id AND s.asset_type = a.asset_type AND s.account_name = $2
		 WHERE a.asset_type = $1 AND s.asset_id IS NULL
		 ORDER BY a.asset_id ASC`
	absent, err := r.query(ctx, accountName, absentQuery, assetType, accountName)
	if err != nil {
		return nil, err
	}

	return append(explicit, absent...), nil
}

func (r *PostgresRepository) UpsertBatch(ctx context.Context, items []api.Asset) error {
	query := `INSERT INTO assets
		 (asset_id, asset_type, title, poster_url, banner_url, plot, runtime, year, imdb_rating, rotten_tomatoes_rating, ts)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (asset_id, asset_type) DO NOTHING`

	for _, a := range items {
		if _, err := r.db.ExecContext(ctx, query,
			a.AssetID, a.AssetType, a.Title, a.PosterURL, a.BannerURL, a.Plot,
			a.Runtime, a.Year, a.IMDBRating, a.RottenTomatoesRating, a.Timestamp); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) query(ctx context.Context, accountName, query string, args ...any) ([]api.AssetSentiment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []api.AssetSentiment
	for rows.Next() {
		var item api.AssetSentiment
		var sentimentType *api.SentimentType
		var sentimentTS *int64
		if err := rows.Scan(
			&item.Asset.AssetID, &item.Asset.AssetType, &item.Asset.Title,
			&item.Asset.PosterURL, &item.Asset.BannerURL, &item.Asset.Plot,
			&item.Asset.Runtime, &item.Asset.Year, &item.Asset.IMDBRating,
			&item.Asset.RottenTomatoesRating, &item.Asset.Timestamp,
			&sentimentType, &sentimentTS,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if sentimentType != nil {
			item.UserSentiment = &api.UserSentiment{
				AssetID:       item.Asset.AssetID,
				AccountName:   accountName,
				AssetType:     item.Asset.AssetType,
				SentimentType: *sentimentType,
				Timestamp:     *sentimentTS,
			}
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
