package assets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/client/models"
	"github.com/apolyakov/reelmark/internal/client/storage"
	"github.com/apolyakov/reelmark/internal/common"
	"github.com/apolyakov/reelmark/internal/dbx"
)

type SQLiteRepository struct {
	db       dbx.DBTX
	notifier *storage.Notifier
}

func NewSQLiteRepository(db dbx.DBTX, notifier *storage.Notifier) *SQLiteRepository {
	return &SQLiteRepository{db: db, notifier: notifier}
}

func (r *SQLiteRepository) Add(ctx context.Context, asset models.Asset) error {
	query := `INSERT OR IGNORE INTO assets
		(asset_id, asset_type, title, poster_url, banner_url, plot, runtime, year, imdb_rating, rotten_tomatoes_rating, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		asset.AssetID, asset.AssetType, asset.Title, asset.PosterURL, asset.BannerURL,
		asset.Plot, asset.Runtime, asset.Year, asset.IMDBRating, asset.RottenTomatoesRating, asset.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		r.notifier.Invalidate(storage.TableAssets)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, accountName, assetID string, assetType api.AssetType) (*models.AssetSentiment, error) {
	query := `SELECT a.asset_id, a.asset_type, a.title, a.poster_url, a.banner_url, a.plot, a.runtime,
			a.year, a.imdb_rating, a.rotten_tomatoes_rating, a.timestamp,
			COALESCE(s.sentiment_type, 'UNSPECIFIED')
		FROM assets a
		LEFT JOIN user_sentiments s
			ON s.asset_id = a.asset_id AND s.asset_type = a.asset_type AND s.account_name = ?
		WHERE a.asset_id = ? AND a.asset_type = ?`
	row := r.db.QueryRowContext(ctx, query, accountName, assetID, assetType)

	item := &models.AssetSentiment{}
	if err := scanAssetSentiment(row.Scan, item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select asset: %w", err)
	}
	return item, nil
}

func scanAssetSentiment(scan func(dest ...any) error, item *models.AssetSentiment) error {
	return scan(
		&item.Asset.AssetID, &item.Asset.AssetType, &item.Asset.Title,
		&item.Asset.PosterURL, &item.Asset.BannerURL, &item.Asset.Plot,
		&item.Asset.Runtime, &item.Asset.Year, &item.Asset.IMDBRating,
		&item.Asset.RottenTomatoesRating, &item.Asset.Timestamp,
		&item.Sentiment,
	)
}
