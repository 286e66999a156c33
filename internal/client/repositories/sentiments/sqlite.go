package sentiments

import (
	"context"
	"fmt"
	"time"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/client/models"
	"github.com/apolyakov/reelmark/internal/client/storage"
	"github.com/apolyakov/reelmark/internal/dbx"
)

const assetColumns = `a.asset_id, a.asset_type, a.title, a.poster_url, a.banner_url, a.plot, a.runtime,
	a.year, a.imdb_rating, a.rotten_tomatoes_rating, a.timestamp`

type SQLiteRepository struct {
	db       dbx.DBTX
	notifier *storage.Notifier
	now      func() int64
}

func NewSQLiteRepository(db dbx.DBTX, notifier *storage.Notifier) *SQLiteRepository {
	return &SQLiteRepository{db: db, notifier: notifier, now: func() int64 { return time.Now().UnixMilli() }}
}

func (r *SQLiteRepository) Update(ctx context.Context, accountName, assetID string, assetType api.AssetType, sentiment api.SentimentType) error {
	query := `INSERT OR REPLACE INTO user_sentiments
		(asset_id, account_name, asset_type, sentiment_type, timestamp, is_pending)
		VALUES (?, ?, ?, ?, ?, 1)`
	if _, err := r.db.ExecContext(ctx, query, assetID, accountName, assetType, sentiment, r.now()); err != nil {
		return fmt.Errorf("failed to upsert sentiment: %w", err)
	}
	r.notifier.Invalidate(storage.TableUserSentiments)
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, assetType api.AssetType, accountName string, sentiment api.SentimentType) ([]models.AssetSentiment, error) {
	var query string
	var args []any
	if sentiment != api.SentimentUnspecified {
		query = `SELECT ` + assetColumns + `, s.sentiment_type
			FROM assets a
			JOIN user_sentiments s ON s.asset_id = a.asset_id AND s.asset_type = a.asset_type
			WHERE a.asset_type = ? AND s.account_name = ? AND s.sentiment_type = ?
			ORDER BY a.asset_id ASC`
		args = []any{assetType, accountName, sentiment}
	} else {
		// One LEFT JOIN covers both sources of "no reaction" — an explicit
		// UNSPECIFIED row and no row at all — without double-counting, since
		// the key admits at most one sentiment row per account and asset.
		query = `SELECT ` + assetColumns + `, 'UNSPECIFIED'
			FROM assets a
			LEFT JOIN user_sentiments s
				ON s.asset_id = a.asset_id AND s.asset_type = a.asset_type AND s.account_name = ?
			WHERE a.asset_type = ? AND (s.sentiment_type IS NULL OR s.sentiment_type = 'UNSPECIFIED')
			ORDER BY a.asset_id ASC`
		args = []any{accountName, assetType}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select assets by sentiment: %w", err)
	}
	defer rows.Close()

	var result []models.AssetSentiment
	for rows.Next() {
		var item models.AssetSentiment
		if err := rows.Scan(
			&item.Asset.AssetID, &item.Asset.AssetType, &item.Asset.Title,
			&item.Asset.PosterURL, &item.Asset.BannerURL, &item.Asset.Plot,
			&item.Asset.Runtime, &item.Asset.Year, &item.Asset.IMDBRating,
			&item.Asset.RottenTomatoesRating, &item.Asset.Timestamp,
			&item.Sentiment,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) MergeFromServer(ctx context.Context, s models.UserSentiment) error {
	query := `INSERT OR IGNORE INTO user_sentiments
		(asset_id, account_name, asset_type, sentiment_type, timestamp, is_pending)
		VALUES (?, ?, ?, ?, ?, 0)`
	res, err := r.db.ExecContext(ctx, query, s.AssetID, s.AccountName, s.AssetType, s.SentimentType, s.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to merge sentiment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		r.notifier.Invalidate(storage.TableUserSentiments)
	}
	return nil
}

func (r *SQLiteRepository) DeleteAllForAccount(ctx context.Context, accountName string) error {
	query := `DELETE FROM user_sentiments WHERE account_name = ?`
	res, err := r.db.ExecContext(ctx, query, accountName)
	if err != nil {
		return fmt.Errorf("failed to delete sentiments: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		r.notifier.Invalidate(storage.TableUserSentiments)
	}
	return nil
}

func (r *SQLiteRepository) GetAllPending(ctx context.Context) ([]models.UserSentiment, error) {
	query := `SELECT asset_id, account_name, asset_type, sentiment_type, timestamp, is_pending
		FROM user_sentiments WHERE is_pending = 1`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending sentiments: %w", err)
	}
	defer rows.Close()

	var pending []models.UserSentiment
	for rows.Next() {
		var item models.UserSentiment
		if err := rows.Scan(&item.AssetID, &item.AccountName, &item.AssetType,
			&item.SentimentType, &item.Timestamp, &item.IsPending); err != nil {
			return nil, err
		}
		pending = append(pending, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pending, nil
}

// ClearPending only clears rows whose timestamp is unchanged since the push,
// so a reaction updated mid-sync stays pending and is resubmitted next run.
func (r *SQLiteRepository) ClearPending(ctx context.Context, items []models.UserSentiment) error {
	if len(items) == 0 {
		return nil
	}
	query := `UPDATE user_sentiments SET is_pending = 0
		WHERE asset_id = ? AND account_name = ? AND asset_type = ? AND timestamp = ?`
	for _, item := range items {
		if _, err := r.db.ExecContext(ctx, query, item.AssetID, item.AccountName, item.AssetType, item.Timestamp); err != nil {
			return fmt.Errorf("failed to clear pending sentiment: %w", err)
		}
	}
	r.notifier.Invalidate(storage.TableUserSentiments)
	return nil
}
