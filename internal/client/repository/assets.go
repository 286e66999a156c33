package repository

import (
	"context"
	"errors"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/client/executor"
	"github.com/apolyakov/reelmark/internal/client/livedata"
	"github.com/apolyakov/reelmark/internal/client/models"
	"github.com/apolyakov/reelmark/internal/client/remote"
	"github.com/apolyakov/reelmark/internal/client/repositories/assets"
	"github.com/apolyakov/reelmark/internal/client/repositories/sentiments"
	"github.com/apolyakov/reelmark/internal/client/resource"
	"github.com/apolyakov/reelmark/internal/client/storage"
	"github.com/apolyakov/reelmark/internal/common"
	"github.com/apolyakov/reelmark/internal/logging"
)

type AssetRepository struct {
	assets     assets.Repository
	sentiments sentiments.Repository
	notifier   *storage.Notifier
	exec       *executor.Executor
	remote     *remote.Client
	log        logging.Logger
}

func NewAssetRepository(
	assetRepo assets.Repository,
	sentimentRepo sentiments.Repository,
	notifier *storage.Notifier,
	exec *executor.Executor,
	rc *remote.Client,
	log logging.Logger,
) *AssetRepository {
	return &AssetRepository{
		assets:     assetRepo,
		sentiments: sentimentRepo,
		notifier:   notifier,
		exec:       exec,
		remote:     rc,
		log:        log.With("module", "asset_repository"),
	}
}

// Assets is the network-bound read: it serves the local join immediately and
// refreshes from the server when the local result is empty.
func (r *AssetRepository) Assets(ctx context.Context, assetType api.AssetType, accountName string, sentiment api.SentimentType) *livedata.LiveData[resource.Resource[[]models.AssetSentiment]] {
	return resource.NewNetworkBound(ctx, r.log, resource.NetworkBoundOptions[[]models.AssetSentiment, []api.AssetSentiment]{
		LoadLocal: func() *livedata.LiveData[[]models.AssetSentiment] {
			return livedata.NewQuery(ctx, r.notifier, r.log, func(ctx context.Context) ([]models.AssetSentiment, error) {
				return r.sentiments.List(ctx, assetType, accountName, sentiment)
			}, storage.TableAssets, storage.TableUserSentiments)
		},
		ShouldFetch: func(local []models.AssetSentiment) bool {
			return len(local) == 0
		},
		Fetch: func(ctx context.Context) *livedata.LiveData[remote.Response[[]api.AssetSentiment]] {
			return remote.Live(func() remote.Response[[]api.AssetSentiment] {
				return r.remote.GetAssets(ctx, assetType, accountName, sentiment)
			})
		},
		SaveResult: func(ctx context.Context, body []api.AssetSentiment) error {
			return r.saveAssets(ctx, body)
		},
	})
}

// Asset is a live single-row join; the value is nil until the asset exists.
func (r *AssetRepository) Asset(ctx context.Context, accountName, assetID string, assetType api.AssetType) *livedata.LiveData[*models.AssetSentiment] {
	return livedata.NewQuery(ctx, r.notifier, r.log, func(ctx context.Context) (*models.AssetSentiment, error) {
		item, err := r.assets.Get(ctx, accountName, assetID, assetType)
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return item, err
	}, storage.TableAssets, storage.TableUserSentiments)
}

// AddAsset ingests an asset row; duplicates are no-ops.
func (r *AssetRepository) AddAsset(ctx context.Context, asset models.Asset) {
	r.exec.Execute(ctx, func(ctx context.Context) error {
		return r.assets.Add(ctx, asset)
	})
}

// React records the account's reaction to one asset.
func (r *AssetRepository) React(ctx context.Context, accountName, assetID string, assetType api.AssetType, sentiment api.SentimentType) {
	r.exec.Execute(ctx, func(ctx context.Context) error {
		return r.sentiments.Update(ctx, accountName, assetID, assetType, sentiment)
	})
}

// ClearSentiments removes every reaction of one account.
func (r *AssetRepository) ClearSentiments(ctx context.Context, accountName string) {
	r.exec.Execute(ctx, func(ctx context.Context) error {
		return r.sentiments.DeleteAllForAccount(ctx, accountName)
	})
}

// saveAssets writes a fetched asset page back into the local store. Server
// rows never clobber local pending reactions: sentiment merge uses
// insert-or-ignore, so the newer local write survives until synced.
func (r *AssetRepository) saveAssets(ctx context.Context, body []api.AssetSentiment) error {
	for _, item := range body {
		if err := r.assets.Add(ctx, models.AssetFromAPI(item.Asset)); err != nil {
			return err
		}
		if item.UserSentiment == nil {
			continue
		}
		s := models.UserSentiment{
			AssetID:       item.UserSentiment.AssetID,
			AccountName:   item.UserSentiment.AccountName,
			AssetType:     item.UserSentiment.AssetType,
			SentimentType: item.UserSentiment.SentimentType,
			Timestamp:     item.UserSentiment.Timestamp,
		}
		if err := r.sentiments.MergeFromServer(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
