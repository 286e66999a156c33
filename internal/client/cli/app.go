// Package cli wires the client together and exposes its command surface:
// account management, reactions, catalog listings, and sync control.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/apolyakov/reelmark/internal/client/config"
	"github.com/apolyakov/reelmark/internal/client/executor"
	"github.com/apolyakov/reelmark/internal/client/remote"
	"github.com/apolyakov/reelmark/internal/client/repositories/accounts"
	assetsrepo "github.com/apolyakov/reelmark/internal/client/repositories/assets"
	"github.com/apolyakov/reelmark/internal/client/repositories/meta"
	"github.com/apolyakov/reelmark/internal/client/repositories/sentiments"
	"github.com/apolyakov/reelmark/internal/client/repository"
	"github.com/apolyakov/reelmark/internal/client/storage"
	"github.com/apolyakov/reelmark/internal/client/syncer"
	"github.com/apolyakov/reelmark/internal/logging"
)

type App struct {
	config    *config.Config
	db        *sql.DB
	log       logging.Logger
	exec      *executor.Executor
	accounts  *repository.AccountRepository
	assets    *repository.AssetRepository
	scheduler *syncer.Scheduler
	out       io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	db, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("initializing local store: %w", err)
	}

	notifier := storage.NewNotifier()
	exec := executor.New(cfg.ExecutorSize, log)

	metaRepo := meta.NewSQLiteRepository(db)
	installID, err := metaRepo.InstallID(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading install id: %w", err)
	}

	rc := remote.NewClient(cfg.ServerEndpointAddr, installID, cfg.RequestTimeout)

	accountRepo := accounts.NewSQLiteRepository(db, notifier)
	assetRepo := assetsrepo.NewSQLiteRepository(db, notifier)
	sentimentRepo := sentiments.NewSQLiteRepository(db, notifier)

	scheduler := syncer.NewScheduler(rc, log, cfg.SyncInterval,
		syncer.NewAccountSyncer(accountRepo, rc, log),
		syncer.NewSentimentSyncer(sentimentRepo, rc, log),
	)

	return &App{
		config:    cfg,
		db:        db,
		log:       log,
		exec:      exec,
		accounts:  repository.NewAccountRepository(accountRepo, notifier, exec, log),
		assets:    repository.NewAssetRepository(assetRepo, sentimentRepo, notifier, exec, rc, log),
		scheduler: scheduler,
		out:       os.Stdout,
	}, nil
}

// Close flushes pending background writes and releases the local store.
func (a *App) Close() error {
	a.exec.Wait()
	return a.db.Close()
}
