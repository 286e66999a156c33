// Package server initializes and runs the Reelmark backend: it opens the
// Postgres store, applies migrations, wires the services, and serves the HTTP
// API until an OS signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/apolyakov/reelmark/internal/logging"
	"github.com/apolyakov/reelmark/internal/server/config"
	"github.com/apolyakov/reelmark/internal/server/httpapi"
	"github.com/apolyakov/reelmark/internal/server/repositories/repomanager"
	"github.com/apolyakov/reelmark/internal/server/services"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	accountService := services.NewAccountService(rm.Accounts(db), logger)
	assetService := services.NewAssetService(rm.Assets(db), logger)
	sentimentService := services.NewSentimentService(rm.Sentiments(db), rm.Accounts(db), logger)
	ingester := services.NewHTTPIngester(assetService, logger)

	srv := httpapi.NewServer(c.EndpointAddr, logger, accountService, assetService, sentimentService, ingester)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// Run serves until ctx is cancelled or an OS signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	defer app.db.Close()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.server.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	app.logger.Info(ctx, "app stopped")
	return nil
}
