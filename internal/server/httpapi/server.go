// Package httpapi exposes the server's JSON contract over chi: account and
// sentiment batch sync, the asset catalog read, and scrape ingestion.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/apolyakov/reelmark/internal/logging"
	"github.com/apolyakov/reelmark/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	http *http.Server
	log  logging.Logger
}

// NewRouter builds the chi router serving the sync contract.
func NewRouter(log logging.Logger,
	accounts *services.AccountService,
	assets *services.AssetService,
	sentiments *services.SentimentService,
	ingester services.Ingester,
) http.Handler {
	h := &handler{
		accounts:   accounts,
		assets:     assets,
		sentiments: sentiments,
		ingester:   ingester,
		log:        log.With("module", "httpapi"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/accounts", h.getAccounts)
	r.Post("/accounts", h.postAccounts)
	r.Get("/assets", h.getAssets)
	r.Post("/sentiments", h.postSentiments)
	r.Get("/scrape", h.scrape)

	return r
}

func NewServer(addr string, log logging.Logger,
	accounts *services.AccountService,
	assets *services.AssetService,
	sentiments *services.SentimentService,
	ingester services.Ingester,
) *Server {
	return &Server{
		http: &http.Server{Addr: addr, Handler: NewRouter(log, accounts, assets, sentiments, ingester)},
		log:  log.With("module", "http_server"),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
