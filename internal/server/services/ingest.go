package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/common"
	"github.com/apolyakov/reelmark/internal/logging"
	"github.com/google/uuid"
)

// Ingester pulls asset metadata from an external movie database into the
// catalog.
type Ingester interface {
	Ingest(ctx context.Context, sourceURL, apiKey string) error
}

// HTTPIngester fetches a JSON asset feed from the given URL, authenticating
// with an apikey query parameter, and stores the parsed entries.
type HTTPIngester struct {
	assets *AssetService
	http   *http.Client
	log    logging.Logger
}

func NewHTTPIngester(assets *AssetService, log logging.Logger) *HTTPIngester {
	return &HTTPIngester{
		assets: assets,
		http:   &http.Client{Timeout: 30 * time.Second},
		log:    log.With("module", "ingester"),
	}
}

func (s *HTTPIngester) Ingest(ctx context.Context, sourceURL, apiKey string) error {
	if sourceURL == "" {
		return fmt.Errorf("%w: url must not be empty", common.ErrValidation)
	}

	u, err := url.Parse(sourceURL)
	if err != nil {
		return fmt.Errorf("%w: invalid url: %v", common.ErrValidation, err)
	}
	if apiKey != "" {
		q := u.Query()
		q.Set("apikey", apiKey)
		u.RawQuery = q.Encode()
	}

	jobID := uuid.NewString()
	s.log.Info(ctx, "scrape started", "job_id", jobID, "host", u.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("building scrape request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("source returned status %d", resp.StatusCode)
	}

	var items []api.Asset
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return fmt.Errorf("decoding source payload: %w", err)
	}

	now := time.Now().UnixMilli()
	for i := range items {
		if items[i].Timestamp == 0 {
			items[i].Timestamp = now
		}
	}

	if err := s.assets.SaveBatch(ctx, items); err != nil {
		return err
	}

	s.log.Info(ctx, "scrape finished", "job_id", jobID, "count", len(items))
	return nil
}
