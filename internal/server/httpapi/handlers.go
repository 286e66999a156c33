package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/common"
	"github.com/apolyakov/reelmark/internal/logging"
	"github.com/apolyakov/reelmark/internal/server/services"
)

type handler struct {
	accounts   *services.AccountService
	assets     *services.AssetService
	sentiments *services.SentimentService
	ingester   services.Ingester
	log        logging.Logger
}

func (h *handler) getAccounts(w http.ResponseWriter, r *http.Request) {
	items, err := h.accounts.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []api.Account{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *handler) postAccounts(w http.ResponseWriter, r *http.Request) {
	var items []api.Account
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeJSON(w, http.StatusBadRequest, api.AccountsResponse{Error: "malformed request body"})
		return
	}

	stored, err := h.accounts.SaveBatch(r.Context(), items)
	if err != nil {
		h.logFailure(r, err)
		writeJSON(w, statusFor(err), api.AccountsResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, api.AccountsResponse{Accounts: stored})
}

func (h *handler) getAssets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sentiment := api.SentimentType(q.Get("sentimentType"))
	if sentiment == "" {
		sentiment = api.SentimentUnspecified
	}

	items, err := h.assets.List(r.Context(), api.AssetType(q.Get("assetType")), q.Get("accountName"), sentiment)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []api.AssetSentiment{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *handler) postSentiments(w http.ResponseWriter, r *http.Request) {
	var items []api.UserSentiment
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeJSON(w, http.StatusBadRequest, api.SentimentsResponse{Error: "malformed request body"})
		return
	}

	stored, err := h.sentiments.SaveBatch(r.Context(), items)
	if err != nil {
		h.logFailure(r, err)
		writeJSON(w, statusFor(err), api.SentimentsResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, api.SentimentsResponse{UserSentiments: stored})
}

func (h *handler) scrape(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := h.ingester.Ingest(r.Context(), q.Get("url"), q.Get("apiKey")); err != nil {
		h.logFailure(r, err)
		writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	h.logFailure(r, err)
	writeJSON(w, statusFor(err), api.ErrorResponse{Error: err.Error()})
}

func (h *handler) logFailure(r *http.Request, err error) {
	h.log.Warn(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
}

func statusFor(err error) int {
	if errors.Is(err, common.ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
