// Package remote implements the HTTP client side of the server sync
// contract: account and sentiment batch pushes, asset reads, and the
// reachability probe used to gate the sync schedulers.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/client/livedata"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL  string
	clientID string
	http     *http.Client
}

func NewClient(baseURL, clientID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		clientID: clientID,
		http:     &http.Client{Timeout: timeout},
	}
}

// GetAccounts fetches all server-side accounts, sorted by name.
func (c *Client) GetAccounts(ctx context.Context) Response[[]api.Account] {
	return do[[]api.Account](ctx, c, http.MethodGet, "/accounts", nil, nil)
}

// PushAccounts submits locally pending accounts in a single batch.
func (c *Client) PushAccounts(ctx context.Context, accounts []api.Account) Response[api.AccountsResponse] {
	return do[api.AccountsResponse](ctx, c, http.MethodPost, "/accounts", nil, accounts)
}

// GetAssets fetches assets of one type joined with accountName's sentiments.
func (c *Client) GetAssets(ctx context.Context, assetType api.AssetType, accountName string, sentiment api.SentimentType) Response[[]api.AssetSentiment] {
	q := url.Values{}
	q.Set("assetType", string(assetType))
	q.Set("accountName", accountName)
	q.Set("sentimentType", string(sentiment))
	return do[[]api.AssetSentiment](ctx, c, http.MethodGet, "/assets", q, nil)
}

// PushSentiments submits locally pending sentiments in a single batch.
func (c *Client) PushSentiments(ctx context.Context, items []api.UserSentiment) Response[api.SentimentsResponse] {
	return do[api.SentimentsResponse](ctx, c, http.MethodPost, "/sentiments", nil, items)
}

// Online probes server reachability with a short deadline.
func (c *Client) Online(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return c.GetAccounts(ctx).OK()
}

// Live runs call on its own goroutine and delivers the single terminal
// outcome through a LiveData, for use as a reconciler fetch source.
func Live[T any](call func() Response[T]) *livedata.LiveData[Response[T]] {
	d := livedata.New[Response[T]]()
	go func() { d.Set(call()) }()
	return d
}

func do[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) Response[T] {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Errorf[T]("encoding request: %v", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return Errorf[T]("building request: %v", err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Content-Type", "application/json")
	if c.clientID != "" {
		req.Header.Set(api.ClientIDHeader, c.clientID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Errorf[T]("transport failure: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Errorf[T]("reading response: %v", err)
	}

	out := Response[T]{Code: resp.StatusCode}
	if out.OK() {
		if len(data) > 0 {
			if err := json.Unmarshal(data, &out.Body); err != nil {
				return Errorf[T]("decoding response: %v", err)
			}
		}
		return out
	}

	out.Message = errorMessage(data, resp.Status)
	return out
}

// errorMessage extracts the server-provided error body, falling back to the
// HTTP status line.
func errorMessage(data []byte, status string) string {
	var e api.ErrorResponse
	if err := json.Unmarshal(data, &e); err == nil && e.Error != "" {
		return e.Error
	}
	if s := strings.TrimSpace(string(data)); s != "" {
		return s
	}
	return status
}
