package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/logging"
	"github.com/apolyakov/reelmark/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

type fakeAccountRepo struct {
	accounts []api.Account
}

func (f *fakeAccountRepo) GetAll(context.Context) ([]api.Account, error) {
	return f.accounts, nil
}

func (f *fakeAccountRepo) Exists(_ context.Context, name string) (bool, error) {
	for _, a := range f.accounts {
		if a.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountRepo) UpsertBatch(_ context.Context, items []api.Account) error {
	f.accounts = append(f.accounts, items...)
	return nil
}

type fakeAssetRepo struct {
	listed []api.AssetSentiment
}

func (f *fakeAssetRepo) ListWithSentiments(context.Context, api.AssetType, string, api.SentimentType) ([]api.AssetSentiment, error) {
	return f.listed, nil
}

func (f *fakeAssetRepo) UpsertBatch(context.Context, []api.Asset) error { return nil }

type fakeSentimentRepo struct {
	saved []api.UserSentiment
}

func (f *fakeSentimentRepo) UpsertBatch(_ context.Context, items []api.UserSentiment) error {
	f.saved = append(f.saved, items...)
	return nil
}

type fakeIngester struct {
	err  error
	urls []string
}

func (f *fakeIngester) Ingest(_ context.Context, sourceURL, _ string) error {
	f.urls = append(f.urls, sourceURL)
	return f.err
}

type testRig struct {
	srv        *httptest.Server
	accounts   *fakeAccountRepo
	sentiments *fakeSentimentRepo
	ingester   *fakeIngester
}

func newRig(t *testing.T) *testRig {
	t.Helper()
	log := testLogger()

	rig := &testRig{
		accounts:   &fakeAccountRepo{},
		sentiments: &fakeSentimentRepo{},
		ingester:   &fakeIngester{},
	}

	router := NewRouter(log,
		services.NewAccountService(rig.accounts, log),
		services.NewAssetService(&fakeAssetRepo{listed: []api.AssetSentiment{
			{Asset: api.Asset{AssetID: "tt001", AssetType: api.AssetTypeMovie, Title: "Heat"}},
		}}, log),
		services.NewSentimentService(rig.sentiments, rig.accounts, log),
		rig.ingester,
	)

	rig.srv = httptest.NewServer(router)
	t.Cleanup(rig.srv.Close)
	return rig
}

func TestGetAccounts_EmptyStoreReturnsEmptyArray(t *testing.T) {
	rig := newRig(t)

	resp, err := http.Get(rig.srv.URL + "/accounts")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got []api.Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostAccounts_StoresAndEchoesBatch(t *testing.T) {
	rig := newRig(t)

	body := `[{"name":"alice","timestamp":1},{"name":"bob","timestamp":2}]`
	resp, err := http.Post(rig.srv.URL+"/accounts", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.AccountsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Len(t, got.Accounts, 2)
	assert.Empty(t, got.Error)
	assert.Len(t, rig.accounts.accounts, 2)
}

func TestPostAccounts_ValidationFailureIs400WithMessage(t *testing.T) {
	rig := newRig(t)

	resp, err := http.Post(rig.srv.URL+"/accounts", "application/json", strings.NewReader(`[{"name":""}]`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got api.AccountsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Contains(t, got.Error, "name must not be empty")
}

func TestPostAccounts_MalformedBodyIs400(t *testing.T) {
	rig := newRig(t)

	resp, err := http.Post(rig.srv.URL+"/accounts", "application/json", strings.NewReader(`{not json`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetAssets_ReturnsJoinArray(t *testing.T) {
	rig := newRig(t)

	resp, err := http.Get(rig.srv.URL + "/assets?assetType=MOVIE&accountName=alice&sentimentType=UNSPECIFIED")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []api.AssetSentiment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "tt001", got[0].Asset.AssetID)
	assert.Nil(t, got[0].UserSentiment)
}

func TestGetAssets_InvalidTypeIs400(t *testing.T) {
	rig := newRig(t)

	resp, err := http.Get(rig.srv.URL + "/assets?assetType=BOOK&accountName=alice")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostSentiments_UnknownAccountIs400(t *testing.T) {
	rig := newRig(t)

	body := `[{"assetId":"tt001","accountName":"ghost","assetType":"MOVIE","sentimentType":"THUMBS_UP","timestamp":1}]`
	resp, err := http.Post(rig.srv.URL+"/sentiments", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got api.SentimentsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Contains(t, got.Error, "ghost")
	assert.Empty(t, rig.sentiments.saved)
}

func TestPostSentiments_StoresBatch(t *testing.T) {
	rig := newRig(t)
	rig.accounts.accounts = []api.Account{{Name: "alice"}}

	body := `[{"assetId":"tt001","accountName":"alice","assetType":"MOVIE","sentimentType":"THUMBS_DOWN","timestamp":1}]`
	resp, err := http.Post(rig.srv.URL+"/sentiments", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.SentimentsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Len(t, got.UserSentiments, 1)
	assert.Len(t, rig.sentiments.saved, 1)
}

func TestScrape_DelegatesToIngester(t *testing.T) {
	rig := newRig(t)

	resp, err := http.Get(rig.srv.URL + "/scrape?url=http://feed.example/assets&apiKey=k")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"http://feed.example/assets"}, rig.ingester.urls)
}

func TestScrape_FailureIs500WithMessage(t *testing.T) {
	rig := newRig(t)
	rig.ingester.err = errors.New("source returned status 502")

	resp, err := http.Get(rig.srv.URL + "/scrape?url=http://feed.example/assets")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var got api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Contains(t, got.Error, "502")
}
