// Package api defines the JSON wire contract shared by the Reelmark client
// and server: entity payloads, batch sync request/response envelopes, and the
// enumerations persisted on both sides.
package api

// ClientIDHeader carries the installation id of the client issuing a request.
const ClientIDHeader = "X-Client-ID"

// AssetType distinguishes catalog entry kinds.
type AssetType string

const (
	AssetTypeMovie AssetType = "MOVIE"
	AssetTypeShow  AssetType = "SHOW"
)

func (t AssetType) Valid() bool {
	return t == AssetTypeMovie || t == AssetTypeShow
}

// SentimentType is a single account's reaction to an asset. The zero reaction
// is SentimentUnspecified; an absent sentiment row reads as the same value.
type SentimentType string

const (
	SentimentUnspecified SentimentType = "UNSPECIFIED"
	SentimentThumbsUp    SentimentType = "THUMBS_UP"
	SentimentThumbsDown  SentimentType = "THUMBS_DOWN"
)

func (t SentimentType) Valid() bool {
	switch t {
	case SentimentUnspecified, SentimentThumbsUp, SentimentThumbsDown:
		return true
	}
	return false
}

type Account struct {
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"`
	IsCurrent bool   `json:"isCurrent"`
}

type Asset struct {
	AssetID              string    `json:"assetId"`
	AssetType            AssetType `json:"assetType"`
	Title                string    `json:"title"`
	PosterURL            string    `json:"posterUrl"`
	BannerURL            string    `json:"bannerUrl"`
	Plot                 string    `json:"plot"`
	Runtime              string    `json:"runtime"`
	Year                 int       `json:"year"`
	IMDBRating           string    `json:"imdbRating"`
	RottenTomatoesRating string    `json:"rottenTomatoesRating"`
	Timestamp            int64     `json:"timestamp"`
}

type UserSentiment struct {
	AssetID       string        `json:"assetId"`
	AccountName   string        `json:"accountName"`
	AssetType     AssetType     `json:"assetType"`
	SentimentType SentimentType `json:"sentimentType"`
	Timestamp     int64         `json:"timestamp"`
}

// AssetSentiment is the read-side join of an asset with the requesting
// account's sentiment. UserSentiment is nil when no sentiment row exists.
type AssetSentiment struct {
	Asset         Asset          `json:"asset"`
	UserSentiment *UserSentiment `json:"userSentiment"`
}

// AccountsResponse is the body of POST /accounts.
type AccountsResponse struct {
	Accounts []Account `json:"accounts"`
	Error    string    `json:"error,omitempty"`
}

// SentimentsResponse is the body of POST /sentiments.
type SentimentsResponse struct {
	UserSentiments []UserSentiment `json:"userSentiments"`
	Error          string          `json:"error,omitempty"`
}

// ErrorResponse is the generic failure body for non-batch endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
