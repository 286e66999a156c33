// Package models holds the client-side domain entities persisted in the
// local store. Rows created locally carry IsPending=true until a sync worker
// confirms them with the server.
package models

import "github.com/apolyakov/reelmark/internal/api"

type Account struct {
	Name      string
	Timestamp int64
	IsCurrent bool
	IsPending bool
}

// ToAPI strips local-only sync metadata for the wire.
func (a Account) ToAPI() api.Account {
	return api.Account{Name: a.Name, Timestamp: a.Timestamp, IsCurrent: a.IsCurrent}
}

// Asset is immutable once ingested; duplicate inserts are no-ops.
type Asset struct {
	AssetID              string
	AssetType            api.AssetType
	Title                string
	PosterURL            string
	BannerURL            string
	Plot                 string
	Runtime              string
	Year                 int
	IMDBRating           string
	RottenTomatoesRating string
	Timestamp            int64
}

func (a Asset) ToAPI() api.Asset {
	return api.Asset{
		AssetID:              a.AssetID,
		AssetType:            a.AssetType,
		Title:                a.Title,
		PosterURL:            a.PosterURL,
		BannerURL:            a.BannerURL,
		Plot:                 a.Plot,
		Runtime:              a.Runtime,
		Year:                 a.Year,
		IMDBRating:           a.IMDBRating,
		RottenTomatoesRating: a.RottenTomatoesRating,
		Timestamp:            a.Timestamp,
	}
}

func AssetFromAPI(a api.Asset) Asset {
	return Asset{
		AssetID:              a.AssetID,
		AssetType:            a.AssetType,
		Title:                a.Title,
		PosterURL:            a.PosterURL,
		BannerURL:            a.BannerURL,
		Plot:                 a.Plot,
		Runtime:              a.Runtime,
		Year:                 a.Year,
		IMDBRating:           a.IMDBRating,
		RottenTomatoesRating: a.RottenTomatoesRating,
		Timestamp:            a.Timestamp,
	}
}

// UserSentiment is keyed by (AssetID, AccountName, AssetType); at most one
// row exists per key and writes replace the previous value.
type UserSentiment struct {
	AssetID       string
	AccountName   string
	AssetType     api.AssetType
	SentimentType api.SentimentType
	Timestamp     int64
	IsPending     bool
}

func (s UserSentiment) ToAPI() api.UserSentiment {
	return api.UserSentiment{
		AssetID:       s.AssetID,
		AccountName:   s.AccountName,
		AssetType:     s.AssetType,
		SentimentType: s.SentimentType,
		Timestamp:     s.Timestamp,
	}
}

// AssetSentiment joins an asset with one account's reaction to it. Sentiment
// is SentimentUnspecified when the account never reacted.
type AssetSentiment struct {
	Asset     Asset
	Sentiment api.SentimentType
}
