// Package repomanager groups the construction of the server's Postgres
// repositories and the application of schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/apolyakov/reelmark/internal/dbx"
	"github.com/apolyakov/reelmark/internal/server/repositories/accounts"
	"github.com/apolyakov/reelmark/internal/server/repositories/assets"
	"github.com/apolyakov/reelmark/internal/server/repositories/sentiments"
)

// RepositoryManager builds entity repositories over one database handle.
type RepositoryManager interface {
	Accounts(db dbx.DBTX) accounts.Repository
	Assets(db dbx.DBTX) assets.Repository
	Sentiments(db dbx.DBTX) sentiments.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
