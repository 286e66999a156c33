package repomanager

import (
	"context"
	"database/sql"

	"github.com/apolyakov/reelmark/internal/dbx"
	"github.com/apolyakov/reelmark/internal/server/migrations"
	"github.com/apolyakov/reelmark/internal/server/repositories/accounts"
	"github.com/apolyakov/reelmark/internal/server/repositories/assets"
	"github.com/apolyakov/reelmark/internal/server/repositories/sentiments"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Assets(db dbx.DBTX) assets.Repository {
	return assets.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Sentiments(db dbx.DBTX) sentiments.Repository {
	return sentiments.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
