package accounts

import (
	"context"
	"fmt"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]api.Account, error) {
	query := `SELECT name, ts, is_current FROM accounts ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []api.Account
	for rows.Next() {
		var a api.Account
		if err := rows.Scan(&a.Name, &a.Timestamp, &a.IsCurrent); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE name = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) UpsertBatch(ctx context.Context, items []api.Account) error {
	query := `INSERT INTO accounts (name, ts, is_current)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET ts = EXCLUDED.ts, is_current = EXCLUDED.is_current`

	for _, a := range items {
		if _, err := r.db.ExecContext(ctx, query, a.Name, a.Timestamp, a.IsCurrent); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}
