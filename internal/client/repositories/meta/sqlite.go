package meta

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apolyakov/reelmark/internal/common"
	"github.com/apolyakov/reelmark/internal/dbx"
	"github.com/google/uuid"
)

const installIDKey = "install_id"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	return get(ctx, r.db, key)
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	return set(ctx, r.db, key, value)
}

// InstallID runs the read-or-create inside a transaction so two callers can
// never mint different ids.
func (r *SQLiteRepository) InstallID(ctx context.Context) (string, error) {
	var id string
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		existing, err := get(ctx, tx, installIDKey)
		if err == nil {
			id = existing
			return nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		id = uuid.NewString()
		return set(ctx, tx, installIDKey, id)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func get(ctx context.Context, db dbx.DBTX, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to select meta key: %w", err)
	}
	return value, nil
}

func set(ctx context.Context, db dbx.DBTX, key, value string) error {
	query := `INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert meta key: %w", err)
	}
	return nil
}
