package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apolyakov/reelmark/internal/client/models"
	"github.com/apolyakov/reelmark/internal/client/storage"
	"github.com/apolyakov/reelmark/internal/dbx"
)

// SQLiteRepository implements Repository over the local store and reports
// mutations to the notifier so live queries re-run.
type SQLiteRepository struct {
	db       *sql.DB
	notifier *storage.Notifier
	now      func() int64
}

func NewSQLiteRepository(db *sql.DB, notifier *storage.Notifier) *SQLiteRepository {
	return &SQLiteRepository{db: db, notifier: notifier, now: func() int64 { return time.Now().UnixMilli() }}
}

func (r *SQLiteRepository) Add(ctx context.Context, name string) error {
	query := `INSERT OR IGNORE INTO accounts (name, timestamp, is_current, is_pending) VALUES (?, ?, 0, 1)`
	res, err := r.db.ExecContext(ctx, query, name, r.now())
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		r.notifier.Invalidate(storage.TableAccounts)
	}
	return nil
}

func (r *SQLiteRepository) GetAlphabetized(ctx context.Context) ([]models.Account, error) {
	query := `SELECT name, timestamp, is_current, is_pending FROM accounts ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select accounts: %w", err)
	}
	defer rows.Close()

	var result []models.Account
	for rows.Next() {
		var item models.Account
		if err := rows.Scan(&item.Name, &item.Timestamp, &item.IsCurrent, &item.IsPending); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetCurrent(ctx context.Context) (*models.Account, error) {
	query := `SELECT name, timestamp, is_current, is_pending FROM accounts WHERE is_current = 1`
	row := r.db.QueryRowContext(ctx, query)

	a := &models.Account{}
	if err := row.Scan(&a.Name, &a.Timestamp, &a.IsCurrent, &a.IsPending); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select current account: %w", err)
	}
	return a, nil
}

// SetIsCurrent flips the current flag on the named account. Promoting an
// account also clears the flag on whichever account held it, in the same
// transaction, so at most one row is current. A reference miss mutates
// nothing and reports false.
func (r *SQLiteRepository) SetIsCurrent(ctx context.Context, name string, value bool) (bool, error) {
	var affected int64
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, `UPDATE accounts SET is_current = ? WHERE name = ?`, value, name)
		if err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 || !value {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `UPDATE accounts SET is_current = 0 WHERE is_current = 1 AND name <> ?`, name); err != nil {
			return fmt.Errorf("failed to demote previous account: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if affected > 0 {
		r.notifier.Invalidate(storage.TableAccounts)
	}
	return affected > 0, nil
}

func (r *SQLiteRepository) GetAllPending(ctx context.Context) ([]models.Account, error) {
	query := `SELECT name, timestamp, is_current, is_pending FROM accounts WHERE is_pending = 1`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending accounts: %w", err)
	}
	defer rows.Close()

	var pending []models.Account
	for rows.Next() {
		var item models.Account
		if err := rows.Scan(&item.Name, &item.Timestamp, &item.IsCurrent, &item.IsPending); err != nil {
			return nil, err
		}
		pending = append(pending, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pending, nil
}

func (r *SQLiteRepository) ClearPending(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	query := `UPDATE accounts SET is_pending = 0 WHERE name IN (` + placeholders + `)`
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear pending accounts: %w", err)
	}
	r.notifier.Invalidate(storage.TableAccounts)
	return nil
}
