// Package repository exposes per-entity façades to the UI layer: reads come
// back as live queries (optionally network-bound), writes are dispatched
// through the injected executor so callers never block on the store.
package repository

import (
	"context"

	"github.com/apolyakov/reelmark/internal/client/executor"
	"github.com/apolyakov/reelmark/internal/client/livedata"
	"github.com/apolyakov/reelmark/internal/client/models"
	"github.com/apolyakov/reelmark/internal/client/repositories/accounts"
	"github.com/apolyakov/reelmark/internal/client/storage"
	"github.com/apolyakov/reelmark/internal/logging"
)

type AccountRepository struct {
	accounts accounts.Repository
	notifier *storage.Notifier
	exec     *executor.Executor
	log      logging.Logger
}

func NewAccountRepository(repo accounts.Repository, notifier *storage.Notifier, exec *executor.Executor, log logging.Logger) *AccountRepository {
	return &AccountRepository{accounts: repo, notifier: notifier, exec: exec, log: log.With("module", "account_repository")}
}

// Alphabetized is a live query over all accounts sorted by name.
func (r *AccountRepository) Alphabetized(ctx context.Context) *livedata.LiveData[[]models.Account] {
	return livedata.NewQuery(ctx, r.notifier, r.log, func(ctx context.Context) ([]models.Account, error) {
		return r.accounts.GetAlphabetized(ctx)
	}, storage.TableAccounts)
}

// Current is a live query over the signed-in account; nil when none.
func (r *AccountRepository) Current(ctx context.Context) *livedata.LiveData[*models.Account] {
	return livedata.NewQuery(ctx, r.notifier, r.log, func(ctx context.Context) (*models.Account, error) {
		return r.accounts.GetCurrent(ctx)
	}, storage.TableAccounts)
}

// SignUp creates the account locally; the sync worker pushes it later.
func (r *AccountRepository) SignUp(ctx context.Context, name string) {
	r.exec.Execute(ctx, func(ctx context.Context) error {
		return r.accounts.Add(ctx, name)
	})
}

// SetCurrent flips the signed-in flag. The result resolves to false when the
// name references no local account.
func (r *AccountRepository) SetCurrent(ctx context.Context, name string, value bool) *livedata.LiveData[bool] {
	result := livedata.New[bool]()
	r.exec.Execute(ctx, func(ctx context.Context) error {
		ok, err := r.accounts.SetIsCurrent(ctx, name, value)
		result.Set(ok && err == nil)
		return err
	})
	return result
}
