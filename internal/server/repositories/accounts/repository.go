package accounts

import (
	"context"

	"github.com/apolyakov/reelmark/internal/api"
)

// Repository describes the authoritative account store.
type Repository interface {
	// GetAll returns every account sorted ascending by name.
	GetAll(ctx context.Context) ([]api.Account, error)

	// Exists reports whether an account with the given name is stored.
	Exists(ctx context.Context, name string) (bool, error)

	// UpsertBatch stores the accounts, replacing attributes of existing names.
	UpsertBatch(ctx context.Context, items []api.Account) error
}
