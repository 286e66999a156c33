package accounts

import (
	"context"

	"github.com/apolyakov/reelmark/internal/client/models"
)

// Repository describes the local store operations for Account rows.
type Repository interface {
	// Add inserts a new account by name; duplicates are silently ignored.
	Add(ctx context.Context, name string) error

	// GetAlphabetized returns all accounts sorted ascending by name.
	GetAlphabetized(ctx context.Context) ([]models.Account, error)

	// GetCurrent returns the account with is_current set, or nil if none.
	GetCurrent(ctx context.Context) (*models.Account, error)

	// SetIsCurrent flips the is_current flag on one account. It reports
	// whether a row was affected; false means the name references no row.
	SetIsCurrent(ctx context.Context, name string, value bool) (bool, error)

	// GetAllPending returns accounts not yet confirmed synced with the server.
	GetAllPending(ctx context.Context) ([]models.Account, error)

	// ClearPending clears the pending flag on the named accounts.
	ClearPending(ctx context.Context, names []string) error
}
