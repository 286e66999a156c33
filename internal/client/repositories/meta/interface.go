package meta

import "context"

// Repository is a small key/value store for client-local metadata such as the
// installation id sent with every sync request.
type Repository interface {
	// Get returns the value for key, or common.ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// InstallID returns the stable installation id, generating and persisting
	// one on first use.
	InstallID(ctx context.Context) (string, error)
}
