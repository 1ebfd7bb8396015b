package repository

import (
	"context"

	"github.com/foliolabs/folio/internal/domain/entity"
)

// ViewStateRepository persists per-document view state, keyed by the
// document's content fingerprint. Read failures are treated by callers as
// "use defaults" and are never fatal.
type ViewStateRepository interface {
	// Get retrieves the stored view state for a fingerprint.
	// Returns nil if nothing has been stored.
	Get(ctx context.Context, fingerprint string) (*entity.ViewState, error)

	// Set saves or updates the view state for a fingerprint.
	Set(ctx context.Context, state *entity.ViewState) error

	// Delete removes the stored view state for a fingerprint.
	Delete(ctx context.Context, fingerprint string) error

	// GetAll retrieves every stored view state, most recently updated first.
	GetAll(ctx context.Context) ([]*entity.ViewState, error)

	// DeleteAll removes every stored view state and returns the number
	// removed.
	DeleteAll(ctx context.Context) (int64, error)
}
