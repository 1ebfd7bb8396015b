// Package usecase holds the application-level operations composing domain
// entities with repositories and ports.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/foliolabs/folio/internal/domain/entity"
	"github.com/foliolabs/folio/internal/domain/repository"
	"github.com/foliolabs/folio/internal/logging"
)

// RememberViewUseCase persists and restores per-document view positions,
// keyed by document fingerprint.
type RememberViewUseCase struct {
	states repository.ViewStateRepository
}

func NewRememberViewUseCase(states repository.ViewStateRepository) *RememberViewUseCase {
	return &RememberViewUseCase{states: states}
}

// Restore fetches the stored view for a fingerprint. Returns nil when
// nothing is stored or the lookup fails; a missing position only costs
// the user their place, never the document.
func (uc *RememberViewUseCase) Restore(ctx context.Context, fingerprint string) *entity.ViewState {
	if fingerprint == "" {
		return nil
	}
	state, err := uc.states.Get(ctx, fingerprint)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).
			Str("fingerprint", fingerprint).
			Msg("restoring view state failed")
		return nil
	}
	return state
}

// Save validates and persists a view position.
func (uc *RememberViewUseCase) Save(ctx context.Context, state *entity.ViewState) error {
	if state.Fingerprint == "" {
		return fmt.Errorf("view state without fingerprint")
	}
	if state.Page < 1 {
		return fmt.Errorf("view state for %s: invalid page %d", state.Fingerprint, state.Page)
	}
	state.UpdatedAt = time.Now()
	if err := uc.states.Set(ctx, state); err != nil {
		return fmt.Errorf("persist view state: %w", err)
	}
	return nil
}

// Forget removes the stored view for one fingerprint.
func (uc *RememberViewUseCase) Forget(ctx context.Context, fingerprint string) error {
	if err := uc.states.Delete(ctx, fingerprint); err != nil {
		return fmt.Errorf("delete view state: %w", err)
	}
	return nil
}
