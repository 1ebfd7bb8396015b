package usecase

import (
	"context"
	"fmt"

	"github.com/foliolabs/folio/internal/domain/repository"
	"github.com/foliolabs/folio/internal/logging"
)

// PurgeViewsUseCase clears stored view positions.
type PurgeViewsUseCase struct {
	states repository.ViewStateRepository
}

func NewPurgeViewsUseCase(states repository.ViewStateRepository) *PurgeViewsUseCase {
	return &PurgeViewsUseCase{states: states}
}

// One removes the stored view for a single fingerprint.
func (uc *PurgeViewsUseCase) One(ctx context.Context, fingerprint string) error {
	if fingerprint == "" {
		return fmt.Errorf("fingerprint is required")
	}
	if err := uc.states.Delete(ctx, fingerprint); err != nil {
		return fmt.Errorf("purge view state %s: %w", fingerprint, err)
	}
	return nil
}

// All removes every stored view and returns the number removed.
func (uc *PurgeViewsUseCase) All(ctx context.Context) (int64, error) {
	removed, err := uc.states.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge view states: %w", err)
	}
	logging.FromContext(ctx).Info().Int64("removed", removed).Msg("purged stored view states")
	return removed, nil
}
