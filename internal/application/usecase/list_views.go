package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/foliolabs/folio/internal/domain/entity"
	"github.com/foliolabs/folio/internal/domain/repository"
)

// ListViewsUseCase enumerates stored view positions for inspection.
type ListViewsUseCase struct {
	states repository.ViewStateRepository
}

func NewListViewsUseCase(states repository.ViewStateRepository) *ListViewsUseCase {
	return &ListViewsUseCase{states: states}
}

// Execute returns all stored views, most recently updated first.
func (uc *ListViewsUseCase) Execute(ctx context.Context) ([]*entity.ViewState, error) {
	states, err := uc.states.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list view states: %w", err)
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].UpdatedAt.After(states[j].UpdatedAt)
	})
	return states, nil
}
