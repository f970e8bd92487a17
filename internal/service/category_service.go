package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/category"
)

// CategoryService handles category business logic.
type CategoryService struct {
	storage  *storage.Storage
	operator actionProcessor
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store *storage.Storage, op actionProcessor) *CategoryService {
	return &CategoryService{storage: store, operator: op}
}

// ListCategories returns all categories in matching order.
func (s *CategoryService) ListCategories(ctx context.Context) ([]ledger.Category, error) {
	return s.storage.Categories.List(ctx)
}

// GetCategory retrieves a category by ID.
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*ledger.Category, error) {
	return s.storage.Categories.FindByID(ctx, id)
}

// CreateCategory stores a new user category and returns its ID.
func (s *CategoryService) CreateCategory(ctx context.Context, create *category.Create) (uuid.UUID, error) {
	action := &actions.CreateCategory{Create: create}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

// UpdateCategory changes a category's definition.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, upd *category.Update) error {
	return s.operator.Process(ctx, &actions.UpdateCategory{ID: id, Update: upd})
}

// DeleteCategory removes a category. Deleting the fallback category is
// refused.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteCategory{ID: id})
}
