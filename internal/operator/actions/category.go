package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/category"
)

// CreateCategory stores a new user category.
type CreateCategory struct {
	Create *category.Create

	// Set by Perform.
	ID uuid.UUID
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Category.Insert(ctx, c.Create)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// UpdateCategory changes a category's definition.
type UpdateCategory struct {
	ID     uuid.UUID
	Update *category.Update
}

func (u *UpdateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Category.Update(ctx, u.ID, u.Update)
}

// DeleteCategory removes a category. The fallback category is protected: the
// categorizer needs it to keep every transaction attributable.
type DeleteCategory struct {
	ID uuid.UUID
}

func (d *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Category.FindByID(ctx, d.ID)
	if err != nil {
		return err
	}
	if existing.IsFallback {
		return &storage.ConsistencyError{Reason: "the fallback category cannot be deleted"}
	}
	return writer.Category.Delete(ctx, d.ID)
}
