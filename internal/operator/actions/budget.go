package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
)

// CreateBudget stores a new budget definition.
type CreateBudget struct {
	Budget ledger.Budget

	// Set by Perform.
	ID uuid.UUID
}

func (c *CreateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := c.Budget.Validate(); err != nil {
		return err
	}
	id, err := writer.Budget.Insert(ctx, c.Budget)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// UpdateBudget changes a budget definition. Spent and remaining are derived
// on read, so the update re-validates the merged definition and writes only
// the definition fields.
type UpdateBudget struct {
	ID     uuid.UUID
	Update *budget.Update
}

func (u *UpdateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	current, err := writer.Budget.FindByID(ctx, u.ID)
	if err != nil {
		return err
	}
	if err := mergedBudget(*current, u.Update).Validate(); err != nil {
		return err
	}
	return writer.Budget.Update(ctx, u.ID, u.Update)
}

// mergedBudget applies the set fields of upd onto b, for validation before
// the write happens.
func mergedBudget(b ledger.Budget, upd *budget.Update) ledger.Budget {
	if upd.Name.IsValue() {
		b.Name = upd.Name.MustGet()
	}
	if upd.CategoryID.IsValue() {
		b.CategoryID = upd.CategoryID.MustGet()
	}
	if upd.Amount.IsValue() {
		b.Amount = upd.Amount.MustGet()
	}
	if upd.Period.IsValue() {
		b.Period = upd.Period.MustGet()
	}
	if upd.StartDate.IsValue() {
		b.StartDate = upd.StartDate.MustGet()
	}
	if upd.EndDate.IsValue() {
		b.EndDate = upd.EndDate.MustGet()
	}
	if upd.NotificationThreshold.IsValue() {
		b.NotificationThreshold = upd.NotificationThreshold.MustGet()
	}
	return b
}

// DeleteBudget removes a budget definition.
type DeleteBudget struct {
	ID uuid.UUID
}

func (d *DeleteBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Budget.Delete(ctx, d.ID)
}
