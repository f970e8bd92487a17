package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteTransaction removes one transaction from the ledger. Budget figures
// are derived on read, so no recomputation is stored here.
type DeleteTransaction struct {
	ID string
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Transaction.Delete(ctx, d.ID)
}

// SetTransactionCategory overrides a transaction's category by hand. The
// confidence is cleared, marking the assignment as manual.
type SetTransactionCategory struct {
	ID         string
	CategoryID uuid.UUID
}

func (s *SetTransactionCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Category.FindByID(ctx, s.CategoryID); err != nil {
		return err
	}
	return writer.Transaction.SetCategory(ctx, s.ID, s.CategoryID, nil)
}
