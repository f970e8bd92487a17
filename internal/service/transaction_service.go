package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

const defaultLimit = 20

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator actionProcessor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op actionProcessor) *TransactionService {
	return &TransactionService{storage: store, operator: op}
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// TransactionFilter narrows a listing by category and date range.
type TransactionFilter struct {
	CategoryID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// GetTransaction retrieves a transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*ledger.Transaction, error) {
	return s.storage.Transactions.FindByID(ctx, id)
}

// ListTransactions returns a page of transactions using cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, filter *TransactionFilter, cursor *TransactionCursor) ([]ledger.Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	storageFilter := &transaction.Filter{
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}
	if filter != nil {
		storageFilter.CategoryID = filter.CategoryID
		storageFilter.From = filter.From
		storageFilter.To = filter.To
	}

	rows, err := s.storage.Transactions.List(ctx, storageFilter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	return rows, nextCursor, nil
}

// SetCategory manually overrides a transaction's category. The confidence is
// cleared so later reads can tell human assignments from keyword matches.
func (s *TransactionService) SetCategory(ctx context.Context, id string, categoryID uuid.UUID) error {
	return s.operator.Process(ctx, &actions.SetTransactionCategory{ID: id, CategoryID: categoryID})
}

// DeleteTransaction removes a transaction. Budget figures being derived, the
// next status read reflects the removal automatically.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	return s.operator.Process(ctx, &actions.DeleteTransaction{ID: id})
}
