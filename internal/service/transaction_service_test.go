package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

func newTransactionTestService(txTable *mockTransactionTable, proc *mockProcessor) *TransactionService {
	store := &storage.Storage{Transactions: txTable}
	return NewTransactionService(store, proc)
}

func makeTransactions(n int, createdAt time.Time) []ledger.Transaction {
	rows := make([]ledger.Transaction, n)
	for i := range rows {
		rows[i] = ledger.Transaction{
			ID:          uuid.Must(uuid.NewV4()).String(),
			Date:        time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("-12.50"),
			Description: "Albert Heijn",
			CreatedAt:   createdAt,
		}
	}
	return rows
}

func TestListTransactions_SinglePage(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	rows := makeTransactions(2, now)

	txTable := new(mockTransactionTable)
	txTable.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.Filter) bool {
		return f.Limit == defaultLimit && f.Offset == 0 && f.MaxCreationTime == nil
	})).Return(rows, nil)

	svc := newTransactionTestService(txTable, nil)
	result, nextCursor, err := svc.ListTransactions(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Nil(t, nextCursor)
}

func TestListTransactions_MultiplePages(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	rows := makeTransactions(defaultLimit+1, now)

	txTable := new(mockTransactionTable)
	txTable.On("List", mock.Anything, mock.Anything).Return(rows, nil)

	svc := newTransactionTestService(txTable, nil)
	result, nextCursor, err := svc.ListTransactions(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Len(t, result, defaultLimit)
	require.NotNil(t, nextCursor)
	assert.Equal(t, defaultLimit, nextCursor.Position)
	assert.Equal(t, defaultLimit, nextCursor.Limit)
	assert.Equal(t, now, nextCursor.MaxCreationTime, "creation bound locked in from the first page")
}

func TestListTransactions_CursorCarriesThrough(t *testing.T) {
	maxTime := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	cursor := &TransactionCursor{Position: 40, Limit: 10, MaxCreationTime: maxTime}

	txTable := new(mockTransactionTable)
	txTable.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.Filter) bool {
		return f.Limit == 10 && f.Offset == 40 &&
			f.MaxCreationTime != nil && f.MaxCreationTime.Equal(maxTime)
	})).Return(makeTransactions(11, maxTime.Add(-time.Hour)), nil)

	svc := newTransactionTestService(txTable, nil)
	result, nextCursor, err := svc.ListTransactions(context.Background(), nil, cursor)

	require.NoError(t, err)
	assert.Len(t, result, 10)
	require.NotNil(t, nextCursor)
	assert.Equal(t, 50, nextCursor.Position)
	assert.Equal(t, maxTime, nextCursor.MaxCreationTime, "bound stays fixed across pages")
}

func TestListTransactions_FilterForwarded(t *testing.T) {
	categoryID := uuid.Must(uuid.NewV4())
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	txTable := new(mockTransactionTable)
	txTable.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.Filter) bool {
		return f.CategoryID != nil && *f.CategoryID == categoryID &&
			f.From != nil && f.From.Equal(from) &&
			f.To != nil && f.To.Equal(to)
	})).Return(makeTransactions(1, to), nil)

	svc := newTransactionTestService(txTable, nil)
	_, _, err := svc.ListTransactions(context.Background(), &TransactionFilter{
		CategoryID: &categoryID,
		From:       &from,
		To:         &to,
	}, nil)

	require.NoError(t, err)
	txTable.AssertExpectations(t)
}

func TestListTransactions_Empty(t *testing.T) {
	txTable := new(mockTransactionTable)
	txTable.On("List", mock.Anything, mock.Anything).Return([]ledger.Transaction{}, nil)

	svc := newTransactionTestService(txTable, nil)
	result, nextCursor, err := svc.ListTransactions(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Nil(t, nextCursor)
}

func TestSetCategory_ClearsConfidenceViaAction(t *testing.T) {
	categoryID := uuid.Must(uuid.NewV4())

	proc := new(mockProcessor)
	proc.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.SetTransactionCategory) bool {
		return a.ID == "tx-1" && a.CategoryID == categoryID
	})).Return(nil)

	svc := newTransactionTestService(new(mockTransactionTable), proc)
	assert.NoError(t, svc.SetCategory(context.Background(), "tx-1", categoryID))
	proc.AssertExpectations(t)
}

func TestDeleteTransaction(t *testing.T) {
	proc := new(mockProcessor)
	proc.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.DeleteTransaction) bool {
		return a.ID == "tx-9"
	})).Return(nil)

	svc := newTransactionTestService(new(mockTransactionTable), proc)
	assert.NoError(t, svc.DeleteTransaction(context.Background(), "tx-9"))
	proc.AssertExpectations(t)
}
