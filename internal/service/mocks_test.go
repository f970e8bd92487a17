package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type mockTransactionTable struct {
	mock.Mock
}

func (m *mockTransactionTable) FindByID(ctx context.Context, id string) (*ledger.Transaction, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*ledger.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, filter *transaction.Filter) ([]ledger.Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]ledger.Transaction)
	return rows, args.Error(1)
}

func (m *mockTransactionTable) ListRange(ctx context.Context, from, to time.Time) ([]ledger.Transaction, error) {
	args := m.Called(ctx, from, to)
	rows, _ := args.Get(0).([]ledger.Transaction)
	return rows, args.Error(1)
}

func (m *mockTransactionTable) ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	args := m.Called(ctx, ids)
	existing, _ := args.Get(0).(map[string]struct{})
	return existing, args.Error(1)
}

type mockCategoryTable struct {
	mock.Mock
}

func (m *mockCategoryTable) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*ledger.Category)
	return c, args.Error(1)
}

func (m *mockCategoryTable) List(ctx context.Context) ([]ledger.Category, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]ledger.Category)
	return rows, args.Error(1)
}

type mockBudgetTable struct {
	mock.Mock
}

func (m *mockBudgetTable) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Budget, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*ledger.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetTable) List(ctx context.Context) ([]ledger.Budget, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]ledger.Budget)
	return rows, args.Error(1)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}
