package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// actionProcessor hands an action to the operator queue and waits for it.
// Satisfied by operator.OperatorDelegator; a narrow interface so tests can
// substitute a double.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Import      *ImportService
	Budget      *BudgetService
	Analysis    *AnalysisService
	Transaction *TransactionService
	Category    *CategoryService
}

// NewService creates a new Service with the given storage and operator.
func NewService(store *storage.Storage, op *operator.OperatorDelegator, logger *logrus.Logger) *Service {
	return &Service{
		Import:      NewImportService(store, op, logger),
		Budget:      NewBudgetService(store, op),
		Analysis:    NewAnalysisService(store),
		Transaction: NewTransactionService(store, op),
		Category:    NewCategoryService(store, op),
	}
}
