package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
)

// BudgetService handles budget business logic. Spent and remaining are always
// recomputed from the transaction set; nothing here stores derived figures.
type BudgetService struct {
	storage  *storage.Storage
	operator actionProcessor
	now      func() time.Time
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(store *storage.Storage, op actionProcessor) *BudgetService {
	return &BudgetService{storage: store, operator: op, now: time.Now}
}

// StatusReport is the current-period view over all budgets.
type StatusReport struct {
	Statuses    []ledger.Status
	SafeToSpend decimal.Decimal
	HasOverall  bool
}

// Summary condenses the status report into dashboard counters.
type Summary struct {
	TotalBudgets   int
	ActiveBudgets  int
	InWarning      int
	TotalBudgeted  decimal.Decimal
	TotalSpent     decimal.Decimal
	TotalRemaining decimal.Decimal
	SafeToSpend    decimal.Decimal
	HasOverall     bool
}

// GetBudgetStatus recomputes every budget's current period figures.
func (s *BudgetService) GetBudgetStatus(ctx context.Context) (*StatusReport, error) {
	budgets, err := s.storage.Budgets.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return &StatusReport{}, nil
	}

	now := s.now()

	// One range fetch covering every budget's current window.
	var from, to time.Time
	for i, b := range budgets {
		w := b.Period.CurrentWindow(b.StartDate, now)
		if i == 0 || w.Start.Before(from) {
			from = w.Start
		}
		if i == 0 || w.End.After(to) {
			to = w.End
		}
	}
	transactions, err := s.storage.Transactions.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	statuses := ledger.ComputeStatuses(budgets, transactions, now)
	safe, hasOverall := ledger.SafeToSpend(statuses)
	return &StatusReport{
		Statuses:    statuses,
		SafeToSpend: safe,
		HasOverall:  hasOverall,
	}, nil
}

// GetBudgetSummary aggregates the status report across active budgets.
func (s *BudgetService) GetBudgetSummary(ctx context.Context) (*Summary, error) {
	report, err := s.GetBudgetStatus(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalBudgets: len(report.Statuses),
		SafeToSpend:  report.SafeToSpend,
		HasOverall:   report.HasOverall,
	}
	for _, status := range report.Statuses {
		if !status.IsActive {
			continue
		}
		summary.ActiveBudgets++
		if status.ThresholdCrossed {
			summary.InWarning++
		}
		summary.TotalBudgeted = summary.TotalBudgeted.Add(status.Budget.Amount)
		summary.TotalSpent = summary.TotalSpent.Add(status.Spent)
		summary.TotalRemaining = summary.TotalRemaining.Add(status.Remaining)
	}
	return summary, nil
}

// GetBudget retrieves a budget definition by ID.
func (s *BudgetService) GetBudget(ctx context.Context, id uuid.UUID) (*ledger.Budget, error) {
	return s.storage.Budgets.FindByID(ctx, id)
}

// CreateBudget stores a new budget definition and returns its ID.
func (s *BudgetService) CreateBudget(ctx context.Context, b ledger.Budget) (uuid.UUID, error) {
	action := &actions.CreateBudget{Budget: b}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

// UpdateBudget changes a budget definition.
func (s *BudgetService) UpdateBudget(ctx context.Context, id uuid.UUID, upd *budget.Update) error {
	return s.operator.Process(ctx, &actions.UpdateBudget{ID: id, Update: upd})
}

// DeleteBudget removes a budget definition.
func (s *BudgetService) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteBudget{ID: id})
}
