package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/analysis"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// AnalysisService computes spending statistics. Read-only by construction:
// it holds no operator.
type AnalysisService struct {
	storage *storage.Storage
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(store *storage.Storage) *AnalysisService {
	return &AnalysisService{storage: store}
}

// SpendingReport aggregates the window [from, to). The fetch extends one
// window length back so the trend baseline comes from the same query.
func (s *AnalysisService) SpendingReport(ctx context.Context, from, to time.Time, tolerance decimal.Decimal) (*analysis.Report, error) {
	if !to.After(from) {
		return nil, &ledger.ValidationError{Field: "to", Reason: "must be after from"}
	}

	baselineStart := from.Add(-to.Sub(from))
	transactions, err := s.storage.Transactions.ListRange(ctx, baselineStart, to)
	if err != nil {
		return nil, err
	}
	categories, err := s.storage.Categories.List(ctx)
	if err != nil {
		return nil, err
	}

	report := analysis.Aggregate(transactions, categories, analysis.Options{
		Window:    ledger.Window{Start: from, End: to},
		Tolerance: tolerance,
	})
	return &report, nil
}
