package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the derived state of one budget for its current period instance.
// Remaining is always Amount - Spent; it is never persisted.
type Status struct {
	Budget           Budget
	Window           Window
	IsActive         bool
	Spent            decimal.Decimal
	Remaining        decimal.Decimal
	Utilization      decimal.Decimal // Spent / Amount
	ThresholdCrossed bool
}

// matches reports whether a transaction attributes to this budget. An overall
// budget matches every transaction, including uncategorized ones.
func (b Budget) matches(t Transaction) bool {
	if b.IsOverall() {
		return true
	}
	return t.CategoryID.Valid && t.CategoryID.UUID == b.CategoryID.UUID
}

// Spent sums abs(amount) over debit transactions attributed to the budget
// whose date falls in the window. Income never counts as spend.
func (b Budget) Spent(transactions []Transaction, w Window) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if !t.IsDebit() || !b.matches(t) || !w.Contains(midnightUTC(t.Date)) {
			continue
		}
		total = total.Add(t.Amount.Abs())
	}
	return total
}

// ComputeStatus derives the budget's state at now from the transaction set.
// The computation is stateless: threshold crossing is recomputed from scratch
// on every call, so repeated evaluation is idempotent.
func ComputeStatus(b Budget, transactions []Transaction, now time.Time) Status {
	w := b.Period.CurrentWindow(b.StartDate, now)

	if b.EndDate != nil && !w.Start.Before(midnightUTC(*b.EndDate)) {
		return Status{
			Budget:    b,
			Window:    w,
			IsActive:  false,
			Spent:     decimal.Zero,
			Remaining: decimal.Zero,
		}
	}

	spent := b.Spent(transactions, w)
	status := Status{
		Budget:    b,
		Window:    w,
		IsActive:  true,
		Spent:     spent,
		Remaining: b.Amount.Sub(spent),
	}
	if b.Amount.IsPositive() {
		status.Utilization = spent.Div(b.Amount)
	}
	if b.NotificationThreshold.Valid && status.Utilization.GreaterThanOrEqual(b.NotificationThreshold.Decimal) {
		status.ThresholdCrossed = true
	}
	return status
}

// ComputeStatuses derives the state of every budget against one transaction set.
func ComputeStatuses(budgets []Budget, transactions []Transaction, now time.Time) []Status {
	statuses := make([]Status, len(budgets))
	for i, b := range budgets {
		statuses[i] = ComputeStatus(b, transactions, now)
	}
	return statuses
}

// SafeToSpend is the overall budget's amount minus spend across all active
// category budgets, floored at zero. The second return is false when no
// active overall budget exists.
func SafeToSpend(statuses []Status) (decimal.Decimal, bool) {
	var overall *Status
	categorySpent := decimal.Zero
	for i := range statuses {
		s := &statuses[i]
		if !s.IsActive {
			continue
		}
		if s.Budget.IsOverall() {
			if overall == nil {
				overall = s
			}
			continue
		}
		categorySpent = categorySpent.Add(s.Spent)
	}
	if overall == nil {
		return decimal.Zero, false
	}
	safe := overall.Budget.Amount.Sub(categorySpent)
	if safe.IsNegative() {
		safe = decimal.Zero
	}
	return safe, true
}
