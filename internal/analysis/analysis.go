// Package analysis computes read-side statistics over the transaction ledger.
// Nothing in here writes; callers feed it transactions and get a report back.
package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Trend classifies the expense movement of a window against the window of
// equal length immediately before it.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// DefaultTolerance is the relative band within which expense movement still
// counts as stable. Keeps the trend from flapping on noise.
var DefaultTolerance = decimal.RequireFromString("0.03")

const defaultTopN = 10

// CategorySpend is the expense attributed to one category within the window.
type CategorySpend struct {
	CategoryID       string          `json:"categoryId"`
	Name             string          `json:"name"`
	Amount           decimal.Decimal `json:"amount"`
	Percentage       decimal.Decimal `json:"percentage"`
	TransactionCount int             `json:"transactionCount"`
}

// Report is the dashboard view of one window of ledger activity.
type Report struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpense  decimal.Decimal `json:"totalExpense"`
	Net           decimal.Decimal `json:"net"`
	TopCategories []CategorySpend `json:"topCategories"`
	Trend         Trend           `json:"trend"`
}

// Options bound one aggregation run. Zero values fall back to the defaults:
// top 10 categories, 3% stable band.
type Options struct {
	Window    ledger.Window
	TopN      int
	Tolerance decimal.Decimal
}

// Aggregate computes totals, the top spending categories and the expense trend
// for the window in opts. The transaction slice may span any range; rows
// outside the window only contribute to the preceding-window trend baseline.
func Aggregate(transactions []ledger.Transaction, categories []ledger.Category, opts Options) Report {
	topN := opts.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	tolerance := opts.Tolerance
	if tolerance.IsZero() {
		tolerance = DefaultTolerance
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID.String()] = c.Name
	}

	var (
		income  decimal.Decimal
		expense decimal.Decimal
		byCat   = make(map[string]*CategorySpend)
	)
	for _, t := range transactions {
		if !opts.Window.Contains(t.Date) {
			continue
		}
		if !t.IsDebit() {
			income = income.Add(t.Amount)
			continue
		}
		spend := t.Amount.Abs()
		expense = expense.Add(spend)

		key := ""
		if t.CategoryID.Valid {
			key = t.CategoryID.UUID.String()
		}
		entry, ok := byCat[key]
		if !ok {
			name, known := names[key]
			if !known {
				name = "Onbekend"
			}
			entry = &CategorySpend{CategoryID: key, Name: name}
			byCat[key] = entry
		}
		entry.Amount = entry.Amount.Add(spend)
		entry.TransactionCount++
	}

	top := make([]CategorySpend, 0, len(byCat))
	for _, entry := range byCat {
		if expense.IsPositive() {
			entry.Percentage = entry.Amount.Div(expense).Mul(decimal.NewFromInt(100)).Round(2)
		}
		top = append(top, *entry)
	}
	sort.Slice(top, func(i, j int) bool {
		if !top[i].Amount.Equal(top[j].Amount) {
			return top[i].Amount.GreaterThan(top[j].Amount)
		}
		if top[i].Name != top[j].Name {
			return top[i].Name < top[j].Name
		}
		return top[i].CategoryID < top[j].CategoryID
	})
	if len(top) > topN {
		top = top[:topN]
	}

	previous := expenseIn(transactions, precedingWindow(opts.Window))

	return Report{
		TotalIncome:   income,
		TotalExpense:  expense,
		Net:           income.Sub(expense),
		TopCategories: top,
		Trend:         classifyTrend(expense, previous, tolerance),
	}
}

// precedingWindow is the half-open interval of equal length ending where the
// given window starts.
func precedingWindow(w ledger.Window) ledger.Window {
	length := w.End.Sub(w.Start)
	return ledger.Window{Start: w.Start.Add(-length), End: w.Start}
}

func expenseIn(transactions []ledger.Transaction, w ledger.Window) decimal.Decimal {
	var total decimal.Decimal
	for _, t := range transactions {
		if t.IsDebit() && w.Contains(t.Date) {
			total = total.Add(t.Amount.Abs())
		}
	}
	return total
}

func classifyTrend(current, previous, tolerance decimal.Decimal) Trend {
	if previous.IsZero() {
		if current.IsZero() {
			return TrendStable
		}
		return TrendIncreasing
	}
	change := current.Sub(previous).Div(previous)
	if change.Abs().LessThanOrEqual(tolerance) {
		return TrendStable
	}
	if change.IsPositive() {
		return TrendIncreasing
	}
	return TrendDecreasing
}
