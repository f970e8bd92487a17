package ledger

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TypeDebit  TransactionType = "debit"
	TypeCredit TransactionType = "credit"
)

// Transaction is the ledger's unit of truth. ID, Date and Amount are
// immutable after creation; only the category assignment may change.
type Transaction struct {
	ID                  string
	Date                time.Time
	Amount              decimal.Decimal // signed; negative = debit, positive = credit
	Description         string
	CounterpartyAccount string
	CounterpartyName    string
	CategoryID          uuid.NullUUID
	CategoryConfidence  *float64 // nil when the assignment was manual
	CreatedAt           time.Time
}

// Type derives the direction from the amount sign.
func (t Transaction) Type() TransactionType {
	if t.Amount.IsNegative() {
		return TypeDebit
	}
	return TypeCredit
}

// IsDebit reports whether the transaction is an expense.
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// Category is a match rule target. Categories form a forest via ParentID.
type Category struct {
	ID          uuid.UUID
	Name        string
	ParentID    uuid.NullUUID
	Keywords    []string // case-insensitive substrings matched against description and counterparty name
	BudgetShare decimal.NullDecimal
	IsFallback  bool
	IsSystem    bool
	SortOrder   int
}

// Period is a budget period kind.
type Period string

const (
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// ParsePeriod validates a period string.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown budget period %q", s)
}

// Budget is a period allowance for one category, or for all spending when
// CategoryID is not set. Spent and remaining are derived on read, never stored.
type Budget struct {
	ID                    uuid.UUID
	Name                  string
	CategoryID            uuid.NullUUID // invalid = overall budget
	Amount                decimal.Decimal
	Period                Period
	StartDate             time.Time
	EndDate               *time.Time
	NotificationThreshold decimal.NullDecimal // fraction in (0, 1]
	CreatedAt             time.Time
}

// IsOverall reports whether the budget covers all spending.
func (b Budget) IsOverall() bool {
	return !b.CategoryID.Valid
}
