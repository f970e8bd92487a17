package transaction

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Row mirrors the transactions table; scan.StructMapper fills it by db tag.
type Row struct {
	ID                  string          `db:"id"`
	Date                time.Time       `db:"date"`
	Amount              decimal.Decimal `db:"amount"`
	Description         string          `db:"description"`
	CounterpartyAccount string          `db:"counterparty_account"`
	CounterpartyName    string          `db:"counterparty_name"`
	CategoryID          uuid.NullUUID   `db:"category_id"`
	CategoryConfidence  sql.NullFloat64 `db:"category_confidence"`
	CreatedAt           time.Time       `db:"created_at"`
}

func rowToTransaction(row Row) ledger.Transaction {
	t := ledger.Transaction{
		ID:                  row.ID,
		Date:                row.Date,
		Amount:              row.Amount,
		Description:         row.Description,
		CounterpartyAccount: row.CounterpartyAccount,
		CounterpartyName:    row.CounterpartyName,
		CategoryID:          row.CategoryID,
		CreatedAt:           row.CreatedAt,
	}
	if row.CategoryConfidence.Valid {
		confidence := row.CategoryConfidence.Float64
		t.CategoryConfidence = &confidence
	}
	return t
}

// Filter specifies filters for listing transactions.
type Filter struct {
	CategoryID      *uuid.UUID
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// Table defines the read-side storage operations for transactions.
// This abstraction allows swapping the implementation without changing callers.
type Table interface {
	FindByID(ctx context.Context, id string) (*ledger.Transaction, error)
	List(ctx context.Context, filter *Filter) ([]ledger.Transaction, error)
	ListRange(ctx context.Context, from, to time.Time) ([]ledger.Transaction, error)
	ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
}
