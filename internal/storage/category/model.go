package category

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Row mirrors the categories table; scan.StructMapper fills it by db tag.
type Row struct {
	ID          uuid.UUID           `db:"id"`
	Name        string              `db:"name"`
	ParentID    uuid.NullUUID       `db:"parent_id"`
	Keywords    pq.StringArray      `db:"keywords"`
	BudgetShare decimal.NullDecimal `db:"budget_share"`
	IsFallback  bool                `db:"is_fallback"`
	IsSystem    bool                `db:"is_system"`
	SortOrder   int                 `db:"sort_order"`
	CreatedAt   time.Time           `db:"created_at"`
}

func rowToCategory(row Row) ledger.Category {
	return ledger.Category{
		ID:          row.ID,
		Name:        row.Name,
		ParentID:    row.ParentID,
		Keywords:    row.Keywords,
		BudgetShare: row.BudgetShare,
		IsFallback:  row.IsFallback,
		IsSystem:    row.IsSystem,
		SortOrder:   row.SortOrder,
	}
}

// Create is the input for creating a new category. User-created categories are
// never system categories and never the fallback; those only ship via seed.
type Create struct {
	Name        string
	ParentID    uuid.NullUUID
	Keywords    []string
	BudgetShare decimal.NullDecimal
	SortOrder   int
}

// Update carries the fields of a category update; unset fields keep their
// stored value.
type Update struct {
	Name        omit.Val[string]
	ParentID    omit.Val[uuid.NullUUID]
	Keywords    omit.Val[[]string]
	BudgetShare omit.Val[decimal.NullDecimal]
	SortOrder   omit.Val[int]
}

// Table defines the read-side storage operations for categories.
type Table interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ledger.Category, error)
	List(ctx context.Context) ([]ledger.Category, error)
}
