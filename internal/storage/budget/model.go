package budget

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Row mirrors the budgets table; scan.StructMapper fills it by db tag.
type Row struct {
	ID                    uuid.UUID           `db:"id"`
	Name                  string              `db:"name"`
	CategoryID            uuid.NullUUID       `db:"category_id"`
	Amount                decimal.Decimal     `db:"amount"`
	Period                string              `db:"period"`
	StartDate             time.Time           `db:"start_date"`
	EndDate               sql.NullTime        `db:"end_date"`
	NotificationThreshold decimal.NullDecimal `db:"notification_threshold"`
	CreatedAt             time.Time           `db:"created_at"`
}

func rowToBudget(row Row) (ledger.Budget, error) {
	period, err := ledger.ParsePeriod(row.Period)
	if err != nil {
		return ledger.Budget{}, fmt.Errorf("budget %s: %w", row.ID, err)
	}
	b := ledger.Budget{
		ID:                    row.ID,
		Name:                  row.Name,
		CategoryID:            row.CategoryID,
		Amount:                row.Amount,
		Period:                period,
		StartDate:             row.StartDate,
		NotificationThreshold: row.NotificationThreshold,
		CreatedAt:             row.CreatedAt,
	}
	if row.EndDate.Valid {
		end := row.EndDate.Time
		b.EndDate = &end
	}
	return b, nil
}

// Update carries the fields of a budget update; unset fields keep their
// stored value. Spent and remaining are derived on read and never stored, so
// there is deliberately no way to write them.
type Update struct {
	Name                  omit.Val[string]
	CategoryID            omit.Val[uuid.NullUUID]
	Amount                omit.Val[decimal.Decimal]
	Period                omit.Val[ledger.Period]
	StartDate             omit.Val[time.Time]
	EndDate               omit.Val[*time.Time]
	NotificationThreshold omit.Val[decimal.NullDecimal]
}

// Table defines the read-side storage operations for budgets.
type Table interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ledger.Budget, error)
	List(ctx context.Context) ([]ledger.Budget, error)
}
