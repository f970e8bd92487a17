package budget

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

var columns = []string{
	"id", "name", "category_id", "amount", "period",
	"start_date", "end_date", "notification_threshold", "created_at",
}

func selectColumns() bob.Mod[*dialect.SelectQuery] {
	exprs := make([]any, len(columns))
	for i, c := range columns {
		exprs[i] = psql.Quote(c)
	}
	return sm.Columns(exprs...)
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a budget by primary key.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Budget, error) {
	q := psql.Select(
		selectColumns(),
		sm.From("budgets"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Row]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b, err := rowToBudget(row)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns all budgets, overall budget first.
func (r *Reader) List(ctx context.Context) ([]ledger.Budget, error) {
	q := psql.Select(
		selectColumns(),
		sm.From("budgets"),
		sm.OrderBy("category_id").Asc().NullsFirst(),
		sm.OrderBy("name").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[Row]())
	if err != nil {
		return nil, err
	}

	result := make([]ledger.Budget, len(rows))
	for i, row := range rows {
		b, err := rowToBudget(row)
		if err != nil {
			return nil, err
		}
		result[i] = b
	}
	return result, nil
}
